package component

// Filter decides whether a component takes part in an operation.
type Filter func(Component) bool

// CompartmentsByState returns the compartments in the given state, in declaration order.
func (dc *DevelopmentConfiguration) CompartmentsByState(state State) []Compartment {
	if dc == nil {
		return nil
	}

	var result []Compartment
	for _, compartment := range dc.Compartments {
		if compartment.State == state {
			result = append(result, compartment)
		}
	}
	return result
}

// Collect flattens the components of the given compartments that pass filter.
// A nil filter accepts every component. Order follows compartments, then components.
func Collect(compartments []Compartment, filter Filter) []Component {
	components := []Component{}
	for _, compartment := range compartments {
		for _, c := range compartment.Components {
			if filter == nil || filter(c) {
				components = append(components, c)
			}
		}
	}
	return components
}

// Find returns the component identified by vendor and name.
func (dc *DevelopmentConfiguration) Find(vendor, name string) (*Component, bool) {
	if dc == nil {
		return nil, false
	}
	for i := range dc.Compartments {
		for j := range dc.Compartments[i].Components {
			c := &dc.Compartments[i].Components[j]
			if c.Vendor == vendor && c.Name == name {
				return c, true
			}
		}
	}
	return nil, false
}

var javaSourceTypes = map[Type]struct{}{
	TypeJava:                       {},
	TypeWebDynpro:                  {},
	TypeJ2EEWebModule:              {},
	TypeJ2EEEJBModule:              {},
	TypeJ2EELibrary:                {},
	TypeJ2EEServerComponentLibrary: {},
	TypeCompositeApplication:       {},
}

// HasJavaSources accepts components whose type carries Java source code.
func HasJavaSources(c Component) bool {
	_, ok := javaSourceTypes[c.Type]
	return ok
}

// And combines filters; a component must pass all of them.
func And(filters ...Filter) Filter {
	return func(c Component) bool {
		for _, f := range filters {
			if f != nil && !f(c) {
				return false
			}
		}
		return true
	}
}
