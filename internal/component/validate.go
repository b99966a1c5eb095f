package component

import "fmt"

// Validate performs schema checks on a development configuration.
func Validate(dc *DevelopmentConfiguration) error {
	if dc == nil {
		return &ValidationError{Issues: []string{"development configuration cannot be nil"}}
	}

	var issues []string

	if dc.Name == "" {
		issues = append(issues, "development configuration name cannot be empty")
	}

	seen := make(map[string]string) // component key -> compartment
	for i, compartment := range dc.Compartments {
		if compartment.Name == "" {
			issues = append(issues, fmt.Sprintf("compartment[%d] name cannot be empty", i))
		}
		if compartment.State != StateSource && compartment.State != StateArchive {
			issues = append(issues, fmt.Sprintf("compartment[%d] (%s) has invalid state %q", i, compartment.Name, compartment.State))
		}

		for j, c := range compartment.Components {
			if c.Vendor == "" {
				issues = append(issues, fmt.Sprintf("compartment[%d] (%s) component[%d] vendor cannot be empty", i, compartment.Name, j))
			}
			if c.Name == "" {
				issues = append(issues, fmt.Sprintf("compartment[%d] (%s) component[%d] name cannot be empty", i, compartment.Name, j))
				continue
			}
			if !c.Type.IsKnown() {
				issues = append(issues, fmt.Sprintf("component %s has unknown type %q", c, c.Type))
			}

			if other, ok := seen[c.Key()]; ok {
				issues = append(issues, fmt.Sprintf("duplicate component %s in compartments %s and %s", c, other, compartment.Name))
				continue
			}
			seen[c.Key()] = compartment.Name
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}

	return nil
}
