package component

import "strings"

// DevelopmentConfiguration is the root structure parsed from a development configuration file.
// It mirrors the track layout of an NWDI build: compartments (software components) holding
// development components.
type DevelopmentConfiguration struct {
	Name         string        `yaml:"name"`
	Compartments []Compartment `yaml:"compartments"`
}

// Compartment groups development components belonging to one software component.
type Compartment struct {
	Vendor     string      `yaml:"vendor"`
	Name       string      `yaml:"name"`
	State      State       `yaml:"state"`
	Components []Component `yaml:"components"`
}

// Component describes a single development component (DC).
type Component struct {
	Vendor string `yaml:"vendor"`
	Name   string `yaml:"name"`
	Type   Type   `yaml:"type"`

	// Path is the component location relative to the repository root. It is used to
	// map changed files back to components.
	Path string `yaml:"path,omitempty"`

	SourceFolders     []string `yaml:"source_folders,omitempty"`
	TestSourceFolders []string `yaml:"test_source_folders,omitempty"`
	ClassPath         []string `yaml:"class_path,omitempty"`
}

// Key returns the folder-safe identifier NWDI uses for a component, e.g. "example.com~dc1"
// for vendor example.com and name dc1. Slashes in the name are replaced by tildes.
func (c Component) Key() string {
	return c.Vendor + "~" + strings.ReplaceAll(c.Name, "/", "~")
}

// String returns "vendor/name".
func (c Component) String() string {
	return c.Vendor + "/" + c.Name
}

// State is the role a compartment plays in a build.
type State string

const (
	// StateSource marks compartments whose components are built from source.
	StateSource State = "Source"
	// StateArchive marks compartments only available as archives.
	StateArchive State = "Archive"
)

// Type is the development component type tag.
type Type string

const (
	TypeJava                       Type = "Java"
	TypeWebDynpro                  Type = "WebDynpro"
	TypeJ2EEWebModule              Type = "J2EE Web Module"
	TypeJ2EEEJBModule              Type = "J2EE EJB Module"
	TypeJ2EELibrary                Type = "J2EE Library"
	TypeJ2EEServerComponentLibrary Type = "J2EE Server Component Library"
	TypeDictionary                 Type = "Dictionary"
	TypeEnterpriseApplication      Type = "Enterprise Application"
	TypeExternalLibrary            Type = "External Library"
	TypeCompositeApplication       Type = "Composite Application"
	TypeUnknown                    Type = "Unknown"
)

var knownTypes = map[Type]struct{}{
	TypeJava:                       {},
	TypeWebDynpro:                  {},
	TypeJ2EEWebModule:              {},
	TypeJ2EEEJBModule:              {},
	TypeJ2EELibrary:                {},
	TypeJ2EEServerComponentLibrary: {},
	TypeDictionary:                 {},
	TypeEnterpriseApplication:      {},
	TypeExternalLibrary:            {},
	TypeCompositeApplication:       {},
	TypeUnknown:                    {},
}

// IsKnown reports whether t is one of the supported component types.
func (t Type) IsKnown() bool {
	_, ok := knownTypes[t]
	return ok
}
