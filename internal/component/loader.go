package component

import (
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Loader exposes development configuration loading behaviours.
type Loader interface {
	Load(path string) (*DevelopmentConfiguration, error)
}

// NewLoader returns a YAML backed loader reading from fs. A nil fs uses the OS filesystem.
func NewLoader(fs afero.Fs) Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &loader{fs: fs}
}

type loader struct {
	fs afero.Fs
}

func (l *loader) Load(path string) (*DevelopmentConfiguration, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	return Parse(path, data)
}

// Parse decodes a development configuration from data. The path is only used for errors.
func Parse(path string, data []byte) (*DevelopmentConfiguration, error) {
	var cfg DevelopmentConfiguration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	// ensure main slices are initialized for stability
	if cfg.Compartments == nil {
		cfg.Compartments = []Compartment{}
	}
	for i := range cfg.Compartments {
		if cfg.Compartments[i].Components == nil {
			cfg.Compartments[i].Components = []Component{}
		}
		if cfg.Compartments[i].State == "" {
			cfg.Compartments[i].State = StateSource
		}
	}

	return &cfg, nil
}
