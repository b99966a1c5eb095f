package main

import (
	"path/filepath"

	"github.com/goliatone/nwdi-cpd/internal/component"
)

// configurationPath returns the development configuration given as argument or,
// failing that, the configured one.
func configurationPath(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		path := args[0]
		if !filepath.IsAbs(path) {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
		}
		return path, nil
	}

	if path := container.Config().ConfigurationFilePath(); path != "" {
		return path, nil
	}
	return "", newValidationError("development configuration must be given as argument or via --configuration", nil)
}

// loadConfiguration loads and validates the development configuration named by args.
func loadConfiguration(args []string) (*component.DevelopmentConfiguration, error) {
	path, err := configurationPath(args)
	if err != nil {
		return nil, err
	}

	container.Logger().Debug("Loading development configuration", "path", path)
	dc, err := container.Components().Load(path)
	if err != nil {
		if component.IsParseError(err) {
			return nil, newValidationError("failed to parse development configuration", err)
		}
		return nil, newFileError("failed to load development configuration", err)
	}

	if err := component.Validate(dc); err != nil {
		return nil, newValidationError("invalid development configuration", err)
	}
	return dc, nil
}
