package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// DefaultConfigFileNames are searched, in order, when no config file is given.
var DefaultConfigFileNames = []string{".nwdi-cpd.yaml", ".nwdi-cpd.yml", ".nwdi-cpd.json"}

// ErrConfigNotFound is returned by DiscoverConfigFile when no candidate exists.
var ErrConfigNotFound = errors.New("config: no configuration file found")

// LoadFromFile reads configuration from a YAML, JSON or TOML file. Keys follow the yaml
// field names, e.g. cpd.minimum_token_count.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, &FileError{Path: path, Err: err}
	}

	cfg := New()
	err := v.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
		dc.ErrorUnused = true
	})
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}

	// Track booleans present in the file so false overrides a lower source.
	if v.IsSet("cpd.enabled") {
		cfg.setCPDEnabled(v.GetBool("cpd.enabled"))
	}
	if v.IsSet("logging.verbose") {
		cfg.setLoggingVerbose(v.GetBool("logging.verbose"))
	}
	if v.IsSet("logging.quiet") {
		cfg.setLoggingQuiet(v.GetBool("logging.quiet"))
	}
	if v.IsSet("logging.compress") {
		cfg.setLoggingCompress(v.GetBool("logging.compress"))
	}

	return cfg, nil
}

// DiscoverConfigFile looks for a default config file in each directory.
func DiscoverConfigFile(dirs ...string) (string, error) {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		for _, name := range DefaultConfigFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
	}
	return "", ErrConfigNotFound
}
