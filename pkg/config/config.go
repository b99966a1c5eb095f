// Package config assembles the nwdi-cpd configuration from defaults, a config file,
// NWDI_CPD_* environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

// Builder orchestrates config assembly from various sources.
type Builder interface {
	FromFile(path string) Builder
	FromEnv() Builder
	FromFlags(cmd *cobra.Command) Builder
	Build() (*Config, error)
}

// NewBuilder returns a Builder. Sources may be added in any order; Build merges them
// as file < env < flags.
func NewBuilder() Builder {
	return &builder{getEnv: os.Getenv}
}

// NewBuilderWithEnv returns a Builder reading environment variables through getter.
func NewBuilderWithEnv(getter func(string) string) Builder {
	return &builder{getEnv: getter}
}

type builder struct {
	getEnv func(string) string

	file  *Config
	env   *Config
	flags *Config
	errs  []error
}

// FromFile loads path. An empty path consults NWDI_CPD_CONFIG and then looks for a
// default config file in the current directory; a missing default is not an error.
func (b *builder) FromFile(path string) Builder {
	if path == "" {
		path = b.getEnv(EnvConfigFilePath)
	}
	if path == "" {
		wd, _ := os.Getwd()
		found, err := DiscoverConfigFile(wd)
		if errors.Is(err, ErrConfigNotFound) {
			return b
		}
		path = found
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.file = cfg
	return b
}

func (b *builder) FromEnv() Builder {
	cfg, err := NewEnvParserWithGetter(b.getEnv).ParseEnv()
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.env = cfg
	return b
}

func (b *builder) FromFlags(cmd *cobra.Command) Builder {
	cfg, err := LoadFromFlags(cmd)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.flags = cfg
	return b
}

// Build merges the collected sources, applies defaults and validates the result.
func (b *builder) Build() (*Config, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	cfg := New()
	for _, src := range []*Config{b.file, b.env, b.flags} {
		merge(cfg, src)
	}

	if err := ApplyDefaults(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge copies the values set in src over dst.
func merge(dst, src *Config) {
	if src == nil {
		return
	}

	setString(&dst.Workspace.Path, src.Workspace.Path)
	setString(&dst.Workspace.ConfigurationFile, src.Workspace.ConfigurationFile)

	if src.cpdEnabledSet() {
		dst.setCPDEnabled(src.CPD.Enabled)
	}
	setString(&dst.CPD.Encoding, src.CPD.Encoding)
	if src.CPD.MinimumTokenCount != 0 {
		dst.CPD.MinimumTokenCount = src.CPD.MinimumTokenCount
	}
	setString(&dst.CPD.ReportPath, src.CPD.ReportPath)
	setString(&dst.CPD.BuildFile, src.CPD.BuildFile)
	setString(&dst.CPD.Template, src.CPD.Template)
	if len(src.CPD.Excludes) > 0 {
		dst.CPD.Excludes = append([]string{}, src.CPD.Excludes...)
	}
	if len(src.CPD.ContainsRegexpExcludes) > 0 {
		dst.CPD.ContainsRegexpExcludes = append([]string{}, src.CPD.ContainsRegexpExcludes...)
	}
	setString(&dst.CPD.ChangedSince, src.CPD.ChangedSince)
	setString(&dst.CPD.RepoDir, src.CPD.RepoDir)

	setString(&dst.Ant.Binary, src.Ant.Binary)
	setString(&dst.Ant.Target, src.Ant.Target)
	setString(&dst.Ant.JVMOptions, src.Ant.JVMOptions)
	setString(&dst.Ant.LibDir, src.Ant.LibDir)
	setString(&dst.Ant.MinVersion, src.Ant.MinVersion)
	if src.Ant.Timeout != 0 {
		dst.Ant.Timeout = src.Ant.Timeout
	}

	setString(&dst.Logging.Level, src.Logging.Level)
	setString(&dst.Logging.Format, src.Logging.Format)
	if src.loggingVerboseSet() {
		dst.setLoggingVerbose(src.Logging.Verbose)
	}
	if src.loggingQuietSet() {
		dst.setLoggingQuiet(src.Logging.Quiet)
	}
	// A higher source enabling one switch turns the other off.
	if src.loggingVerboseSet() && src.Logging.Verbose && !src.loggingQuietSet() {
		dst.Logging.Quiet = false
	}
	if src.loggingQuietSet() && src.Logging.Quiet && !src.loggingVerboseSet() {
		dst.Logging.Verbose = false
	}
	setString(&dst.Logging.File, src.Logging.File)
	if src.Logging.MaxSize != 0 {
		dst.Logging.MaxSize = src.Logging.MaxSize
	}
	if src.Logging.MaxBackups != 0 {
		dst.Logging.MaxBackups = src.Logging.MaxBackups
	}
	if src.Logging.MaxAge != 0 {
		dst.Logging.MaxAge = src.Logging.MaxAge
	}
	if src.loggingCompressSet() {
		dst.setLoggingCompress(src.Logging.Compress)
	}
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
