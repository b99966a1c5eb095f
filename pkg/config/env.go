package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvParser parses configuration from NWDI_CPD_* environment variables.
type EnvParser struct {
	// getEnv allows injection of environment variable retrieval for testing
	getEnv func(string) string
}

// NewEnvParser creates a new environment variable parser.
func NewEnvParser() *EnvParser {
	return &EnvParser{
		getEnv: os.Getenv,
	}
}

// NewEnvParserWithGetter creates a parser reading variables through getter.
func NewEnvParserWithGetter(getter func(string) string) *EnvParser {
	return &EnvParser{
		getEnv: getter,
	}
}

// ParseEnv parses all NWDI_CPD environment variables and returns a populated Config.
// It returns an error if any variable holds an invalid value.
func (p *EnvParser) ParseEnv() (*Config, error) {
	var errs []string
	config := New()

	p.parseWorkspace(config)

	if err := p.parseCPD(config); err != nil {
		errs = append(errs, err.Error())
	}
	if err := p.parseAnt(config); err != nil {
		errs = append(errs, err.Error())
	}
	if err := p.parseLogging(config); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("environment variable parsing errors: %s", strings.Join(errs, "; "))
	}

	return config, nil
}

func (p *EnvParser) parseWorkspace(config *Config) {
	if path := p.getEnv(EnvWorkspacePath); path != "" {
		config.Workspace.Path = path
	}
	if file := p.getEnv(EnvConfigurationFile); file != "" {
		config.Workspace.ConfigurationFile = file
	}
}

func (p *EnvParser) parseCPD(config *Config) error {
	var errs []string

	if enabledStr := p.getEnv(EnvEnabled); enabledStr != "" {
		enabled, err := p.parseBool(enabledStr)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s: %v", EnvEnabled, err))
		} else {
			config.setCPDEnabled(enabled)
		}
	}

	if encoding := p.getEnv(EnvEncoding); encoding != "" {
		config.CPD.Encoding = encoding
	}

	if countStr := p.getEnv(EnvMinimumTokenCount); countStr != "" {
		count, err := strconv.Atoi(countStr)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s: must be a positive integer", EnvMinimumTokenCount))
		} else if count <= 0 {
			errs = append(errs, fmt.Sprintf("invalid %s: must be greater than 0, got %d", EnvMinimumTokenCount, count))
		} else {
			config.CPD.MinimumTokenCount = count
		}
	}

	if report := p.getEnv(EnvReportPath); report != "" {
		config.CPD.ReportPath = report
	}
	if buildFile := p.getEnv(EnvBuildFile); buildFile != "" {
		config.CPD.BuildFile = buildFile
	}
	if tmpl := p.getEnv(EnvTemplate); tmpl != "" {
		config.CPD.Template = tmpl
	}
	if excludes := p.parseStringList(p.getEnv(EnvExcludes)); len(excludes) > 0 {
		config.CPD.Excludes = excludes
	}
	if excludes := p.parseStringList(p.getEnv(EnvContainsRegexpExcludes)); len(excludes) > 0 {
		config.CPD.ContainsRegexpExcludes = excludes
	}
	if since := p.getEnv(EnvChangedSince); since != "" {
		config.CPD.ChangedSince = since
	}
	if repo := p.getEnv(EnvRepoDir); repo != "" {
		config.CPD.RepoDir = repo
	}

	if len(errs) > 0 {
		return fmt.Errorf("cpd configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (p *EnvParser) parseAnt(config *Config) error {
	if binary := p.getEnv(EnvAntBinary); binary != "" {
		config.Ant.Binary = binary
	}
	if target := p.getEnv(EnvAntTarget); target != "" {
		config.Ant.Target = target
	}
	if opts := p.getEnv(EnvAntJVMOptions); opts != "" {
		config.Ant.JVMOptions = opts
	}
	if lib := p.getEnv(EnvAntLibDir); lib != "" {
		config.Ant.LibDir = lib
	}
	if minVersion := p.getEnv(EnvAntMinVersion); minVersion != "" {
		config.Ant.MinVersion = minVersion
	}

	if timeoutStr := p.getEnv(EnvAntTimeout); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return fmt.Errorf("ant configuration errors: invalid %s: %v", EnvAntTimeout, err)
		}
		config.Ant.Timeout = timeout
	}

	return nil
}

func (p *EnvParser) parseLogging(config *Config) error {
	var errs []string

	if level := p.getEnv(EnvLogLevel); level != "" {
		if !p.isValidLogLevel(level) {
			errs = append(errs, fmt.Sprintf("invalid %s: must be one of [debug, info, warn, error], got %q", EnvLogLevel, level))
		} else {
			config.Logging.Level = strings.ToLower(level)
		}
	}

	if format := p.getEnv(EnvLogFormat); format != "" {
		if !p.isValidLogFormat(format) {
			errs = append(errs, fmt.Sprintf("invalid %s: must be one of [text, json], got %q", EnvLogFormat, format))
		} else {
			config.Logging.Format = strings.ToLower(format)
		}
	}

	boolVars := []struct {
		name string
		set  func(bool)
	}{
		{EnvVerbose, config.setLoggingVerbose},
		{EnvQuiet, config.setLoggingQuiet},
		{EnvLogCompress, config.setLoggingCompress},
	}
	for _, bv := range boolVars {
		raw := p.getEnv(bv.name)
		if raw == "" {
			continue
		}
		value, err := p.parseBool(raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s: %v", bv.name, err))
			continue
		}
		bv.set(value)
	}

	if file := p.getEnv(EnvLogFile); file != "" {
		config.Logging.File = file
	}

	intVars := []struct {
		name   string
		target *int
	}{
		{EnvLogMaxSize, &config.Logging.MaxSize},
		{EnvLogMaxBackups, &config.Logging.MaxBackups},
		{EnvLogMaxAge, &config.Logging.MaxAge},
	}
	for _, iv := range intVars {
		raw := p.getEnv(iv.name)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			errs = append(errs, fmt.Sprintf("invalid %s: must be a non-negative integer", iv.name))
			continue
		}
		*iv.target = value
	}

	if len(errs) > 0 {
		return fmt.Errorf("logging configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// parseBool parses a boolean value from a string, supporting multiple formats
func (p *EnvParser) parseBool(value string) (bool, error) {
	lower := strings.ToLower(strings.TrimSpace(value))

	switch lower {
	case "true", "1", "yes", "on", "enabled":
		return true, nil
	case "false", "0", "no", "off", "disabled", "":
		return false, nil
	default:
		return false, fmt.Errorf("must be one of [true, false, 1, 0, yes, no, on, off, enabled, disabled], got %q", value)
	}
}

// parseStringList parses a comma-separated list of strings
func (p *EnvParser) parseStringList(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

func (p *EnvParser) isValidLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func (p *EnvParser) isValidLogFormat(format string) bool {
	switch strings.ToLower(format) {
	case "text", "json":
		return true
	default:
		return false
	}
}

// FromEnv is a convenience function that creates a new parser and parses the environment.
func FromEnv() (*Config, error) {
	return NewEnvParser().ParseEnv()
}
