package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/goliatone/nwdi-cpd/pkg/workspace"
)

// Default values applied by ApplyDefaults.
const (
	DefaultEncoding          = "UTF-8"
	DefaultMinimumTokenCount = 100
	DefaultReportPath        = "cpd/cpd-result.xml"
	DefaultBuildFile         = "cpd-build.xml"

	DefaultAntBinary  = "ant"
	DefaultAntTarget  = "cpd-all"
	DefaultJVMOptions = "-Xmx1024m"
	DefaultAntTimeout = 30 * time.Minute
	// DefaultAntLibDirName is the folder next to the binary holding the PMD jars.
	DefaultAntLibDirName = "lib"

	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultLogMaxSize    = 10
	DefaultLogMaxBackups = 3
	DefaultLogMaxAge     = 28
)

// ApplyDefaults fills unset fields. It should be called after merging sources but
// before validation.
func ApplyDefaults(cfg *Config) error {
	if cfg == nil {
		return &ValidationError{Field: "config", Message: "configuration cannot be nil"}
	}

	applyWorkspaceDefaults(&cfg.Workspace)
	applyCPDDefaults(cfg)
	applyAntDefaults(&cfg.Ant)
	applyLoggingDefaults(cfg)
	return nil
}

// applyWorkspaceDefaults resolves the workspace; without one the nearest folder holding
// the NWDI .dtc tree, or the current directory, is used.
func applyWorkspaceDefaults(ws *WorkspaceConfig) {
	ws.Path = workspace.Resolve(afero.NewOsFs(), ws.Path)
}

func applyCPDDefaults(cfg *Config) {
	c := &cfg.CPD
	if !cfg.cpdEnabledSet() {
		c.Enabled = true
	}
	if c.Encoding == "" {
		c.Encoding = DefaultEncoding
	}
	if c.MinimumTokenCount == 0 {
		c.MinimumTokenCount = DefaultMinimumTokenCount
	}
	if c.ReportPath == "" {
		c.ReportPath = DefaultReportPath
	}
	if c.BuildFile == "" {
		c.BuildFile = DefaultBuildFile
	}
}

func applyAntDefaults(ant *AntConfig) {
	if ant.Binary == "" {
		ant.Binary = DefaultAntBinary
	}
	if ant.Target == "" {
		ant.Target = DefaultAntTarget
	}
	if ant.JVMOptions == "" {
		ant.JVMOptions = DefaultJVMOptions
	}
	if ant.Timeout == 0 {
		ant.Timeout = DefaultAntTimeout
	}
	if ant.LibDir == "" {
		ant.LibDir = DefaultAntLibDir()
	}
}

// DefaultAntLibDir returns the lib folder of the installation, <dir of binary>/lib.
// When the binary can't be located the workspace relative "lib" is used.
func DefaultAntLibDir() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultAntLibDirName
	}
	return filepath.Join(filepath.Dir(exe), DefaultAntLibDirName)
}

func applyLoggingDefaults(cfg *Config) {
	l := &cfg.Logging
	if l.Level == "" {
		switch {
		case l.Verbose:
			l.Level = "debug"
		case l.Quiet:
			l.Level = "warn"
		default:
			l.Level = DefaultLogLevel
		}
	}
	if l.Format == "" {
		l.Format = DefaultLogFormat
	}
	if l.MaxSize == 0 {
		l.MaxSize = DefaultLogMaxSize
	}
	if l.MaxBackups == 0 {
		l.MaxBackups = DefaultLogMaxBackups
	}
	if l.MaxAge == 0 {
		l.MaxAge = DefaultLogMaxAge
	}
	if !cfg.loggingCompressSet() {
		l.Compress = true
	}
}

// ResolvePath joins a workspace relative path onto the workspace. Absolute paths are kept.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Workspace.Path, p)
}

// ReportFile returns the absolute CPD report location.
func (c *Config) ReportFile() string {
	return c.ResolvePath(c.CPD.ReportPath)
}

// ResultDir returns the folder holding the CPD report, relative to the workspace unless
// the report path is absolute.
func (c *Config) ResultDir() string {
	return filepath.Dir(c.CPD.ReportPath)
}

// BuildFilePath returns the absolute location of the rendered Ant build file.
func (c *Config) BuildFilePath() string {
	return c.ResolvePath(c.CPD.BuildFile)
}

// ConfigurationFilePath returns the absolute development configuration location.
func (c *Config) ConfigurationFilePath() string {
	return c.ResolvePath(c.Workspace.ConfigurationFile)
}

// AntProperties returns the -D definitions passed to Ant.
func (c *Config) AntProperties() map[string]string {
	props := map[string]string{}
	if c.Ant.LibDir != "" {
		props["cpd.dir"] = c.ResolvePath(c.Ant.LibDir)
	}
	return props
}
