package config

import "time"

// Config represents the complete configuration of a CPD run.
// It aggregates the workspace, detection, Ant and logging settings.
type Config struct {
	// Workspace locates the NWDI build workspace and its development configuration
	Workspace WorkspaceConfig `json:"workspace" yaml:"workspace"`

	// CPD controls duplicate code detection and the rendered build file
	CPD CPDConfig `json:"cpd" yaml:"cpd"`

	// Ant configures the build tool invocation
	Ant AntConfig `json:"ant" yaml:"ant"`

	// Logging contains logging level and output configuration
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	setFlags boolFlags `json:"-" yaml:"-"`
}

type boolFlags struct {
	cpdEnabled      bool
	loggingVerbose  bool
	loggingQuiet    bool
	loggingCompress bool
}

// WorkspaceConfig locates the build workspace.
type WorkspaceConfig struct {
	// Path is the NWDI build workspace holding the .dtc folder.
	// Default: current working directory
	Path string `json:"path" yaml:"path" validate:"required"`

	// ConfigurationFile is the development configuration listing compartments and components.
	ConfigurationFile string `json:"configuration_file,omitempty" yaml:"configuration_file,omitempty"`
}

// CPDConfig controls the duplicate code detection task.
type CPDConfig struct {
	// Enabled mirrors the "run CPD" switch of the build step.
	// Default: true
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Encoding of the analysed sources.
	// Default: UTF-8
	Encoding string `json:"encoding" yaml:"encoding" validate:"required"`

	// MinimumTokenCount is the smallest duplicate CPD reports.
	// Default: 100
	MinimumTokenCount int `json:"minimum_token_count" yaml:"minimum_token_count" validate:"min=1"`

	// ReportPath is the CPD report location, relative to the workspace unless absolute.
	// Default: cpd/cpd-result.xml
	ReportPath string `json:"report_path" yaml:"report_path" validate:"required"`

	// BuildFile is the rendered Ant build file, relative to the workspace unless absolute.
	// Default: cpd-build.xml
	BuildFile string `json:"build_file" yaml:"build_file" validate:"required"`

	// Template optionally replaces the built-in build file template.
	Template string `json:"template,omitempty" yaml:"template,omitempty"`

	// Excludes are filename globs excluded from every component.
	Excludes []string `json:"excludes,omitempty" yaml:"excludes,omitempty"`

	// ContainsRegexpExcludes exclude files whose content matches any expression.
	ContainsRegexpExcludes []string `json:"contains_regexp_excludes,omitempty" yaml:"contains_regexp_excludes,omitempty"`

	// ChangedSince restricts the analysis to components changed since this git revision.
	ChangedSince string `json:"changed_since,omitempty" yaml:"changed_since,omitempty"`

	// RepoDir is the git repository ChangedSince is resolved in.
	// Default: the workspace
	RepoDir string `json:"repo_dir,omitempty" yaml:"repo_dir,omitempty"`
}

// AntConfig configures the Ant invocation.
type AntConfig struct {
	// Binary is the ant executable.
	// Default: ant
	Binary string `json:"binary" yaml:"binary" validate:"required"`

	// Target is the build file target that runs CPD.
	// Default: cpd-all
	Target string `json:"target" yaml:"target" validate:"required"`

	// JVMOptions are exported as ANT_OPTS.
	// Default: -Xmx1024m
	JVMOptions string `json:"jvm_options" yaml:"jvm_options"`

	// LibDir holds the PMD jars and is passed to Ant as cpd.dir.
	LibDir string `json:"lib_dir,omitempty" yaml:"lib_dir,omitempty"`

	// MinVersion enables a version preflight, either a version or a semver constraint.
	MinVersion string `json:"min_version,omitempty" yaml:"min_version,omitempty"`

	// Timeout bounds the Ant run.
	// Default: 30 minutes
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// LoggingConfig manages logging level, output format and the optional log file.
type LoggingConfig struct {
	// Level controls the logging verbosity level.
	// Valid values: debug, info, warn, error
	// Default: info
	Level string `json:"level" yaml:"level" validate:"oneof=debug info warn error"`

	// Format controls the log output format.
	// Valid values: text, json
	// Default: text
	Format string `json:"format" yaml:"format" validate:"oneof=text json"`

	// Verbose is equivalent to setting Level to "debug"
	Verbose bool `json:"verbose" yaml:"verbose"`

	// Quiet is equivalent to setting Level to "warn"
	Quiet bool `json:"quiet" yaml:"quiet"`

	// File sends logs to a rotated file instead of stderr.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// MaxSize is the size in megabytes before the log file is rotated.
	MaxSize int `json:"max_size" yaml:"max_size" validate:"min=0"`

	// MaxBackups is the number of rotated files kept.
	MaxBackups int `json:"max_backups" yaml:"max_backups" validate:"min=0"`

	// MaxAge is the number of days rotated files are kept.
	MaxAge int `json:"max_age" yaml:"max_age" validate:"min=0"`

	// Compress gzips rotated files.
	Compress bool `json:"compress" yaml:"compress"`
}

// Environment variable mapping constants for configuration parsing
const (
	EnvWorkspacePath     = "NWDI_CPD_WORKSPACE"
	EnvConfigurationFile = "NWDI_CPD_CONFIGURATION"

	EnvEnabled                = "NWDI_CPD_ENABLED"
	EnvEncoding               = "NWDI_CPD_ENCODING"
	EnvMinimumTokenCount      = "NWDI_CPD_MINIMUM_TOKEN_COUNT"
	EnvReportPath             = "NWDI_CPD_REPORT_PATH"
	EnvBuildFile              = "NWDI_CPD_BUILD_FILE"
	EnvTemplate               = "NWDI_CPD_TEMPLATE"
	EnvExcludes               = "NWDI_CPD_EXCLUDES"
	EnvContainsRegexpExcludes = "NWDI_CPD_CONTAINS_REGEXP_EXCLUDES"
	EnvChangedSince           = "NWDI_CPD_CHANGED_SINCE"
	EnvRepoDir                = "NWDI_CPD_REPO_DIR"

	EnvAntBinary     = "NWDI_CPD_ANT_BINARY"
	EnvAntTarget     = "NWDI_CPD_ANT_TARGET"
	EnvAntJVMOptions = "NWDI_CPD_ANT_OPTS"
	EnvAntLibDir     = "NWDI_CPD_ANT_LIB_DIR"
	EnvAntMinVersion = "NWDI_CPD_ANT_MIN_VERSION"
	EnvAntTimeout    = "NWDI_CPD_ANT_TIMEOUT"

	EnvLogLevel       = "NWDI_CPD_LOG_LEVEL"
	EnvLogFormat      = "NWDI_CPD_LOG_FORMAT"
	EnvVerbose        = "NWDI_CPD_VERBOSE"
	EnvQuiet          = "NWDI_CPD_QUIET"
	EnvLogFile        = "NWDI_CPD_LOG_FILE"
	EnvLogMaxSize     = "NWDI_CPD_LOG_MAX_SIZE"
	EnvLogMaxBackups  = "NWDI_CPD_LOG_MAX_BACKUPS"
	EnvLogMaxAge      = "NWDI_CPD_LOG_MAX_AGE"
	EnvLogCompress    = "NWDI_CPD_LOG_COMPRESS"
	EnvConfigFilePath = "NWDI_CPD_CONFIG"
)

// New returns a Config populated with safe zero values.
func New() *Config {
	return &Config{}
}
