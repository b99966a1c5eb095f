package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// FlagConfig represents flag parsing configuration and results
type FlagConfig struct {
	ConfigFile        string
	Workspace         string
	ConfigurationFile string

	RunCPD                 bool
	Encoding               string
	MinimumTokenCount      int
	ReportPath             string
	BuildFile              string
	Template               string
	Excludes               []string
	ContainsRegexpExcludes []string
	ChangedSince           string
	RepoDir                string

	AntBinary     string
	AntTarget     string
	JVMOptions    string
	AntLibDir     string
	AntMinVersion string
	Timeout       time.Duration

	Verbose   bool
	Quiet     bool
	LogLevel  string
	LogFormat string
	LogFile   string

	runCPDSet            bool
	minimumTokenCountSet bool
	timeoutSet           bool
	verboseSet           bool
	quietSet             bool
	logLevelSet          bool
	logFormatSet         bool
}

// AddFlags adds all configuration flags to the provided cobra command.
// Persistent flags are inherited by subcommands.
func AddFlags(cmd *cobra.Command) *FlagConfig {
	fc := &FlagConfig{}
	pf := cmd.PersistentFlags()

	pf.StringVarP(&fc.ConfigFile, "config", "c", "",
		"Configuration file path (default: .nwdi-cpd.yaml in the workspace)")
	pf.StringVarP(&fc.Workspace, "workspace", "w", "",
		"NWDI build workspace (default: current directory)")
	pf.StringVarP(&fc.ConfigurationFile, "configuration", "f", "",
		"Development configuration file listing compartments and components")

	pf.BoolVar(&fc.RunCPD, "run-cpd", true,
		"Run duplicate code detection")
	pf.StringVar(&fc.Encoding, "encoding", "",
		"Source encoding (default: UTF-8)")
	pf.IntVar(&fc.MinimumTokenCount, "minimum-tokens", 0,
		"Minimum duplicate length in tokens (default: 100)")
	pf.StringVar(&fc.ReportPath, "report", "",
		"CPD report path relative to the workspace (default: cpd/cpd-result.xml)")
	pf.StringVar(&fc.BuildFile, "build-file", "",
		"Rendered Ant build file relative to the workspace (default: cpd-build.xml)")
	pf.StringVar(&fc.Template, "template", "",
		"Custom build file template")
	pf.StringSliceVar(&fc.Excludes, "exclude", nil,
		"Filename glob excluded from every component (repeatable)")
	pf.StringSliceVar(&fc.ContainsRegexpExcludes, "exclude-content", nil,
		"Exclude files whose content matches this expression (repeatable)")
	pf.StringVar(&fc.ChangedSince, "changed-since", "",
		"Only analyse components changed since this git revision")
	pf.StringVar(&fc.RepoDir, "repo", "",
		"Git repository used with --changed-since (default: workspace)")

	pf.StringVar(&fc.AntBinary, "ant", "",
		"Ant executable (default: ant)")
	pf.StringVar(&fc.AntTarget, "ant-target", "",
		"Ant target running CPD (default: cpd-all)")
	pf.StringVar(&fc.JVMOptions, "jvm-options", "",
		"ANT_OPTS for the Ant JVM (default: -Xmx1024m)")
	pf.StringVar(&fc.AntLibDir, "pmd-lib", "",
		"Directory holding the PMD jars")
	pf.StringVar(&fc.AntMinVersion, "ant-min-version", "",
		"Minimum Ant version or semver constraint")
	pf.DurationVar(&fc.Timeout, "timeout", 0,
		"Ant run timeout (default: 30m)")

	pf.BoolVarP(&fc.Verbose, "verbose", "v", false,
		"Verbose logging output (equivalent to --log-level=debug)")
	pf.BoolVarP(&fc.Quiet, "quiet", "q", false,
		"Suppress non-essential output (equivalent to --log-level=warn)")
	pf.StringVar(&fc.LogLevel, "log-level", "",
		"Logging level (debug, info, warn, error)")
	pf.StringVar(&fc.LogFormat, "log-format", "",
		"Log output format (text, json)")
	pf.StringVar(&fc.LogFile, "log-file", "",
		"Write logs to a rotated file")

	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	cmd.MarkFlagsMutuallyExclusive("verbose", "log-level")
	cmd.MarkFlagsMutuallyExclusive("quiet", "log-level")

	return fc
}

// ValidateFlags validates flag combinations and values.
func (fc *FlagConfig) ValidateFlags() error {
	var errors []string

	if fc.timeoutSet && fc.Timeout <= 0 {
		errors = append(errors, "timeout must be positive")
	}

	if fc.minimumTokenCountSet && fc.MinimumTokenCount <= 0 {
		errors = append(errors, "minimum-tokens must be positive")
	}

	if fc.logLevelSet && !oneOf(fc.LogLevel, "debug", "info", "warn", "error") {
		errors = append(errors, "log-level must be one of: debug, info, warn, error")
	}

	if fc.logFormatSet && !oneOf(fc.LogFormat, "text", "json") {
		errors = append(errors, "log-format must be one of: text, json")
	}

	if len(errors) > 0 {
		return fmt.Errorf("flag validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func oneOf(value string, valid ...string) bool {
	for _, v := range valid {
		if value == v {
			return true
		}
	}
	return false
}

// ToConfig converts flag configuration to a Config struct.
// It emits only the values explicitly set via flags; callers should merge
// this result with other configuration sources to honour precedence rules.
func (fc *FlagConfig) ToConfig() (*Config, error) {
	config := New()

	config.Workspace.Path = fc.Workspace
	config.Workspace.ConfigurationFile = fc.ConfigurationFile

	if fc.runCPDSet {
		config.setCPDEnabled(fc.RunCPD)
	}
	config.CPD.Encoding = fc.Encoding
	if fc.minimumTokenCountSet {
		config.CPD.MinimumTokenCount = fc.MinimumTokenCount
	}
	config.CPD.ReportPath = fc.ReportPath
	config.CPD.BuildFile = fc.BuildFile
	config.CPD.Template = fc.Template
	config.CPD.Excludes = fc.Excludes
	config.CPD.ContainsRegexpExcludes = fc.ContainsRegexpExcludes
	config.CPD.ChangedSince = fc.ChangedSince
	config.CPD.RepoDir = fc.RepoDir

	config.Ant.Binary = fc.AntBinary
	config.Ant.Target = fc.AntTarget
	config.Ant.JVMOptions = fc.JVMOptions
	config.Ant.LibDir = fc.AntLibDir
	config.Ant.MinVersion = fc.AntMinVersion
	if fc.timeoutSet {
		config.Ant.Timeout = fc.Timeout
	}

	if fc.verboseSet {
		config.setLoggingVerbose(fc.Verbose)
		if fc.Verbose {
			config.Logging.Level = "debug"
		}
	}
	if fc.quietSet {
		config.setLoggingQuiet(fc.Quiet)
		if fc.Quiet {
			config.Logging.Level = "warn"
		}
	}
	if fc.logLevelSet && fc.LogLevel != "" {
		config.Logging.Level = fc.LogLevel
	}
	if fc.logFormatSet && fc.LogFormat != "" {
		config.Logging.Format = fc.LogFormat
	}
	config.Logging.File = fc.LogFile

	return config, nil
}

// LoadFromFlags loads configuration from command-line flags using cobra.
func LoadFromFlags(cmd *cobra.Command) (*Config, error) {
	if cmd == nil {
		return nil, fmt.Errorf("command cannot be nil")
	}

	// cmd.Flags() returns both local and inherited flags
	fc := extractFlagConfig(cmd.Flags())

	if err := fc.ValidateFlags(); err != nil {
		return nil, err
	}

	return fc.ToConfig()
}

// ConfigFileFlag returns the --config value when it was given.
func ConfigFileFlag(cmd *cobra.Command) string {
	if cmd == nil || !cmd.Flags().Changed("config") {
		return ""
	}
	path, _ := cmd.Flags().GetString("config")
	return path
}

// extractFlagConfig extracts changed flag values from a flag set into FlagConfig
func extractFlagConfig(flags *pflag.FlagSet) *FlagConfig {
	fc := &FlagConfig{}

	str := func(name string, target *string) {
		if flags.Changed(name) {
			*target, _ = flags.GetString(name)
		}
	}
	slice := func(name string, target *[]string) {
		if flags.Changed(name) {
			*target, _ = flags.GetStringSlice(name)
		}
	}

	str("config", &fc.ConfigFile)
	str("workspace", &fc.Workspace)
	str("configuration", &fc.ConfigurationFile)
	str("encoding", &fc.Encoding)
	str("report", &fc.ReportPath)
	str("build-file", &fc.BuildFile)
	str("template", &fc.Template)
	str("changed-since", &fc.ChangedSince)
	str("repo", &fc.RepoDir)
	str("ant", &fc.AntBinary)
	str("ant-target", &fc.AntTarget)
	str("jvm-options", &fc.JVMOptions)
	str("pmd-lib", &fc.AntLibDir)
	str("ant-min-version", &fc.AntMinVersion)
	str("log-file", &fc.LogFile)
	slice("exclude", &fc.Excludes)
	slice("exclude-content", &fc.ContainsRegexpExcludes)

	if flags.Changed("run-cpd") {
		fc.RunCPD, _ = flags.GetBool("run-cpd")
		fc.runCPDSet = true
	}
	if flags.Changed("minimum-tokens") {
		fc.MinimumTokenCount, _ = flags.GetInt("minimum-tokens")
		fc.minimumTokenCountSet = true
	}
	if flags.Changed("timeout") {
		fc.Timeout, _ = flags.GetDuration("timeout")
		fc.timeoutSet = true
	}
	if flags.Changed("verbose") {
		fc.Verbose, _ = flags.GetBool("verbose")
		fc.verboseSet = true
	}
	if flags.Changed("quiet") {
		fc.Quiet, _ = flags.GetBool("quiet")
		fc.quietSet = true
	}
	if flags.Changed("log-level") {
		fc.LogLevel, _ = flags.GetString("log-level")
		fc.logLevelSet = true
	}
	if flags.Changed("log-format") {
		fc.LogFormat, _ = flags.GetString("log-format")
		fc.logFormatSet = true
	}

	return fc
}
