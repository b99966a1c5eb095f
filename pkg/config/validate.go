package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a configuration validation failure.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates multiple validation failures.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("config validation errors:\n  - %s", strings.Join(msgs, "\n  - "))
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their yaml names so messages match the config file.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate inspects the configuration for missing or invalid fields.
// Struct tag rules run first, followed by cross-field checks.
func Validate(cfg *Config) error {
	if cfg == nil {
		return &ValidationError{
			Field:   "config",
			Value:   nil,
			Message: "configuration cannot be nil",
		}
	}

	var errs ValidationErrors

	if err := structValidator.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			errs = append(errs, ValidationError{
				Field:   fieldPath(fe.Namespace()),
				Value:   fe.Value(),
				Message: tagMessage(fe),
			})
		}
	}

	errs = append(errs, validateCrossField(cfg)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateCrossField(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg.Logging.Verbose && cfg.Logging.Quiet {
		errs = append(errs, ValidationError{
			Field:   "logging.verbose",
			Value:   true,
			Message: "verbose and quiet are mutually exclusive",
		})
	}

	if cfg.Ant.Timeout < 0 {
		errs = append(errs, ValidationError{
			Field:   "ant.timeout",
			Value:   cfg.Ant.Timeout,
			Message: "timeout must not be negative",
		})
	}

	for _, expr := range cfg.CPD.ContainsRegexpExcludes {
		if _, err := regexp.Compile(expr); err != nil {
			errs = append(errs, ValidationError{
				Field:   "cpd.contains_regexp_excludes",
				Value:   expr,
				Message: fmt.Sprintf("invalid regular expression: %v", err),
			})
		}
	}

	// The generated build file loads the CPD task from the jars in cpd.dir.
	if cfg.CPD.Enabled && strings.TrimSpace(cfg.Ant.LibDir) == "" {
		errs = append(errs, ValidationError{
			Field:   "ant.lib_dir",
			Value:   cfg.Ant.LibDir,
			Message: "lib_dir is required when cpd is enabled",
		})
	}

	if cfg.CPD.RepoDir != "" && cfg.CPD.ChangedSince == "" {
		errs = append(errs, ValidationError{
			Field:   "cpd.repo_dir",
			Value:   cfg.CPD.RepoDir,
			Message: "repo_dir requires changed_since",
		})
	}

	return errs
}

// fieldPath turns "Config.cpd.minimum_token_count" into "cpd.minimum_token_count".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "value is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
