package executor

import (
	"fmt"
	"sort"
	"time"
)

// DefaultTimeout bounds a task run when none is configured.
const DefaultTimeout = 30 * time.Minute

// PrepareEnv merges base and custom environment maps into a sorted string slice.
func PrepareEnv(base, custom map[string]string) []string {
	result := make(map[string]string)
	for k, v := range base {
		result[k] = v
	}
	for k, v := range custom {
		result[k] = v
	}

	env := make([]string, 0, len(result))
	for k, v := range result {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(env)
	return env
}

// ValidateTimeout returns DefaultTimeout for zero or negative values.
func ValidateTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return DefaultTimeout
	}
	return timeout
}

// propertyArgs renders Ant -D definitions in key order.
func propertyArgs(props map[string]string) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		if k == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]string, 0, len(keys))
	for _, k := range keys {
		args = append(args, fmt.Sprintf("-D%s=%s", k, props[k]))
	}
	return args
}
