package check

import "strings"

const (
	ciEnvironmentVariableNameConstant = "CI"
	ciDisabledValueConstant           = "false"
)

// EnvironmentLookup reads one environment variable.
type EnvironmentLookup func(key string) (string, bool)

// IsCIEnvironment reports whether the process runs under a CI system. A CI
// variable set to an empty string or "false" does not count.
func IsCIEnvironment(lookup EnvironmentLookup) bool {
	if lookup == nil {
		return false
	}
	value, present := lookup(ciEnvironmentVariableNameConstant)
	if !present {
		return false
	}
	trimmed := strings.TrimSpace(value)
	return len(trimmed) > 0 && !strings.EqualFold(trimmed, ciDisabledValueConstant)
}
