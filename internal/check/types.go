package check

import (
	"errors"
	"time"
)

// ErrIssuesFound signals that unresolved issues warrant a non-zero exit code.
var ErrIssuesFound = errors.New("issues found")

// CommandOptions captures the configurable parameters for the check command.
type CommandOptions struct {
	RootPath           string
	Fix                bool
	SelectPolicy       string
	NoInstall          bool
	FailOnWarnings     bool
	IgnoreRules        []string
	IgnorePackages     []string
	IgnoreDependencies []string
}

// Clock abstracts time-dependent functionality for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the standard library.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
