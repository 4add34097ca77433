// Package cli constructs the monolint command-line interface, wiring the
// Cobra root command, configuration loader, and structured logging
// primitives. The check command doubles as the root command so invoking the
// binary runs a workspace check directly.
package cli
