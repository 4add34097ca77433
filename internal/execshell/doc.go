// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution, and defines the abstractions monolint uses to run
// npm, yarn, pnpm, and bun in a testable manner.
package execshell
