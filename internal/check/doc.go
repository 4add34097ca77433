// Package check wires the full monolint pipeline behind one cobra command:
// workspace resolution, rule evaluation, optional autofix with a single
// post-fix install, plain-text reporting, and the exit decision.
package check
