// Package rules implements the fixed registry of workspace consistency
// checks. Each rule is a pure function over the resolved workspace and the
// dependency index; rules consult the configured ignore lists before emitting
// issues and never mutate shared state.
package rules
