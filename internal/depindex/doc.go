// Package depindex aggregates dependency declarations across every workspace
// manifest into an immutable index: a dependency-name to version-group
// mapping plus a per-package view for same-manifest rules. The index is built
// once, in a single pass, and shared read-only by every rule.
package depindex
