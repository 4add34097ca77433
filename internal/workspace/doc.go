// Package workspace resolves the authoritative set of member packages for a
// monorepo: it reads the root manifest's workspace globs (or the pnpm
// workspace file), expands them against the filesystem, and classifies globs
// that match nothing and directories that lack a manifest.
package workspace
