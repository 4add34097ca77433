// Package manifest parses package manifests into order-preserving documents,
// captures their formatting metadata, and serializes them back with minimal
// diffs. Field order, indentation unit, and newline convention survive a
// parse/serialize round trip unless a mutation explicitly reorders fields.
package manifest
