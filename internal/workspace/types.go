package workspace

import "github.com/temirov/monolint/internal/manifest"

// RootPackagePath labels the workspace root in issue reports.
const RootPackagePath = "."

// Package is one workspace member. Manifest is nil when a workspace glob
// matched the directory but no manifest was found there.
type Package struct {
	RelativePath string
	Manifest     *manifest.Manifest
}

// Name returns the package's declared name, falling back to its path.
func (member Package) Name() string {
	if member.Manifest != nil {
		if declaredName := member.Manifest.Name(); len(declaredName) > 0 {
			return declaredName
		}
	}
	return member.RelativePath
}

// ParseFailure records a member manifest that could not be parsed. The failure
// is fatal for that package only.
type ParseFailure struct {
	RelativePath string
	Err          error
}

// Workspace is the resolved set of member packages plus the classification of
// every glob expansion outcome. It is immutable once resolved; only the
// resolution engine mutates the manifests it references.
type Workspace struct {
	RootPath            string
	Root                *manifest.Manifest
	Packages            []Package
	UnmatchedGlobs      []string
	MissingManifestDirs []string
	ParseFailures       []ParseFailure
}

// PackageByPath returns the member declared at the provided relative path.
func (resolved *Workspace) PackageByPath(relativePath string) (Package, bool) {
	if relativePath == RootPackagePath {
		return Package{RelativePath: RootPackagePath, Manifest: resolved.Root}, true
	}
	for _, member := range resolved.Packages {
		if member.RelativePath == relativePath {
			return member, true
		}
	}
	return Package{}, false
}

// AllManifests returns the root manifest followed by every loaded member
// manifest in workspace order.
func (resolved *Workspace) AllManifests() []*manifest.Manifest {
	manifests := []*manifest.Manifest{resolved.Root}
	for _, member := range resolved.Packages {
		if member.Manifest != nil {
			manifests = append(manifests, member.Manifest)
		}
	}
	return manifests
}
