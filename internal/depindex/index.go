package depindex

import (
	"github.com/temirov/monolint/internal/manifest"
	"github.com/temirov/monolint/internal/workspace"
)

// Occurrence records one declaration of a dependency by a workspace package.
type Occurrence struct {
	PackagePath string
	PackageName string
	Kind        manifest.DependencyKind
	Version     string
}

// VersionGroup collects every declaration of one dependency name across the
// workspace. A group with more than one distinct version is a violation
// candidate.
type VersionGroup struct {
	Name        string
	Occurrences []Occurrence
}

// DistinctVersions returns the distinct constraint strings in order of first
// appearance.
func (group *VersionGroup) DistinctVersions() []string {
	seen := map[string]struct{}{}
	var versions []string
	for _, occurrence := range group.Occurrences {
		if _, alreadySeen := seen[occurrence.Version]; alreadySeen {
			continue
		}
		seen[occurrence.Version] = struct{}{}
		versions = append(versions, occurrence.Version)
	}
	return versions
}

// Declaration is one entry of a package's merged dependency view.
type Declaration struct {
	Name    string
	Version string
	Kind    manifest.DependencyKind
}

// Index is the cross-package dependency substrate queried by rules. It is
// immutable once built.
type Index struct {
	groups     map[string]*VersionGroup
	names      []string
	perPackage map[string][]Declaration
}

// Build folds every loaded manifest (root included) into a new index. Only the
// dependencies and devDependencies blocks feed the cross-package mapping.
func Build(resolved *workspace.Workspace) *Index {
	index := &Index{
		groups:     map[string]*VersionGroup{},
		perPackage: map[string][]Declaration{},
	}

	members := make([]workspace.Package, 0, len(resolved.Packages)+1)
	members = append(members, workspace.Package{RelativePath: workspace.RootPackagePath, Manifest: resolved.Root})
	members = append(members, resolved.Packages...)

	for _, member := range members {
		if member.Manifest == nil {
			continue
		}
		for _, kind := range manifest.IndexedDependencyKinds {
			block, exists := member.Manifest.DependencyBlock(kind)
			if !exists {
				continue
			}
			for _, field := range block.Fields() {
				version, isString := field.Value.(string)
				if !isString {
					continue
				}
				index.record(member, kind, field.Name, version)
			}
		}
	}

	return index
}

func (index *Index) record(member workspace.Package, kind manifest.DependencyKind, dependencyName string, version string) {
	group, exists := index.groups[dependencyName]
	if !exists {
		group = &VersionGroup{Name: dependencyName}
		index.groups[dependencyName] = group
		index.names = append(index.names, dependencyName)
	}

	group.Occurrences = append(group.Occurrences, Occurrence{
		PackagePath: member.RelativePath,
		PackageName: member.Name(),
		Kind:        kind,
		Version:     version,
	})

	index.perPackage[member.RelativePath] = append(index.perPackage[member.RelativePath], Declaration{
		Name:    dependencyName,
		Version: version,
		Kind:    kind,
	})
}

// Names returns every indexed dependency name in first-encountered order.
func (index *Index) Names() []string {
	duplicated := make([]string, len(index.names))
	copy(duplicated, index.names)
	return duplicated
}

// Group returns the version group for the provided dependency name.
func (index *Index) Group(dependencyName string) (*VersionGroup, bool) {
	group, exists := index.groups[dependencyName]
	return group, exists
}

// PackageDeclarations returns the merged dependency view of one package in
// declaration order (dependencies first, then devDependencies).
func (index *Index) PackageDeclarations(packagePath string) []Declaration {
	declarations := index.perPackage[packagePath]
	duplicated := make([]Declaration, len(declarations))
	copy(duplicated, declarations)
	return duplicated
}
