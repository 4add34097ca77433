package rules

import (
	"github.com/temirov/monolint/internal/depindex"
	"github.com/temirov/monolint/internal/manifest"
	"github.com/temirov/monolint/internal/workspace"
)

// Severity grades an issue.
type Severity string

// Supported severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Name identifies a rule. The rule set is a closed enumeration versioned with
// the tool; adding a rule is a code change.
type Name string

// The complete rule set.
const (
	NameEmptyDependencies          Name = "empty-dependencies"
	NameMultipleDependencyVersions Name = "multiple-dependency-versions"
	NameUnsyncSimilarDependencies  Name = "unsync-similar-dependencies"
	NameNonExistantPackages        Name = "non-existant-packages"
	NamePackagesWithoutPackageJSON Name = "packages-without-package-json"
	NameRootPackageDependencies    Name = "root-package-dependencies"
	NameRootPackageManagerField    Name = "root-package-manager-field"
	NameRootPackagePrivateField    Name = "root-package-private-field"
	NameTypesInDependencies        Name = "types-in-dependencies"
	NameUnorderedDependencies      Name = "unordered-dependencies"
)

// Issue is one rule violation. Issues are immutable value records; they are
// collected and filtered, never mutated.
type Issue struct {
	Rule        Name
	Severity    Severity
	PackagePath string
	Message     string
	Why         string
	Fixable     bool

	// Context consumed by the resolution engine.
	Dependency   string
	Dependencies []string
	Kind         manifest.DependencyKind
	Versions     []string
}

// Rule evaluates the workspace and index against one check.
type Rule func(resolved *workspace.Workspace, index *depindex.Index, matcher *IgnoreMatcher) []Issue

// Registry returns the fixed rule set in evaluation order. Rules are
// independent; the order only determines report ordering.
func Registry() []Rule {
	return []Rule{
		checkRootPackagePrivateField,
		checkRootPackageManagerField,
		checkRootPackageDependencies,
		checkEmptyDependencies,
		checkUnorderedDependencies,
		checkTypesInDependencies,
		checkNonExistantPackages,
		checkPackagesWithoutPackageJSON,
		checkMultipleDependencyVersions,
		checkUnsyncSimilarDependencies,
	}
}

// Evaluate runs every registered rule and returns the collected issues.
func Evaluate(resolved *workspace.Workspace, index *depindex.Index, matcher *IgnoreMatcher) []Issue {
	var issues []Issue
	for _, currentRule := range Registry() {
		issues = append(issues, currentRule(resolved, index, matcher)...)
	}
	return issues
}

// allPackages returns the root pseudo-package followed by every member with a
// loaded manifest.
func allPackages(resolved *workspace.Workspace) []workspace.Package {
	members := make([]workspace.Package, 0, len(resolved.Packages)+1)
	members = append(members, workspace.Package{RelativePath: workspace.RootPackagePath, Manifest: resolved.Root})
	for _, member := range resolved.Packages {
		if member.Manifest != nil {
			members = append(members, member)
		}
	}
	return members
}
