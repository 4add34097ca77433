package rules

import (
	"github.com/temirov/monolint/internal/depindex"
	"github.com/temirov/monolint/internal/manifest"
	"github.com/temirov/monolint/internal/workspace"
)

const (
	rootPrivateFieldMessageConstant = `root manifest does not set "private": true`
	rootPrivateFieldWhyConstant     = "A private root package prevents accidental publication of the workspace."

	rootPackageManagerMessageConstant = `root manifest has no "packageManager" field`
	rootPackageManagerWhyConstant     = "The packageManager field pins the package manager and version used across the workspace."

	rootDependenciesMessageConstant = `root manifest declares packages in "dependencies"`
	rootDependenciesWhyConstant     = "Dependencies of a private root package belong in devDependencies."
)

func checkRootPackagePrivateField(resolved *workspace.Workspace, _ *depindex.Index, matcher *IgnoreMatcher) []Issue {
	if matcher.RuleIgnored(NameRootPackagePrivateField) {
		return nil
	}
	if resolved.Root.IsPrivate() {
		return nil
	}
	return []Issue{{
		Rule:        NameRootPackagePrivateField,
		Severity:    SeverityError,
		PackagePath: workspace.RootPackagePath,
		Message:     rootPrivateFieldMessageConstant,
		Why:         rootPrivateFieldWhyConstant,
		Fixable:     true,
	}}
}

func checkRootPackageManagerField(resolved *workspace.Workspace, _ *depindex.Index, matcher *IgnoreMatcher) []Issue {
	if matcher.RuleIgnored(NameRootPackageManagerField) {
		return nil
	}
	if _, declared := resolved.Root.PackageManagerValue(); declared {
		return nil
	}
	return []Issue{{
		Rule:        NameRootPackageManagerField,
		Severity:    SeverityError,
		PackagePath: workspace.RootPackagePath,
		Message:     rootPackageManagerMessageConstant,
		Why:         rootPackageManagerWhyConstant,
		Fixable:     true,
	}}
}

func checkRootPackageDependencies(resolved *workspace.Workspace, _ *depindex.Index, matcher *IgnoreMatcher) []Issue {
	if matcher.RuleIgnored(NameRootPackageDependencies) {
		return nil
	}
	dependenciesBlock, exists := resolved.Root.DependencyBlock(manifest.KindDependencies)
	if !exists || dependenciesBlock.Len() == 0 {
		return nil
	}
	return []Issue{{
		Rule:        NameRootPackageDependencies,
		Severity:    SeverityWarning,
		PackagePath: workspace.RootPackagePath,
		Message:     rootDependenciesMessageConstant,
		Why:         rootDependenciesWhyConstant,
	}}
}
