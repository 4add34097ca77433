package rules

import (
	"fmt"

	"github.com/temirov/monolint/internal/depindex"
	"github.com/temirov/monolint/internal/manifest"
	"github.com/temirov/monolint/internal/workspace"
)

const (
	nonExistantPackagesMessageTemplateConstant = "workspace path %q matches no package"
	nonExistantPackagesWhyConstant             = "All paths defined in the workspace should match at least one package."

	packagesWithoutManifestMessageTemplateConstant = "%s does not contain a %s file"
	packagesWithoutManifestWhyConstant             = "Directories matched by a workspace glob are expected to be packages with their own manifest."
)

func checkNonExistantPackages(resolved *workspace.Workspace, _ *depindex.Index, matcher *IgnoreMatcher) []Issue {
	if matcher.RuleIgnored(NameNonExistantPackages) {
		return nil
	}

	var issues []Issue
	for _, unmatchedGlob := range resolved.UnmatchedGlobs {
		issues = append(issues, Issue{
			Rule:        NameNonExistantPackages,
			Severity:    SeverityWarning,
			PackagePath: workspace.RootPackagePath,
			Message:     fmt.Sprintf(nonExistantPackagesMessageTemplateConstant, unmatchedGlob),
			Why:         nonExistantPackagesWhyConstant,
		})
	}
	return issues
}

func checkPackagesWithoutPackageJSON(resolved *workspace.Workspace, _ *depindex.Index, matcher *IgnoreMatcher) []Issue {
	if matcher.RuleIgnored(NamePackagesWithoutPackageJSON) {
		return nil
	}

	var issues []Issue
	for _, directoryPath := range resolved.MissingManifestDirs {
		if matcher.PackageIgnored(workspace.Package{RelativePath: directoryPath}) {
			continue
		}
		issues = append(issues, Issue{
			Rule:        NamePackagesWithoutPackageJSON,
			Severity:    SeverityWarning,
			PackagePath: directoryPath,
			Message:     fmt.Sprintf(packagesWithoutManifestMessageTemplateConstant, directoryPath, manifest.FileName),
			Why:         packagesWithoutManifestWhyConstant,
		})
	}
	return issues
}
