package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/temirov/monolint/internal/depindex"
	"github.com/temirov/monolint/internal/semversion"
	"github.com/temirov/monolint/internal/workspace"
)

const (
	multipleVersionsMessageTemplateConstant = "%s is declared with multiple versions: %s"
	multipleVersionsWhyTemplateConstant     = "A single version of %s keeps installs deterministic across the workspace."

	unsyncSimilarMessageTemplateConstant = "%s packages are out of sync: %s"
	unsyncSimilarWhyTemplateConstant     = "%s dependencies aren't synced."

	versionListSeparatorConstant     = ", "
	declarationEntryTemplateConstant = "%s@%s"
)

func checkMultipleDependencyVersions(resolved *workspace.Workspace, index *depindex.Index, matcher *IgnoreMatcher) []Issue {
	if matcher.RuleIgnored(NameMultipleDependencyVersions) {
		return nil
	}

	dependencyNames := index.Names()
	sort.Strings(dependencyNames)

	var issues []Issue
	for _, dependencyName := range dependencyNames {
		if matcher.DependencyIgnored(dependencyName) {
			continue
		}
		group, exists := index.Group(dependencyName)
		if !exists {
			continue
		}

		retained := retainedVersions(resolved, matcher, dependencyName, group)
		if len(retained) < 2 {
			continue
		}

		orderedVersions := semversion.SortAscending(retained)
		issues = append(issues, Issue{
			Rule:        NameMultipleDependencyVersions,
			Severity:    SeverityError,
			PackagePath: workspace.RootPackagePath,
			Message:     fmt.Sprintf(multipleVersionsMessageTemplateConstant, dependencyName, strings.Join(orderedVersions, versionListSeparatorConstant)),
			Why:         fmt.Sprintf(multipleVersionsWhyTemplateConstant, dependencyName),
			Fixable:     true,
			Dependency:  dependencyName,
			Versions:    orderedVersions,
		})
	}
	return issues
}

// retainedVersions returns the distinct versions of one dependency after
// dropping occurrences from ignored packages and versions suppressed by a
// name@version ignore entry.
func retainedVersions(resolved *workspace.Workspace, matcher *IgnoreMatcher, dependencyName string, group *depindex.VersionGroup) []string {
	seen := map[string]struct{}{}
	var versions []string
	for _, occurrence := range group.Occurrences {
		if member, found := resolved.PackageByPath(occurrence.PackagePath); found && matcher.PackageIgnored(member) {
			continue
		}
		if matcher.DependencyVersionIgnored(dependencyName, occurrence.Version) {
			continue
		}
		if _, alreadySeen := seen[occurrence.Version]; alreadySeen {
			continue
		}
		seen[occurrence.Version] = struct{}{}
		versions = append(versions, occurrence.Version)
	}
	return versions
}

func checkUnsyncSimilarDependencies(resolved *workspace.Workspace, index *depindex.Index, matcher *IgnoreMatcher) []Issue {
	if matcher.RuleIgnored(NameUnsyncSimilarDependencies) {
		return nil
	}

	var issues []Issue
	for _, member := range allPackages(resolved) {
		if matcher.PackageIgnored(member) {
			continue
		}
		declarations := index.PackageDeclarations(member.RelativePath)
		if len(declarations) == 0 {
			continue
		}

		for _, family := range SimilarDependencyFamilies() {
			var memberNames []string
			var memberEntries []string
			distinctVersions := map[string]struct{}{}
			for _, declaration := range declarations {
				if !family.Matches(declaration.Name) {
					continue
				}
				if matcher.DependencyIgnored(declaration.Name) {
					continue
				}
				memberNames = append(memberNames, declaration.Name)
				memberEntries = append(memberEntries, fmt.Sprintf(declarationEntryTemplateConstant, declaration.Name, declaration.Version))
				distinctVersions[declaration.Version] = struct{}{}
			}
			if len(memberNames) < 2 || len(distinctVersions) < 2 {
				continue
			}

			sort.Strings(memberNames)
			sort.Strings(memberEntries)
			versions := make([]string, 0, len(distinctVersions))
			for version := range distinctVersions {
				versions = append(versions, version)
			}

			issues = append(issues, Issue{
				Rule:         NameUnsyncSimilarDependencies,
				Severity:     SeverityError,
				PackagePath:  member.RelativePath,
				Message:      fmt.Sprintf(unsyncSimilarMessageTemplateConstant, family.Label, strings.Join(memberEntries, versionListSeparatorConstant)),
				Why:          fmt.Sprintf(unsyncSimilarWhyTemplateConstant, family.Label),
				Fixable:      true,
				Dependencies: memberNames,
				Versions:     semversion.SortAscending(versions),
			})
		}
	}
	return issues
}
