package rules

import (
	"fmt"
	"strings"

	"github.com/temirov/monolint/internal/depindex"
	"github.com/temirov/monolint/internal/manifest"
	"github.com/temirov/monolint/internal/workspace"
)

const (
	typesScopePrefixConstant = "@types/"

	emptyDependencyBlockMessageTemplateConstant = "%s block is empty"
	emptyDependencyBlockWhyConstant             = "Empty dependency blocks are useless and should be removed."

	unorderedDependenciesMessageTemplateConstant = "%s keys are not ordered alphabetically"
	unorderedDependenciesWhyConstant             = "Ordered dependency blocks prevent merge conflicts and keep diffs readable."

	typesInDependenciesMessageTemplateConstant = `@types packages found in "dependencies": %s`
	typesInDependenciesWhyConstant             = "Type definition packages are development-time only and belong in devDependencies."
)

func checkEmptyDependencies(resolved *workspace.Workspace, _ *depindex.Index, matcher *IgnoreMatcher) []Issue {
	if matcher.RuleIgnored(NameEmptyDependencies) {
		return nil
	}

	var issues []Issue
	for _, member := range allPackages(resolved) {
		if matcher.PackageIgnored(member) {
			continue
		}
		for _, kind := range manifest.DependencyKinds {
			block, exists := member.Manifest.DependencyBlock(kind)
			if !exists || block.Len() > 0 {
				continue
			}
			issues = append(issues, Issue{
				Rule:        NameEmptyDependencies,
				Severity:    SeverityError,
				PackagePath: member.RelativePath,
				Message:     fmt.Sprintf(emptyDependencyBlockMessageTemplateConstant, kind),
				Why:         emptyDependencyBlockWhyConstant,
				Fixable:     true,
				Kind:        kind,
			})
		}
	}
	return issues
}

func checkUnorderedDependencies(resolved *workspace.Workspace, _ *depindex.Index, matcher *IgnoreMatcher) []Issue {
	if matcher.RuleIgnored(NameUnorderedDependencies) {
		return nil
	}

	var issues []Issue
	for _, member := range allPackages(resolved) {
		if matcher.PackageIgnored(member) {
			continue
		}
		for _, kind := range manifest.DependencyKinds {
			block, exists := member.Manifest.DependencyBlock(kind)
			if !exists || block.IsSortedByName() {
				continue
			}
			issues = append(issues, Issue{
				Rule:        NameUnorderedDependencies,
				Severity:    SeverityError,
				PackagePath: member.RelativePath,
				Message:     fmt.Sprintf(unorderedDependenciesMessageTemplateConstant, kind),
				Why:         unorderedDependenciesWhyConstant,
				Fixable:     true,
				Kind:        kind,
			})
		}
	}
	return issues
}

func checkTypesInDependencies(resolved *workspace.Workspace, _ *depindex.Index, matcher *IgnoreMatcher) []Issue {
	if matcher.RuleIgnored(NameTypesInDependencies) {
		return nil
	}

	var issues []Issue
	for _, member := range allPackages(resolved) {
		if matcher.PackageIgnored(member) {
			continue
		}
		if !member.Manifest.IsPrivate() {
			continue
		}
		block, exists := member.Manifest.DependencyBlock(manifest.KindDependencies)
		if !exists {
			continue
		}

		var typePackages []string
		for _, field := range block.Fields() {
			if !strings.HasPrefix(field.Name, typesScopePrefixConstant) {
				continue
			}
			if matcher.DependencyIgnored(field.Name) {
				continue
			}
			typePackages = append(typePackages, field.Name)
		}
		if len(typePackages) == 0 {
			continue
		}

		issues = append(issues, Issue{
			Rule:         NameTypesInDependencies,
			Severity:     SeverityError,
			PackagePath:  member.RelativePath,
			Message:      fmt.Sprintf(typesInDependenciesMessageTemplateConstant, strings.Join(typePackages, ", ")),
			Why:          typesInDependenciesWhyConstant,
			Fixable:      true,
			Dependencies: typePackages,
			Kind:         manifest.KindDependencies,
		})
	}
	return issues
}
