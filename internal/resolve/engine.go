// Package resolve applies deterministic and user-selected fixes to the
// manifests behind fixable issues and writes the mutated documents back with
// their original formatting.
package resolve

import (
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/temirov/monolint/internal/manifest"
	"github.com/temirov/monolint/internal/rules"
	"github.com/temirov/monolint/internal/workspace"
)

const (
	manifestFilePermissionsConstant = 0o644

	selectionSkippedLogMessageConstant = "skipping fix, version selection aborted"
	fixAppliedLogMessageConstant       = "applied fix"
	ruleLogFieldNameConstant           = "rule"
	packageLogFieldNameConstant        = "package"
	dependencyLogFieldNameConstant     = "dependency"
)

// Outcome reports how the engine disposed of the issues it was handed.
type Outcome struct {
	Fixed   []rules.Issue
	Unfixed []rules.Issue
}

// Engine rewrites manifests to resolve fixable issues.
type Engine struct {
	logger              *zap.Logger
	selector            VersionSelector
	packageManagerLabel string
}

// NewEngine constructs a resolution engine. The package manager label is the
// name@version value inserted when the root manifest lacks one.
func NewEngine(logger *zap.Logger, selector VersionSelector, packageManagerLabel string) *Engine {
	return &Engine{logger: logger, selector: selector, packageManagerLabel: packageManagerLabel}
}

// Apply attempts to fix every fixable issue. Non-fixable issues and issues
// whose version selection was aborted are returned as unfixed. Issues needing
// a version choice are processed in ascending dependency name order so
// interactive prompts arrive alphabetically.
func (engine *Engine) Apply(resolved *workspace.Workspace, issues []rules.Issue) Outcome {
	var outcome Outcome

	deterministic := make([]rules.Issue, 0, len(issues))
	var selections []rules.Issue
	for _, issue := range issues {
		if !issue.Fixable {
			outcome.Unfixed = append(outcome.Unfixed, issue)
			continue
		}
		switch issue.Rule {
		case rules.NameMultipleDependencyVersions, rules.NameUnsyncSimilarDependencies:
			selections = append(selections, issue)
		default:
			deterministic = append(deterministic, issue)
		}
	}

	sort.SliceStable(selections, func(firstIndex int, secondIndex int) bool {
		return selectionSortKey(selections[firstIndex]) < selectionSortKey(selections[secondIndex])
	})

	for _, issue := range deterministic {
		if engine.applyDeterministicFix(resolved, issue) {
			engine.logger.Debug(fixAppliedLogMessageConstant,
				zap.String(ruleLogFieldNameConstant, string(issue.Rule)),
				zap.String(packageLogFieldNameConstant, issue.PackagePath),
			)
			outcome.Fixed = append(outcome.Fixed, issue)
			continue
		}
		outcome.Unfixed = append(outcome.Unfixed, issue)
	}

	for _, issue := range selections {
		if engine.applySelectionFix(resolved, issue) {
			outcome.Fixed = append(outcome.Fixed, issue)
			continue
		}
		outcome.Unfixed = append(outcome.Unfixed, issue)
	}

	return outcome
}

func selectionSortKey(issue rules.Issue) string {
	if len(issue.Dependency) > 0 {
		return issue.Dependency
	}
	if len(issue.Dependencies) > 0 {
		return issue.Dependencies[0]
	}
	return issue.PackagePath
}

func (engine *Engine) applyDeterministicFix(resolved *workspace.Workspace, issue rules.Issue) bool {
	member, found := resolved.PackageByPath(issue.PackagePath)
	if !found || member.Manifest == nil {
		return false
	}

	switch issue.Rule {
	case rules.NameUnorderedDependencies:
		member.Manifest.SortDependencyBlock(issue.Kind)
		return true
	case rules.NameEmptyDependencies:
		return member.Manifest.RemoveDependencyBlock(issue.Kind)
	case rules.NameTypesInDependencies:
		moved := false
		for _, dependencyName := range issue.Dependencies {
			if member.Manifest.MoveDependency(manifest.KindDependencies, manifest.KindDevDependencies, dependencyName) {
				moved = true
			}
		}
		return moved
	case rules.NameRootPackagePrivateField:
		resolved.Root.SetPrivate(true)
		return true
	case rules.NameRootPackageManagerField:
		resolved.Root.SetPackageManager(engine.packageManagerLabel)
		return true
	default:
		return false
	}
}

func (engine *Engine) applySelectionFix(resolved *workspace.Workspace, issue rules.Issue) bool {
	selectedVersion, selectionError := engine.selector.SelectVersion(selectionSortKey(issue), issue.Versions)
	if selectionError != nil {
		engine.logger.Warn(selectionSkippedLogMessageConstant,
			zap.String(ruleLogFieldNameConstant, string(issue.Rule)),
			zap.String(dependencyLogFieldNameConstant, selectionSortKey(issue)),
		)
		return false
	}

	switch issue.Rule {
	case rules.NameMultipleDependencyVersions:
		return engine.rewriteVersionEverywhere(resolved, issue.Dependency, selectedVersion)
	case rules.NameUnsyncSimilarDependencies:
		member, found := resolved.PackageByPath(issue.PackagePath)
		if !found || member.Manifest == nil {
			return false
		}
		rewritten := false
		for _, dependencyName := range issue.Dependencies {
			for _, kind := range manifest.IndexedDependencyKinds {
				if member.Manifest.SetDependencyVersion(kind, dependencyName, selectedVersion) {
					rewritten = true
				}
			}
		}
		return rewritten
	default:
		return false
	}
}

// rewriteVersionEverywhere pins one dependency to the selected version in
// every manifest that declares it.
func (engine *Engine) rewriteVersionEverywhere(resolved *workspace.Workspace, dependencyName string, version string) bool {
	rewritten := false
	members := append([]workspace.Package{{RelativePath: workspace.RootPackagePath, Manifest: resolved.Root}}, resolved.Packages...)
	for _, member := range members {
		if member.Manifest == nil {
			continue
		}
		for _, kind := range manifest.IndexedDependencyKinds {
			if member.Manifest.SetDependencyVersion(kind, dependencyName, version) {
				rewritten = true
			}
		}
	}
	return rewritten
}

// WriteDirtyManifests serializes every mutated manifest back to disk with its
// captured indentation and newline style. It returns the number of files
// written.
func WriteDirtyManifests(resolved *workspace.Workspace) (int, error) {
	written := 0
	for _, currentManifest := range resolved.AllManifests() {
		if !currentManifest.Dirty() {
			continue
		}
		serialized, serializeError := currentManifest.Serialize()
		if serializeError != nil {
			return written, serializeError
		}
		if writeError := os.WriteFile(currentManifest.Path, serialized, manifestFilePermissionsConstant); writeError != nil {
			return written, writeError
		}
		written++
	}
	return written, nil
}
