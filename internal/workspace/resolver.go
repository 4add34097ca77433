package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/temirov/monolint/internal/manifest"
)

const (
	pnpmWorkspaceFileNameConstant        = "pnpm-workspace.yaml"
	globExclusionPrefixConstant          = "!"
	nodeModulesDirectoryNameConstant     = "node_modules"
	rootManifestLoadErrorTemplate        = "unable to load root manifest in %s: %w"
	workspaceFileReadErrorTemplate       = "unable to read %s: %w"
	workspaceFileParseErrorTemplate      = "unable to parse %s: %w"
	workspaceGlobsMissingErrorTemplate   = "no `workspaces` field in the root manifest and no %s found in %s"
	globExpansionErrorTemplate           = "unable to expand workspace glob %q: %w"
	workspaceResolvedMessageConstant     = "workspace resolved"
	logFieldRootPathConstant             = "root_path"
	logFieldPackageCountConstant         = "package_count"
	logFieldUnmatchedGlobCountConstant   = "unmatched_glob_count"
	logFieldMissingManifestCountConstant = "missing_manifest_count"
)

type pnpmWorkspaceFile struct {
	Packages []string `yaml:"packages"`
}

// Resolver expands workspace globs into the set of member packages.
type Resolver struct {
	logger *zap.Logger
}

// NewResolver constructs a workspace resolver with the provided logger.
func NewResolver(logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{logger: logger}
}

// Resolve loads the root manifest, reads its workspace declaration (or the
// pnpm workspace file), and expands every glob in declaration order. A
// missing or unreadable root manifest aborts the run; member failures are
// collected on the returned workspace.
func (resolver *Resolver) Resolve(rootPath string) (*Workspace, error) {
	rootManifest, rootError := manifest.Load(filepath.Join(rootPath, manifest.FileName))
	if rootError != nil {
		return nil, fmt.Errorf(rootManifestLoadErrorTemplate, rootPath, rootError)
	}

	globs, globsError := resolver.workspaceGlobs(rootPath, rootManifest)
	if globsError != nil {
		return nil, globsError
	}

	resolved := &Workspace{RootPath: rootPath, Root: rootManifest}
	inclusionGlobs, exclusionGlobs := partitionGlobs(globs)
	seenDirectories := map[string]struct{}{}

	for _, workspaceGlob := range inclusionGlobs {
		matchedDirectories, expansionError := expandGlob(rootPath, workspaceGlob)
		if expansionError != nil {
			return nil, fmt.Errorf(globExpansionErrorTemplate, workspaceGlob, expansionError)
		}

		matchedAny := false
		for _, relativeDirectory := range matchedDirectories {
			if isExcluded(relativeDirectory, exclusionGlobs) {
				continue
			}
			matchedAny = true
			if _, alreadySeen := seenDirectories[relativeDirectory]; alreadySeen {
				continue
			}
			seenDirectories[relativeDirectory] = struct{}{}
			resolver.classifyDirectory(resolved, relativeDirectory)
		}

		if !matchedAny {
			resolved.UnmatchedGlobs = append(resolved.UnmatchedGlobs, workspaceGlob)
		}
	}

	resolver.logger.Debug(
		workspaceResolvedMessageConstant,
		zap.String(logFieldRootPathConstant, rootPath),
		zap.Int(logFieldPackageCountConstant, len(resolved.Packages)),
		zap.Int(logFieldUnmatchedGlobCountConstant, len(resolved.UnmatchedGlobs)),
		zap.Int(logFieldMissingManifestCountConstant, len(resolved.MissingManifestDirs)),
	)

	return resolved, nil
}

func (resolver *Resolver) workspaceGlobs(rootPath string, rootManifest *manifest.Manifest) ([]string, error) {
	if declaredGlobs, declared := rootManifest.WorkspaceGlobs(); declared {
		return declaredGlobs, nil
	}

	workspaceFilePath := filepath.Join(rootPath, pnpmWorkspaceFileNameConstant)
	workspaceFileData, readError := os.ReadFile(workspaceFilePath)
	if readError != nil {
		if os.IsNotExist(readError) {
			return nil, fmt.Errorf(workspaceGlobsMissingErrorTemplate, pnpmWorkspaceFileNameConstant, rootPath)
		}
		return nil, fmt.Errorf(workspaceFileReadErrorTemplate, workspaceFilePath, readError)
	}

	var workspaceFile pnpmWorkspaceFile
	if parseError := yaml.Unmarshal(workspaceFileData, &workspaceFile); parseError != nil {
		return nil, fmt.Errorf(workspaceFileParseErrorTemplate, workspaceFilePath, parseError)
	}

	return workspaceFile.Packages, nil
}

func (resolver *Resolver) classifyDirectory(resolved *Workspace, relativeDirectory string) {
	memberManifestPath := filepath.Join(resolved.RootPath, filepath.FromSlash(relativeDirectory), manifest.FileName)

	if _, statError := os.Stat(memberManifestPath); statError != nil {
		resolved.MissingManifestDirs = append(resolved.MissingManifestDirs, relativeDirectory)
		return
	}

	memberManifest, loadError := manifest.Load(memberManifestPath)
	if loadError != nil {
		resolved.ParseFailures = append(resolved.ParseFailures, ParseFailure{RelativePath: relativeDirectory, Err: loadError})
		return
	}

	resolved.Packages = append(resolved.Packages, Package{RelativePath: relativeDirectory, Manifest: memberManifest})
}

func partitionGlobs(globs []string) ([]string, []string) {
	inclusions := make([]string, 0, len(globs))
	var exclusions []string
	for _, workspaceGlob := range globs {
		if strings.HasPrefix(workspaceGlob, globExclusionPrefixConstant) {
			exclusions = append(exclusions, strings.TrimPrefix(workspaceGlob, globExclusionPrefixConstant))
			continue
		}
		inclusions = append(inclusions, workspaceGlob)
	}
	return inclusions, exclusions
}

func isExcluded(relativeDirectory string, exclusionGlobs []string) bool {
	for _, exclusionGlob := range exclusionGlobs {
		if matched, matchError := doublestar.Match(exclusionGlob, relativeDirectory); matchError == nil && matched {
			return true
		}
	}
	return false
}

func expandGlob(rootPath string, workspaceGlob string) ([]string, error) {
	rootFS := os.DirFS(rootPath)

	matches, matchError := doublestar.Glob(rootFS, workspaceGlob)
	if matchError != nil {
		return nil, matchError
	}

	directories := make([]string, 0, len(matches))
	for _, match := range matches {
		if strings.Contains(match, nodeModulesDirectoryNameConstant) {
			continue
		}
		matchInfo, statError := fs.Stat(rootFS, match)
		if statError != nil || !matchInfo.IsDir() {
			continue
		}
		directories = append(directories, match)
	}

	sort.Strings(directories)
	return directories, nil
}
