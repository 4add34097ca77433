package resolve_test

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/monolint/internal/depindex"
	"github.com/temirov/monolint/internal/manifest"
	"github.com/temirov/monolint/internal/resolve"
	"github.com/temirov/monolint/internal/rules"
	"github.com/temirov/monolint/internal/workspace"
)

const testPackageManagerLabelConstant = "npm@10.9.2"

func parseTestManifest(testInstance *testing.T, path string, content string) *manifest.Manifest {
	testInstance.Helper()
	parsed, parseError := manifest.Parse(path, []byte(content))
	require.NoError(testInstance, parseError)
	return parsed
}

func buildTestWorkspace(testInstance *testing.T, rootContent string, memberContents map[string]string) *workspace.Workspace {
	testInstance.Helper()
	resolved := &workspace.Workspace{
		Root: parseTestManifest(testInstance, filepath.Join("root", manifest.FileName), rootContent),
	}
	memberPaths := make([]string, 0, len(memberContents))
	for memberPath := range memberContents {
		memberPaths = append(memberPaths, memberPath)
	}
	// Deterministic member order keeps assertions stable.
	for _, memberPath := range sortedCopy(memberPaths) {
		resolved.Packages = append(resolved.Packages, workspace.Package{
			RelativePath: memberPath,
			Manifest:     parseTestManifest(testInstance, filepath.Join(memberPath, manifest.FileName), memberContents[memberPath]),
		})
	}
	return resolved
}

func sortedCopy(values []string) []string {
	duplicated := make([]string, len(values))
	copy(duplicated, values)
	sort.Strings(duplicated)
	return duplicated
}

func evaluateIssues(resolved *workspace.Workspace) []rules.Issue {
	index := depindex.Build(resolved)
	matcher := rules.NewIgnoreMatcher(rules.IgnoreConfiguration{})
	return rules.Evaluate(resolved, index, matcher)
}

func TestPolicySelectorFollowsPolicy(testInstance *testing.T) {
	candidates := []string{"^17.0.2", "18.0.0"}

	highestSelector := resolve.NewPolicySelector(resolve.PolicyHighest)
	highestVersion, highestError := highestSelector.SelectVersion("react", candidates)
	require.NoError(testInstance, highestError)
	require.Equal(testInstance, "18.0.0", highestVersion)

	lowestSelector := resolve.NewPolicySelector(resolve.PolicyLowest)
	lowestVersion, lowestError := lowestSelector.SelectVersion("react", candidates)
	require.NoError(testInstance, lowestError)
	require.Equal(testInstance, "^17.0.2", lowestVersion)
}

func TestParsePolicyRejectsUnknownValues(testInstance *testing.T) {
	_, parseError := resolve.ParsePolicy("newest")
	require.ErrorIs(testInstance, parseError, resolve.ErrUnknownPolicy)

	policy, validError := resolve.ParsePolicy("lowest")
	require.NoError(testInstance, validError)
	require.Equal(testInstance, resolve.PolicyLowest, policy)
}

func TestIOVersionPrompterSelection(testInstance *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectedPick  string
		expectAborted bool
	}{
		{name: "first_option", input: "1\n", expectedPick: "4.17.0"},
		{name: "second_option", input: "2\n", expectedPick: "4.17.21"},
		{name: "empty_input_aborts", input: "\n", expectAborted: true},
		{name: "non_numeric_aborts", input: "latest\n", expectAborted: true},
		{name: "out_of_range_aborts", input: "3\n", expectAborted: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			var output strings.Builder
			prompter := resolve.NewIOVersionPrompter(strings.NewReader(testCase.input), &output)

			selectedVersion, selectionError := prompter.SelectVersion("lodash", []string{"4.17.21", "4.17.0"})

			if testCase.expectAborted {
				require.ErrorIs(testInstance, selectionError, resolve.ErrSelectionAborted)
				return
			}
			require.NoError(testInstance, selectionError)
			require.Equal(testInstance, testCase.expectedPick, selectedVersion)
			require.Contains(testInstance, output.String(), "Select a version for lodash:")
			require.Contains(testInstance, output.String(), "1) 4.17.0")
		})
	}
}

func TestEngineAppliesDeterministicFixes(testInstance *testing.T) {
	resolved := buildTestWorkspace(testInstance,
		`{"name": "root", "workspaces": ["packages/*"]}`,
		map[string]string{
			"packages/app": `{"name": "app", "private": true, "dependencies": {"zod": "1.0.0", "axios": "1.0.0", "@types/node": "20.0.0"}, "devDependencies": {}}`,
		},
	)

	issues := evaluateIssues(resolved)
	engine := resolve.NewEngine(zap.NewNop(), resolve.NewPolicySelector(resolve.PolicyHighest), testPackageManagerLabelConstant)
	outcome := engine.Apply(resolved, issues)
	require.NotEmpty(testInstance, outcome.Fixed)

	require.True(testInstance, resolved.Root.IsPrivate())
	managerValue, managerDeclared := resolved.Root.PackageManagerValue()
	require.True(testInstance, managerDeclared)
	require.Equal(testInstance, testPackageManagerLabelConstant, managerValue)

	member, found := resolved.PackageByPath("packages/app")
	require.True(testInstance, found)

	dependenciesBlock, dependenciesExist := member.Manifest.DependencyBlock(manifest.KindDependencies)
	require.True(testInstance, dependenciesExist)
	require.Equal(testInstance, []string{"axios", "zod"}, dependenciesBlock.Keys())

	devBlock, devExists := member.Manifest.DependencyBlock(manifest.KindDevDependencies)
	require.True(testInstance, devExists)
	typesVersion, typesDeclared := devBlock.GetString("@types/node")
	require.True(testInstance, typesDeclared)
	require.Equal(testInstance, "20.0.0", typesVersion)
}

func TestEngineIsIdempotentOnFixableIssues(testInstance *testing.T) {
	resolved := buildTestWorkspace(testInstance,
		`{"name": "root", "workspaces": ["packages/*"]}`,
		map[string]string{
			"packages/app": `{"name": "app", "private": true, "dependencies": {"zod": "1.0.0", "axios": "1.0.0"}}`,
			"packages/lib": `{"name": "lib", "private": true, "dependencies": {"lodash": "4.17.0"}}`,
		},
	)

	engine := resolve.NewEngine(zap.NewNop(), resolve.NewPolicySelector(resolve.PolicyHighest), testPackageManagerLabelConstant)
	firstOutcome := engine.Apply(resolved, evaluateIssues(resolved))
	require.NotEmpty(testInstance, firstOutcome.Fixed)

	for _, issue := range evaluateIssues(resolved) {
		require.False(testInstance, issue.Fixable, "unexpected fixable issue after fixing: %s", issue.Rule)
	}
}

func TestEngineRewritesMultipleVersionsEverywhere(testInstance *testing.T) {
	resolved := buildTestWorkspace(testInstance,
		`{"name": "root", "private": true, "packageManager": "npm@10.9.2", "workspaces": ["packages/*"]}`,
		map[string]string{
			"packages/app": `{"name": "app", "dependencies": {"lodash": "4.17.0"}}`,
			"packages/lib": `{"name": "lib", "devDependencies": {"lodash": "4.17.21"}}`,
		},
	)

	engine := resolve.NewEngine(zap.NewNop(), resolve.NewPolicySelector(resolve.PolicyHighest), testPackageManagerLabelConstant)
	outcome := engine.Apply(resolved, evaluateIssues(resolved))

	require.Len(testInstance, outcome.Fixed, 1)
	require.Equal(testInstance, rules.NameMultipleDependencyVersions, outcome.Fixed[0].Rule)

	appMember, _ := resolved.PackageByPath("packages/app")
	appBlock, _ := appMember.Manifest.DependencyBlock(manifest.KindDependencies)
	appVersion, _ := appBlock.GetString("lodash")
	require.Equal(testInstance, "4.17.21", appVersion)

	libMember, _ := resolved.PackageByPath("packages/lib")
	libBlock, _ := libMember.Manifest.DependencyBlock(manifest.KindDevDependencies)
	libVersion, _ := libBlock.GetString("lodash")
	require.Equal(testInstance, "4.17.21", libVersion)
}

func TestEngineLeavesIssueUnfixedWhenSelectionAborts(testInstance *testing.T) {
	resolved := buildTestWorkspace(testInstance,
		`{"name": "root", "private": true, "packageManager": "npm@10.9.2", "workspaces": ["packages/*"]}`,
		map[string]string{
			"packages/app": `{"name": "app", "dependencies": {"lodash": "4.17.0"}}`,
			"packages/lib": `{"name": "lib", "dependencies": {"lodash": "4.17.21"}}`,
		},
	)

	var output strings.Builder
	prompter := resolve.NewIOVersionPrompter(strings.NewReader("\n"), &output)
	engine := resolve.NewEngine(zap.NewNop(), prompter, testPackageManagerLabelConstant)
	outcome := engine.Apply(resolved, evaluateIssues(resolved))

	require.Empty(testInstance, outcome.Fixed)
	require.NotEmpty(testInstance, outcome.Unfixed)
}

func TestWriteDirtyManifestsPreservesFormatting(testInstance *testing.T) {
	rootPath := testInstance.TempDir()
	manifestPath := filepath.Join(rootPath, manifest.FileName)
	original := "{\r\n    \"name\": \"app\",\r\n    \"dependencies\": {\r\n        \"zod\": \"1.0.0\",\r\n        \"axios\": \"1.0.0\"\r\n    }\r\n}\r\n"
	require.NoError(testInstance, os.WriteFile(manifestPath, []byte(original), 0o644))

	loaded, loadError := manifest.Load(manifestPath)
	require.NoError(testInstance, loadError)

	resolved := &workspace.Workspace{Root: loaded}
	loaded.SortDependencyBlock(manifest.KindDependencies)

	written, writeError := resolve.WriteDirtyManifests(resolved)
	require.NoError(testInstance, writeError)
	require.Equal(testInstance, 1, written)

	rewritten, readError := os.ReadFile(manifestPath)
	require.NoError(testInstance, readError)
	expected := "{\r\n    \"name\": \"app\",\r\n    \"dependencies\": {\r\n        \"axios\": \"1.0.0\",\r\n        \"zod\": \"1.0.0\"\r\n    }\r\n}\r\n"
	require.Equal(testInstance, expected, string(rewritten))
}

func TestWriteDirtyManifestsSkipsCleanDocuments(testInstance *testing.T) {
	rootPath := testInstance.TempDir()
	manifestPath := filepath.Join(rootPath, manifest.FileName)
	require.NoError(testInstance, os.WriteFile(manifestPath, []byte("{\n  \"name\": \"app\"\n}\n"), 0o644))

	loaded, loadError := manifest.Load(manifestPath)
	require.NoError(testInstance, loadError)

	written, writeError := resolve.WriteDirtyManifests(&workspace.Workspace{Root: loaded})
	require.NoError(testInstance, writeError)
	require.Zero(testInstance, written)
}
