package rules_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/monolint/internal/rules"
	"github.com/temirov/monolint/internal/workspace"
)

const ignoreSubtestTemplateConstant = "%d_%s"

func TestIgnoreMatcherPackages(testInstance *testing.T) {
	testCases := []struct {
		name            string
		patterns        []string
		manifestContent string
		packagePath     string
		expectedIgnored bool
	}{
		{name: "exact_name", patterns: []string{"app"}, manifestContent: `{"name": "app"}`, packagePath: "packages/app", expectedIgnored: true},
		{name: "exact_path", patterns: []string{"packages/app"}, manifestContent: `{"name": "app"}`, packagePath: "packages/app", expectedIgnored: true},
		{name: "path_glob", patterns: []string{"packages/legacy-*"}, manifestContent: `{"name": "old"}`, packagePath: "packages/legacy-old", expectedIgnored: true},
		{name: "doublestar_glob", patterns: []string{"tooling/**"}, manifestContent: `{"name": "config"}`, packagePath: "tooling/eslint/config", expectedIgnored: true},
		{name: "no_match", patterns: []string{"packages/other"}, manifestContent: `{"name": "app"}`, packagePath: "packages/app", expectedIgnored: false},
		{name: "empty_list", patterns: nil, manifestContent: `{"name": "app"}`, packagePath: "packages/app", expectedIgnored: false},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(ignoreSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			matcher := rules.NewIgnoreMatcher(rules.IgnoreConfiguration{Packages: testCase.patterns})
			member := workspace.Package{
				RelativePath: testCase.packagePath,
				Manifest:     parseRuleManifest(testInstance, testCase.manifestContent),
			}

			require.Equal(testInstance, testCase.expectedIgnored, matcher.PackageIgnored(member))
		})
	}
}

func TestIgnoreMatcherDependencies(testInstance *testing.T) {
	testCases := []struct {
		name                   string
		entries                []string
		dependencyName         string
		nameIgnored            bool
		version                string
		versionIgnored         bool
		unrelatedVersionString string
	}{
		{
			name:                   "bare_name_ignores_all_versions",
			entries:                []string{"lodash"},
			dependencyName:         "lodash",
			nameIgnored:            true,
			version:                "4.17.21",
			versionIgnored:         false,
			unrelatedVersionString: "4.17.20",
		},
		{
			name:                   "name_at_wildcard_ignores_all_versions",
			entries:                []string{"lodash@*"},
			dependencyName:         "lodash",
			nameIgnored:            true,
			version:                "4.17.21",
			versionIgnored:         false,
			unrelatedVersionString: "4.17.20",
		},
		{
			name:                   "name_at_version_ignores_that_version_only",
			entries:                []string{"react@^17.0.2"},
			dependencyName:         "react",
			nameIgnored:            false,
			version:                "^17.0.2",
			versionIgnored:         true,
			unrelatedVersionString: "18.3.1",
		},
		{
			name:                   "scoped_name_with_version",
			entries:                []string{"@types/node@22.0.0"},
			dependencyName:         "@types/node",
			nameIgnored:            false,
			version:                "22.0.0",
			versionIgnored:         true,
			unrelatedVersionString: "20.0.0",
		},
		{
			name:                   "trailing_wildcard_prefix",
			entries:                []string{"@tanstack/*"},
			dependencyName:         "@tanstack/react-query",
			nameIgnored:            true,
			version:                "5.51.0",
			versionIgnored:         false,
			unrelatedVersionString: "5.50.0",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(ignoreSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			matcher := rules.NewIgnoreMatcher(rules.IgnoreConfiguration{Dependencies: testCase.entries})

			require.Equal(testInstance, testCase.nameIgnored, matcher.DependencyIgnored(testCase.dependencyName))
			require.Equal(testInstance, testCase.versionIgnored, matcher.DependencyVersionIgnored(testCase.dependencyName, testCase.version))
			require.False(testInstance, matcher.DependencyVersionIgnored(testCase.dependencyName, testCase.unrelatedVersionString))
			require.False(testInstance, matcher.DependencyIgnored("unrelated-package"))
		})
	}
}

func TestIgnoreMatcherRules(testInstance *testing.T) {
	matcher := rules.NewIgnoreMatcher(rules.IgnoreConfiguration{Rules: []string{"empty-dependencies"}})

	require.True(testInstance, matcher.RuleIgnored(rules.NameEmptyDependencies))
	require.False(testInstance, matcher.RuleIgnored(rules.NameUnorderedDependencies))
}
