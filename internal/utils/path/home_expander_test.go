package pathutils_test

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/monolint/internal/utils/path"
)

const (
	testHomeDirectoryConstant           = "/home/builder"
	homeExpanderSubtestTemplateConstant = "%d_%s"
)

func TestHomeExpanderExpand(testInstance *testing.T) {
	testCases := []struct {
		name          string
		candidatePath string
		expectedPath  string
	}{
		{
			name:          "bare_tilde_resolves_to_home",
			candidatePath: "~",
			expectedPath:  testHomeDirectoryConstant,
		},
		{
			name:          "tilde_prefix_joins_relative_path",
			candidatePath: "~/projects/monorepo",
			expectedPath:  filepath.Join(testHomeDirectoryConstant, "projects/monorepo"),
		},
		{
			name:          "absolute_path_passes_through",
			candidatePath: "/srv/monorepo",
			expectedPath:  "/srv/monorepo",
		},
		{
			name:          "relative_path_passes_through",
			candidatePath: "packages/app",
			expectedPath:  "packages/app",
		},
		{
			name:          "empty_path_passes_through",
			candidatePath: "",
			expectedPath:  "",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(homeExpanderSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
				return testHomeDirectoryConstant, nil
			})

			expandedPath := expander.Expand(testCase.candidatePath)
			require.Equal(testInstance, testCase.expectedPath, expandedPath)
		})
	}
}

func TestHomeExpanderKeepsPathWhenHomeLookupFails(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New("home directory unavailable")
	})

	require.Equal(testInstance, "~/projects", expander.Expand("~/projects"))
}
