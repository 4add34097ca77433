package semversion_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/monolint/internal/semversion"
)

const semversionSubtestTemplateConstant = "%d_%s"

func TestCompare(testInstance *testing.T) {
	testCases := []struct {
		name     string
		first    string
		second   string
		expected int
	}{
		{name: "plain_versions", first: "1.2.3", second: "1.10.0", expected: -1},
		{name: "equal_versions", first: "2.0.0", second: "2.0.0", expected: 0},
		{name: "caret_qualifier_stripped", first: "^1.2.3", second: "1.2.4", expected: -1},
		{name: "tilde_qualifier_stripped", first: "~2.1.0", second: "2.0.9", expected: 1},
		{name: "comparison_qualifier_stripped", first: ">=3.0.0", second: "2.9.9", expected: 1},
		{name: "prerelease_below_release", first: "2.0.0-beta.1", second: "2.0.0", expected: -1},
		{name: "lexical_fallback_on_tags", first: "workspace:*", second: "latest", expected: 1},
		{name: "lexical_fallback_misorders_major_versions", first: "10.0.0", second: "2.x", expected: -1},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(semversionSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			comparison := semversion.Compare(testCase.first, testCase.second)
			switch testCase.expected {
			case 0:
				require.Zero(testInstance, comparison)
			case -1:
				require.Negative(testInstance, comparison)
			default:
				require.Positive(testInstance, comparison)
			}
		})
	}
}

func TestSortAscendingLeavesInputUntouched(testInstance *testing.T) {
	input := []string{"^2.0.0", "1.0.0", "^10.1.0"}

	ordered := semversion.SortAscending(input)
	require.Equal(testInstance, []string{"1.0.0", "^2.0.0", "^10.1.0"}, ordered)
	require.Equal(testInstance, []string{"^2.0.0", "1.0.0", "^10.1.0"}, input)
}

func TestHighestAndLowest(testInstance *testing.T) {
	versions := []string{"~1.5.0", "^1.2.0", "1.10.3"}

	require.Equal(testInstance, "1.10.3", semversion.Highest(versions))
	require.Equal(testInstance, "^1.2.0", semversion.Lowest(versions))
	require.Empty(testInstance, semversion.Highest(nil))
	require.Empty(testInstance, semversion.Lowest(nil))
}
