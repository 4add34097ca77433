// Package semversion orders version-constraint strings for reporting and for
// the highest/lowest autofix policies.
package semversion

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const rangeQualifierCutsetConstant = "^~>=< "

// Compare orders two version-constraint strings. Each constraint is reduced to
// its leading version literal (range qualifiers stripped) and compared as
// semver. When either side does not parse, the comparison falls back to
// case-sensitive lexical ordering of the raw strings; under that fallback
// "2.0.0-beta" ranks above "10.0.0". The fallback is deliberate: constraint
// strings that are not versions are still given a stable total order.
func Compare(first string, second string) int {
	firstVersion, firstParsed := parseConstraint(first)
	secondVersion, secondParsed := parseConstraint(second)

	if firstParsed && secondParsed {
		return firstVersion.Compare(secondVersion)
	}

	return strings.Compare(first, second)
}

// SortAscending returns the provided constraints ordered from lowest to
// highest under Compare. The input slice is not modified.
func SortAscending(versions []string) []string {
	ordered := make([]string, len(versions))
	copy(ordered, versions)
	sort.SliceStable(ordered, func(firstIndex int, secondIndex int) bool {
		return Compare(ordered[firstIndex], ordered[secondIndex]) < 0
	})
	return ordered
}

// Highest returns the greatest constraint under Compare.
func Highest(versions []string) string {
	ordered := SortAscending(versions)
	if len(ordered) == 0 {
		return ""
	}
	return ordered[len(ordered)-1]
}

// Lowest returns the smallest constraint under Compare.
func Lowest(versions []string) string {
	ordered := SortAscending(versions)
	if len(ordered) == 0 {
		return ""
	}
	return ordered[0]
}

func parseConstraint(constraint string) (*semver.Version, bool) {
	trimmed := strings.TrimLeft(strings.TrimSpace(constraint), rangeQualifierCutsetConstant)
	parsedVersion, parseError := semver.NewVersion(trimmed)
	if parseError != nil {
		return nil, false
	}
	return parsedVersion, true
}
