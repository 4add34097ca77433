package rules

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/temirov/monolint/internal/workspace"
)

const (
	dependencyVersionSeparatorConstant = "@"
	trailingWildcardConstant           = "*"
)

// IgnoreConfiguration carries the resolved ignore lists. Rule names match
// exactly; packages match by name, path, or path glob; dependencies match by
// name (trailing-* wildcard supported) or name@version.
type IgnoreConfiguration struct {
	Rules        []string
	Packages     []string
	Dependencies []string
}

type dependencyIgnoreEntry struct {
	namePattern string
	version     string
}

// IgnoreMatcher answers suppression queries for rules, packages, and
// dependency versions.
type IgnoreMatcher struct {
	ruleNames         map[string]struct{}
	packagePatterns   []string
	dependencyEntries []dependencyIgnoreEntry
}

// NewIgnoreMatcher compiles the provided ignore configuration.
func NewIgnoreMatcher(configuration IgnoreConfiguration) *IgnoreMatcher {
	matcher := &IgnoreMatcher{ruleNames: map[string]struct{}{}}

	for _, ruleName := range configuration.Rules {
		matcher.ruleNames[ruleName] = struct{}{}
	}

	matcher.packagePatterns = append(matcher.packagePatterns, configuration.Packages...)

	for _, dependencyEntry := range configuration.Dependencies {
		namePattern, version := splitDependencyIgnore(dependencyEntry)
		matcher.dependencyEntries = append(matcher.dependencyEntries, dependencyIgnoreEntry{namePattern: namePattern, version: version})
	}

	return matcher
}

// RuleIgnored reports whether every issue of the named rule is suppressed.
func (matcher *IgnoreMatcher) RuleIgnored(ruleName Name) bool {
	_, ignored := matcher.ruleNames[string(ruleName)]
	return ignored
}

// PackageIgnored reports whether issues scoped to the provided package are
// suppressed.
func (matcher *IgnoreMatcher) PackageIgnored(member workspace.Package) bool {
	for _, pattern := range matcher.packagePatterns {
		if pattern == member.Name() || pattern == member.RelativePath {
			return true
		}
		if matched, matchError := doublestar.Match(pattern, member.RelativePath); matchError == nil && matched {
			return true
		}
	}
	return false
}

// DependencyIgnored reports whether the dependency name is suppressed for
// every version.
func (matcher *IgnoreMatcher) DependencyIgnored(dependencyName string) bool {
	for _, entry := range matcher.dependencyEntries {
		if len(entry.version) > 0 && entry.version != trailingWildcardConstant {
			continue
		}
		if matchDependencyName(entry.namePattern, dependencyName) {
			return true
		}
	}
	return false
}

// DependencyVersionIgnored reports whether one specific (name, version) pair
// is suppressed.
func (matcher *IgnoreMatcher) DependencyVersionIgnored(dependencyName string, version string) bool {
	for _, entry := range matcher.dependencyEntries {
		if entry.version != version {
			continue
		}
		if matchDependencyName(entry.namePattern, dependencyName) {
			return true
		}
	}
	return false
}

// splitDependencyIgnore separates a name[@version] entry. The separator search
// starts after the first character so scoped names such as @types/node keep
// their leading @.
func splitDependencyIgnore(entry string) (string, string) {
	separatorIndex := strings.LastIndex(entry, dependencyVersionSeparatorConstant)
	if separatorIndex <= 0 {
		return entry, ""
	}
	return entry[:separatorIndex], entry[separatorIndex+1:]
}

func matchDependencyName(pattern string, dependencyName string) bool {
	if strings.HasSuffix(pattern, trailingWildcardConstant) {
		return strings.HasPrefix(dependencyName, strings.TrimSuffix(pattern, trailingWildcardConstant))
	}
	return pattern == dependencyName
}
