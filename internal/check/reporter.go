package check

import (
	"fmt"
	"io"
	"time"

	"github.com/temirov/monolint/internal/rules"
	"github.com/temirov/monolint/internal/workspace"
)

const (
	packageHeadingTemplateConstant = "%s\n"
	issueLineTemplateConstant      = "  [%s] %s: %s\n"
	issueWhyLineTemplateConstant   = "      %s\n"
	parseFailureTemplateConstant   = "  [error] malformed manifest: %v\n"
	issueBlockSeparatorConstant    = "\n"

	footerIssuesTemplateConstant   = "Found %d %s (%d %s, %d %s) across %d %s in %s\n"
	footerFixedTemplateConstant    = "Fixed %d %s\n"
	footerNoIssuesTemplateConstant = "No issues found across %d %s in %s\n"

	issueNounSingularConstant   = "issue"
	issueNounPluralConstant     = "issues"
	errorNounSingularConstant   = "error"
	errorNounPluralConstant     = "errors"
	warningNounSingularConstant = "warning"
	warningNounPluralConstant   = "warnings"
	packageNounSingularConstant = "package"
	packageNounPluralConstant   = "packages"
)

// Reporter renders issues and the run summary as plain text.
type Reporter struct {
	writer io.Writer
}

// NewReporter constructs a reporter over the provided writer.
func NewReporter(writer io.Writer) *Reporter {
	return &Reporter{writer: writer}
}

// ReportIssues prints issues grouped by package path. Group order is the root
// first, then workspace member order, then any remaining paths in first
// appearance order.
func (reporter *Reporter) ReportIssues(resolved *workspace.Workspace, issues []rules.Issue, parseFailures []workspace.ParseFailure) {
	grouped := map[string][]rules.Issue{}
	for _, issue := range issues {
		grouped[issue.PackagePath] = append(grouped[issue.PackagePath], issue)
	}
	failuresByPath := map[string][]workspace.ParseFailure{}
	for _, failure := range parseFailures {
		failuresByPath[failure.RelativePath] = append(failuresByPath[failure.RelativePath], failure)
	}

	for _, packagePath := range reporter.orderedPaths(resolved, issues, parseFailures) {
		packageIssues := grouped[packagePath]
		packageFailures := failuresByPath[packagePath]
		if len(packageIssues) == 0 && len(packageFailures) == 0 {
			continue
		}

		fmt.Fprintf(reporter.writer, packageHeadingTemplateConstant, packagePath)
		for _, failure := range packageFailures {
			fmt.Fprintf(reporter.writer, parseFailureTemplateConstant, failure.Err)
		}
		for _, issue := range packageIssues {
			fmt.Fprintf(reporter.writer, issueLineTemplateConstant, issue.Severity, issue.Rule, issue.Message)
			if len(issue.Why) > 0 {
				fmt.Fprintf(reporter.writer, issueWhyLineTemplateConstant, issue.Why)
			}
		}
		fmt.Fprint(reporter.writer, issueBlockSeparatorConstant)
	}
}

// ReportFooter prints the run summary with pluralized counts and elapsed time.
func (reporter *Reporter) ReportFooter(issues []rules.Issue, fixedCount int, packageCount int, elapsed time.Duration) {
	roundedElapsed := elapsed.Round(time.Millisecond)

	if fixedCount > 0 {
		fmt.Fprintf(reporter.writer, footerFixedTemplateConstant, fixedCount, pluralize(fixedCount, issueNounSingularConstant, issueNounPluralConstant))
	}

	if len(issues) == 0 {
		fmt.Fprintf(reporter.writer, footerNoIssuesTemplateConstant, packageCount, pluralize(packageCount, packageNounSingularConstant, packageNounPluralConstant), roundedElapsed)
		return
	}

	errorCount := 0
	warningCount := 0
	for _, issue := range issues {
		switch issue.Severity {
		case rules.SeverityError:
			errorCount++
		case rules.SeverityWarning:
			warningCount++
		}
	}

	fmt.Fprintf(reporter.writer, footerIssuesTemplateConstant,
		len(issues), pluralize(len(issues), issueNounSingularConstant, issueNounPluralConstant),
		errorCount, pluralize(errorCount, errorNounSingularConstant, errorNounPluralConstant),
		warningCount, pluralize(warningCount, warningNounSingularConstant, warningNounPluralConstant),
		packageCount, pluralize(packageCount, packageNounSingularConstant, packageNounPluralConstant),
		roundedElapsed,
	)
}

func (reporter *Reporter) orderedPaths(resolved *workspace.Workspace, issues []rules.Issue, parseFailures []workspace.ParseFailure) []string {
	seen := map[string]struct{}{}
	var ordered []string
	appendPath := func(packagePath string) {
		if _, alreadySeen := seen[packagePath]; alreadySeen {
			return
		}
		seen[packagePath] = struct{}{}
		ordered = append(ordered, packagePath)
	}

	appendPath(workspace.RootPackagePath)
	for _, member := range resolved.Packages {
		appendPath(member.RelativePath)
	}
	for _, failure := range parseFailures {
		appendPath(failure.RelativePath)
	}
	for _, issue := range issues {
		appendPath(issue.PackagePath)
	}
	return ordered
}

func pluralize(count int, singular string, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
