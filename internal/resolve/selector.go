package resolve

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/temirov/monolint/internal/semversion"
)

// Policy names a non-interactive version selection strategy.
type Policy string

// Supported selection policies.
const (
	PolicyHighest Policy = "highest"
	PolicyLowest  Policy = "lowest"
)

// Selection errors.
var (
	ErrUnknownPolicy    = errors.New("unknown version selection policy")
	ErrSelectionAborted = errors.New("version selection aborted")
	ErrNoCandidates     = errors.New("no candidate versions to select from")
)

const (
	promptHeaderTemplateConstant = "Select a version for %s:\n"
	promptOptionTemplateConstant = "  %d) %s\n"
	promptCursorConstant         = "> "
)

// VersionSelector picks one version out of the candidates observed for a
// dependency.
type VersionSelector interface {
	SelectVersion(dependencyName string, candidates []string) (string, error)
}

// ParsePolicy validates a policy name.
func ParsePolicy(value string) (Policy, error) {
	switch Policy(strings.TrimSpace(value)) {
	case PolicyHighest:
		return PolicyHighest, nil
	case PolicyLowest:
		return PolicyLowest, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, value)
	}
}

// PolicySelector resolves version choices without user interaction.
type PolicySelector struct {
	policy Policy
}

// NewPolicySelector constructs a selector for the provided policy.
func NewPolicySelector(policy Policy) *PolicySelector {
	return &PolicySelector{policy: policy}
}

// SelectVersion picks the highest or lowest candidate according to the policy.
func (selector *PolicySelector) SelectVersion(dependencyName string, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoCandidates, dependencyName)
	}
	if selector.policy == PolicyLowest {
		return semversion.Lowest(candidates), nil
	}
	return semversion.Highest(candidates), nil
}

// IOVersionPrompter asks the user to choose a version from a numbered list.
type IOVersionPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOVersionPrompter constructs a prompter over the provided streams.
func NewIOVersionPrompter(input io.Reader, output io.Writer) *IOVersionPrompter {
	return &IOVersionPrompter{reader: bufio.NewReader(input), writer: output}
}

// SelectVersion prints the candidates in ascending order and reads a numeric
// choice. Any input that is not a listed option aborts the selection.
func (prompter *IOVersionPrompter) SelectVersion(dependencyName string, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoCandidates, dependencyName)
	}

	ordered := semversion.SortAscending(candidates)
	fmt.Fprintf(prompter.writer, promptHeaderTemplateConstant, dependencyName)
	for optionIndex, candidate := range ordered {
		fmt.Fprintf(prompter.writer, promptOptionTemplateConstant, optionIndex+1, candidate)
	}
	fmt.Fprint(prompter.writer, promptCursorConstant)

	line, readError := prompter.reader.ReadString('\n')
	trimmed := strings.TrimSpace(line)
	if readError != nil && len(trimmed) == 0 {
		return "", ErrSelectionAborted
	}

	choice, parseError := strconv.Atoi(trimmed)
	if parseError != nil || choice < 1 || choice > len(ordered) {
		return "", ErrSelectionAborted
	}
	return ordered[choice-1], nil
}
