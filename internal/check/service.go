package check

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/monolint/internal/depindex"
	"github.com/temirov/monolint/internal/execshell"
	"github.com/temirov/monolint/internal/installer"
	"github.com/temirov/monolint/internal/resolve"
	"github.com/temirov/monolint/internal/rules"
	"github.com/temirov/monolint/internal/utils"
	"github.com/temirov/monolint/internal/workspace"
)

const (
	autofixDisabledInCIMessageConstant      = "Autofix is disabled in CI environments."
	installSkippedNoLockfileMessageConstant = "Skipping install: no lockfile found at the workspace root."
	installFailedTemplateConstant           = "dependency install failed: %w"

	autofixDisabledLogMessageConstant  = "autofix disabled, CI environment detected"
	manifestsWrittenLogMessageConstant = "manifests rewritten"
	writtenCountLogFieldNameConstant   = "written"

	fallbackPackageManagerLabelConstant = "npm@10.9.2"
)

// defaultPackageManagerLabels provides the packageManager value inserted by
// the root-package-manager-field fix, keyed by detected manager.
var defaultPackageManagerLabels = map[execshell.CommandName]string{
	execshell.CommandNpm:  "npm@10.9.2",
	execshell.CommandYarn: "yarn@4.5.3",
	execshell.CommandPnpm: "pnpm@9.15.0",
	execshell.CommandBun:  "bun@1.1.42",
}

// Service orchestrates the full check pipeline: resolve, index, evaluate,
// optionally fix and install, report, and decide the exit outcome.
type Service struct {
	logger        *zap.Logger
	commandRunner execshell.CommandRunner
	environment   EnvironmentLookup
	promptInput   io.Reader
	outputWriter  io.Writer
	errorWriter   io.Writer
	clock         Clock
}

// NewService constructs a Service using the provided dependencies.
func NewService(logger *zap.Logger, commandRunner execshell.CommandRunner, environment EnvironmentLookup, promptInput io.Reader, outputWriter io.Writer, errorWriter io.Writer, clock Clock) *Service {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{
		logger:        logger,
		commandRunner: commandRunner,
		environment:   environment,
		promptInput:   promptInput,
		outputWriter:  utils.NewFlushingWriter(outputWriter),
		errorWriter:   utils.NewFlushingWriter(errorWriter),
		clock:         clock,
	}
}

// Run executes the check pipeline according to the provided options. It
// returns ErrIssuesFound when unresolved issues require a non-zero exit.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	startTime := service.clock.Now()

	resolver := workspace.NewResolver(service.logger)
	resolved, resolveError := resolver.Resolve(options.RootPath)
	if resolveError != nil {
		return resolveError
	}

	matcher := rules.NewIgnoreMatcher(rules.IgnoreConfiguration{
		Rules:        options.IgnoreRules,
		Packages:     options.IgnorePackages,
		Dependencies: options.IgnoreDependencies,
	})
	index := depindex.Build(resolved)
	issues := rules.Evaluate(resolved, index, matcher)

	fixEnabled := options.Fix
	if fixEnabled && IsCIEnvironment(service.environment) {
		service.logger.Warn(autofixDisabledLogMessageConstant)
		fmt.Fprintln(service.errorWriter, autofixDisabledInCIMessageConstant)
		fixEnabled = false
	}

	remaining := issues
	fixedCount := 0
	var installError error
	if fixEnabled {
		remaining, fixedCount, installError = service.applyFixes(executionContext, resolved, issues, options)
	}

	reporter := NewReporter(service.outputWriter)
	reporter.ReportIssues(resolved, remaining, resolved.ParseFailures)
	reporter.ReportFooter(remaining, fixedCount, len(resolved.Packages)+1, service.clock.Now().Sub(startTime))

	if installError != nil {
		return installError
	}
	return service.decideOutcome(resolved, remaining, options)
}

// applyFixes runs the resolution engine, writes mutated manifests, and
// triggers the single post-fix install. Fixed issues no longer count toward
// the exit decision.
func (service *Service) applyFixes(executionContext context.Context, resolved *workspace.Workspace, issues []rules.Issue, options CommandOptions) ([]rules.Issue, int, error) {
	detectedManager, detectionError := installer.Detect(options.RootPath)
	packageManagerLabel := fallbackPackageManagerLabelConstant
	if detectionError == nil {
		packageManagerLabel = defaultPackageManagerLabels[detectedManager.Command]
	}

	selector, selectorError := service.buildSelector(options)
	if selectorError != nil {
		return issues, 0, selectorError
	}

	engine := resolve.NewEngine(service.logger, selector, packageManagerLabel)
	outcome := engine.Apply(resolved, issues)

	writtenCount, writeError := resolve.WriteDirtyManifests(resolved)
	if writeError != nil {
		return outcome.Unfixed, len(outcome.Fixed), writeError
	}
	service.logger.Debug(manifestsWrittenLogMessageConstant, zap.Int(writtenCountLogFieldNameConstant, writtenCount))

	if writtenCount == 0 || options.NoInstall {
		return outcome.Unfixed, len(outcome.Fixed), nil
	}

	if errors.Is(detectionError, installer.ErrNoLockfileDetected) {
		fmt.Fprintln(service.errorWriter, installSkippedNoLockfileMessageConstant)
		return outcome.Unfixed, len(outcome.Fixed), nil
	}

	shellExecutor, executorError := execshell.NewShellExecutor(service.logger, service.commandRunner)
	if executorError != nil {
		return outcome.Unfixed, len(outcome.Fixed), executorError
	}
	if installRunError := installer.NewInstaller(service.logger, shellExecutor).Install(executionContext, options.RootPath, detectedManager); installRunError != nil {
		return outcome.Unfixed, len(outcome.Fixed), fmt.Errorf(installFailedTemplateConstant, installRunError)
	}
	return outcome.Unfixed, len(outcome.Fixed), nil
}

// buildSelector picks the configured policy selector or falls back to the
// interactive prompter.
func (service *Service) buildSelector(options CommandOptions) (resolve.VersionSelector, error) {
	if len(options.SelectPolicy) > 0 {
		policy, parseError := resolve.ParsePolicy(options.SelectPolicy)
		if parseError != nil {
			return nil, parseError
		}
		return resolve.NewPolicySelector(policy), nil
	}
	return resolve.NewIOVersionPrompter(service.promptInput, service.outputWriter), nil
}

func (service *Service) decideOutcome(resolved *workspace.Workspace, remaining []rules.Issue, options CommandOptions) error {
	if len(resolved.ParseFailures) > 0 {
		return ErrIssuesFound
	}
	for _, issue := range remaining {
		if issue.Severity == rules.SeverityError {
			return ErrIssuesFound
		}
	}
	if options.FailOnWarnings && len(remaining) > 0 {
		return ErrIssuesFound
	}
	return nil
}
