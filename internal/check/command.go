package check

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/monolint/internal/execshell"
	"github.com/temirov/monolint/internal/manifest"
	"github.com/temirov/monolint/internal/resolve"
	pathutils "github.com/temirov/monolint/internal/utils/path"
)

const (
	commandUseConstant   = "check"
	commandShortConstant = "Check the workspace for dependency and manifest inconsistencies"
	commandLongConstant  = "Check resolves the workspace packages, runs every consistency rule, and optionally rewrites manifests to fix the violations it can."

	flagRootName        = "root"
	flagRootDescription = "workspace root directory"
	flagRootDefault     = "."

	flagFixName        = "fix"
	flagFixShorthand   = "f"
	flagFixDescription = "rewrite manifests to resolve fixable issues"

	flagSelectName        = "select"
	flagSelectShorthand   = "s"
	flagSelectDescription = "non-interactive version selection policy (highest|lowest)"

	flagNoInstallName        = "no-install"
	flagNoInstallDescription = "skip the package manager install after fixes"

	flagFailOnWarningsName        = "fail-on-warnings"
	flagFailOnWarningsDescription = "exit non-zero when warnings remain"

	flagIgnoreRuleName        = "ignore-rule"
	flagIgnoreRuleShorthand   = "r"
	flagIgnoreRuleDescription = "rule name to skip (repeatable)"

	flagIgnorePackageName        = "ignore-package"
	flagIgnorePackageShorthand   = "p"
	flagIgnorePackageDescription = "package name or path glob to skip (repeatable)"

	flagIgnoreDependencyName        = "ignore-dependency"
	flagIgnoreDependencyShorthand   = "i"
	flagIgnoreDependencyDescription = "dependency name or name@version to skip (repeatable)"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the check cobra command with configurable
// dependencies.
type CommandBuilder struct {
	LoggerProvider LoggerProvider
	CommandRunner  execshell.CommandRunner
	Environment    EnvironmentLookup
	PromptInput    io.Reader
	Clock          Clock
}

// Build constructs the cobra command for workspace checking.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortConstant,
		Long:  commandLongConstant,
		RunE:  builder.run,
	}

	registerCheckFlags(command.Flags())

	return command, nil
}

func registerCheckFlags(flagSet *pflag.FlagSet) {
	flagSet.String(flagRootName, flagRootDefault, flagRootDescription)
	flagSet.BoolP(flagFixName, flagFixShorthand, false, flagFixDescription)
	flagSet.StringP(flagSelectName, flagSelectShorthand, "", flagSelectDescription)
	flagSet.Bool(flagNoInstallName, false, flagNoInstallDescription)
	flagSet.Bool(flagFailOnWarningsName, false, flagFailOnWarningsDescription)
	flagSet.StringArrayP(flagIgnoreRuleName, flagIgnoreRuleShorthand, nil, flagIgnoreRuleDescription)
	flagSet.StringArrayP(flagIgnorePackageName, flagIgnorePackageShorthand, nil, flagIgnorePackageDescription)
	flagSet.StringArrayP(flagIgnoreDependencyName, flagIgnoreDependencyShorthand, nil, flagIgnoreDependencyDescription)
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command)
	if optionsError != nil {
		return optionsError
	}

	if len(options.SelectPolicy) > 0 {
		if _, policyError := resolve.ParsePolicy(options.SelectPolicy); policyError != nil {
			return policyError
		}
	}

	service := NewService(
		builder.resolveLogger(),
		builder.resolveCommandRunner(),
		builder.resolveEnvironment(),
		builder.resolvePromptInput(),
		command.OutOrStdout(),
		command.ErrOrStderr(),
		builder.Clock,
	)
	return service.Run(command.Context(), options)
}

// parseOptions merges the root manifest's embedded configuration block with
// explicitly set CLI flags. Flags win per key.
func (builder *CommandBuilder) parseOptions(command *cobra.Command) (CommandOptions, error) {
	rootFlagValue, _ := command.Flags().GetString(flagRootName)
	rootPath := pathutils.NewHomeExpander().Expand(rootFlagValue)

	configuration, configurationError := builder.loadEmbeddedConfiguration(rootPath)
	if configurationError != nil {
		return CommandOptions{}, configurationError
	}
	options := configuration.ToOptions(rootPath)

	if command.Flags().Changed(flagFixName) {
		options.Fix, _ = command.Flags().GetBool(flagFixName)
	}
	if command.Flags().Changed(flagSelectName) {
		options.SelectPolicy, _ = command.Flags().GetString(flagSelectName)
	}
	if command.Flags().Changed(flagNoInstallName) {
		options.NoInstall, _ = command.Flags().GetBool(flagNoInstallName)
	}
	if command.Flags().Changed(flagFailOnWarningsName) {
		options.FailOnWarnings, _ = command.Flags().GetBool(flagFailOnWarningsName)
	}
	if command.Flags().Changed(flagIgnoreRuleName) {
		options.IgnoreRules, _ = command.Flags().GetStringArray(flagIgnoreRuleName)
	}
	if command.Flags().Changed(flagIgnorePackageName) {
		options.IgnorePackages, _ = command.Flags().GetStringArray(flagIgnorePackageName)
	}
	if command.Flags().Changed(flagIgnoreDependencyName) {
		options.IgnoreDependencies, _ = command.Flags().GetStringArray(flagIgnoreDependencyName)
	}

	return options, nil
}

// loadEmbeddedConfiguration reads the "monolint" block from the root manifest
// when it exists. Root manifest load failures are deferred to the service,
// which reports them as hard aborts.
func (builder *CommandBuilder) loadEmbeddedConfiguration(rootPath string) (CommandConfiguration, error) {
	rootManifest, loadError := manifest.Load(filepath.Join(rootPath, manifest.FileName))
	if loadError != nil {
		return CommandConfiguration{}, nil
	}
	return LoadEmbeddedConfiguration(rootManifest)
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveCommandRunner() execshell.CommandRunner {
	if builder.CommandRunner != nil {
		return builder.CommandRunner
	}
	return execshell.NewOSCommandRunner()
}

func (builder *CommandBuilder) resolveEnvironment() EnvironmentLookup {
	if builder.Environment != nil {
		return builder.Environment
	}
	return os.LookupEnv
}

func (builder *CommandBuilder) resolvePromptInput() io.Reader {
	if builder.PromptInput != nil {
		return builder.PromptInput
	}
	return os.Stdin
}
