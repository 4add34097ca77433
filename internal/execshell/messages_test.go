package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStartedMessageForInstallNamesManagerAndDirectory(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandPnpm,
		Details: CommandDetails{
			Arguments:        []string{"install"},
			WorkingDirectory: "/workspace/monorepo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Installing dependencies with pnpm in /workspace/monorepo", message)
}

func TestBuildFailureMessageForInstallIncludesExitCodeAndStandardError(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandNpm,
		Details: CommandDetails{
			Arguments:        []string{"install"},
			WorkingDirectory: "/workspace/monorepo",
		},
	}
	result := ExecutionResult{ExitCode: 1, StandardError: "ERESOLVE unable to resolve dependency tree"}

	message := formatter.BuildFailureMessage(command, result)

	require.Equal(t, "Failed to install dependencies with npm in /workspace/monorepo (exit code 1: ERESOLVE unable to resolve dependency tree)", message)
}

func TestBuildExecutionFailureMessageForUnknownSubcommandUsesGenericLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandYarn,
		Details: CommandDetails{Arguments: []string{"--version"}},
	}

	message := formatter.BuildExecutionFailureMessage(command, errors.New("executable file not found"))

	require.Equal(t, "yarn --version failed: executable file not found", message)
}
