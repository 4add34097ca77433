package installer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/monolint/internal/execshell"
	"github.com/temirov/monolint/internal/installer"
)

const (
	testLockfileContentConstant = "lockfile"
	testInstallArgumentConstant = "install"
)

type recordingCommandRunner struct {
	recordedCommands []execshell.ShellCommand
	executionResult  execshell.ExecutionResult
}

func (runner *recordingCommandRunner) Run(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.recordedCommands = append(runner.recordedCommands, command)
	return runner.executionResult, nil
}

func writeLockfiles(testInstance *testing.T, rootPath string, lockfileNames ...string) {
	testInstance.Helper()
	for _, lockfileName := range lockfileNames {
		require.NoError(testInstance, os.WriteFile(filepath.Join(rootPath, lockfileName), []byte(testLockfileContentConstant), 0o644))
	}
}

func TestDetectFollowsLockfilePrecedence(testInstance *testing.T) {
	testCases := []struct {
		name            string
		lockfiles       []string
		expectedCommand execshell.CommandName
	}{
		{
			name:            "npm_lockfile",
			lockfiles:       []string{"package-lock.json"},
			expectedCommand: execshell.CommandNpm,
		},
		{
			name:            "bun_lockfile",
			lockfiles:       []string{"bun.lockb"},
			expectedCommand: execshell.CommandBun,
		},
		{
			name:            "yarn_lockfile",
			lockfiles:       []string{"yarn.lock"},
			expectedCommand: execshell.CommandYarn,
		},
		{
			name:            "pnpm_lockfile",
			lockfiles:       []string{"pnpm-lock.yaml"},
			expectedCommand: execshell.CommandPnpm,
		},
		{
			name:            "npm_wins_over_pnpm",
			lockfiles:       []string{"pnpm-lock.yaml", "package-lock.json"},
			expectedCommand: execshell.CommandNpm,
		},
		{
			name:            "bun_wins_over_yarn",
			lockfiles:       []string{"yarn.lock", "bun.lockb"},
			expectedCommand: execshell.CommandBun,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			rootPath := testInstance.TempDir()
			writeLockfiles(testInstance, rootPath, testCase.lockfiles...)

			detectedManager, detectionError := installer.Detect(rootPath)

			require.NoError(testInstance, detectionError)
			require.Equal(testInstance, testCase.expectedCommand, detectedManager.Command)
		})
	}
}

func TestDetectWithoutLockfileReturnsSentinelError(testInstance *testing.T) {
	rootPath := testInstance.TempDir()

	_, detectionError := installer.Detect(rootPath)

	require.ErrorIs(testInstance, detectionError, installer.ErrNoLockfileDetected)
}

func TestInstallRunsSingleInstallAtRoot(testInstance *testing.T) {
	rootPath := testInstance.TempDir()
	writeLockfiles(testInstance, rootPath, "pnpm-lock.yaml")

	recordingRunner := &recordingCommandRunner{}
	shellExecutor, creationError := execshell.NewShellExecutor(zap.NewNop(), recordingRunner)
	require.NoError(testInstance, creationError)

	detectedManager, detectionError := installer.Detect(rootPath)
	require.NoError(testInstance, detectionError)

	installerInstance := installer.NewInstaller(zap.NewNop(), shellExecutor)
	require.NoError(testInstance, installerInstance.Install(context.Background(), rootPath, detectedManager))

	require.Len(testInstance, recordingRunner.recordedCommands, 1)
	recordedCommand := recordingRunner.recordedCommands[0]
	require.Equal(testInstance, execshell.CommandPnpm, recordedCommand.Name)
	require.Equal(testInstance, []string{testInstallArgumentConstant}, recordedCommand.Details.Arguments)
	require.Equal(testInstance, rootPath, recordedCommand.Details.WorkingDirectory)
}
