// Package installer detects the workspace's package manager from its lockfile
// and runs the single post-fix install that refreshes it.
package installer

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/monolint/internal/execshell"
)

const (
	npmLockfileNameConstant  = "package-lock.json"
	bunLockfileNameConstant  = "bun.lockb"
	yarnLockfileNameConstant = "yarn.lock"
	pnpmLockfileNameConstant = "pnpm-lock.yaml"

	installArgumentConstant = "install"

	detectedManagerLogMessageConstant = "detected package manager"
	managerLogFieldNameConstant       = "manager"
	lockfileLogFieldNameConstant      = "lockfile"
)

// ErrNoLockfileDetected reports that no known lockfile exists at the
// workspace root.
var ErrNoLockfileDetected = errors.New("no package manager lockfile found at the workspace root")

// PackageManager couples a package manager binary with the lockfile that
// identifies it.
type PackageManager struct {
	Command  execshell.CommandName
	Lockfile string
}

// detectionOrder fixes the precedence when several lockfiles coexist.
var detectionOrder = []PackageManager{
	{Command: execshell.CommandNpm, Lockfile: npmLockfileNameConstant},
	{Command: execshell.CommandBun, Lockfile: bunLockfileNameConstant},
	{Command: execshell.CommandYarn, Lockfile: yarnLockfileNameConstant},
	{Command: execshell.CommandPnpm, Lockfile: pnpmLockfileNameConstant},
}

// Detect identifies the workspace's package manager from the lockfile present
// at the root directory.
func Detect(rootPath string) (PackageManager, error) {
	for _, candidate := range detectionOrder {
		lockfilePath := filepath.Join(rootPath, candidate.Lockfile)
		fileInfo, statError := os.Stat(lockfilePath)
		if statError != nil || fileInfo.IsDir() {
			continue
		}
		return candidate, nil
	}
	return PackageManager{}, ErrNoLockfileDetected
}

// Installer runs the detected package manager's install command.
type Installer struct {
	logger   *zap.Logger
	executor *execshell.ShellExecutor
}

// NewInstaller constructs an installer around a shell executor.
func NewInstaller(logger *zap.Logger, executor *execshell.ShellExecutor) *Installer {
	return &Installer{logger: logger, executor: executor}
}

// Install runs one install invocation at the workspace root using the provided
// package manager.
func (installerInstance *Installer) Install(executionContext context.Context, rootPath string, manager PackageManager) error {
	installerInstance.logger.Debug(detectedManagerLogMessageConstant,
		zap.String(managerLogFieldNameConstant, string(manager.Command)),
		zap.String(lockfileLogFieldNameConstant, manager.Lockfile),
	)

	_, executionError := installerInstance.executor.Execute(executionContext, execshell.ShellCommand{
		Name: manager.Command,
		Details: execshell.CommandDetails{
			Arguments:        []string{installArgumentConstant},
			WorkingDirectory: rootPath,
		},
	})
	return executionError
}
