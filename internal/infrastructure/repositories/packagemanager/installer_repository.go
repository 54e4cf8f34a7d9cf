package packagemanager

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/go-git/go-billy/v5"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/npmpick/internal/domain/entities"
	"github.com/rios0rios0/npmpick/internal/domain/repositories"
)

// CommandRunner runs a command in dir, attached to the caller's terminal.
type CommandRunner interface {
	Run(ctx context.Context, dir string, argv []string) error
}

// ExecCommandRunner runs commands with os/exec and inherited standard streams.
type ExecCommandRunner struct{}

// Run blocks until the command exits.
func (ExecCommandRunner) Run(ctx context.Context, dir string, argv []string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // argv comes from the fixed registry
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// InstallerRepository picks the package manager from the project's lock file
// and runs its install command.
type InstallerRepository struct {
	fs       billy.Filesystem
	registry *Registry
	runner   CommandRunner
}

// NewInstallerRepository creates an installer that inspects lock files on fs.
func NewInstallerRepository(fs billy.Filesystem, registry *Registry, runner CommandRunner) *InstallerRepository {
	return &InstallerRepository{
		fs:       fs,
		registry: registry,
		runner:   runner,
	}
}

var _ repositories.InstallerRepository = (*InstallerRepository)(nil)

// Detect returns the name of the package manager whose lock file is present.
func (it *InstallerRepository) Detect(_ context.Context, dir string) string {
	return it.detect(dir).Name
}

// Install runs the detected package manager's install command.
func (it *InstallerRepository) Install(ctx context.Context, dir string) error {
	pm := it.detect(dir)
	if len(pm.Install) == 0 {
		return fmt.Errorf("%w: no install command known for %q", entities.ErrInstallFailed, pm.Name)
	}

	logger.Debugf("Executing %v in %s", pm.Install, dir)
	if err := it.runner.Run(ctx, dir, pm.Install); err != nil {
		return fmt.Errorf("%w: %s: %w", entities.ErrInstallFailed, pm.Name, err)
	}
	return nil
}

func (it *InstallerRepository) detect(dir string) PackageManager {
	for _, pm := range it.registry.All() {
		for _, lockFile := range pm.LockFiles {
			if _, err := it.fs.Stat(it.fs.Join(dir, lockFile)); err == nil {
				return pm
			}
		}
	}
	pm, _ := it.registry.Fallback()
	return pm
}
