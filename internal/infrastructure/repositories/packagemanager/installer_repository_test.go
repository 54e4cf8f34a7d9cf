//go:build unit

package packagemanager_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/npmpick/internal/domain/entities"
	"github.com/rios0rios0/npmpick/internal/infrastructure/repositories/packagemanager"
)

type spyRunner struct {
	err   error
	dir   string
	argv  []string
	calls int
}

func (s *spyRunner) Run(_ context.Context, dir string, argv []string) error {
	s.calls++
	s.dir = dir
	s.argv = argv
	return s.err
}

func TestInstallerRepository(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lockFile string
		expected string
	}{
		{lockFile: "", expected: "npm"},
		{lockFile: "package-lock.json", expected: "npm"},
		{lockFile: "yarn.lock", expected: "yarn"},
		{lockFile: "pnpm-lock.yaml", expected: "pnpm"},
		{lockFile: "bun.lockb", expected: "bun"},
		{lockFile: "bun.lock", expected: "bun"},
	}

	for _, tt := range tests {
		t.Run("should detect "+tt.expected+" from '"+tt.lockFile+"'", func(t *testing.T) {
			t.Parallel()

			// given
			fs := memfs.New()
			require.NoError(t, util.WriteFile(fs, "/app/package.json", []byte("{}"), 0o644))
			if tt.lockFile != "" {
				require.NoError(t, util.WriteFile(fs, "/app/"+tt.lockFile, nil, 0o644))
			}
			runner := &spyRunner{}
			installer := packagemanager.NewInstallerRepository(fs, packagemanager.NewDefaultRegistry(), runner)

			// when
			name := installer.Detect(context.Background(), "/app")
			err := installer.Install(context.Background(), "/app")

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.expected, name)
			assert.Equal(t, []string{tt.expected, "install"}, runner.argv)
			assert.Equal(t, "/app", runner.dir)
		})
	}

	t.Run("should wrap a failing install", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &spyRunner{err: errors.New("exit status 1")}
		installer := packagemanager.NewInstallerRepository(memfs.New(), packagemanager.NewDefaultRegistry(), runner)

		// when
		err := installer.Install(context.Background(), "/app")

		// then
		require.ErrorIs(t, err, entities.ErrInstallFailed)
		assert.Contains(t, err.Error(), "exit status 1")
	})

	t.Run("should fail when the fallback manager is unknown", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &spyRunner{}
		installer := packagemanager.NewInstallerRepository(memfs.New(), packagemanager.NewRegistry("npm"), runner)

		// when
		err := installer.Install(context.Background(), "/app")

		// then
		require.ErrorIs(t, err, entities.ErrInstallFailed)
		assert.Zero(t, runner.calls)
	})
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should replace a registered manager in place", func(t *testing.T) {
		t.Parallel()

		// given
		registry := packagemanager.NewDefaultRegistry()

		// when
		registry.Register(packagemanager.PackageManager{
			Name:      "yarn",
			LockFiles: []string{"yarn.lock"},
			Install:   []string{"yarn", "install", "--immutable"},
		})

		// then
		assert.Equal(t, []string{"pnpm", "yarn", "bun", "npm"}, registry.Names())
		yarn, ok := registry.Get("yarn")
		require.True(t, ok)
		assert.Equal(t, []string{"yarn", "install", "--immutable"}, yarn.Install)
	})
}
