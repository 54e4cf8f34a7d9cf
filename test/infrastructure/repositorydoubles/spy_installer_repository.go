//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/npmpick/internal/domain/repositories"
)

// SpyInstallerRepository records install runs and fails with InstallErr when set.
type SpyInstallerRepository struct {
	Name       string
	InstallErr error

	InstallCalls int
	InstalledIn  []string
}

var _ repositories.InstallerRepository = (*SpyInstallerRepository)(nil)

func (s *SpyInstallerRepository) Detect(_ context.Context, _ string) string {
	if s.Name == "" {
		return "npm"
	}
	return s.Name
}

func (s *SpyInstallerRepository) Install(_ context.Context, dir string) error {
	s.InstallCalls++
	s.InstalledIn = append(s.InstalledIn, dir)
	return s.InstallErr
}
