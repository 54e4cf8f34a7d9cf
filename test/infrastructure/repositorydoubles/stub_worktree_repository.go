//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/npmpick/internal/domain/repositories"
)

// StubWorktreeRepository reports a fixed worktree state.
type StubWorktreeRepository struct {
	Dirty bool
	Err   error
}

var _ repositories.WorktreeRepository = (*StubWorktreeRepository)(nil)

func (s *StubWorktreeRepository) HasUncommittedChanges(_ context.Context, _, _ string) (bool, error) {
	return s.Dirty, s.Err
}
