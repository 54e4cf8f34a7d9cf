package worktree

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"

	"github.com/rios0rios0/npmpick/internal/domain/repositories"
)

// GitWorktreeRepository reads file status from the Git repository enclosing a project.
type GitWorktreeRepository struct{}

// NewGitWorktreeRepository creates a new GitWorktreeRepository.
func NewGitWorktreeRepository() *GitWorktreeRepository {
	return &GitWorktreeRepository{}
}

var _ repositories.WorktreeRepository = (*GitWorktreeRepository)(nil)

// HasUncommittedChanges reports whether file is modified, staged or untracked.
func (it *GitWorktreeRepository) HasUncommittedChanges(_ context.Context, dir, file string) (bool, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to open repository: %w", err)
	}

	tree, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to open worktree: %w", err)
	}

	status, err := tree.Status()
	if err != nil {
		return false, fmt.Errorf("failed to read worktree status: %w", err)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(tree.Filesystem.Root(), filepath.Join(absDir, file))
	if err != nil {
		return false, err
	}

	fileStatus, listed := status[filepath.ToSlash(rel)]
	if !listed {
		return false, nil
	}
	return fileStatus.Worktree != git.Unmodified || fileStatus.Staging != git.Unmodified, nil
}
