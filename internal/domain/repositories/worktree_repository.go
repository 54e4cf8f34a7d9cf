package repositories

import "context"

// WorktreeRepository inspects the version-control state of the project.
type WorktreeRepository interface {
	// HasUncommittedChanges reports whether file (relative to dir) differs from
	// the last commit. Projects outside a Git repository report false.
	HasUncommittedChanges(ctx context.Context, dir, file string) (bool, error)
}
