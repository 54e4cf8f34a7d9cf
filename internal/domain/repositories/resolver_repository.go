package repositories

import (
	"context"

	"github.com/rios0rios0/npmpick/internal/domain/entities"
)

// ResolverRepository finds the highest version allowed for each declared
// dependency. Only dependencies with an available update are returned, in the
// snapshot's declaration order.
type ResolverRepository interface {
	Resolve(
		ctx context.Context,
		snapshot *entities.DependencySnapshot,
		settings *entities.Settings,
	) ([]entities.ResolvedCandidate, error)
}

// SourceURLRepository looks up where a package's source code lives.
type SourceURLRepository interface {
	SourceURL(ctx context.Context, name string) (string, error)
}
