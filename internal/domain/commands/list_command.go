package commands

import (
	"context"

	"github.com/rios0rios0/npmpick/internal/domain/entities"
	"github.com/rios0rios0/npmpick/internal/domain/repositories"
)

// List is the interface for the read-only list command.
type List interface {
	Execute(ctx context.Context, settings *entities.Settings, opts entities.UpgradeOptions) ([]entities.UpdateCandidate, error)
}

// ListCommand resolves and classifies available updates without changing anything.
type ListCommand struct {
	loader *catalogLoader
}

// NewListCommand creates a new ListCommand.
func NewListCommand(
	manifests repositories.ManifestRepository,
	resolver repositories.ResolverRepository,
	sources repositories.SourceURLRepository,
) *ListCommand {
	return &ListCommand{
		loader: &catalogLoader{
			manifests: manifests,
			resolver:  resolver,
			sources:   sources,
		},
	}
}

// Execute returns the ordered update catalog.
func (it *ListCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts entities.UpgradeOptions,
) ([]entities.UpdateCandidate, error) {
	loaded, err := it.loader.load(ctx, settings, opts)
	if err != nil {
		return nil, err
	}
	return loaded.Catalog, nil
}
