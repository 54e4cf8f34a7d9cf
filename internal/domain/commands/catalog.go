package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/npmpick/internal/domain/entities"
	"github.com/rios0rios0/npmpick/internal/domain/repositories"
)

// catalogLoader reads the manifest once and turns the resolver output into an
// ordered update catalog. It is shared by the list and upgrade commands.
type catalogLoader struct {
	manifests repositories.ManifestRepository
	resolver  repositories.ResolverRepository
	sources   repositories.SourceURLRepository
}

// loadedCatalog is the result of one resolution pass.
type loadedCatalog struct {
	Manifest *entities.Manifest
	Snapshot *entities.DependencySnapshot
	Catalog  []entities.UpdateCandidate
}

func (it *catalogLoader) load(
	ctx context.Context,
	settings *entities.Settings,
	opts entities.UpgradeOptions,
) (*loadedCatalog, error) {
	raw, err := it.manifests.Read(ctx, opts.ProjectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", entities.ManifestFileName, err)
	}

	manifest, err := entities.ParseManifest(raw)
	if err != nil {
		return nil, err
	}

	reject := append(append([]string{}, settings.Reject...), opts.Reject...)
	snapshot := manifest.Snapshot().Filter(opts.Filter, reject)
	logger.Infof("Checking %d dependencies against %s", snapshot.Len(), settings.Registry)

	resolved, err := it.resolver.Resolve(ctx, snapshot, settings)
	if err != nil {
		var resolutionErr *entities.ResolutionError
		if errors.As(err, &resolutionErr) {
			return nil, err
		}
		return nil, &entities.ResolutionError{Err: err}
	}

	var lookup entities.SourceURLLookup
	if it.sources != nil {
		lookup = it.sources.SourceURL
	}

	catalog := entities.BuildCatalog(ctx, snapshot, resolved, lookup)
	logger.Debugf("Resolver reported %d candidates, catalog holds %d", len(resolved), len(catalog))

	return &loadedCatalog{
		Manifest: manifest,
		Snapshot: snapshot,
		Catalog:  catalog,
	}, nil
}
