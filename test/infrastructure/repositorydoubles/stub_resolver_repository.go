//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/npmpick/internal/domain/entities"
	"github.com/rios0rios0/npmpick/internal/domain/repositories"
)

// StubResolverRepository returns a fixed resolution and records what it was asked.
type StubResolverRepository struct {
	Candidates []entities.ResolvedCandidate
	Err        error
	SourceURLs map[string]string
	SourceErr  error

	ResolveCalls   int
	LastSnapshot   *entities.DependencySnapshot
	LastSettings   *entities.Settings
	SourceURLCalls []string
}

var (
	_ repositories.ResolverRepository  = (*StubResolverRepository)(nil)
	_ repositories.SourceURLRepository = (*StubResolverRepository)(nil)
)

func (s *StubResolverRepository) Resolve(
	_ context.Context,
	snapshot *entities.DependencySnapshot,
	settings *entities.Settings,
) ([]entities.ResolvedCandidate, error) {
	s.ResolveCalls++
	s.LastSnapshot = snapshot
	s.LastSettings = settings
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Candidates, nil
}

func (s *StubResolverRepository) SourceURL(_ context.Context, name string) (string, error) {
	s.SourceURLCalls = append(s.SourceURLCalls, name)
	if s.SourceErr != nil {
		return "", s.SourceErr
	}
	return s.SourceURLs[name], nil
}
