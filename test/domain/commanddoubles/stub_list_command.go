//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/npmpick/internal/domain/commands"
	"github.com/rios0rios0/npmpick/internal/domain/entities"
)

// StubListCommand returns a fixed catalog and records the last call.
type StubListCommand struct {
	Catalog []entities.UpdateCandidate
	Err     error

	Calls       int
	LastOptions entities.UpgradeOptions
}

var _ commands.List = (*StubListCommand)(nil)

func (s *StubListCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	opts entities.UpgradeOptions,
) ([]entities.UpdateCandidate, error) {
	s.Calls++
	s.LastOptions = opts
	return s.Catalog, s.Err
}
