//go:build integration || unit || test

// Package commanddoubles provides test doubles for the domain command interfaces.
package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/npmpick/internal/domain/commands"
	"github.com/rios0rios0/npmpick/internal/domain/entities"
)

// StubUpgradeCommand returns a fixed result and records the last call.
type StubUpgradeCommand struct {
	Result *commands.UpgradeResult
	Err    error

	Calls        int
	LastSettings *entities.Settings
	LastOptions  entities.UpgradeOptions
}

var _ commands.Upgrade = (*StubUpgradeCommand)(nil)

func (s *StubUpgradeCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts entities.UpgradeOptions,
) (*commands.UpgradeResult, error) {
	s.Calls++
	s.LastSettings = settings
	s.LastOptions = opts
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Result, nil
}
