//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/npmpick/internal/domain/entities"
	"github.com/rios0rios0/npmpick/internal/domain/repositories"
)

// SpyPrompterRepository answers prompts from configured values.
// With AcceptDefaults set, SelectUpdates returns the catalog's default selection.
type SpyPrompterRepository struct {
	// --- SelectUpdates ---
	Selection      []string
	AcceptDefaults bool
	SelectErr      error

	// --- Confirm ---
	ConfirmAnswer bool
	ConfirmErr    error

	// --- call tracking ---
	SelectCalls  int
	ShownCatalog []entities.UpdateCandidate
	ConfirmCalls int
	Questions    []string
}

var _ repositories.PrompterRepository = (*SpyPrompterRepository)(nil)

func (s *SpyPrompterRepository) SelectUpdates(
	_ context.Context,
	catalog []entities.UpdateCandidate,
) (entities.SelectionResult, error) {
	s.SelectCalls++
	s.ShownCatalog = catalog
	if s.SelectErr != nil {
		return entities.SelectionResult{}, s.SelectErr
	}
	if s.AcceptDefaults {
		return entities.DefaultSelection(catalog), nil
	}
	return entities.NewSelectionResult(s.Selection...), nil
}

func (s *SpyPrompterRepository) Confirm(_ context.Context, question string) (bool, error) {
	s.ConfirmCalls++
	s.Questions = append(s.Questions, question)
	if s.ConfirmErr != nil {
		return false, s.ConfirmErr
	}
	return s.ConfirmAnswer, nil
}
