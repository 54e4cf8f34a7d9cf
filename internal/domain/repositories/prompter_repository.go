package repositories

import (
	"context"

	"github.com/rios0rios0/npmpick/internal/domain/entities"
)

// PrompterRepository talks to the user. Both methods return
// entities.ErrPromptCancelled when the user aborts.
type PrompterRepository interface {
	// SelectUpdates shows the ordered catalog with its default selection and
	// returns the names the user confirmed.
	SelectUpdates(ctx context.Context, catalog []entities.UpdateCandidate) (entities.SelectionResult, error)

	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, question string) (bool, error)
}
