package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/fatih/color"

	"github.com/rios0rios0/npmpick/internal/domain/entities"
	"github.com/rios0rios0/npmpick/internal/domain/repositories"
	"github.com/rios0rios0/npmpick/internal/terminal"
)

const maxListHeight = 20

var errNotInteractive = errors.New("interactive prompt requires a terminal")

// FormRunner runs a huh form; replaced in tests.
type FormRunner func(ctx context.Context, form *huh.Form) error

func runForm(ctx context.Context, form *huh.Form) error { return form.RunWithContext(ctx) }

// HuhPrompterRepository implements repositories.PrompterRepository with charmbracelet/huh.
type HuhPrompterRepository struct {
	isTerminal func() bool
	run        FormRunner
}

// NewHuhPrompterRepository creates a prompter bound to the real terminal.
func NewHuhPrompterRepository() *HuhPrompterRepository {
	return &HuhPrompterRepository{
		isTerminal: terminal.IsInteractive,
		run:        runForm,
	}
}

var _ repositories.PrompterRepository = (*HuhPrompterRepository)(nil)

// SelectUpdates shows a multi-select with patch and minor updates pre-checked.
func (it *HuhPrompterRepository) SelectUpdates(
	ctx context.Context,
	catalog []entities.UpdateCandidate,
) (entities.SelectionResult, error) {
	selected := entities.DefaultSelection(catalog).Names()

	options := make([]huh.Option[string], 0, len(catalog))
	for _, candidate := range catalog {
		options = append(options, huh.NewOption(OptionLabel(candidate), candidate.Name).
			Selected(candidate.DefaultSelected))
	}

	field := huh.NewMultiSelect[string]().
		Title("Choose which packages to update").
		Description("space to toggle, enter to confirm; patch and minor updates are pre-selected").
		Value(&selected).
		Options(options...).
		Height(min(len(options)+2, maxListHeight)) //nolint:mnd // title + padding

	if err := it.runForm(ctx, huh.NewForm(huh.NewGroup(field))); err != nil {
		return entities.SelectionResult{}, err
	}
	return entities.NewSelectionResult(selected...), nil
}

// Confirm asks a yes/no question, defaulting to yes.
func (it *HuhPrompterRepository) Confirm(ctx context.Context, question string) (bool, error) {
	answer := true
	field := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&answer)

	if err := it.runForm(ctx, huh.NewForm(huh.NewGroup(field))); err != nil {
		return false, err
	}
	return answer, nil
}

func (it *HuhPrompterRepository) runForm(ctx context.Context, form *huh.Form) error {
	if it.isTerminal != nil && !it.isTerminal() {
		return errNotInteractive
	}

	form.WithProgramOptions(tea.WithOutput(os.Stderr))
	err := it.run(ctx, form)
	if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
		return entities.ErrPromptCancelled
	}
	return err
}

// OptionLabel renders one catalog line: name, current -> proposed, colored tier.
func OptionLabel(candidate entities.UpdateCandidate) string {
	label := fmt.Sprintf("%-32s %14s -> %-14s %s",
		candidate.Name, candidate.CurrentRange, candidate.ProposedVersion, TierColor(candidate.Tier).Sprint(candidate.Tier))
	if candidate.SourceURL != "" {
		label += "  " + color.New(color.Faint).Sprint(candidate.SourceURL)
	}
	return label
}

// TierColor returns the color used for a risk tier everywhere in the output.
func TierColor(tier entities.RiskTier) *color.Color {
	switch tier {
	case entities.TierPatch:
		return color.New(color.FgGreen)
	case entities.TierMinor:
		return color.New(color.FgCyan)
	case entities.TierPremajor:
		return color.New(color.FgMagenta)
	case entities.TierMajor:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgYellow)
	}
}
