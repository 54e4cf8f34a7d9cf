package prompt

// NewHuhPrompterRepositoryWith creates a prompter with injected terminal detection and form runner.
func NewHuhPrompterRepositoryWith(isTerminal func() bool, run FormRunner) *HuhPrompterRepository {
	return &HuhPrompterRepository{isTerminal: isTerminal, run: run}
}

// ErrNotInteractive exports errNotInteractive for testing.
var ErrNotInteractive = errNotInteractive //nolint:gochecknoglobals // test export
