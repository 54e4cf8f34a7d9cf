package entities

// InstallState is a step of the install orchestration.
type InstallState string

const (
	StateIdle            InstallState = "idle"
	StateBackupRequested InstallState = "backup-requested"
	StateMutated         InstallState = "mutated"
	StateInstalling      InstallState = "installing"
	StateSuccess         InstallState = "success"
	StateFailed          InstallState = "failed"
	StateRolledBack      InstallState = "rolled-back"
	StateKeptDirty       InstallState = "kept-dirty"
)

// IsTerminal reports whether no further transition can happen from the state.
func (s InstallState) IsTerminal() bool {
	return s == StateSuccess || s == StateRolledBack || s == StateKeptDirty
}

// Outcome summarises how an upgrade run ended.
type Outcome string

const (
	OutcomeUpToDate        Outcome = "up-to-date"
	OutcomeCancelled       Outcome = "cancelled"
	OutcomeNothingSelected Outcome = "nothing-selected"
	OutcomeDryRun          Outcome = "dry-run"
	OutcomeWritten         Outcome = "written"
	OutcomeInstalled       Outcome = "installed"
	OutcomeRolledBack      Outcome = "rolled-back"
	OutcomeKeptDirty       Outcome = "kept-dirty"
)

// OutcomeFromState maps a terminal install state to the run outcome.
func OutcomeFromState(state InstallState) Outcome {
	switch state {
	case StateSuccess:
		return OutcomeInstalled
	case StateRolledBack:
		return OutcomeRolledBack
	default:
		return OutcomeKeptDirty
	}
}
