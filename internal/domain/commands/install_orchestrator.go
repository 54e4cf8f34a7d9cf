package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/npmpick/internal/domain/entities"
	"github.com/rios0rios0/npmpick/internal/domain/repositories"
)

const restoreQuestion = "The install failed. Restore the previous package.json from the backup?"

// InstallRequest describes one write-and-install cycle.
type InstallRequest struct {
	Dir             string
	Manifest        []byte // mutated manifest content
	Backup          bool
	Interactive     bool // false skips the restore question and applies RestoreOnCancel
	RestoreOnCancel bool
}

// InstallReport is the outcome of an InstallOrchestrator run.
type InstallReport struct {
	State          entities.InstallState
	Trail          []entities.InstallState
	BackupPath     string // empty when no backup exists on disk any more
	PackageManager string
	InstallErr     error
}

func (r *InstallReport) transition(state entities.InstallState) {
	logger.Debugf("Install state: %s -> %s", r.State, state)
	r.State = state
	r.Trail = append(r.Trail, state)
}

// InstallOrchestrator sequences backup, manifest write, package manager
// install and the rollback decision after a failed install.
type InstallOrchestrator struct {
	manifests repositories.ManifestRepository
	installer repositories.InstallerRepository
	prompter  repositories.PrompterRepository
}

// NewInstallOrchestrator creates a new InstallOrchestrator.
func NewInstallOrchestrator(
	manifests repositories.ManifestRepository,
	installer repositories.InstallerRepository,
	prompter repositories.PrompterRepository,
) *InstallOrchestrator {
	return &InstallOrchestrator{
		manifests: manifests,
		installer: installer,
		prompter:  prompter,
	}
}

// Run drives the state machine to a terminal state. An error is returned only
// when the manifest could not be written or restored; a failed install is
// reported through the returned state.
func (it *InstallOrchestrator) Run(ctx context.Context, req InstallRequest) (*InstallReport, error) {
	report := &InstallReport{
		State:          entities.StateIdle,
		Trail:          []entities.InstallState{entities.StateIdle},
		PackageManager: it.installer.Detect(ctx, req.Dir),
	}

	if req.Backup {
		report.transition(entities.StateBackupRequested)
		backupPath, err := it.manifests.Backup(ctx, req.Dir)
		if err != nil {
			logger.Warnf("Failed to back up %s, continuing without a backup: %v", entities.ManifestFileName, err)
		} else {
			report.BackupPath = backupPath
			logger.Infof("Backed up %s to %s", entities.ManifestFileName, backupPath)
		}
	}

	if err := it.manifests.Write(ctx, req.Dir, req.Manifest); err != nil {
		if report.BackupPath != "" {
			return report, fmt.Errorf("failed to write %s (backup left at %s): %w",
				entities.ManifestFileName, report.BackupPath, err)
		}
		return report, fmt.Errorf("failed to write %s: %w", entities.ManifestFileName, err)
	}
	report.transition(entities.StateMutated)

	report.transition(entities.StateInstalling)
	logger.Infof("Running %s install...", report.PackageManager)
	installErr := it.installer.Install(ctx, req.Dir)
	if installErr == nil {
		report.transition(entities.StateSuccess)
		it.discardBackup(ctx, report)
		return report, nil
	}

	report.InstallErr = installErr
	report.transition(entities.StateFailed)
	logger.Errorf("Install failed: %v", installErr)

	if report.BackupPath == "" {
		logger.Warnf("No backup available, leaving the updated %s in place", entities.ManifestFileName)
		report.transition(entities.StateKeptDirty)
		return report, nil
	}

	if !it.shouldRestore(ctx, req) {
		logger.Infof("Keeping the updated %s; backup left at %s", entities.ManifestFileName, report.BackupPath)
		report.transition(entities.StateKeptDirty)
		return report, nil
	}

	if err := it.manifests.Restore(ctx, req.Dir, report.BackupPath); err != nil {
		return report, fmt.Errorf("failed to restore %s from %s: %w",
			entities.ManifestFileName, report.BackupPath, err)
	}
	logger.Infof("Restored %s from backup", entities.ManifestFileName)
	report.BackupPath = ""
	report.transition(entities.StateRolledBack)
	return report, nil
}

// shouldRestore asks the user whether to roll back. A cancelled or failed
// prompt falls back to the configured default.
func (it *InstallOrchestrator) shouldRestore(ctx context.Context, req InstallRequest) bool {
	if !req.Interactive {
		return req.RestoreOnCancel
	}

	restore, err := it.prompter.Confirm(ctx, restoreQuestion)
	if err != nil {
		if !errors.Is(err, entities.ErrPromptCancelled) {
			logger.Warnf("Restore prompt failed: %v", err)
		}
		return req.RestoreOnCancel
	}
	return restore
}

func (it *InstallOrchestrator) discardBackup(ctx context.Context, report *InstallReport) {
	if report.BackupPath == "" {
		return
	}
	if err := it.manifests.RemoveBackup(ctx, report.BackupPath); err != nil {
		logger.Warnf("Failed to remove backup %s: %v", report.BackupPath, err)
		return
	}
	report.BackupPath = ""
}
