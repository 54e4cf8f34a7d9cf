package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/npmpick/internal/domain/entities"
	"github.com/rios0rios0/npmpick/internal/domain/repositories"
)

// Upgrade is the interface for the interactive upgrade command.
type Upgrade interface {
	Execute(ctx context.Context, settings *entities.Settings, opts entities.UpgradeOptions) (*UpgradeResult, error)
}

// UpgradeResult describes what an upgrade run did.
type UpgradeResult struct {
	Outcome  entities.Outcome
	Catalog  []entities.UpdateCandidate
	Applied  []entities.UpdateCandidate
	Before   []byte // manifest as read
	After    []byte // manifest after mutation; nil when nothing was mutated
	Install  *InstallReport
	Warnings []string
}

// UpgradeCommand runs the whole pipeline: resolve, classify, prompt, mutate,
// install, and roll back on request.
type UpgradeCommand struct {
	loader       *catalogLoader
	prompter     repositories.PrompterRepository
	worktree     repositories.WorktreeRepository
	changelogs   repositories.ChangelogRepository
	orchestrator *InstallOrchestrator
}

// NewUpgradeCommand creates a new UpgradeCommand.
func NewUpgradeCommand(
	manifests repositories.ManifestRepository,
	resolver repositories.ResolverRepository,
	sources repositories.SourceURLRepository,
	prompter repositories.PrompterRepository,
	worktree repositories.WorktreeRepository,
	changelogs repositories.ChangelogRepository,
	orchestrator *InstallOrchestrator,
) *UpgradeCommand {
	return &UpgradeCommand{
		loader: &catalogLoader{
			manifests: manifests,
			resolver:  resolver,
			sources:   sources,
		},
		prompter:     prompter,
		worktree:     worktree,
		changelogs:   changelogs,
		orchestrator: orchestrator,
	}
}

// Execute runs one upgrade. User cancellation is a successful run with the
// OutcomeCancelled outcome.
func (it *UpgradeCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts entities.UpgradeOptions,
) (*UpgradeResult, error) {
	loaded, err := it.loader.load(ctx, settings, opts)
	if err != nil {
		return nil, err
	}

	result := &UpgradeResult{
		Catalog: loaded.Catalog,
		Before:  loaded.Manifest.Bytes(),
	}

	if len(loaded.Catalog) == 0 {
		logger.Info("All dependencies are up to date.")
		result.Outcome = entities.OutcomeUpToDate
		return result, nil
	}

	selection, err := it.selectUpdates(ctx, loaded.Catalog, opts)
	if errors.Is(err, entities.ErrPromptCancelled) {
		logger.Info("Selection cancelled, nothing was changed.")
		result.Outcome = entities.OutcomeCancelled
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	if err = entities.ValidateSelection(loaded.Catalog, selection); err != nil {
		return nil, err
	}
	if selection.IsEmpty() {
		logger.Info("No updates selected, nothing was changed.")
		result.Outcome = entities.OutcomeNothingSelected
		return result, nil
	}

	mutated, err := loaded.Manifest.Apply(selection, loaded.Catalog)
	if err != nil {
		return nil, err
	}
	result.Applied = entities.SelectedCandidates(loaded.Catalog, selection)
	result.After = mutated.Bytes()

	if opts.DryRun {
		logger.Infof("[DRY RUN] Would update %d dependencies", len(result.Applied))
		result.Outcome = entities.OutcomeDryRun
		return result, nil
	}

	it.warnIfDirty(ctx, opts.ProjectDir, result)

	if opts.SkipInstall {
		if err = it.loader.manifests.Write(ctx, opts.ProjectDir, result.After); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", entities.ManifestFileName, err)
		}
		result.Outcome = entities.OutcomeWritten
		it.recordChangelog(ctx, settings, opts.ProjectDir, result)
		return result, nil
	}

	report, err := it.orchestrator.Run(ctx, InstallRequest{
		Dir:             opts.ProjectDir,
		Manifest:        result.After,
		Backup:          settings.Backup,
		Interactive:     opts.Interactive,
		RestoreOnCancel: settings.RestoreOnCancel(),
	})
	result.Install = report
	if err != nil {
		return result, err
	}

	result.Outcome = entities.OutcomeFromState(report.State)
	if report.State == entities.StateSuccess {
		it.recordChangelog(ctx, settings, opts.ProjectDir, result)
	}
	return result, nil
}

func (it *UpgradeCommand) selectUpdates(
	ctx context.Context,
	catalog []entities.UpdateCandidate,
	opts entities.UpgradeOptions,
) (entities.SelectionResult, error) {
	if !opts.Interactive {
		selection := entities.DefaultSelection(catalog)
		logger.Infof("Non-interactive mode: applying %d default-selected updates", selection.Len())
		return selection, nil
	}
	return it.prompter.SelectUpdates(ctx, catalog)
}

func (it *UpgradeCommand) warnIfDirty(ctx context.Context, dir string, result *UpgradeResult) {
	if it.worktree == nil {
		return
	}
	dirty, err := it.worktree.HasUncommittedChanges(ctx, dir, entities.ManifestFileName)
	if err != nil {
		logger.Debugf("Could not inspect the Git worktree: %v", err)
		return
	}
	if dirty {
		warning := entities.ManifestFileName + " has uncommitted changes; they will be mixed with the upgrade"
		logger.Warn(warning)
		result.Warnings = append(result.Warnings, warning)
	}
}

// recordChangelog adds the applied updates to CHANGELOG.md when enabled.
// Failures only produce a warning.
func (it *UpgradeCommand) recordChangelog(
	ctx context.Context,
	settings *entities.Settings,
	dir string,
	result *UpgradeResult,
) {
	if !settings.Changelog || it.changelogs == nil {
		return
	}

	content, exists, err := it.changelogs.ReadChangelog(ctx, dir)
	if err != nil {
		logger.Warnf("Failed to read %s: %v", entities.ChangelogFileName, err)
		return
	}
	if !exists {
		logger.Debugf("No %s in %s, skipping changelog update", entities.ChangelogFileName, dir)
		return
	}

	updated := entities.InsertChangelogEntry(content, entities.ChangelogEntries(result.Applied))
	if updated == content {
		return
	}
	if err = it.changelogs.WriteChangelog(ctx, dir, updated); err != nil {
		logger.Warnf("Failed to update %s: %v", entities.ChangelogFileName, err)
		return
	}
	logger.Infof("Recorded %d updates in %s", len(result.Applied), entities.ChangelogFileName)
}
