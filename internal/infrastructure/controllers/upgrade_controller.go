package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/npmpick/internal/domain/commands"
	"github.com/rios0rios0/npmpick/internal/domain/entities"
	"github.com/rios0rios0/npmpick/internal/terminal"
)

// UpgradeController handles the root command and the "upgrade" subcommand.
type UpgradeController struct {
	command    commands.Upgrade
	isTerminal func() bool
}

// NewUpgradeController creates a new UpgradeController.
func NewUpgradeController(command commands.Upgrade) *UpgradeController {
	return &UpgradeController{command: command, isTerminal: terminal.IsInteractive}
}

// GetBind returns the Cobra command metadata for the upgrade controller.
func (it *UpgradeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "upgrade [path]",
		Short: "Pick and apply dependency updates",
		Long: `Resolve the newest allowed version of every dependency in package.json,
classify each update by semver risk, let you pick which ones to apply,
write the manifest and run the package manager install step.

Patch and minor updates are pre-selected; premajor, major and
indeterminate updates must be picked explicitly.`,
	}
}

// AddFlags adds the upgrade-specific flags to the given command.
func (it *UpgradeController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("dry-run", false,
		"Show the manifest diff without writing anything")
	cmd.Flags().BoolP("yes", "y", false,
		"Apply the default selection without prompting")
	cmd.Flags().Bool("no-backup", false,
		"Do not back up package.json before writing it")
	cmd.Flags().Bool("skip-install", false,
		"Write package.json but do not run the package manager")
	cmd.Flags().Bool("changelog", false,
		"Record applied updates in CHANGELOG.md")
}

// Execute runs the upgrade pipeline and renders its outcome.
func (it *UpgradeController) Execute(cmd *cobra.Command, args []string) error {
	projectDir, err := projectDirFromArgs(args)
	if err != nil {
		return err
	}

	settings, err := loadSettings(cmd, projectDir)
	if err != nil {
		return err
	}
	if noBackup, _ := cmd.Flags().GetBool("no-backup"); noBackup {
		settings.Backup = false
	}
	if changelog, _ := cmd.Flags().GetBool("changelog"); changelog {
		settings.Changelog = true
	}

	opts := baseOptions(cmd, projectDir)
	opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
	opts.SkipInstall, _ = cmd.Flags().GetBool("skip-install")

	yes, _ := cmd.Flags().GetBool("yes")
	opts.Interactive = !yes && it.isTerminal()
	if !yes && !opts.Interactive {
		logger.Warn("No terminal attached, applying the default selection")
	}

	result, err := it.command.Execute(cmd.Context(), settings, opts)
	if err != nil {
		return err
	}

	renderUpgrade(cmd.OutOrStdout(), result)
	return nil
}
