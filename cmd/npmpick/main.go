package main

import (
	"os"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/npmpick/internal"
	"github.com/rios0rios0/npmpick/internal/infrastructure/controllers"
)

func buildRootCommand(upgradeController *controllers.UpgradeController) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "npmpick [path]",
		Short: "Interactive, risk-aware npm dependency updates",
		Long: `Pick which npm dependency updates to apply.

npmpick reads package.json, asks the registry for the newest allowed version of
every dependency, classifies each update as patch, minor, premajor, major or
indeterminate, and lets you choose which ones to apply. Safe updates are
pre-selected. The manifest is backed up before writing and can be restored if
the install step fails.

Usage modes:
  npmpick                 Upgrade the project in the current directory
  npmpick /path/to/app    Upgrade a specific project
  npmpick list            Show available updates without changing anything`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(command *cobra.Command, _ []string) {
			if verbose, _ := command.Flags().GetBool("verbose"); verbose {
				logger.SetLevel(logger.DebugLevel)
			}
		},
		RunE: upgradeController.Execute,
	}

	controllers.AddPersistentFlags(cmd)
	upgradeController.AddFlags(cmd)
	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  cobra.MaximumNArgs(1),
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
		}
		ctrl.AddFlags(subCmd)
		rootCmd.AddCommand(subCmd)
	}
}

func configureLogger() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stderr)
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}
}

func main() {
	// a missing .env is the common case
	_ = godotenv.Load()
	configureLogger()

	app := injectAppContext()
	cobraRoot := buildRootCommand(app.Upgrade)
	addSubcommands(cobraRoot, app.App)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'npmpick': %s", err)
	}
}
