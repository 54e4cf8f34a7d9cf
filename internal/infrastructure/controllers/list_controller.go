package controllers

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/npmpick/internal/domain/commands"
	"github.com/rios0rios0/npmpick/internal/domain/entities"
)

// ListController handles the "list" subcommand.
type ListController struct {
	command commands.List
}

// NewListController creates a new ListController.
func NewListController(command commands.List) *ListController {
	return &ListController{command: command}
}

// GetBind returns the Cobra command metadata for the list controller.
func (it *ListController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "list [path]",
		Short: "List available dependency updates",
		Long: `List every available dependency update with its risk tier,
whether it would be pre-selected, and where to read its release notes.
Nothing is written.`,
	}
}

// AddFlags adds the list-specific flags to the given command.
func (it *ListController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Print the catalog as JSON")
}

// Execute resolves the catalog and prints it.
func (it *ListController) Execute(cmd *cobra.Command, args []string) error {
	projectDir, err := projectDirFromArgs(args)
	if err != nil {
		return err
	}

	settings, err := loadSettings(cmd, projectDir)
	if err != nil {
		return err
	}

	opts := baseOptions(cmd, projectDir)
	opts.JSON, _ = cmd.Flags().GetBool("json")

	catalog, err := it.command.Execute(cmd.Context(), settings, opts)
	if err != nil {
		return err
	}

	if opts.JSON {
		return renderCatalogJSON(cmd.OutOrStdout(), catalog)
	}
	renderCatalog(cmd.OutOrStdout(), catalog)
	return nil
}
