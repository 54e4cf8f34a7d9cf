package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fatih/color"

	"github.com/rios0rios0/npmpick/internal/domain/commands"
	"github.com/rios0rios0/npmpick/internal/domain/entities"
	"github.com/rios0rios0/npmpick/internal/infrastructure/repositories/prompt"
)

// renderCatalog prints the catalog as an aligned table.
func renderCatalog(out io.Writer, catalog []entities.UpdateCandidate) {
	if len(catalog) == 0 {
		_, _ = color.New(color.FgGreen).Fprintln(out, "All dependencies are up to date.")
		return
	}

	writer := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0) //nolint:mnd // column padding
	_, _ = fmt.Fprintln(writer, "PACKAGE\tCURRENT\t\tPROPOSED\tRISK\tDEFAULT\tSOURCE")
	for _, candidate := range catalog {
		mark := ""
		if candidate.DefaultSelected {
			mark = "yes"
		}
		_, _ = fmt.Fprintf(writer, "%s\t%s\t->\t%s\t%s\t%s\t%s\n",
			candidate.Name,
			candidate.CurrentRange,
			candidate.ProposedVersion,
			prompt.TierColor(candidate.Tier).Sprint(candidate.Tier),
			mark,
			candidate.SourceURL,
		)
	}
	_ = writer.Flush()
}

func renderCatalogJSON(out io.Writer, catalog []entities.UpdateCandidate) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if catalog == nil {
		catalog = []entities.UpdateCandidate{}
	}
	return encoder.Encode(catalog)
}

// renderUpgrade prints the outcome of an upgrade run.
func renderUpgrade(out io.Writer, result *commands.UpgradeResult) {
	success := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)

	for _, warning := range result.Warnings {
		_, _ = warn.Fprintln(out, "warning: "+warning)
	}

	switch result.Outcome {
	case entities.OutcomeUpToDate:
		_, _ = success.Fprintln(out, "All dependencies are up to date.")
	case entities.OutcomeCancelled:
		_, _ = fmt.Fprintln(out, "Cancelled, nothing was changed.")
	case entities.OutcomeNothingSelected:
		_, _ = fmt.Fprintln(out, "No updates selected, nothing was changed.")
	case entities.OutcomeDryRun:
		_, _ = fmt.Fprintf(out, "Dry run: %d updates would be applied.\n", len(result.Applied))
		_, _ = fmt.Fprint(out, manifestDiff(result.Before, result.After))
	case entities.OutcomeWritten:
		renderApplied(out, result.Applied)
		_, _ = success.Fprintf(out, "Updated %s; run your package manager to install.\n", entities.ManifestFileName)
	case entities.OutcomeInstalled:
		renderApplied(out, result.Applied)
		_, _ = success.Fprintf(out, "Installed %d updates.\n", len(result.Applied))
	case entities.OutcomeRolledBack:
		_, _ = warn.Fprintf(out, "Install failed; %s was restored from the backup.\n", entities.ManifestFileName)
	case entities.OutcomeKeptDirty:
		_, _ = warn.Fprintf(out, "Install failed; the updated %s was kept.\n", entities.ManifestFileName)
		if result.Install != nil && result.Install.BackupPath != "" {
			_, _ = warn.Fprintf(out, "The previous version is at %s.\n", result.Install.BackupPath)
		}
	}
}

func renderApplied(out io.Writer, applied []entities.UpdateCandidate) {
	for _, candidate := range applied {
		_, _ = fmt.Fprintf(out, "  %s %s -> %s (%s)\n",
			candidate.Name, candidate.CurrentRange, candidate.ProposedVersion,
			prompt.TierColor(candidate.Tier).Sprint(candidate.Tier))
	}
}

// manifestDiff renders a unified diff between two manifest versions.
func manifestDiff(before, after []byte) string {
	diff := udiff.Unified(
		"a/"+entities.ManifestFileName, "b/"+entities.ManifestFileName,
		string(before), string(after),
	)
	if strings.TrimSpace(diff) == "" {
		return ""
	}
	return diff
}
