//go:build unit

package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/npmpick/internal/domain/commands"
	"github.com/rios0rios0/npmpick/internal/domain/entities"
	"github.com/rios0rios0/npmpick/internal/infrastructure/controllers"
	"github.com/rios0rios0/npmpick/test/domain/commanddoubles"
	"github.com/rios0rios0/npmpick/test/domain/entitybuilders"
)

// newCommand wires a controller into a cobra command the way main does.
func newCommand(t *testing.T, controller entities.Controller, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "npmpick.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("registry: https://registry.example.com\n"), 0o600))

	out := &bytes.Buffer{}
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:  controller.GetBind().Use,
		RunE: controller.Execute,
	}
	controllers.AddPersistentFlags(cmd)
	controller.AddFlags(cmd)
	cmd.SetOut(out)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	cmd.SetContext(context.Background())
	return cmd, out
}

func TestUpgradeController(t *testing.T) {
	t.Parallel()

	t.Run("should pass flags through to the upgrade command", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubUpgradeCommand{Result: &commands.UpgradeResult{Outcome: entities.OutcomeUpToDate}}
		controller := controllers.NewUpgradeControllerWith(stub, func() bool { return true })
		projectDir := t.TempDir()
		cmd, out := newCommand(t, controller, projectDir,
			"--dry-run", "--no-backup", "--target", "minor", "--filter", "a", "--filter", "b", "--reject", "c")

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		assert.Equal(t, projectDir, stub.LastOptions.ProjectDir)
		assert.True(t, stub.LastOptions.DryRun)
		assert.True(t, stub.LastOptions.Interactive)
		assert.Equal(t, []string{"a", "b"}, stub.LastOptions.Filter)
		assert.Equal(t, []string{"c"}, stub.LastOptions.Reject)
		assert.False(t, stub.LastSettings.Backup)
		assert.Equal(t, entities.TargetMinor, stub.LastSettings.Target)
		assert.Contains(t, out.String(), "up to date")
	})

	t.Run("should run non-interactively with --yes", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubUpgradeCommand{Result: &commands.UpgradeResult{Outcome: entities.OutcomeNothingSelected}}
		controller := controllers.NewUpgradeControllerWith(stub, func() bool { return true })
		cmd, _ := newCommand(t, controller, t.TempDir(), "--yes")

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		assert.False(t, stub.LastOptions.Interactive)
	})

	t.Run("should print a unified diff on dry run", func(t *testing.T) {
		t.Parallel()

		// given
		applied := entitybuilders.NewUpdateCandidateBuilder().BuildCandidate()
		stub := &commanddoubles.StubUpgradeCommand{Result: &commands.UpgradeResult{
			Outcome: entities.OutcomeDryRun,
			Applied: []entities.UpdateCandidate{applied},
			Before:  []byte("{\n  \"left-pad\": \"^1.0.0\"\n}\n"),
			After:   []byte("{\n  \"left-pad\": \"^1.3.0\"\n}\n"),
		}}
		controller := controllers.NewUpgradeControllerWith(stub, func() bool { return true })
		cmd, out := newCommand(t, controller, t.TempDir(), "--dry-run")

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		assert.Contains(t, out.String(), "--- a/package.json")
		assert.Contains(t, out.String(), `-  "left-pad": "^1.0.0"`)
		assert.Contains(t, out.String(), `+  "left-pad": "^1.3.0"`)
	})

	t.Run("should return command errors", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubUpgradeCommand{Err: &entities.ResolutionError{Package: "left-pad", Err: assert.AnError}}
		controller := controllers.NewUpgradeControllerWith(stub, func() bool { return true })
		cmd, _ := newCommand(t, controller, t.TempDir())

		// when
		err := cmd.Execute()

		// then
		var resolutionErr *entities.ResolutionError
		assert.ErrorAs(t, err, &resolutionErr)
	})

	t.Run("should reject an invalid target before running", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubUpgradeCommand{}
		controller := controllers.NewUpgradeControllerWith(stub, func() bool { return true })
		cmd, _ := newCommand(t, controller, t.TempDir(), "--target", "nightly")

		// when
		err := cmd.Execute()

		// then
		require.Error(t, err)
		assert.Zero(t, stub.Calls)
	})
}

func TestListController(t *testing.T) {
	t.Parallel()

	t.Run("should print the catalog as a table", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubListCommand{Catalog: []entities.UpdateCandidate{
			entitybuilders.NewUpdateCandidateBuilder().BuildCandidate(),
		}}
		cmd, out := newCommand(t, controllers.NewListController(stub), t.TempDir())

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		assert.Contains(t, out.String(), "PACKAGE")
		assert.Contains(t, out.String(), "left-pad")
		assert.Contains(t, out.String(), "^1.3.0")
	})

	t.Run("should print the catalog as JSON", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubListCommand{Catalog: []entities.UpdateCandidate{
			entitybuilders.NewUpdateCandidateBuilder().BuildCandidate(),
		}}
		cmd, out := newCommand(t, controllers.NewListController(stub), t.TempDir(), "--json")

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, "left-pad", decoded[0]["name"])
		assert.Equal(t, "minor", decoded[0]["tier"])
	})

	t.Run("should print an empty JSON array when everything is current", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubListCommand{}
		cmd, out := newCommand(t, controllers.NewListController(stub), t.TempDir(), "--json")

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		assert.JSONEq(t, "[]", out.String())
	})
}
