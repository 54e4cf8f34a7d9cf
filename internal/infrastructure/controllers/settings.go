package controllers

import (
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/npmpick/internal/domain/entities"
)

// projectDirFromArgs resolves the optional [path] argument to an absolute directory.
func projectDirFromArgs(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	return abs, nil
}

// loadSettings reads the config file (explicit or auto-detected) and applies
// the persistent flag overrides.
func loadSettings(cmd *cobra.Command, projectDir string) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		if found, err := entities.FindConfigFile(projectDir); err == nil {
			configPath = found
		}
	}
	if configPath != "" {
		logger.Infof("Using config file: %s", configPath)
	}

	settings, err := entities.NewSettings(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if registry, _ := cmd.Flags().GetString("registry"); registry != "" {
		settings.Registry = registry
	}
	if token, _ := cmd.Flags().GetString("token"); token != "" {
		settings.Token = token
	}
	if target, _ := cmd.Flags().GetString("target"); target != "" {
		settings.Target = target
	}
	if cmd.Flags().Changed("concurrency") {
		settings.Concurrency, _ = cmd.Flags().GetInt("concurrency")
	}

	if validateErr := settings.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return settings, nil
}

// baseOptions reads the flags shared by every subcommand.
func baseOptions(cmd *cobra.Command, projectDir string) entities.UpgradeOptions {
	filter, _ := cmd.Flags().GetStringSlice("filter")
	reject, _ := cmd.Flags().GetStringSlice("reject")
	return entities.UpgradeOptions{
		ProjectDir: projectDir,
		Filter:     filter,
		Reject:     reject,
	}
}

// AddPersistentFlags defines the flags every subcommand understands.
func AddPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")
	cmd.PersistentFlags().String("registry", "",
		"npm registry URL (overrides config and NPM_CONFIG_REGISTRY)")
	cmd.PersistentFlags().String("token", "",
		"Registry auth token (overrides config and NPM_TOKEN)")
	cmd.PersistentFlags().String("target", "",
		"Highest version to propose: latest, minor or patch")
	cmd.PersistentFlags().Int("concurrency", 0,
		"Number of parallel registry requests")
	cmd.PersistentFlags().StringSlice("filter", nil,
		"Only consider these packages (repeatable)")
	cmd.PersistentFlags().StringSlice("reject", nil,
		"Never consider these packages (repeatable)")
}
