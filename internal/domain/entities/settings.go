package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRegistry    = "https://registry.npmjs.org"
	defaultConcurrency = 8
	defaultTimeout     = 30 * time.Second

	TargetLatest = "latest"
	TargetMinor  = "minor"
	TargetPatch  = "patch"

	RollbackKeep    = "keep"
	RollbackRestore = "restore"
)

// Settings is the user configuration, read from an optional YAML file and
// overridden by environment variables and flags.
type Settings struct {
	Registry         string        `yaml:"registry"           validate:"required,url"`
	Token            string        `yaml:"token"`
	Target           string        `yaml:"target"             validate:"oneof=latest minor patch"`
	Backup           bool          `yaml:"backup"`
	RollbackOnCancel string        `yaml:"rollback_on_cancel" validate:"oneof=keep restore"`
	Concurrency      int           `yaml:"concurrency"        validate:"min=1,max=32"`
	Timeout          time.Duration `yaml:"timeout"            validate:"gt=0"`
	Changelog        bool          `yaml:"changelog"`
	Reject           []string      `yaml:"reject"             validate:"dive,required"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`) //nolint:gochecknoglobals // compiled once

// DefaultSettings returns the settings used when no configuration file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Registry:         DefaultRegistry,
		Target:           TargetLatest,
		Backup:           true,
		RollbackOnCancel: RollbackKeep,
		Concurrency:      defaultConcurrency,
		Timeout:          defaultTimeout,
	}
}

// NewSettings reads the configuration file at path on top of the defaults.
// An empty path yields the defaults. Environment overrides are applied last.
func NewSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	settings.applyEnv()
	settings.Token = resolveToken(settings.Token)
	settings.Registry = strings.TrimRight(settings.Registry, "/")

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Validate checks the settings against their field constraints.
func (s *Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return fmt.Errorf("invalid setting %q: failed %q validation (value %v)",
				strings.ToLower(first.Field()), first.Tag(), first.Value())
		}
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// RestoreOnCancel reports whether a cancelled rollback prompt restores the backup.
func (s *Settings) RestoreOnCancel() bool {
	return s.RollbackOnCancel == RollbackRestore
}

func (s *Settings) applyEnv() {
	if registry := os.Getenv("NPM_CONFIG_REGISTRY"); registry != "" {
		s.Registry = registry
	}
	if s.Token == "" {
		for _, name := range []string{"NPMPICK_TOKEN", "NPM_TOKEN"} {
			if token := os.Getenv(name); token != "" {
				s.Token = token
				break
			}
		}
	}
}

// configFileNames are the accepted npmpick config names, in lookup order.
var configFileNames = []string{ //nolint:gochecknoglobals // lookup table
	".npmpick.yaml", ".npmpick.yml", "npmpick.yaml", "npmpick.yml",
}

// FindConfigFile looks for an npmpick config next to package.json, then in
// each parent directory up to the filesystem root (so a workspace package
// picks up the monorepo's config), then in the user config directory and the
// home directory.
func FindConfigFile(projectDir string) (string, error) {
	var locations []string
	for dir := filepath.Clean(projectDir); ; dir = filepath.Dir(dir) {
		locations = append(locations, dir)
		if filepath.Dir(dir) == dir {
			break
		}
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		locations = append(locations, filepath.Join(configDir, "npmpick"))
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, homeDir)
	}

	for _, location := range locations {
		for _, name := range configFileNames {
			candidate := filepath.Join(location, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("no %s found from %s upwards or in the user config directory",
		strings.Join(configFileNames, "/"), projectDir)
}

// resolveToken turns the configured registry token into its value. ${VAR}
// references are expanded, and a result naming an existing file (for example
// an "~/.npm-token" path) is replaced by that file's trimmed content.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	token := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		name := envVarPattern.FindStringSubmatch(match)[1]
		value, ok := os.LookupEnv(name)
		if !ok {
			logger.Warnf("Registry token references %q, which is not set", name)
		}
		return value
	})

	if content, ok := readTokenFile(token); ok {
		return content
	}
	return token
}

// readTokenFile reads a token stored in a file, expanding a leading "~/".
func readTokenFile(path string) (string, bool) {
	if rest, found := strings.CutPrefix(path, "~/"); found {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		path = filepath.Join(homeDir, rest)
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warnf("Failed to read registry token file %q: %v", path, err)
		return "", false
	}
	logger.Debugf("Read registry token from %q", path)
	return strings.TrimSpace(string(data)), true
}
