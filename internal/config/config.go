// Package config loads the tool configuration from YAML, with environment
// variable expansion and optional .env file loading.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/yeswalrus/bazel-compilation-database/internal/errors"
	"github.com/yeswalrus/bazel-compilation-database/internal/workspace"
)

// Config represents the application configuration
type Config struct {
	Marker    MarkerConfig    `yaml:"marker"`
	Generated GeneratedConfig `yaml:"generated"`
	Watch     WatchConfig     `yaml:"watch"`
}

// MarkerConfig controls how the workspace marker file is located
type MarkerConfig struct {
	Path  string   `yaml:"path,omitempty"`  // Explicit marker file path; skips discovery
	Names []string `yaml:"names,omitempty"` // Marker names to search for, in precedence order
}

// GeneratedConfig controls where the generated package is written
type GeneratedConfig struct {
	Directory string `yaml:"directory"`
}

// WatchConfig controls watch-mode behavior
type WatchConfig struct {
	DebounceSeconds int `yaml:"debounce_seconds,omitempty"`
}

// Debounce returns the watch debounce interval as a duration.
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceSeconds) * time.Second
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, apperrors.New(apperrors.CategoryConfig, apperrors.SeverityFatal,
			"configuration file not found").WithContext("path", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryConfig, apperrors.SeverityFatal,
			"failed to read config file").WithContext("path", configPath)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryConfig, apperrors.SeverityFatal,
			"failed to unmarshal config").WithContext("path", configPath)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if len(c.Marker.Names) == 0 {
		c.Marker.Names = workspace.DefaultMarkerNames
	}
	// Repository rules run with the repository directory as cwd, so the
	// generated package lands there unless redirected.
	if c.Generated.Directory == "" {
		c.Generated.Directory = "."
	}
	if c.Watch.DebounceSeconds <= 0 {
		c.Watch.DebounceSeconds = 2
	}
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return apperrors.New(apperrors.CategoryValidation, apperrors.SeverityFatal,
			fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath))
	}

	example := Config{
		Marker: MarkerConfig{
			Names: workspace.DefaultMarkerNames,
		},
		Generated: GeneratedConfig{
			Directory: "bazel-gen/output_base",
		},
		Watch: WatchConfig{
			DebounceSeconds: 2,
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryInternal, apperrors.SeverityFatal,
			"failed to marshal example config")
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityFatal,
			"failed to write config file").WithContext("path", configPath)
	}

	return nil
}
