package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/yeswalrus/bazel-compilation-database/internal/config"
	"github.com/yeswalrus/bazel-compilation-database/internal/outputbase"
	"github.com/yeswalrus/bazel-compilation-database/internal/workspace"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"outputbase.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" help:"Resolve the output base and write the generated package"`
	Resolve  ResolveCmd  `cmd:"" help:"Resolve and print the output base path"`
	Link     LinkCmd     `cmd:"" help:"Ensure the external convenience symlink at the workspace root"`
	Watch    WatchCmd    `cmd:"" help:"Watch the workspace marker and regenerate on change"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig loads the configuration file named by the root flag, falling
// back to defaults when the default file is simply absent.
func loadConfig(root *CLI) (*config.Config, error) {
	if _, err := os.Stat(root.Config); os.IsNotExist(err) {
		return config.Default(), nil
	}
	return config.Load(root.Config)
}

// findMarker determines the marker file path.
// Priority: command flag > config marker.path > workspace discovery from cwd.
func findMarker(flagMarker string, cfg *config.Config) (string, error) {
	if flagMarker != "" {
		return flagMarker, nil
	}
	if cfg.Marker.Path != "" {
		return cfg.Marker.Path, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return workspace.FindMarker(cwd, cfg.Marker.Names)
}

// resolveLayout locates the marker and resolves the Bazel layout from it.
func resolveLayout(flagMarker string, cfg *config.Config) (outputbase.Layout, error) {
	marker, err := findMarker(flagMarker, cfg)
	if err != nil {
		return outputbase.Layout{}, err
	}
	return outputbase.Resolve(marker)
}

// resolveOutputDir determines the generated package directory.
// Priority: command flag > config generated.directory.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Generated.Directory
}
