package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/yeswalrus/bazel-compilation-database/internal/config"
	"github.com/yeswalrus/bazel-compilation-database/internal/extlink"
	"github.com/yeswalrus/bazel-compilation-database/internal/gitignore"
	"github.com/yeswalrus/bazel-compilation-database/internal/logfields"
	"github.com/yeswalrus/bazel-compilation-database/internal/workspace"
)

// LinkCmd implements the 'link' command.
type LinkCmd struct {
	Workspace   string `short:"w" help:"Workspace root directory (defaults to discovery from cwd)"`
	NoGitignore bool   `help:"Skip maintaining the enclosing repository's git exclude entries"`
}

// Run executes the link command.
func (l *LinkCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	dir := l.Workspace
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		dir, err = workspace.Dir(cwd, cfg.Marker.Names)
		if err != nil {
			return err
		}
	}

	slog.Debug("Ensuring external symlink", logfields.Workspace(dir))
	if err := extlink.Ensure(dir); err != nil {
		return err
	}

	if l.NoGitignore {
		return nil
	}
	return gitignore.Ensure(dir, excludeEntries(cfg))
}

// excludeEntries builds the exclude patterns for a workspace: the convenience
// symlinks plus the generated package directory when it lives inside the
// workspace.
func excludeEntries(cfg *config.Config) []gitignore.Entry {
	entries := gitignore.DefaultEntries()
	gen := cfg.Generated.Directory
	if gen != "" && gen != "." && !filepath.IsAbs(gen) {
		entries = append(entries, gitignore.Entry{
			Pattern: filepath.ToSlash(filepath.Clean(gen)) + "/",
			Comment: "# Ignore the generated output base package.",
		})
	}
	return entries
}
