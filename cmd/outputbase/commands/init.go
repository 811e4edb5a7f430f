package commands

import (
	"log/slog"

	"github.com/yeswalrus/bazel-compilation-database/internal/config"
	"github.com/yeswalrus/bazel-compilation-database/internal/logfields"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

// Run executes the init command.
func (i *InitCmd) Run(_ *Global, root *CLI) error {
	slog.Info("Initializing configuration", logfields.Path(root.Config))
	return config.Init(root.Config, i.Force)
}
