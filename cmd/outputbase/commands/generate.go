package commands

import (
	"log/slog"

	"github.com/yeswalrus/bazel-compilation-database/internal/logfields"
	"github.com/yeswalrus/bazel-compilation-database/internal/repogen"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Marker string `short:"m" help:"Workspace marker file path (overrides config and discovery)"`
	Output string `short:"o" help:"Directory for the generated package (overrides config)"`
}

// Run executes the generate command.
func (g *GenerateCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	layout, err := resolveLayout(g.Marker, cfg)
	if err != nil {
		return err
	}

	dir := resolveOutputDir(g.Output, cfg)
	slog.Info("Generating output base package",
		logfields.Marker(layout.Marker),
		logfields.OutputBase(layout.OutputBase),
		logfields.Path(dir))

	gen := repogen.NewGenerator(dir)
	if err := gen.Generate(layout.OutputBase); err != nil {
		return err
	}

	slog.Info("Output base package generated", logfields.Path(dir))
	return nil
}
