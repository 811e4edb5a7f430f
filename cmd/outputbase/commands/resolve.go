package commands

import (
	"fmt"
)

// ResolveCmd implements the 'resolve' command.
type ResolveCmd struct {
	Marker string `short:"m" help:"Workspace marker file path (overrides config and discovery)"`
	All    bool   `short:"a" help:"Print the full resolved layout instead of just the output base"`
}

// Run executes the resolve command.
func (r *ResolveCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	layout, err := resolveLayout(r.Marker, cfg)
	if err != nil {
		return err
	}

	if r.All {
		fmt.Printf("marker:      %s\n", layout.Marker)
		fmt.Printf("execroot:    %s\n", layout.ExecRoot)
		fmt.Printf("output_base: %s\n", layout.OutputBase)
		fmt.Printf("external:    %s\n", layout.ExternalDir())
		return nil
	}

	fmt.Println(layout.OutputBase)
	return nil
}
