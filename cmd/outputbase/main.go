package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/yeswalrus/bazel-compilation-database/cmd/outputbase/commands"
	apperrors "github.com/yeswalrus/bazel-compilation-database/internal/errors"
	"github.com/yeswalrus/bazel-compilation-database/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("outputbase"),
		kong.Description("Resolve Bazel's output base and expose it as a loadable Starlark constant."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	err := ctx.Run(&commands.Global{})

	adapter := apperrors.NewCLIErrorAdapter(cli.Verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, adapter.FormatError(err))
		os.Exit(adapter.ExitCodeFor(err))
	}
}
