package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitenav/cmd/sitenav/commands"
	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli commands.CLI
	global := &commands.Global{Out: os.Stdout}
	parser := kong.Parse(&cli,
		kong.Name("sitenav"),
		kong.Description("Build, validate and preview the navigation configuration of a documentation site."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global, &cli),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	if err := parser.Run(); err != nil {
		stop()
		os.Exit(errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err))
	}
}
