package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"git.home.luguber.info/inful/sitenav/internal/build"
	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/metrics"
	"git.home.luguber.info/inful/sitenav/internal/validate"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string   `short:"o" help:"Override the output directory" type:"path"`
	Format []string `short:"f" help:"Override output formats (json, yaml, toml, hugo)" sep:","`
	Watch  bool     `short:"w" help:"Keep running and rebuild when the configuration or content changes"`
}

func (b *BuildCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if b.Output != "" {
		cfg.Output.Directory = b.Output
	}
	if len(b.Format) > 0 {
		cfg.Output.Formats = b.Format
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	var prom *metrics.PrometheusRecorder
	opts := build.Options{}
	if cfg.Metrics.Textfile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		opts.Recorder = prom
	}

	out := g.out()
	res, err := build.Run(ctx, cfg, opts)
	printBuild(out, res, err)
	writeTextfile(prom, cfg.Metrics.Textfile)

	if !b.Watch {
		return err
	}
	if err != nil {
		slog.Error("Initial build failed; watching for changes", logfields.Error(err))
	}
	return watchAndRebuild(ctx, root, cfg, opts, func(res *build.Result, err error) {
		printBuild(out, res, err)
		if err != nil {
			errors.NewCLIErrorAdapter(root.Verbose, slog.Default()).HandleError(err)
		}
		writeTextfile(prom, cfg.Metrics.Textfile)
	})
}

// printBuild writes validation findings and a one-line summary of a build.
func printBuild(w io.Writer, res *build.Result, err error) {
	if res == nil {
		return
	}
	if v := res.Validation; v != nil && (v.HasErrors() || v.HasWarnings()) {
		_ = validate.NewTextFormatter(colorEnabled(w)).Format(w, v)
	}
	if err == nil && res.Report != nil {
		fmt.Fprintln(w, res.Report.Summary())
	}
}

func writeTextfile(rec *metrics.PrometheusRecorder, path string) {
	if rec == nil || path == "" {
		return
	}
	if err := rec.WriteTextfile(path); err != nil {
		slog.Warn("Failed to write metrics textfile", logfields.Path(path), logfields.Error(err))
	}
}
