package commands

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/sitenav/internal/build"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/metrics"
	"git.home.luguber.info/inful/sitenav/internal/server"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr  string `help:"Listen address" default:"127.0.0.1:4173"`
	Write bool   `help:"Also write outputs to the output directory on every rebuild"`
}

func (s *ServeCmd) Run(ctx context.Context, _ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	rec := metrics.NewPrometheusRecorder(nil)
	opts := build.Options{Recorder: rec, SkipWrite: !s.Write}
	srv := server.New(s.Addr, rec)

	publish := func(res *build.Result, err error) {
		if err != nil {
			slog.Error("Build failed; serving previous build", logfields.Error(err))
			srv.Fail(err)
			return
		}
		srv.Publish(res)
	}
	publish(build.Run(ctx, cfg, opts))

	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error { return srv.ListenAndServe(gctx) })
	grp.Go(func() error { return watchAndRebuild(gctx, root, cfg, opts, publish) })
	return grp.Wait()
}
