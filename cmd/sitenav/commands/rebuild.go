package commands

import (
	"context"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/sitenav/internal/build"
	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/watch"
)

// rebuildFunc receives the outcome of every rebuild.
type rebuildFunc func(res *build.Result, err error)

// watchAndRebuild reloads the configuration and rebuilds whenever the config file or
// the content tree changes, until ctx is canceled. The watched paths are those of cfg;
// a reload that moves the content directory takes effect on restart.
func watchAndRebuild(ctx context.Context, root *CLI, cfg *config.Config, opts build.Options, done rebuildFunc) error {
	wopts := watch.Options{Extensions: cfg.Content.Extensions}
	if exists(root.Config) {
		wopts.ConfigPath = root.Config
	}
	if exists(cfg.Content.Directory) {
		wopts.ContentDir = cfg.Content.Directory
	}

	w, err := watch.New(wopts, func(ctx context.Context, changed []string) {
		slog.Info("Change detected, rebuilding", logfields.Count(len(changed)))
		next, err := root.loadConfig()
		if err != nil {
			done(nil, err)
			return
		}
		done(build.Run(ctx, next, opts))
	})
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
