package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"git.home.luguber.info/inful/sitenav/internal/config"
)

// Global carries state shared by every subcommand.
type Global struct {
	Out io.Writer // command output; logs go to stderr
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (optional; the embedded guide is used when missing)" default:"sitenav.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Build and write the site configuration"`
	Validate ValidateCmd `cmd:"" help:"Validate navigation against the content tree"`
	Init     InitCmd     `cmd:"" help:"Write a starter configuration file"`
	Tree     TreeCmd     `cmd:"" help:"Print the sidebar tree"`
	Serve    ServeCmd    `cmd:"" help:"Serve the configuration and rebuild on change"`
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

// loadConfig loads the configured file, falling back to defaults when it does not exist.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.LoadOrDefault(c.Config)
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// colorEnabled reports whether w is a terminal that should receive styled output.
func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
