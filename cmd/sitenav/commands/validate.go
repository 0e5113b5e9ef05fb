package commands

import (
	"context"

	"git.home.luguber.info/inful/sitenav/internal/build"
	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/validate"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	Strict bool   `help:"Fail on warnings as well as errors"`
}

func (v *ValidateCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	res, err := build.Run(ctx, cfg, build.Options{SkipWrite: true})
	if res == nil {
		return err
	}
	out := g.out()
	if ferr := validate.NewFormatter(v.Format, colorEnabled(out)).Format(out, res.Validation); ferr != nil {
		return errors.WrapError(ferr, errors.CategoryInternal, "failed to write validation output").Build()
	}
	if err != nil {
		return err
	}
	if v.Strict && res.Validation.HasWarnings() {
		return errors.ValidationError("navigation has warnings (strict mode)").
			WithContext("warnings", res.Validation.Count(validate.SeverityWarning)).
			Build()
	}
	return nil
}
