package build

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/content"
	"git.home.luguber.info/inful/sitenav/internal/editlink"
	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/metrics"
	"git.home.luguber.info/inful/sitenav/internal/nav"
	"git.home.luguber.info/inful/sitenav/internal/render"
	"git.home.luguber.info/inful/sitenav/internal/validate"
)

// Stage names, in execution order.
const (
	StageEditLink = "edit_link"
	StageNav      = "nav"
	StageContent  = "content"
	StageValidate = "validate"
	StageRender   = "render"
	StageWrite    = "write"
)

// Options tunes a single run.
type Options struct {
	Recorder metrics.Recorder // nil means metrics.NoopRecorder
	// SkipWrite stops after rendering; nothing touches the output directory.
	SkipWrite bool
}

// Result is everything a successful (or validation-failed) run produced.
type Result struct {
	Site       *nav.SiteConfig
	Content    *content.Index // nil when the content directory does not exist
	Validation *validate.Result
	Files      []render.File
	Report     *Report
}

type runner struct {
	cfg    *config.Config
	opts   Options
	rec    metrics.Recorder
	report *Report
	log    *slog.Logger
}

// Run executes the pipeline once. When validation reports errors the returned Result
// is still populated (without files) and the error is a validation error.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Result, error) {
	rec := opts.Recorder
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	id := uuid.NewString()
	r := &runner{
		cfg:    cfg,
		opts:   opts,
		rec:    rec,
		report: newReport(id, time.Now()),
		log:    slog.Default().With(logfields.BuildID(id)),
	}

	res, err := r.run(ctx)
	r.finish(err)
	if res != nil {
		res.Report = r.report
	}
	return res, err
}

func (r *runner) run(ctx context.Context) (*Result, error) {
	res := &Result{}

	src := r.cfg.Source()
	if err := r.stage(ctx, StageEditLink, func() error {
		link, err := editlink.Resolve(r.cfg.EditLink, src.EditLink)
		if err != nil {
			return err
		}
		src.EditLink = link
		return nil
	}); err != nil {
		return nil, err
	}

	if err := r.stage(ctx, StageNav, func() error {
		site, err := nav.Build(src)
		if err != nil {
			return err
		}
		res.Site = site
		return nil
	}); err != nil {
		return nil, err
	}

	if err := r.stage(ctx, StageContent, func() error {
		ix, err := content.Discover(r.cfg.Content.Directory, content.Options{
			Extensions: r.cfg.Content.Extensions,
			IndexNames: r.cfg.Content.IndexNames,
		})
		if errors.HasCategory(err, errors.CategoryNotFound) {
			r.log.Warn("Content directory not found, skipping content checks", logfields.Path(r.cfg.Content.Directory))
			return nil
		}
		if err != nil {
			return err
		}
		res.Content = ix
		return nil
	}); err != nil {
		return nil, err
	}

	if err := r.stage(ctx, StageValidate, func() error {
		res.Validation = validate.New().Validate(validate.Input{Site: res.Site, Content: res.Content})
		return nil
	}); err != nil {
		return nil, err
	}
	r.summarize(res)
	if res.Validation.HasErrors() {
		return res, errors.ValidationError("navigation failed validation").
			WithContext("errors", res.Validation.Count(validate.SeverityError)).
			WithContext("warnings", res.Validation.Count(validate.SeverityWarning)).
			Build()
	}

	if err := r.stage(ctx, StageRender, func() error {
		files, err := render.Render(res.Site, r.cfg.Output.Formats, r.cfg.Output.HeadPartial)
		if err != nil {
			return err
		}
		res.Files = files
		return nil
	}); err != nil {
		return nil, err
	}
	for _, f := range res.Files {
		r.report.Outputs = append(r.report.Outputs, OutputFile{Name: f.Name, Format: f.Format, Bytes: len(f.Data)})
	}

	if r.opts.SkipWrite {
		return res, nil
	}
	if err := r.stage(ctx, StageWrite, func() error { return r.write(res.Files) }); err != nil {
		return nil, err
	}
	return res, nil
}

// stage times fn and records its result. Cancellation is checked before each stage.
func (r *runner) stage(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	err := fn()
	d := time.Since(start)

	r.report.StageDurations[name] = float64(d.Microseconds()) / 1000
	r.rec.ObserveStageDuration(name, d)
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultFailed
	}
	r.rec.IncStageResult(name, result)
	r.log.Debug("Stage finished", logfields.Stage(name), logfields.DurationMS(float64(d.Microseconds())/1000), logfields.Error(err))
	return err
}

func (r *runner) summarize(res *Result) {
	rep := r.report
	rep.Title = res.Site.Title
	rep.Groups = len(res.Site.Sidebar)
	rep.Links = len(res.Site.Links())
	rep.EditLinkPattern = res.Site.EditLink.Pattern
	r.rec.SetNavLinks(rep.Links)

	if res.Content != nil {
		rep.PagesIndexed = res.Content.Len()
		for _, p := range res.Content.Pages() {
			rep.Pages = append(rep.Pages, PageFingerprint{Path: p.Path, Link: p.Link, Fingerprint: p.Fingerprint})
		}
	}
	r.rec.SetPagesIndexed(rep.PagesIndexed)

	for rule, issues := range res.Validation.ByRule() {
		counts := map[validate.Severity]int{}
		for _, issue := range issues {
			counts[issue.Severity]++
		}
		for sev, n := range counts {
			r.rec.AddIssues(rule, sev.String(), n)
		}
	}
	for _, sev := range []validate.Severity{validate.SeverityError, validate.SeverityWarning, validate.SeverityInfo} {
		rep.Issues[sev.String()] = res.Validation.Count(sev)
	}
}

func (r *runner) write(files []render.File) error {
	dir := r.cfg.Output.Directory
	if r.cfg.Output.Clean {
		if err := config.ValidateClean(r.cfg); err != nil {
			return err
		}
		if err := os.RemoveAll(dir); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to clean output directory").
				WithContext("path", dir).
				Build()
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", dir).
			Build()
	}
	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		if err := writeAtomic(path, f.Data); err != nil {
			return err
		}
		r.log.Debug("Wrote output", logfields.Path(path), logfields.Format(f.Format))
	}
	return nil
}

func (r *runner) finish(err error) {
	rep := r.report
	rep.End = time.Now()
	switch {
	case err == nil && rep.Issues["WARNING"] > 0:
		rep.Outcome = OutcomeWarning
	case err == nil:
		rep.Outcome = OutcomeSuccess
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		rep.Outcome = OutcomeCanceled
	case errors.HasCategory(err, errors.CategoryValidation):
		rep.Outcome = OutcomeInvalid
	default:
		rep.Outcome = OutcomeFailed
	}

	r.rec.ObserveBuildDuration(rep.Duration())
	r.rec.IncBuildOutcome(metrics.BuildOutcomeLabel(rep.Outcome))

	if err != nil {
		return
	}
	if !r.opts.SkipWrite {
		if perr := rep.Persist(r.cfg.Output.Directory); perr != nil {
			r.log.Warn("Failed to persist build report", logfields.Error(perr))
		}
	}
	r.log.Info("Build complete",
		slog.String("outcome", string(rep.Outcome)),
		logfields.Count(len(rep.Outputs)),
		logfields.DurationMS(float64(rep.Duration().Microseconds())/1000))
}
