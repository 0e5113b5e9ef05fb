package build

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/metrics"
	"git.home.luguber.info/inful/sitenav/internal/nav"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

// testConfig returns a config with a two-page content tree and a site that links both.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	writeFile(t, filepath.Join(docs, "index.md"), "# Home\n")
	writeFile(t, filepath.Join(docs, "pages", "intro-and-motivation.md"), "---\ntitle: Intro\n---\nSee [conventions](./conventions.md).\n")
	writeFile(t, filepath.Join(docs, "pages", "conventions.md"), "# Conventions\n")

	cfg := config.Default()
	cfg.Site = &nav.Source{
		Title: "Guide",
		Head:  []nav.HeadTag{{Tag: "link", Attrs: map[string]string{"rel": "icon", "href": "/favicon.ico"}}},
		Nav:   []nav.NavItem{{Text: "Home", Link: "/"}},
		Sidebar: nav.Sidebar{
			{Text: "Intro", Items: []nav.NavItem{
				{Text: "Intro and Motivation", Link: "/pages/intro-and-motivation"},
				{Text: "Conventions", Link: "/pages/conventions"},
			}},
			{Text: "How Do I...", Items: []nav.NavItem{}},
		},
		EditLink: nav.EditLink{Pattern: "https://example.com/edit/main/docs/:path"},
	}
	cfg.Content.Directory = docs
	cfg.Output.Directory = filepath.Join(root, "dist")
	cfg.Output.Formats = []string{"json", "yaml", "toml", "hugo"}
	cfg.Output.HeadPartial = true
	return cfg
}

func TestRun_WritesOutputsAndReport(t *testing.T) {
	cfg := testConfig(t)
	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)

	res, err := Run(context.Background(), cfg, Options{Recorder: rec})
	require.NoError(t, err)

	assert.Equal(t, OutcomeSuccess, res.Report.Outcome)
	_, err = uuid.Parse(res.Report.BuildID)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Report.PagesIndexed)
	assert.Equal(t, 3, res.Report.Links)
	assert.Len(t, res.Report.Pages, 3)
	assert.Equal(t, 1, res.Report.Issues["INFO"])
	assert.Len(t, res.Files, 5)

	for _, name := range []string{"config.json", "config.yaml", "config.toml", "hugo.yaml", "head.html", ReportFilename} {
		assert.FileExists(t, filepath.Join(cfg.Output.Directory, name))
	}

	data, err := os.ReadFile(filepath.Join(cfg.Output.Directory, ReportFilename))
	require.NoError(t, err)
	var persisted Report
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Equal(t, res.Report.BuildID, persisted.BuildID)

	// the placeholder group is forced collapsed
	assert.True(t, res.Site.Sidebar[1].Collapsed)

	n, err := testutil.GatherAndCount(reg, "sitenav_build_outcomes_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRun_OutputIsDeterministic(t *testing.T) {
	cfg := testConfig(t)

	first, err := Run(context.Background(), cfg, Options{})
	require.NoError(t, err)
	second, err := Run(context.Background(), cfg, Options{})
	require.NoError(t, err)

	require.Len(t, second.Files, len(first.Files))
	for i := range first.Files {
		assert.Equal(t, first.Files[i].Data, second.Files[i].Data, first.Files[i].Name)
	}
	assert.NotEqual(t, first.Report.BuildID, second.Report.BuildID)
}

func TestRun_ValidationErrorsBlockWrite(t *testing.T) {
	cfg := testConfig(t)
	cfg.Site.Sidebar[0].Items = append(cfg.Site.Sidebar[0].Items, nav.NavItem{Text: "Generics", Link: "/pages/generics"})

	res, err := Run(context.Background(), cfg, Options{})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	require.NotNil(t, res)
	assert.True(t, res.Validation.HasErrors())
	assert.Equal(t, OutcomeInvalid, res.Report.Outcome)
	assert.Empty(t, res.Files)
	assert.NoDirExists(t, cfg.Output.Directory)
}

func TestRun_ShapeViolation(t *testing.T) {
	cfg := testConfig(t)
	cfg.Site.Title = ""

	res, err := Run(context.Background(), cfg, Options{})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestRun_GuideWithoutContent(t *testing.T) {
	cfg := config.Default()
	cfg.Content.Directory = filepath.Join(t.TempDir(), "missing")
	cfg.Output.Directory = filepath.Join(t.TempDir(), "dist")

	res, err := Run(context.Background(), cfg, Options{SkipWrite: true})
	require.NoError(t, err)
	assert.Nil(t, res.Content)
	assert.Equal(t, "TypeScript is Like C#", res.Site.Title)
	assert.NotEmpty(t, res.Files)
	assert.NoDirExists(t, cfg.Output.Directory)
}

func TestRun_Canceled(t *testing.T) {
	cfg := testConfig(t)
	rec := metrics.NewPrometheusRecorder(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, cfg, Options{Recorder: rec})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_CleanRemovesStaleFiles(t *testing.T) {
	cfg := testConfig(t)
	stale := filepath.Join(cfg.Output.Directory, "stale.json")
	writeFile(t, stale, "{}")

	cfg.Output.Clean = true
	_, err := Run(context.Background(), cfg, Options{})
	require.NoError(t, err)
	assert.NoFileExists(t, stale)
	assert.FileExists(t, filepath.Join(cfg.Output.Directory, "config.json"))
}

func TestRun_CleanRefusesContentTree(t *testing.T) {
	tests := []struct {
		name   string
		output func(content string) string
	}{
		{"content directory", func(content string) string { return content }},
		{"ancestor of content", filepath.Dir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Output.Directory = tt.output(cfg.Content.Directory)
			cfg.Output.Clean = true

			_, err := Run(context.Background(), cfg, Options{})
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig), "got %v", err)
			assert.FileExists(t, filepath.Join(cfg.Content.Directory, "pages", "conventions.md"))
		})
	}
}

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestReport_Summary(t *testing.T) {
	r := newReport("abc", testTime)
	r.End = testTime.Add(1500 * time.Millisecond)
	r.Outcome = OutcomeWarning
	r.Issues["WARNING"] = 2
	assert.Equal(t, "build=abc outcome=warning groups=0 links=0 pages=0 errors=0 warnings=2 outputs=0 duration=1.5s", r.Summary())
}
