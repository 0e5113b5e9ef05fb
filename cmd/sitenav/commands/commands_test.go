package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/nav"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

// project writes a config whose navigation links two pages and returns the CLI pointing at it.
func project(t *testing.T, pages ...string) (*CLI, string) {
	t.Helper()
	dir := t.TempDir()
	for _, p := range pages {
		writeFile(t, filepath.Join(dir, "docs", p), "# "+p+"\n")
	}
	cfgPath := filepath.Join(dir, "sitenav.yaml")
	writeFile(t, cfgPath, `version: "1"
site:
  title: Guide
  nav:
    - text: Home
      link: /
  sidebar:
    - text: Intro
      items:
        - text: Intro and Motivation
          link: /pages/intro-and-motivation
        - text: Conventions
          link: /pages/conventions
  edit_link:
    pattern: https://example.com/edit/main/docs/:path
content:
  directory: `+filepath.Join(dir, "docs")+`
output:
  directory: `+filepath.Join(dir, "dist")+`
  formats: [json, hugo]
`)
	return &CLI{Config: cfgPath}, dir
}

func TestKongParse(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{"-v", "validate", "--format", "json"})
	require.NoError(t, err)
	assert.Equal(t, "validate", ctx.Command())
	assert.True(t, cli.Verbose)
	assert.Equal(t, "json", cli.Validate.Format)

	_, err = parser.Parse([]string{"validate", "--format", "xml"})
	require.Error(t, err)
}

func TestBuildCmd(t *testing.T) {
	root, dir := project(t, "index.md", "pages/intro-and-motivation.md", "pages/conventions.md")
	var out bytes.Buffer

	err := (&BuildCmd{}).Run(context.Background(), &Global{Out: &out}, root)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "dist", "config.json"))
	assert.FileExists(t, filepath.Join(dir, "dist", "hugo.yaml"))
	assert.FileExists(t, filepath.Join(dir, "dist", "build-report.json"))
	assert.Contains(t, out.String(), "outcome=success")
}

func TestBuildCmd_FormatOverride(t *testing.T) {
	root, dir := project(t, "index.md", "pages/intro-and-motivation.md", "pages/conventions.md")

	err := (&BuildCmd{Format: []string{"toml"}, Output: filepath.Join(dir, "out")}).Run(context.Background(), &Global{Out: &bytes.Buffer{}}, root)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "out", "config.toml"))
	assert.NoFileExists(t, filepath.Join(dir, "out", "config.json"))
}

func TestBuildCmd_OverridesAreValidated(t *testing.T) {
	root, dir := project(t, "index.md", "pages/intro-and-motivation.md", "pages/conventions.md")
	f, err := os.OpenFile(root.Config, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString("  clean: true\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	tests := []struct {
		name string
		cmd  BuildCmd
	}{
		{"output is content", BuildCmd{Output: filepath.Join(dir, "docs")}},
		{"output holds config", BuildCmd{Output: dir}},
		{"unknown format", BuildCmd{Format: []string{"pdf"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Run(context.Background(), &Global{Out: &bytes.Buffer{}}, root)
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig), "got %v", err)
			assert.FileExists(t, filepath.Join(dir, "docs", "pages", "conventions.md"))
			assert.FileExists(t, root.Config)
		})
	}
}

func TestValidateCmd_ReportsBrokenLinks(t *testing.T) {
	root, _ := project(t, "index.md", "pages/intro-and-motivation.md")
	var out bytes.Buffer

	err := (&ValidateCmd{Format: "text"}).Run(context.Background(), &Global{Out: &out}, root)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	assert.Equal(t, 2, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
	assert.Contains(t, out.String(), "[link-target]")
	assert.Contains(t, out.String(), "/pages/conventions")
}

func TestValidateCmd_JSON(t *testing.T) {
	root, _ := project(t, "index.md", "pages/intro-and-motivation.md", "pages/conventions.md")
	var out bytes.Buffer

	require.NoError(t, (&ValidateCmd{Format: "json"}).Run(context.Background(), &Global{Out: &out}, root))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.EqualValues(t, 3, decoded["links_checked"])
}

func TestValidateCmd_Strict(t *testing.T) {
	root, dir := project(t, "index.md", "pages/intro-and-motivation.md", "pages/conventions.md")
	writeFile(t, filepath.Join(dir, "docs", "pages", "conventions.md"), "See [missing](./missing.md).\n")

	require.NoError(t, (&ValidateCmd{Format: "text"}).Run(context.Background(), &Global{Out: &bytes.Buffer{}}, root))

	err := (&ValidateCmd{Format: "text", Strict: true}).Run(context.Background(), &Global{Out: &bytes.Buffer{}}, root)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestInitCmd(t *testing.T) {
	dir := t.TempDir()
	root := &CLI{Config: filepath.Join(dir, "sitenav.yaml")}
	var out bytes.Buffer

	require.NoError(t, (&InitCmd{}).Run(context.Background(), &Global{Out: &out}, root))
	cfg, err := config.Load(root.Config)
	require.NoError(t, err)
	assert.Equal(t, nav.GuideSource(), cfg.Source())

	err = (&InitCmd{}).Run(context.Background(), &Global{Out: &out}, root)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestInitCmd_FromContent(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "docs", "index.md"), "# Home\n")
	writeFile(t, filepath.Join(dir, "docs", "pages", "basics", "language.md"), "# Language Basics\n")
	writeFile(t, filepath.Join(dir, "docs", "pages", "basics", "collections.md"), "# Collections\n")

	root := &CLI{Config: "sitenav.yaml"}
	require.NoError(t, (&InitCmd{FromContent: true}).Run(context.Background(), &Global{Out: &bytes.Buffer{}}, root))

	cfg, err := config.Load(root.Config)
	require.NoError(t, err)
	src := cfg.Source()
	require.Len(t, src.Sidebar, 1)
	assert.Equal(t, 2, src.Sidebar.ItemCount())
	assert.Equal(t, "/", src.Nav[0].Link)
	assert.Equal(t, src.Sidebar[0].Items[0].Link, src.Nav[1].Link)
}

func TestRenderTree(t *testing.T) {
	site, err := nav.BuildConfig()
	require.NoError(t, err)

	out := renderTree(site, true, false)
	assert.Contains(t, out, "TypeScript is Like C#")
	assert.Contains(t, out, "Conventions /pages/conventions")
	assert.Contains(t, out, "How Do I... (empty)")
}

func TestTreeCmd_UsesEmbeddedGuideWithoutConfig(t *testing.T) {
	root := &CLI{Config: filepath.Join(t.TempDir(), "missing.yaml")}
	var out bytes.Buffer
	require.NoError(t, (&TreeCmd{}).Run(context.Background(), &Global{Out: &out}, root))
	assert.Contains(t, out.String(), "Backend")
}
