package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

func writeDocs(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, body := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(body), 0o600))
	}
	return root
}

func TestLinkForPath(t *testing.T) {
	names := []string{"index", "README"}
	tests := map[string]string{
		"index.md":                     "/",
		"README.md":                    "/",
		"pages/intro-and-motivation.md": "/pages/intro-and-motivation",
		"pages/basics/index.md":        "/pages/basics/",
		"pages/basics/language.markdown": "/pages/basics/language",
	}
	for in, want := range tests {
		assert.Equal(t, want, LinkForPath(in, names), in)
	}
}

func TestNormalizeLink(t *testing.T) {
	tests := map[string]string{
		"/":                          "/",
		"/pages/intro":               "/pages/intro",
		"/pages/intro/":              "/pages/intro",
		"/pages/intro.html":          "/pages/intro",
		"/pages/intro.md#motivation": "/pages/intro",
		"/pages/basics/index":        "/pages/basics",
		"/index.html":                "/",
		"#anchor":                    "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeLink(in), in)
	}
}

func TestResolveFrom(t *testing.T) {
	assert.Equal(t, "/pages/conventions", ResolveFrom("pages/intro.md", "./conventions"))
	assert.Equal(t, "/pages/intro", ResolveFrom("pages/basics/language.md", "../intro.md#why"))
	assert.Equal(t, "/pages/basics/generics", ResolveFrom("pages/basics/language.md", "/pages/basics/generics"))
	assert.Equal(t, "", ResolveFrom("pages/intro.md", "#top"))
}

func TestIsInternal(t *testing.T) {
	assert.True(t, IsInternal("/pages/intro"))
	assert.True(t, IsInternal("../intro.md"))
	assert.False(t, IsInternal("https://learn.microsoft.com"))
	assert.False(t, IsInternal("#heading"))
	assert.False(t, IsInternal("mailto:someone@example.com"))
	assert.False(t, IsInternal(""))
}

func TestDiscover(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"index.md":                       "---\nlayout: home\n---\n# Welcome\n",
		"pages/intro-and-motivation.md":  "---\ntitle: Intro and Motivation\n---\n# Ignored Heading\n\nSee [conventions](./conventions).\n",
		"pages/conventions.md":           "# Conventions\n\nBack to [intro](/pages/intro-and-motivation) or <https://example.com>.\n",
		"pages/basics/project-setup.md":  "Some text without a heading.\n",
		"pages/basics/index.md":          "# Basics\n",
		".vitepress/cache/ignored.md":    "# Cache\n",
		"node_modules/pkg/README.md":     "# Dependency\n",
		"pages/notes.txt":                "not markdown",
	})

	ix, err := Discover(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, 5, ix.Len())
	assert.Equal(t, root, ix.Root())

	intro, ok := ix.Lookup("/pages/intro-and-motivation")
	require.True(t, ok)
	assert.Equal(t, "Intro and Motivation", intro.Title)
	assert.Equal(t, []string{"./conventions"}, intro.Links)
	assert.NotEmpty(t, intro.Fingerprint)

	conventions, ok := ix.Lookup("/pages/conventions.html")
	require.True(t, ok)
	assert.Equal(t, "Conventions", conventions.Title)
	assert.Equal(t, []string{"/pages/intro-and-motivation", "https://example.com"}, conventions.Links)

	setup, ok := ix.Lookup("/pages/basics/project-setup")
	require.True(t, ok)
	assert.Equal(t, "Project Setup", setup.Title)

	home, ok := ix.Lookup("/")
	require.True(t, ok)
	assert.Equal(t, "Welcome", home.Title)

	_, ok = ix.Lookup("/pages/basics")
	assert.True(t, ok)
	_, ok = ix.Lookup("/pages/missing")
	assert.False(t, ok)

	pages := ix.Pages()
	require.Len(t, pages, 5)
	assert.Equal(t, "index.md", pages[0].Path)
}

func TestDiscover_FingerprintChangesWithContent(t *testing.T) {
	a := writeDocs(t, map[string]string{"page.md": "# A\n"})
	b := writeDocs(t, map[string]string{"page.md": "# B\n"})

	ixA, err := Discover(a, Options{})
	require.NoError(t, err)
	ixB, err := Discover(b, Options{})
	require.NoError(t, err)

	pa, _ := ixA.Lookup("/page")
	pb, _ := ixB.Lookup("/page")
	assert.NotEqual(t, pa.Fingerprint, pb.Fingerprint)
}

func TestDiscover_Errors(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"), Options{})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))

	root := writeDocs(t, map[string]string{"broken.md": "---\ntitle: x\n# never closed\n"})
	_, err = Discover(root, Options{})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryContent))
}

func TestSplitFrontmatter(t *testing.T) {
	fm, body, err := splitFrontmatter([]byte("---\ntitle: A\n---\nbody\n"))
	require.NoError(t, err)
	assert.Equal(t, "title: A\n", string(fm))
	assert.Equal(t, "body\n", string(body))

	fm, body, err = splitFrontmatter([]byte("---\r\ntitle: A\r\n---\r\nbody"))
	require.NoError(t, err)
	assert.Equal(t, "title: A\r\n", string(fm))
	assert.Equal(t, "body", string(body))

	fm, body, err = splitFrontmatter([]byte("# no frontmatter\n"))
	require.NoError(t, err)
	assert.Nil(t, fm)
	assert.Equal(t, "# no frontmatter\n", string(body))
}

func TestTitleFromSlug(t *testing.T) {
	assert.Equal(t, "Project Setup", TitleFromSlug("/pages/basics/project-setup"))
	assert.Equal(t, "Async Await", TitleFromSlug("/pages/intermediate/async_await/"))
	assert.Equal(t, "Home", TitleFromSlug("/"))
}

func TestScaffold(t *testing.T) {
	ix := NewIndex(
		Page{Path: "index.md", Link: "/", Title: "Home"},
		Page{Path: "pages/intro.md", Link: "/pages/intro", Title: "Intro"},
		Page{Path: "pages/basics/language.md", Link: "/pages/basics/language", Title: "Language"},
		Page{Path: "pages/basics/index.md", Link: "/pages/basics/", Title: "Basics Overview"},
		Page{Path: "pages/basics/collections.md", Link: "/pages/basics/collections", Title: "Collections"},
	)

	sidebar := Scaffold(ix)
	require.Len(t, sidebar, 2)

	assert.Equal(t, "Pages", sidebar[0].Text)
	assert.Equal(t, "/pages/intro", sidebar[0].Items[0].Link)

	assert.Equal(t, "Basics", sidebar[1].Text)
	require.Len(t, sidebar[1].Items, 3)
	assert.Equal(t, "/pages/basics/", sidebar[1].Items[0].Link)
	assert.Equal(t, "/pages/basics/collections", sidebar[1].Items[1].Link)
	assert.Equal(t, "/pages/basics/language", sidebar[1].Items[2].Link)
}
