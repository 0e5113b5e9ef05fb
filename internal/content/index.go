package content

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/inful/mdfp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

// Options controls discovery.
type Options struct {
	Extensions []string // defaults to .md and .markdown
	IndexNames []string // defaults to index and README
}

func (o Options) withDefaults() Options {
	if len(o.Extensions) == 0 {
		o.Extensions = []string{".md", ".markdown"}
	}
	if len(o.IndexNames) == 0 {
		o.IndexNames = []string{"index", "README"}
	}
	return o
}

// Page is one content document.
type Page struct {
	Path        string   `json:"path"` // slash separated, relative to the content root
	Link        string   `json:"link"`
	Title       string   `json:"title"`
	Links       []string `json:"-"`
	Fingerprint string   `json:"fingerprint"`
}

// Index is the set of content documents under a root directory.
type Index struct {
	root   string
	pages  []Page
	byLink map[string]int
}

var skipDirs = map[string]bool{
	"node_modules": true,
	"public":       true,
}

// Discover walks root and indexes every Markdown document.
func Discover(root string, opts Options) (*Index, error) {
	opts = opts.withDefaults()

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, errors.NotFoundError("content directory does not exist").WithContext("path", root).WithCause(err).Build()
	}

	idx := &Index{root: root, byLink: map[string]int{}}
	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && (strings.HasPrefix(d.Name(), ".") || skipDirs[d.Name()]) {
				return filepath.SkipDir
			}
			return nil
		}
		if !slices.Contains(opts.Extensions, strings.ToLower(filepath.Ext(p))) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		page, err := loadPage(p, filepath.ToSlash(rel), opts)
		if err != nil {
			return err
		}
		idx.add(page)
		return nil
	})
	if walkErr != nil {
		if _, ok := errors.AsClassified(walkErr); ok {
			return nil, walkErr
		}
		return nil, errors.WrapError(walkErr, errors.CategoryFileSystem, "failed to walk content directory").WithContext("path", root).Build()
	}

	slog.Debug("Indexed content", "root", root, "pages", len(idx.pages))
	return idx, nil
}

// NewIndex builds an index from already loaded pages. Used by tests and callers
// that source content from somewhere other than the filesystem.
func NewIndex(pages ...Page) *Index {
	idx := &Index{byLink: map[string]int{}}
	for _, p := range pages {
		idx.add(p)
	}
	return idx
}

func (ix *Index) add(p Page) {
	key := NormalizeLink(p.Link)
	if prev, ok := ix.byLink[key]; ok {
		// Two files serve the same link (index.md and README.md); the first wins.
		slog.Warn("Duplicate content link", "link", p.Link, "kept", ix.pages[prev].Path, "ignored", p.Path)
		return
	}
	ix.byLink[key] = len(ix.pages)
	ix.pages = append(ix.pages, p)
}

// Root returns the directory the index was discovered from.
func (ix *Index) Root() string { return ix.root }

// Len returns the number of pages.
func (ix *Index) Len() int { return len(ix.pages) }

// Pages returns the pages sorted by path.
func (ix *Index) Pages() []Page {
	out := slices.Clone(ix.pages)
	slices.SortFunc(out, func(a, b Page) int { return strings.Compare(a.Path, b.Path) })
	return out
}

// Lookup finds the page served at link.
func (ix *Index) Lookup(link string) (Page, bool) {
	i, ok := ix.byLink[NormalizeLink(link)]
	if !ok {
		return Page{}, false
	}
	return ix.pages[i], true
}

func loadPage(abs, rel string, opts Options) (Page, error) {
	// #nosec G304 - paths come from walking the configured content root
	data, err := os.ReadFile(abs)
	if err != nil {
		return Page{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to read content file").WithContext("path", abs).Build()
	}

	fm, body, err := splitFrontmatter(data)
	if err != nil {
		return Page{}, errors.WrapError(err, errors.CategoryContent, "invalid frontmatter").WithContext("path", rel).Build()
	}
	fields, err := parseFrontmatter(fm)
	if err != nil {
		return Page{}, errors.WrapError(err, errors.CategoryContent, "invalid frontmatter YAML").WithContext("path", rel).Build()
	}

	heading, links := analyzeBody(body)
	link := LinkForPath(rel, opts.IndexNames)

	title, _ := fields["title"].(string)
	if title == "" {
		title = heading
	}
	if title == "" {
		title = TitleFromSlug(link)
	}

	return Page{
		Path:        rel,
		Link:        link,
		Title:       strings.TrimSpace(title),
		Links:       links,
		Fingerprint: mdfp.CalculateFingerprintFromParts(string(fm), string(body)),
	}, nil
}

// TitleFromSlug derives display text from the last element of a link:
// "/pages/basics/project-setup" becomes "Project Setup".
func TitleFromSlug(link string) string {
	slug := strings.Trim(link, "/")
	if i := strings.LastIndex(slug, "/"); i >= 0 {
		slug = slug[i+1:]
	}
	if slug == "" {
		return "Home"
	}
	words := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	return cases.Title(language.English).String(words)
}
