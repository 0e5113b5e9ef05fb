package content

import (
	"path"
	"slices"
	"strings"
)

// LinkForPath maps a slash-separated path relative to the content root to its site link.
//
//	pages/intro.md        -> /pages/intro
//	pages/basics/index.md -> /pages/basics/
//	index.md              -> /
func LinkForPath(rel string, indexNames []string) string {
	rel = strings.TrimPrefix(path.Clean("/"+rel), "/")
	dir, file := path.Split(rel)
	stem := strings.TrimSuffix(file, path.Ext(file))

	if isIndexName(stem, indexNames) {
		if dir == "" {
			return "/"
		}
		return "/" + dir
	}
	return "/" + dir + stem
}

// NormalizeLink reduces a site link to the key used for lookups: query, fragment,
// document extensions and trailing slashes are dropped.
func NormalizeLink(link string) string {
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link = link[:i]
	}
	if link == "" {
		return ""
	}
	for _, ext := range []string{".html", ".md", ".markdown"} {
		link = strings.TrimSuffix(link, ext)
	}
	link = path.Clean("/" + link)
	if strings.HasSuffix(link, "/index") {
		link = strings.TrimSuffix(link, "index")
		link = path.Clean(link)
	}
	return link
}

// IsInternal reports whether a link destination points inside the site.
func IsInternal(dest string) bool {
	switch {
	case dest == "", strings.HasPrefix(dest, "#"):
		return false
	case strings.Contains(dest, "://"), strings.HasPrefix(dest, "//"):
		return false
	case strings.HasPrefix(dest, "mailto:"), strings.HasPrefix(dest, "tel:"), strings.HasPrefix(dest, "javascript:"):
		return false
	}
	return true
}

// ResolveFrom resolves a link destination found in the page at rel (content-relative path)
// into a normalized site link.
func ResolveFrom(rel, dest string) string {
	if i := strings.IndexAny(dest, "?#"); i >= 0 {
		dest = dest[:i]
	}
	if dest == "" {
		return ""
	}
	if strings.HasPrefix(dest, "/") {
		return NormalizeLink(dest)
	}
	return NormalizeLink(path.Join("/", path.Dir(rel), dest))
}

func isIndexName(stem string, indexNames []string) bool {
	return slices.ContainsFunc(indexNames, func(n string) bool {
		return strings.EqualFold(n, stem)
	})
}
