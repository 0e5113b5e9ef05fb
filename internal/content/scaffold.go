package content

import (
	"path"
	"slices"
	"strings"

	"git.home.luguber.info/inful/sitenav/internal/nav"
)

// Scaffold derives a sidebar skeleton from the index: one group per directory,
// pages ordered by path with the directory's index page first. The site root
// page is left to the top navigation.
func Scaffold(ix *Index) nav.Sidebar {
	groups := map[string]*nav.NavGroup{}
	var order []string

	for _, p := range ix.Pages() {
		if NormalizeLink(p.Link) == "/" {
			continue
		}
		dir := path.Dir(p.Path)
		g, ok := groups[dir]
		if !ok {
			g = &nav.NavGroup{Text: groupText(dir), Items: []nav.NavItem{}}
			groups[dir] = g
			order = append(order, dir)
		}
		item := nav.NavItem{Text: p.Title, Link: p.Link}
		if strings.HasSuffix(p.Link, "/") {
			g.Items = append([]nav.NavItem{item}, g.Items...)
			continue
		}
		g.Items = append(g.Items, item)
	}

	slices.Sort(order)
	sidebar := make(nav.Sidebar, 0, len(order))
	for _, dir := range order {
		sidebar = append(sidebar, *groups[dir])
	}
	return sidebar
}

func groupText(dir string) string {
	if dir == "." {
		return "Guide"
	}
	return TitleFromSlug(dir)
}
