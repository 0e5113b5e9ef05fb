package render

import (
	"fmt"
	"strings"
	"unicode"

	"git.home.luguber.info/inful/sitenav/internal/nav"
)

type hugoEncoder struct{}

func (hugoEncoder) Format() string   { return FormatHugo }
func (hugoEncoder) Filename() string { return "hugo.yaml" }

// Encode writes a Hugo site configuration: menu.main mirrors the top navigation and
// menu.sidebar holds one parent entry per group with its pages as children.
func (hugoEncoder) Encode(cfg *nav.SiteConfig) ([]byte, error) {
	params := map[string]any{}
	root := map[string]any{
		"title":        cfg.Title,
		"languageCode": "en",
		"params":       params,
		"menu": map[string]any{
			"main":    hugoMainMenu(cfg),
			"sidebar": hugoSidebarMenu(cfg.Sidebar),
		},
	}

	if cfg.Description != "" {
		params["description"] = cfg.Description
	}
	if p := cfg.EditLink.Pattern; p != "" {
		edit := map[string]any{"enable": true, "pattern": p}
		if base, ok := strings.CutSuffix(p, nav.PathPlaceholder); ok {
			edit["base"] = base
		}
		if cfg.EditLink.Text != "" {
			edit["text"] = cfg.EditLink.Text
		}
		params["editURL"] = edit
	}
	if len(cfg.SocialLinks) > 0 {
		social := make([]map[string]any, 0, len(cfg.SocialLinks))
		for _, s := range cfg.SocialLinks {
			social = append(social, map[string]any{"icon": s.Icon, "url": s.Link})
		}
		params["social"] = social
	}

	return marshalYAML(root)
}

func hugoMainMenu(cfg *nav.SiteConfig) []map[string]any {
	main := make([]map[string]any, 0, len(cfg.Nav)+len(cfg.SocialLinks))
	for i, it := range cfg.Nav {
		main = append(main, map[string]any{
			"identifier": menuID("main", i, it.Text),
			"name":       it.Text,
			"url":        it.Link,
			"weight":     (i + 1) * 10,
		})
	}
	// social icons sort after every nav entry
	socialWeight := (len(cfg.Nav) + 1) * 10
	for i, s := range cfg.SocialLinks {
		main = append(main, map[string]any{
			"identifier": menuID("social", i, s.Icon),
			"name":       s.Icon,
			"url":        s.Link,
			"weight":     socialWeight + i,
			"params":     map[string]any{"icon": s.Icon},
		})
	}
	return main
}

func hugoSidebarMenu(sidebar nav.Sidebar) []map[string]any {
	menu := make([]map[string]any, 0, len(sidebar)+sidebar.ItemCount())
	for gi, g := range sidebar {
		id := menuID("group", gi, g.Text)
		menu = append(menu, map[string]any{
			"identifier": id,
			"name":       g.Text,
			"weight":     (gi + 1) * 100,
			"params":     map[string]any{"collapsed": g.Collapsed},
		})
		for ii, it := range g.Items {
			menu = append(menu, map[string]any{
				"identifier": fmt.Sprintf("%s-%d", id, ii+1),
				"name":       it.Text,
				"url":        it.Link,
				"parent":     id,
				"weight":     (gi+1)*100 + ii + 1,
			})
		}
	}
	return menu
}

// menuID builds a Hugo menu identifier. Display text may repeat, so the position keeps it unique.
func menuID(prefix string, i int, text string) string {
	if slug := slugify(text); slug != "" {
		return fmt.Sprintf("%s-%d-%s", prefix, i+1, slug)
	}
	return fmt.Sprintf("%s-%d", prefix, i+1)
}

// slugify lower-cases s and collapses every run of non-alphanumerics into one dash.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
