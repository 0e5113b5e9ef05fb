package nav

import (
	"fmt"
	"maps"
	"net/url"
	"strings"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

// Violation is a single shape problem found in authored navigation data.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return v.Field + ": " + v.Message
}

// Build validates the authored source and returns an immutable SiteConfig.
// The returned value shares no slices or maps with src.
func Build(src Source) (*SiteConfig, error) {
	if violations := CheckShape(src); len(violations) > 0 {
		msgs := make([]string, len(violations))
		for i, v := range violations {
			msgs[i] = v.String()
		}
		return nil, errors.ValidationError(fmt.Sprintf("navigation has %d shape violation(s)", len(violations))).
			WithContext("violations", msgs).
			Build()
	}

	return &SiteConfig{
		Title:       strings.TrimSpace(src.Title),
		Description: strings.TrimSpace(src.Description),
		Head:        cloneHead(src.Head),
		Nav:         cloneItems(src.Nav),
		Sidebar:     cloneSidebar(src.Sidebar),
		EditLink:    src.EditLink,
		SocialLinks: append([]SocialLink{}, src.SocialLinks...),
	}, nil
}

// CheckShape reports every shape violation in src. An empty result means Build will succeed.
func CheckShape(src Source) []Violation {
	var out []Violation
	add := func(field, format string, args ...any) {
		out = append(out, Violation{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(src.Title) == "" {
		add("title", "must not be empty")
	}

	for i, h := range src.Head {
		if strings.TrimSpace(h.Tag) == "" {
			add(fmt.Sprintf("head[%d].tag", i), "must not be empty")
		}
	}

	for i, it := range src.Nav {
		checkItem(fmt.Sprintf("nav[%d]", i), it, add)
	}

	for gi, g := range src.Sidebar {
		field := fmt.Sprintf("sidebar[%d]", gi)
		if strings.TrimSpace(g.Text) == "" {
			add(field+".text", "must not be empty")
		}
		for ii, it := range g.Items {
			checkItem(fmt.Sprintf("%s.items[%d]", field, ii), it, add)
		}
	}

	if n := strings.Count(src.EditLink.Pattern, PathPlaceholder); n != 1 {
		add("edit_link.pattern", "must contain exactly one %s placeholder, found %d", PathPlaceholder, n)
	}

	for i, s := range src.SocialLinks {
		field := fmt.Sprintf("social_links[%d]", i)
		if strings.TrimSpace(s.Icon) == "" {
			add(field+".icon", "must not be empty")
		}
		if u, err := url.Parse(s.Link); err != nil || u.Scheme == "" || u.Host == "" {
			add(field+".link", "must be an absolute URL, got %q", s.Link)
		}
	}

	return out
}

func checkItem(field string, it NavItem, add func(string, string, ...any)) {
	if strings.TrimSpace(it.Text) == "" {
		add(field+".text", "must not be empty")
	}
	switch {
	case it.Link == "":
		add(field+".link", "must not be empty")
	case !strings.HasPrefix(it.Link, "/"):
		add(field+".link", "must begin with \"/\", got %q", it.Link)
	case strings.ContainsAny(it.Link, " \t\n"):
		add(field+".link", "must not contain whitespace, got %q", it.Link)
	}
}

func cloneItems(items []NavItem) []NavItem {
	return append(make([]NavItem, 0, len(items)), items...)
}

func cloneSidebar(s Sidebar) Sidebar {
	out := make(Sidebar, len(s))
	for i, g := range s {
		// Placeholder groups always render closed.
		out[i] = NavGroup{Text: g.Text, Collapsed: g.Collapsed || len(g.Items) == 0, Items: cloneItems(g.Items)}
	}
	return out
}

func cloneHead(head []HeadTag) []HeadTag {
	out := make([]HeadTag, len(head))
	for i, h := range head {
		out[i] = HeadTag{Tag: h.Tag, Content: h.Content, Attrs: maps.Clone(h.Attrs)}
	}
	return out
}
