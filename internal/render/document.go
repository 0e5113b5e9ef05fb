package render

import (
	"encoding/json"

	"git.home.luguber.info/inful/sitenav/internal/nav"
)

// Document is the renderer-native site configuration.
type Document struct {
	Title       string      `json:"title" yaml:"title" toml:"title"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Head        []HeadEntry `json:"head,omitempty" yaml:"head,omitempty" toml:"-"`
	ThemeConfig ThemeConfig `json:"themeConfig" yaml:"themeConfig" toml:"themeConfig"`
}

// ThemeConfig holds navigation, sidebar, edit and social links.
type ThemeConfig struct {
	Nav         []Link         `json:"nav" yaml:"nav" toml:"nav"`
	Sidebar     []SidebarGroup `json:"sidebar" yaml:"sidebar" toml:"sidebar"`
	EditLink    *EditLink      `json:"editLink,omitempty" yaml:"editLink,omitempty" toml:"editLink,omitempty"`
	SocialLinks []SocialLink   `json:"socialLinks,omitempty" yaml:"socialLinks,omitempty" toml:"socialLinks,omitempty"`
}

// Link is a nav or sidebar entry.
type Link struct {
	Text string `json:"text" yaml:"text" toml:"text"`
	Link string `json:"link" yaml:"link" toml:"link"`
}

// SidebarGroup is a sidebar section. Items is never nil so placeholder groups
// render as an empty list.
type SidebarGroup struct {
	Text      string `json:"text" yaml:"text" toml:"text"`
	Collapsed bool   `json:"collapsed" yaml:"collapsed" toml:"collapsed"`
	Items     []Link `json:"items" yaml:"items" toml:"items"`
}

// EditLink is the "edit this page" configuration.
type EditLink struct {
	Pattern string `json:"pattern" yaml:"pattern" toml:"pattern"`
	Text    string `json:"text,omitempty" yaml:"text,omitempty" toml:"text,omitempty"`
}

// SocialLink is an icon link.
type SocialLink struct {
	Icon string `json:"icon" yaml:"icon" toml:"icon"`
	Link string `json:"link" yaml:"link" toml:"link"`
}

// HeadEntry encodes as the tuple [tag, attrs] or [tag, attrs, content].
type HeadEntry struct {
	Tag     string
	Attrs   map[string]string
	Content string
}

func (h HeadEntry) tuple() []any {
	attrs := h.Attrs
	if attrs == nil {
		attrs = map[string]string{}
	}
	out := []any{h.Tag, attrs}
	if h.Content != "" {
		out = append(out, h.Content)
	}
	return out
}

// MarshalJSON encodes the entry as a tuple. Map keys are sorted by encoding/json.
func (h HeadEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.tuple())
}

// MarshalYAML encodes the entry as a sequence.
func (h HeadEntry) MarshalYAML() (any, error) {
	return h.tuple(), nil
}

// NewDocument maps a built configuration to the renderer-native document.
func NewDocument(cfg *nav.SiteConfig) *Document {
	doc := &Document{
		Title:       cfg.Title,
		Description: cfg.Description,
		ThemeConfig: ThemeConfig{
			Nav:     make([]Link, 0, len(cfg.Nav)),
			Sidebar: make([]SidebarGroup, 0, len(cfg.Sidebar)),
		},
	}
	for _, h := range cfg.Head {
		doc.Head = append(doc.Head, HeadEntry{Tag: h.Tag, Attrs: h.Attrs, Content: h.Content})
	}
	for _, it := range cfg.Nav {
		doc.ThemeConfig.Nav = append(doc.ThemeConfig.Nav, Link(it))
	}
	for _, g := range cfg.Sidebar {
		group := SidebarGroup{Text: g.Text, Collapsed: g.Collapsed, Items: make([]Link, 0, len(g.Items))}
		for _, it := range g.Items {
			group.Items = append(group.Items, Link(it))
		}
		doc.ThemeConfig.Sidebar = append(doc.ThemeConfig.Sidebar, group)
	}
	if cfg.EditLink.Pattern != "" {
		doc.ThemeConfig.EditLink = &EditLink{Pattern: cfg.EditLink.Pattern, Text: cfg.EditLink.Text}
	}
	for _, s := range cfg.SocialLinks {
		doc.ThemeConfig.SocialLinks = append(doc.ThemeConfig.SocialLinks, SocialLink(s))
	}
	return doc
}
