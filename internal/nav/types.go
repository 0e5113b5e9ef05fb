package nav

import (
	"fmt"
	"slices"
	"strings"
)

// PathPlaceholder is substituted per page inside an edit link pattern.
const PathPlaceholder = ":path"

// NavItem is a leaf page reference.
type NavItem struct {
	Text string `yaml:"text" json:"text"`
	Link string `yaml:"link" json:"link"`
}

// NavGroup is a named, collapsible sidebar section. Item order is the rendered order.
type NavGroup struct {
	Text      string    `yaml:"text" json:"text"`
	Collapsed bool      `yaml:"collapsed,omitempty" json:"collapsed,omitempty"`
	Items     []NavItem `yaml:"items" json:"items"`
}

// Placeholder reports whether the group is an intentionally empty section.
func (g NavGroup) Placeholder() bool {
	return len(g.Items) == 0
}

// Sidebar is the ordered list of groups forming the sidebar tree.
type Sidebar []NavGroup

// Group returns the first group with the given text.
func (s Sidebar) Group(text string) (NavGroup, bool) {
	for _, g := range s {
		if g.Text == text {
			return g, true
		}
	}
	return NavGroup{}, false
}

// ItemCount returns the number of page links across all groups.
func (s Sidebar) ItemCount() int {
	n := 0
	for _, g := range s {
		n += len(g.Items)
	}
	return n
}

// HeadTag describes one element injected into every page's <head>.
type HeadTag struct {
	Tag     string            `yaml:"tag" json:"tag"`
	Attrs   map[string]string `yaml:"attrs,omitempty" json:"attrs,omitempty"`
	Content string            `yaml:"content,omitempty" json:"content,omitempty"`
}

// AttrKeys returns attribute names in sorted order so output stays deterministic.
func (h HeadTag) AttrKeys() []string {
	keys := make([]string, 0, len(h.Attrs))
	for k := range h.Attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// SocialLink is an icon link shown in the navigation bar.
type SocialLink struct {
	Icon string `yaml:"icon" json:"icon"`
	Link string `yaml:"link" json:"link"`
}

// EditLink configures the "edit this page" link.
type EditLink struct {
	Pattern string `yaml:"pattern" json:"pattern"`
	Text    string `yaml:"text,omitempty" json:"text,omitempty"`
}

// URL substitutes the page path into the pattern.
func (e EditLink) URL(pagePath string) string {
	return strings.Replace(e.Pattern, PathPlaceholder, strings.TrimPrefix(pagePath, "/"), 1)
}

// Source is the authored description of the site navigation.
type Source struct {
	Title       string       `yaml:"title"`
	Description string       `yaml:"description,omitempty"`
	Head        []HeadTag    `yaml:"head,omitempty"`
	Nav         []NavItem    `yaml:"nav,omitempty"`
	Sidebar     Sidebar      `yaml:"sidebar,omitempty"`
	EditLink    EditLink     `yaml:"edit_link,omitempty"`
	SocialLinks []SocialLink `yaml:"social_links,omitempty"`
}

// SiteConfig is the validated, immutable site configuration.
type SiteConfig struct {
	Title       string
	Description string
	Head        []HeadTag
	Nav         []NavItem
	Sidebar     Sidebar
	EditLink    EditLink
	SocialLinks []SocialLink
}

// LinkRef locates a NavItem inside the configuration.
type LinkRef struct {
	Item  NavItem
	Group string // empty for top navigation entries
	Index int
}

// Location renders a human readable position like `sidebar "Basics" #2`.
func (r LinkRef) Location() string {
	if r.Group == "" {
		return fmt.Sprintf("nav #%d", r.Index+1)
	}
	return fmt.Sprintf("sidebar %q #%d", r.Group, r.Index+1)
}

// Links returns every page reference in render order: top nav first, then sidebar.
func (c *SiteConfig) Links() []LinkRef {
	refs := make([]LinkRef, 0, len(c.Nav)+c.Sidebar.ItemCount())
	for i, it := range c.Nav {
		refs = append(refs, LinkRef{Item: it, Index: i})
	}
	for _, g := range c.Sidebar {
		for i, it := range g.Items {
			refs = append(refs, LinkRef{Item: it, Group: g.Text, Index: i})
		}
	}
	return refs
}

// EditURL returns the edit URL for a content path relative to the docs root.
func (c *SiteConfig) EditURL(pagePath string) string {
	return c.EditLink.URL(pagePath)
}
