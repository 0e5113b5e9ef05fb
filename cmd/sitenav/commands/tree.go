package commands

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"git.home.luguber.info/inful/sitenav/internal/nav"
)

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleGroup = lipgloss.NewStyle().Bold(true)
	styleLink  = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	styleDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// TreeCmd implements the 'tree' command.
type TreeCmd struct {
	Links bool `short:"l" help:"Show link targets next to page titles"`
}

func (t *TreeCmd) Run(_ context.Context, g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	site, err := nav.Build(cfg.Source())
	if err != nil {
		return err
	}
	out := g.out()
	fmt.Fprintln(out, renderTree(site, t.Links, colorEnabled(out)))
	return nil
}

func renderTree(site *nav.SiteConfig, links, color bool) string {
	paint := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	t := tree.Root(paint(styleTitle, site.Title))
	for _, group := range site.Sidebar {
		label := paint(styleGroup, group.Text)
		if group.Placeholder() {
			label += " " + paint(styleDim, "(empty)")
		} else if group.Collapsed {
			label += " " + paint(styleDim, "(collapsed)")
		}
		branch := tree.Root(label)
		for _, item := range group.Items {
			text := item.Text
			if links {
				text += " " + paint(styleLink, item.Link)
			}
			branch.Child(text)
		}
		t.Child(branch)
	}
	return t.String()
}
