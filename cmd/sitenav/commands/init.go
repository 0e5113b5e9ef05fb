package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/content"
	"git.home.luguber.info/inful/sitenav/internal/nav"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force       bool `help:"Overwrite existing configuration file"`
	FromContent bool `help:"Scaffold the sidebar from the content directory instead of the guide navigation"`
}

func (i *InitCmd) Run(_ context.Context, g *Global, root *CLI) error {
	src := nav.GuideSource()
	if i.FromContent {
		scaffolded, err := scaffoldFromContent(config.Default().Content)
		if err != nil {
			return err
		}
		src = scaffolded
	}

	out := g.out()
	fmt.Fprintf(out, "Writing configuration to %s\n", root.Config)
	if err := config.Init(root.Config, i.Force, src); err != nil {
		return err
	}
	fmt.Fprintf(out, "Initialized %d sidebar group(s) with %d page(s)\n", len(src.Sidebar), src.Sidebar.ItemCount())
	return nil
}

// scaffoldFromContent keeps the guide's site metadata and replaces its navigation
// with one derived from the documents on disk.
func scaffoldFromContent(cc config.ContentConfig) (nav.Source, error) {
	ix, err := content.Discover(cc.Directory, content.Options{Extensions: cc.Extensions, IndexNames: cc.IndexNames})
	if err != nil {
		return nav.Source{}, err
	}
	src := nav.GuideSource()
	src.Sidebar = content.Scaffold(ix)
	src.Nav = []nav.NavItem{{Text: "Home", Link: "/"}}
	if len(src.Sidebar) > 0 && len(src.Sidebar[0].Items) > 0 {
		src.Nav = append(src.Nav, nav.NavItem{Text: "Guide", Link: src.Sidebar[0].Items[0].Link})
	}
	return src, nil
}
