package render

import (
	"bytes"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/nav"
)

// HeadPartialFilename is the file name of the rendered head partial.
const HeadPartialFilename = "head.html"

// HeadPartial renders the configured head tags as an HTML fragment, one element per line.
// Attributes are written in sorted order.
func HeadPartial(cfg *nav.SiteConfig) ([]byte, error) {
	var buf bytes.Buffer
	for i, h := range cfg.Head {
		n := &html.Node{Type: html.ElementNode, Data: h.Tag, DataAtom: atom.Lookup([]byte(h.Tag))}
		for _, k := range h.AttrKeys() {
			n.Attr = append(n.Attr, html.Attribute{Key: k, Val: h.Attrs[k]})
		}
		if h.Content != "" {
			n.AppendChild(&html.Node{Type: html.TextNode, Data: h.Content})
		}
		if err := html.Render(&buf, n); err != nil {
			return nil, errors.WrapError(err, errors.CategoryRender, "failed to render head tag").
				WithContext("tag", h.Tag).
				WithContext("index", i).
				Build()
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
