package content

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// analyzeBody returns the first level-1 heading text and every link destination in body.
func analyzeBody(body []byte) (heading string, links []string) {
	root := markdown.Parser().Parse(text.NewReader(body))

	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Heading:
			if node.Level == 1 && heading == "" {
				heading = strings.TrimSpace(nodeText(node, body))
			}
		case *gmast.Link:
			links = append(links, string(node.Destination))
		case *gmast.AutoLink:
			links = append(links, string(node.URL(body)))
		}
		return gmast.WalkContinue, nil
	})
	return heading, links
}

// nodeText concatenates the text segments below n.
func nodeText(n gmast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *gmast.String:
			buf.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return buf.String()
}
