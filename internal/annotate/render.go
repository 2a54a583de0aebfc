package annotate

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type RenderOptions struct {
	// LinkClass is set as the class attribute of every rendered anchor.
	LinkClass string
}

// RenderHTML writes segs as HTML. Plain segments are escaped text nodes,
// link segments become <a> elements. External targets open in a new tab.
func RenderHTML(w io.Writer, segs []Segment, opts RenderOptions) error {
	for _, s := range segs {
		var n *html.Node
		switch s.Kind {
		case Plain:
			n = &html.Node{Type: html.TextNode, Data: s.Content}
		case Link:
			n = linkNode(s, opts)
		default:
			return fmt.Errorf("render segment: unknown kind %d", s.Kind)
		}
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("render segment: %w", err)
		}
	}
	return nil
}

// HTML annotates text and renders the result to a string.
func HTML(text string, links Links, opts RenderOptions) (string, error) {
	var b strings.Builder
	if err := RenderHTML(&b, Annotate(text, links), opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

func linkNode(s Segment, opts RenderOptions) *html.Node {
	a := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.A,
		Data:     "a",
		Attr:     []html.Attribute{{Key: "href", Val: s.Target}},
	}
	if opts.LinkClass != "" {
		a.Attr = append(a.Attr, html.Attribute{Key: "class", Val: opts.LinkClass})
	}
	if IsExternal(s.Target) {
		a.Attr = append(a.Attr,
			html.Attribute{Key: "target", Val: "_blank"},
			html.Attribute{Key: "rel", Val: "noopener noreferrer"},
		)
	}
	a.AppendChild(&html.Node{Type: html.TextNode, Data: s.Content})
	return a
}

// IsExternal reports whether target points off-site.
func IsExternal(target string) bool {
	t := strings.ToLower(strings.TrimSpace(target))
	return strings.HasPrefix(t, "http://") || strings.HasPrefix(t, "https://")
}
