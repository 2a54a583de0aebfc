// Package annotate turns plain copy into a sequence of text and link
// segments by locating known anchor phrases.
package annotate

import (
	"fmt"
	"sort"
	"strings"
)

// Links maps anchor text to a link target (URL or site path).
type Links map[string]string

type Kind int

const (
	Plain Kind = iota
	Link
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "text"
	case Link:
		return "link"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case Plain, Link:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("unknown segment kind %d", int(k))
	}
}

func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "text":
		*k = Plain
	case "link":
		*k = Link
	default:
		return fmt.Errorf("unknown segment kind %q", text)
	}
	return nil
}

// Segment is one renderable piece of annotated text. Target is only set
// for Link segments.
type Segment struct {
	Kind    Kind   `json:"kind"`
	Content string `json:"content"`
	Target  string `json:"target,omitempty"`
}

func PlainText(content string) Segment {
	return Segment{Kind: Plain, Content: content}
}

func LinkTo(content, target string) Segment {
	return Segment{Kind: Link, Content: content, Target: target}
}

type span struct {
	start, end int
	anchor     string
	target     string
}

// Annotate splits text into segments, turning every occurrence of every
// anchor in links into a Link segment.
//
// Overlaps are resolved leftmost-start-wins: a match is kept only if it
// starts at or after the end of the previously kept match. When two
// anchors match at the same position the longer one is kept. Empty text
// yields no segments.
func Annotate(text string, links Links) []Segment {
	if text == "" {
		return nil
	}
	spans := findSpans(text, links)
	if len(spans) == 0 {
		return []Segment{PlainText(text)}
	}

	out := make([]Segment, 0, 2*len(spans)+1)
	cursor := 0
	for _, sp := range spans {
		if sp.start < cursor {
			continue
		}
		if sp.start > cursor {
			out = append(out, PlainText(text[cursor:sp.start]))
		}
		out = append(out, LinkTo(sp.anchor, sp.target))
		cursor = sp.end
	}
	if cursor < len(text) {
		out = append(out, PlainText(text[cursor:]))
	}
	return out
}

func findSpans(text string, links Links) []span {
	var spans []span
	for anchor, target := range links {
		if anchor == "" {
			continue
		}
		for from := 0; from < len(text); {
			idx := strings.Index(text[from:], anchor)
			if idx < 0 {
				break
			}
			start := from + idx
			spans = append(spans, span{start: start, end: start + len(anchor), anchor: anchor, target: target})
			from = start + 1
		}
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		if len(spans[i].anchor) != len(spans[j].anchor) {
			return len(spans[i].anchor) > len(spans[j].anchor)
		}
		return spans[i].anchor < spans[j].anchor
	})
	return spans
}

// Join concatenates segment contents. For any text and links,
// Join(Annotate(text, links)) == text.
func Join(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Content)
	}
	return b.String()
}

// Count returns the number of link segments.
func Count(segs []Segment) int {
	n := 0
	for _, s := range segs {
		if s.Kind == Link {
			n++
		}
	}
	return n
}
