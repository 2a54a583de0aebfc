package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xcoinlabs/xcoin/internal/annotate"
)

func newAnnotateCmd() *cobra.Command {
	var (
		linkFlags []string
		format    string
		linkClass string
	)
	cmd := &cobra.Command{
		Use:   "annotate [text]",
		Short: "Split text into plain and link segments",
		Long: `Annotate finds every anchor phrase in the text and prints the resulting
segments. Text is read from stdin when no argument is given.

Example:
  xcoin annotate "Governed by the XXX DAO" --link "XXX DAO=/governance"
  echo "zk-STARKs need no trusted setup" | xcoin annotate --link zk-STARKs=/technology --format html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			links, err := parseLinks(linkFlags)
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = strings.TrimRight(string(data), "\r\n")
			}
			return writeSegments(cmd.OutOrStdout(), format, annotate.Annotate(text, links), annotate.RenderOptions{LinkClass: linkClass})
		},
	}
	cmd.Flags().StringArrayVarP(&linkFlags, "link", "l", nil, "anchor=target pair (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or html")
	cmd.Flags().StringVar(&linkClass, "class", "", "CSS class for links in html output")
	return cmd
}

// parseLinks turns anchor=target pairs into a link table. The anchor ends at
// the first '=' so targets may carry query strings.
func parseLinks(pairs []string) (annotate.Links, error) {
	links := annotate.Links{}
	for _, pair := range pairs {
		anchor, target, ok := strings.Cut(pair, "=")
		if !ok || anchor == "" || strings.TrimSpace(target) == "" {
			return nil, fmt.Errorf("invalid --link %q: expected anchor=target", pair)
		}
		links[anchor] = strings.TrimSpace(target)
	}
	return links, nil
}

func writeSegments(w io.Writer, format string, segs []annotate.Segment, opts annotate.RenderOptions) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		for _, s := range segs {
			if s.Kind == annotate.Link {
				fmt.Fprintf(w, "%-4s %q -> %s\n", s.Kind, s.Content, s.Target)
				continue
			}
			fmt.Fprintf(w, "%-4s %q\n", s.Kind, s.Content)
		}
		return nil
	case "json":
		if segs == nil {
			segs = []annotate.Segment{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(segs)
	case "html":
		if err := annotate.RenderHTML(w, segs, opts); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	default:
		return fmt.Errorf("unknown format %q (want text, json or html)", format)
	}
}
