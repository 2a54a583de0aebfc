package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/xcoinlabs/xcoin/internal/store"
)

func newWaitlistCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waitlist",
		Short: "Inspect waitlist signups",
	}

	var format string
	list := &cobra.Command{
		Use:   "list",
		Short: "List stored waitlist signups",
		Long: `List prints every signup stored in the sqlite database given by --db
(or XCOIN_DB), oldest first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(opts.v.GetString("db"))
			if path == "" {
				return errors.New("waitlist list requires --db or XCOIN_DB")
			}
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("open waitlist database: %w", err)
			}
			db, err := store.Open(path)
			if err != nil {
				return err
			}
			defer db.Close()

			entries, err := db.ListWaitlistEntries(cmd.Context())
			if err != nil {
				return err
			}
			return writeWaitlist(cmd.OutOrStdout(), format, entries, time.Now())
		},
	}
	list.Flags().StringVarP(&format, "format", "f", "table", "output format: table or json")
	cmd.AddCommand(list)
	return cmd
}

func writeWaitlist(w io.Writer, format string, entries []store.WaitlistEntry, now time.Time) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "table":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "EMAIL\tSOURCE\tJOINED")
		for _, e := range entries {
			source := e.Source
			if source == "" {
				source = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Email, source, humanize.RelTime(e.CreatedUTC, now, "ago", "from now"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "\n%s %s\n", humanize.Comma(int64(len(entries))), plural(len(entries), "signup", "signups"))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	default:
		return fmt.Errorf("unknown format %q (want table or json)", format)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
