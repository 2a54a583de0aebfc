package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xcoinlabs/xcoin/internal/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the site server",
		Long: `Serve renders every content page, the tokenomics chart, sitemap.xml and
robots.txt, and accepts waitlist signups on POST /api/waitlist.

Example:
  xcoin serve
  xcoin serve --addr :9000 --content-dir ./content --db xcoin.db
  XCOIN_CACHE_TTL=0 xcoin serve --mdns`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.logger(cmd.ErrOrStderr())
			slog.SetDefault(logger)
			return server.Run(cmd.Context(), serverConfig(opts.v), logger)
		},
	}

	defaults := server.DefaultConfig()
	flags := cmd.Flags()
	flags.String("addr", defaults.Addr, "listen address")
	flags.String("content-dir", "", "directory of YAML pages overlaid on the built-in content")
	flags.Duration("cache-ttl", defaults.CacheTTL, "how long rendered pages are cached (0 disables)")
	flags.String("base-url", "", "public base URL, overrides base_url in site.yaml")
	flags.Bool("mdns", false, "advertise the site on the local network via mDNS")
	flags.String("mdns-instance", "", "mDNS instance name (default: xcoin-<hostname>)")

	_ = opts.v.BindPFlag("addr", flags.Lookup("addr"))
	_ = opts.v.BindPFlag("content_dir", flags.Lookup("content-dir"))
	_ = opts.v.BindPFlag("cache_ttl", flags.Lookup("cache-ttl"))
	_ = opts.v.BindPFlag("base_url", flags.Lookup("base-url"))
	_ = opts.v.BindPFlag("mdns", flags.Lookup("mdns"))
	_ = opts.v.BindPFlag("mdns_instance", flags.Lookup("mdns-instance"))
	return cmd
}

// serverConfig resolves the effective server configuration from v.
func serverConfig(v *viper.Viper) server.Config {
	cfg := server.DefaultConfig()
	if v.IsSet("addr") {
		cfg.Addr = v.GetString("addr")
	}
	if v.IsSet("cache_ttl") {
		cfg.CacheTTL = v.GetDuration("cache_ttl")
	}
	if cfg.CacheTTL < 0 {
		cfg.CacheTTL = 0
	}
	cfg.ContentDir = v.GetString("content_dir")
	cfg.DBPath = v.GetString("db")
	cfg.BaseURL = v.GetString("base_url")
	cfg.MDNS = v.GetBool("mdns")
	cfg.MDNSInstance = v.GetString("mdns_instance")
	return cfg
}
