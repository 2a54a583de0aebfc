package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xcoinlabs/xcoin/internal/version"
)

const envPrefix = "XCOIN"

type rootOptions struct {
	cfgFile string
	verbose bool
	v       *viper.Viper
}

// Execute runs the xcoin command tree with args taken from os.Args.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	root := &cobra.Command{
		Use:   "xcoin",
		Short: "Xcoin - marketing site server and content tools",
		Long: `xcoin serves the Xcoin marketing site: content pages rendered from YAML,
the tokenomics chart, the waitlist endpoint, sitemap and robots.txt.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (XCOIN_*)
3. Config file (./xcoin.yaml or ~/.xcoin/config.yaml)
4. Defaults`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initConfig(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default: ./xcoin.yaml or $HOME/.xcoin/config.yaml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().String("db", "", "sqlite database for waitlist signups")
	_ = opts.v.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))
	_ = opts.v.BindPFlag("db", root.PersistentFlags().Lookup("db"))

	root.AddCommand(
		newServeCmd(opts),
		newAnnotateCmd(),
		newWaitlistCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return root
}

// initConfig reads the config file and XCOIN_* environment variables.
func (o *rootOptions) initConfig(stderr io.Writer) error {
	o.v.SetEnvPrefix(envPrefix)
	o.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	o.v.AutomaticEnv()

	if o.cfgFile != "" {
		o.v.SetConfigFile(o.cfgFile)
		if err := o.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %q: %w", o.cfgFile, err)
		}
	} else {
		o.v.SetConfigType("yaml")
		o.v.SetConfigName("xcoin")
		o.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			o.v.AddConfigPath(filepath.Join(home, ".xcoin"))
		}
		if err := o.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("read config: %w", err)
			}
		}
	}
	if used := o.v.ConfigFileUsed(); used != "" && o.v.GetBool("verbose") {
		fmt.Fprintf(stderr, "Using config file: %s\n", used)
	}
	return nil
}

func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "xcoin %s\n", version.Current())
		},
	}
}
