// Package cmd provides the CLI commands for hatchctl.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hatchsocial/hatchclient/internal/config"
)

// app carries state shared by every subcommand of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
}

// NewRootCommand builds the hatchctl command tree with its own viper instance.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "hatchctl",
		Short: "hatchctl - Hatch Social admin API client",
		Long: `hatchctl talks to the Hatch Social admin dashboard API.

Requests are retried on rate limiting and network failures, reads are cached
for a minute, and writes made while offline are replayed once the backend is
reachable again. With --hybrid the seeded mock dataset answers whenever the
backend cannot be reached.

Configuration:
  Config is loaded from hatchctl.yaml in the current directory or
  $HOME/.hatchctl/.

  Environment variables override config values with the HATCH_ prefix.
  Example: HATCH_API_BASE_URL=https://admin.example.com/api

Commands:
  login       Sign in and persist the session
  logout      End the session
  stats       Print dashboard statistics
  get         Issue a GET against any endpoint
  offline     Save and sync payloads kept while offline
  settings    Show or change dashboard settings
  mock        Serve or dump the seeded mock backend
  version     Print version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: ./hatchctl.yaml)")
	flags.String("base-url", "", "API base URL (default: "+config.DefaultBaseURL+")")
	flags.Bool("hybrid", false, "fall back to the mock dataset when the backend is unreachable (needs api.cache_ttl > 0)")
	flags.String("store", "", "session store: memory, file or redis")
	flags.String("log-level", "", "log level: trace, debug, info, warn or error")
	_ = a.v.BindPFlag("api.base_url", flags.Lookup("base-url"))
	_ = a.v.BindPFlag("api.hybrid", flags.Lookup("hybrid"))
	_ = a.v.BindPFlag("store.kind", flags.Lookup("store"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))

	root.AddCommand(
		newVersionCmd(),
		newLoginCmd(a),
		newLogoutCmd(a),
		newStatsCmd(a),
		newGetCmd(a),
		newOfflineCmd(a),
		newSettingsCmd(a),
		newMockCmd(a),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) loadConfig() error {
	config.InitViper(a.v, a.cfgFile)
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}
