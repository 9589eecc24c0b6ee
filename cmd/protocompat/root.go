package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/protocompat/internal/config"
	"github.com/aretw0/protocompat/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "protocompat",
	Short: "protocompat scores the compatibility of two protocol graphs",
	Long: `protocompat reads two communicating protocols described as state graphs (JSON or YAML)
and computes, round after round, how compatible every pair of states is.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("config", config.DefaultPath, "Configuration file (YAML or JSON)")
	flags.String("log-level", "none", "Log verbosity: "+strings.Join(logging.Levels, "|"))
	flags.String("store", "none", "Run store: none|memory|file|badger|redis")
	flags.String("store-path", "", "Directory of the file or badger store")
	flags.String("redis-addr", "", "Redis address of the redis store")
	flags.Int("workers", 1, "Goroutines per round")
	flags.String("weighting", "degree", "Weight strategy: degree|matching")
}

// loadConfig reads the config file, then applies the flags the user explicitly set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("store") {
		cfg.Store.Driver, _ = flags.GetString("store")
	}
	if flags.Changed("store-path") {
		cfg.Store.Path, _ = flags.GetString("store-path")
	}
	if flags.Changed("redis-addr") {
		cfg.Store.Addr, _ = flags.GetString("redis-addr")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("weighting") {
		cfg.Weighting, _ = flags.GetString("weighting")
	}

	// Command-local flags
	if f := flags.Lookup("iterate"); f != nil && f.Changed {
		cfg.Rounds, _ = flags.GetInt("iterate")
	}
	if f := flags.Lookup("output"); f != nil && f.Changed {
		cfg.Output, _ = flags.GetString("output")
	}
	if f := flags.Lookup("format"); f != nil && f.Changed {
		cfg.Format, _ = flags.GetString("format")
	}
	if f := flags.Lookup("no-banner"); f != nil && f.Changed {
		noBanner, _ := flags.GetBool("no-banner")
		cfg.Banner = !noBanner
	}
	if f := flags.Lookup("addr"); f != nil && f.Changed {
		cfg.Serve.Addr, _ = flags.GetString("addr")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
