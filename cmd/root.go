// Package cmd provides the netbind command line: the colors REST server and
// the binding view server.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/OliveiraNt/netbind/internal/config"
	"github.com/OliveiraNt/netbind/internal/utils"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	logLevel   string

	// Resolved by PersistentPreRunE.
	cfg config.FileConfig
}

// NewRootCmd builds the netbind command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "netbind",
		Short: "Color REST API and live object binding view",
		Long: `netbind runs one of two servers.

  colors  a REST API over an in-memory list of named colors
  view    a web page bound to live objects (number generators, CPU load)`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.load()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: NETBIND_CONFIG or ./netbind.yml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newColorsCmd(opts), newViewCmd(opts))
	return root
}

// Execute runs the command line until ctx is canceled.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func (o *rootOptions) load() error {
	if o.configPath == "" {
		o.configPath = config.FindConfigPath()
	}
	cfg, err := config.ReadConfig(o.configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		utils.Logger.Warn("config file not found, using defaults", "path", o.configPath)
	case err != nil:
		return fmt.Errorf("load config: %w", err)
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", o.configPath, err)
	}
	utils.SetLogLevel(cfg.LogLevel)
	utils.Logger.Debug("configuration loaded", "path", o.configPath, "log_level", cfg.LogLevel)
	o.cfg = cfg
	return nil
}

// onConfigChange applies the settings that can change without a restart.
func (o *rootOptions) onConfigChange(cfg config.FileConfig) {
	if o.logLevel != "" {
		return
	}
	utils.SetLogLevel(cfg.LogLevel)
	utils.Logger.Info("log level applied", "level", cfg.LogLevel)
}
