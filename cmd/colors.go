package cmd

import (
	httpserver "github.com/OliveiraNt/netbind/internal/adapters/http"
	"github.com/OliveiraNt/netbind/internal/application"
	"github.com/OliveiraNt/netbind/internal/config"
	"github.com/OliveiraNt/netbind/internal/domain"
	"github.com/OliveiraNt/netbind/internal/infrastructure/kafka"
	"github.com/OliveiraNt/netbind/internal/infrastructure/repository"
	"github.com/OliveiraNt/netbind/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newColorsCmd(opts *rootOptions) *cobra.Command {
	var addr, seed string

	cmd := &cobra.Command{
		Use:   "colors",
		Short: "Serve the color REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.cfg.Colors
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("seed") {
				cfg.SeedFile = seed
			}

			colors, err := repository.LoadSeed(cfg.SeedFile)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var publisher domain.EventPublisher
			if cfg.Events.Enabled {
				p, err := kafka.NewPublisher(ctx, cfg.Events)
				if err != nil {
					return err
				}
				defer p.Close()
				publisher = p
			} else {
				utils.Logger.Debug("color change feed disabled")
			}

			service := application.NewColorService(repository.NewColorRepository(colors), publisher)
			srv, err := httpserver.NewColors(service, prometheus.NewRegistry())
			if err != nil {
				return err
			}
			return runWeb(ctx, opts, "netbind-colors", cfg.Addr, srv.Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultColorsAddr, "listen address")
	cmd.Flags().StringVar(&seed, "seed", "", "JSON file with the initial colors (default: built-in list)")
	return cmd
}
