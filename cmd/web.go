package cmd

import (
	"context"
	"net/http"

	httpserver "github.com/OliveiraNt/netbind/internal/adapters/http"
	"github.com/OliveiraNt/netbind/internal/config"
	"github.com/OliveiraNt/netbind/internal/tracing"
	"github.com/OliveiraNt/netbind/internal/utils"
	"golang.org/x/sync/errgroup"
)

// runWeb serves h on addr next to the config watcher and any extra loops,
// until ctx is canceled or one of them fails.
func runWeb(ctx context.Context, opts *rootOptions, service, addr string, h http.Handler, extra ...func(context.Context) error) error {
	shutdown, err := tracing.Init(ctx, service)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			utils.Logger.Warn("tracer shutdown failed", "err", err)
		}
	}()

	watcher, err := config.NewWatcher(opts.configPath, opts.onConfigChange)
	if err != nil {
		utils.Logger.Warn("config hot reload disabled", "path", opts.configPath, "err", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(ctx, addr, h)
	})
	if watcher != nil {
		g.Go(func() error {
			return watcher.Run(ctx)
		})
	}
	for _, fn := range extra {
		g.Go(func() error {
			return fn(ctx)
		})
	}

	utils.Logger.Info("netbind started", "service", service, "addr", addr)
	err = g.Wait()
	utils.Logger.Info("netbind stopped", "service", service)
	return err
}
