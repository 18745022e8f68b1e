package cmd

import (
	"fmt"
	"time"

	httpserver "github.com/OliveiraNt/netbind/internal/adapters/http"
	"github.com/OliveiraNt/netbind/internal/binding"
	"github.com/OliveiraNt/netbind/internal/config"
	"github.com/OliveiraNt/netbind/internal/cpuload"
	"github.com/OliveiraNt/netbind/internal/numbers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// Examples the view command can host.
const (
	exampleProperty   = "property"
	exampleContext    = "context"
	exampleRegistered = "registered"
	exampleCPULoad    = "cpuload"
)

type viewSetup struct {
	interval time.Duration
	registry *prometheus.Registry
}

var examples = map[string]func(e *binding.Engine, s viewSetup){
	exampleProperty: func(e *binding.Engine, _ viewSetup) {
		e.SetContextProperty(numbers.ContextName, numbers.NewBoundedGenerator())
	},
	exampleContext: func(e *binding.Engine, _ viewSetup) {
		e.SetContextProperty(numbers.ContextName, numbers.NewGenerator())
	},
	exampleRegistered: func(e *binding.Engine, _ viewSetup) {
		numbers.Register(e)
	},
	exampleCPULoad: func(e *binding.Engine, s viewSetup) {
		cpuload.Register(e, func() (cpuload.Sampler, error) {
			return cpuload.NewProcSampler()
		}, s.interval, cpuload.NewGauge(s.registry))
	},
}

func newViewCmd(opts *rootOptions) *cobra.Command {
	var (
		addr     string
		viewFile string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:       "view <property|context|registered|cpuload>",
		Short:     "Serve a binding example to the browser",
		ValidArgs: []string{exampleProperty, exampleContext, exampleRegistered, exampleCPULoad},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg.View
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("view") {
				cfg.ViewFile = viewFile
			}
			if cmd.Flags().Changed("interval") {
				cfg.CPUInterval = interval
			}
			if cfg.CPUInterval <= 0 {
				return fmt.Errorf("interval must be positive, got %s", cfg.CPUInterval)
			}

			example := args[0]
			e := binding.NewEngine()
			if err := e.Load(cfg.ViewFile); err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			examples[example](e, viewSetup{interval: cfg.CPUInterval, registry: reg})

			srv, err := httpserver.NewView(e, example, reg)
			if err != nil {
				return err
			}
			return runWeb(cmd.Context(), opts, "netbind-view", cfg.Addr, srv.Handler(), e.Run)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultViewAddr, "listen address")
	cmd.Flags().StringVar(&viewFile, "view", "", "view document (default: built-in page)")
	cmd.Flags().DurationVar(&interval, "interval", config.DefaultCPUInterval, "CPU load refresh interval")
	return cmd
}
