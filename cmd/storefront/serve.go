package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/storefront/internal/shop"
	"github.com/vango-dev/storefront/pkg/component"
	"github.com/vango-dev/storefront/pkg/live"
	"github.com/vango-dev/storefront/pkg/metrics"
)

func serveCmd() *cobra.Command {
	var (
		port      int
		host      string
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the live preview server",
		Long: `Start the live preview server.

The page is rendered once on the server and kept in memory. Browsers
connect over a WebSocket, receive a snapshot after every change and send
their clicks back to be dispatched on the server.

Examples:
  storefront serve
  storefront serve --port=8080
  storefront serve --host=0.0.0.0 --no-metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host, noMetrics)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from storefront.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from storefront.json)")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "Do not serve /metrics")

	return cmd
}

func runServe(port int, host string, noMetrics bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if port > 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if noMetrics {
		cfg.Metrics.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a := newApp(cfg)

	opts := []live.Option{
		live.WithLogger(a.logger),
		live.WithTimeouts(cfg.ReadTimeout(), cfg.WriteTimeout()),
	}
	if cfg.Metrics.Enabled {
		obs := metrics.New(
			metrics.WithNamespace(cfg.Metrics.Namespace),
			metrics.WithSubsystem(cfg.Metrics.Subsystem),
			metrics.WithRegistry(prometheus.NewRegistry()),
		)
		obs.ObserveLoop(a.loop)
		component.SetObserver(obs)
		defer component.SetObserver(nil)
		opts = append(opts, live.WithMetrics(obs))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.start(ctx, shop.TagRecommender(shop.DefaultCatalog, 3)); err != nil {
		return err
	}

	// The server observes the document, so it is created on the loop.
	var srv *live.Server
	if err := a.loop.Do(ctx, func() { srv = live.New(a.doc, a.loop, opts...) }); err != nil {
		return err
	}

	success("Serving %s at %s", cfg.Title, cfg.URL())
	if cfg.Metrics.Enabled {
		info("Metrics at %s/metrics", cfg.URL())
	}
	return srv.ListenAndServe(ctx, cfg.Address())
}
