package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/vango-dev/storefront/internal/config"
	"github.com/vango-dev/storefront/internal/shop"
	"github.com/vango-dev/storefront/pkg/component"
	"github.com/vango-dev/storefront/pkg/dom"
	"github.com/vango-dev/storefront/pkg/export"
	"github.com/vango-dev/storefront/pkg/host"
)

// app is a mounted storefront document and the loop that owns it.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	doc    *dom.Document
	loop   *host.Loop
	store  *shop.Store
	page   *shop.Page
}

// loadConfig reads storefront.json from the --dir flag and applies the
// global overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrNew(configDir)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Level()}))
}

func newApp(cfg *config.Config) *app {
	logger := newLogger(cfg, os.Stderr)
	return &app{
		cfg:    cfg,
		logger: logger,
		doc:    dom.NewDocument(cfg.Title),
		loop:   host.NewLoop(cfg.Loop.QueueSize, logger),
	}
}

// start runs the loop until ctx is done and mounts the storefront on it.
func (a *app) start(ctx context.Context, rec shop.Recommender) error {
	go func() {
		if err := a.loop.Run(ctx); err != nil && ctx.Err() == nil {
			a.logger.Error("loop stopped", "error", err)
		}
	}()

	var mountErr error
	err := a.loop.Do(ctx, func() {
		a.store = shop.NewStore(shop.DefaultCatalog, shop.WithLogger(a.logger))
		a.page, mountErr = shop.View(a.store, a.loop, rec)
		if mountErr != nil {
			return
		}
		_, mountErr = component.Mount(a.doc, a.page.Root)
	})
	if err != nil {
		return err
	}
	return mountErr
}

// waitReady waits for asynchronous panels to settle. Panels still loading
// after timeout are captured as they are.
func (a *app) waitReady(ctx context.Context, timeout time.Duration) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-a.page.Ready():
	case <-timer.C:
		a.logger.Warn("page not ready, capturing anyway", "timeout", timeout)
	case <-ctx.Done():
	}
}

// capture renders the document on the loop.
func (a *app) capture(ctx context.Context) (export.Page, error) {
	var p export.Page
	err := a.loop.Do(ctx, func() {
		p = export.Capture(a.doc)
	})
	return p, err
}
