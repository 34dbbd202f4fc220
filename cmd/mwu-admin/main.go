package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/goliatone/go-mwu-admin/internal/catalog"
	"github.com/goliatone/go-mwu-admin/internal/config"
	"github.com/goliatone/go-mwu-admin/internal/logging"
	"github.com/goliatone/go-mwu-admin/internal/pages"
	"github.com/goliatone/go-mwu-admin/pkg/apiclient"
	"github.com/goliatone/go-mwu-admin/pkg/refs"
	"github.com/goliatone/go-mwu-admin/pkg/render"
	"github.com/goliatone/go-mwu-admin/pkg/renderers/screen"
	"github.com/goliatone/go-mwu-admin/pkg/renderers/tui"
	"github.com/goliatone/go-mwu-admin/pkg/router"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("admin client stopped", zap.Error(err))
		stop()
		_ = logger.Sync()
		fmt.Fprintf(os.Stderr, "mwu-admin: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	client, err := apiclient.New(cfg.BaseURL,
		apiclient.WithTimeout(cfg.Timeout),
		apiclient.WithLogger(logger.Named("api")),
	)
	if err != nil {
		return err
	}

	registry := render.NewRegistry()
	registry.MustRegister(screen.New(screen.WithLogger(logger.Named("screen"))))
	registry.MustRegister(tui.New(tui.WithLogger(logger.Named("prompt"))))

	frontend, err := registry.Get(cfg.Frontend)
	if err != nil {
		return err
	}

	r := router.New(router.WithLogger(logger.Named("router")))
	deps := pages.Deps{
		Client:    client,
		Resolver:  refs.NewResolver(client, refs.WithLogger(logger.Named("refs"))),
		Navigator: r,
		Dialogs:   frontend,
		Display:   frontend,
		Logger:    logger.Named("pages"),
	}
	cat, err := catalog.Default()
	if err != nil {
		return err
	}
	if err := pages.Register(r, cat, deps); err != nil {
		return err
	}

	logger.Info("starting admin client",
		zap.String("base_url", cfg.BaseURL),
		zap.String("frontend", frontend.Name()),
		zap.Duration("timeout", cfg.Timeout),
	)
	return frontend.Run(ctx, pages.Shell{Router: r}, func(ctx context.Context) error {
		return r.Start(ctx, pages.HomePage, nil)
	})
}
