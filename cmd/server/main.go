package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "resume-pdf/internal/adapter/http"
	repo "resume-pdf/internal/adapter/repository"
	"resume-pdf/internal/config"
	"resume-pdf/internal/infrastructure/migration"
	"resume-pdf/internal/locale"
	"resume-pdf/internal/logger"
	"resume-pdf/internal/metrics"
	"resume-pdf/internal/usecase"
	infra "resume-pdf/pkg/infrastructure"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fonts, err := infra.LoadFontSet(cfg.Render.FontFamily, cfg.Render.FontPath, cfg.Render.FontBoldPath)
	if err != nil {
		return err
	}
	defaultLocale, err := locale.Lookup(cfg.Render.Locale)
	if err != nil {
		return err
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	opts := []usecase.Option{
		usecase.WithLogger(log.Named("generator")),
		usecase.WithMetrics(m),
		usecase.WithDefaultLocale(defaultLocale),
	}

	// audit log is optional; the service runs without a database
	pool, err := infra.NewAuditPool(ctx, cfg.Database.URL)
	switch {
	case errors.Is(err, infra.ErrNoDSN):
	case err != nil:
		log.Warn("audit database not available", zap.Error(err))
	default:
		defer pool.Close()
		if err := migration.RunMigrations(ctx, pool, log.Named("migration")); err != nil {
			return err
		}
		opts = append(opts, usecase.WithRepo(repo.NewGenerationsRepo(pool)))
	}

	if cfg.Chrome.Enabled {
		chrome := infra.NewChromedpRenderer(cfg.Chrome.Path, cfg.Chrome.Timeout)
		opts = append(opts, usecase.WithEngine(usecase.NewChromeEngine(chrome)))
	}

	gen := usecase.NewGenerator(infra.NewFPDFEngine(fonts), opts...)
	app := httpadapter.NewApp(httpadapter.NewHandler(gen, log), httpadapter.Options{
		BodyLimit:   cfg.HTTP.BodyLimit,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Metrics:     m,
		Log:         log.Named("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening",
			zap.String("addr", cfg.Addr()),
			zap.String("locale", defaultLocale.Tag),
			zap.Bool("chrome", cfg.Chrome.Enabled))
		errCh <- app.Listen(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	return app.ShutdownWithTimeout(10 * time.Second)
}
