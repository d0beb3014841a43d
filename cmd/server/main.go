// Command server runs the client and engagement management API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"caoffice/internal/client/handler"
	clientmetrics "caoffice/internal/client/metrics"
	"caoffice/internal/client/service"
	"caoffice/internal/client/store"
	httpapi "caoffice/internal/http"
	"caoffice/internal/platform/config"
	"caoffice/internal/platform/httpserver"
	"caoffice/internal/platform/logger"
	"caoffice/internal/platform/metrics"
	"caoffice/internal/platform/postgres"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTP(registry)
	svcMetrics := clientmetrics.New(registry)

	clients := store.NewPostgresClientStore(db)
	engagements := store.NewPostgresEngagementStore(db)

	svc := service.New(clients, engagements,
		service.WithLogger(log),
		service.WithMetrics(svcMetrics),
	)
	h := handler.New(svc, cfg.DefaultPageSize, cfg.MaxPageSize, handler.WithLogger(log))

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Logger:      log,
		HTTPMetrics: httpMetrics,
		Registry:    registry,
		DB:          db,
		Clients:     h,
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", slog.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
