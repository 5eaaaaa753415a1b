package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/vaultboard/vaultboard/internal/catalog"
	"github.com/vaultboard/vaultboard/internal/chains"
	"github.com/vaultboard/vaultboard/internal/config"
	httpapp "github.com/vaultboard/vaultboard/internal/http"
	"github.com/vaultboard/vaultboard/internal/http/handlers"
	"github.com/vaultboard/vaultboard/internal/metrics"
	"github.com/vaultboard/vaultboard/internal/reports"
	"github.com/vaultboard/vaultboard/internal/store"
	"github.com/vaultboard/vaultboard/internal/ydaemon"
	"golang.org/x/sync/errgroup"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
	catalogRetryBase  = 15 * time.Second
)

var serveCmd = &cobra.Command{
	Use:         "serve",
	Short:       "Run the dashboard HTTP server and the vault refresh loop.",
	Args:        cobra.NoArgs,
	Annotations: structuredLog(),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := slog.Default()

	registry, err := chains.Default()
	if err != nil {
		return err
	}
	client, err := ydaemon.New(cfg.YDaemonBaseURI, ydaemon.Options{Timeout: cfg.HTTPClientTimeout, Logger: logger})
	if err != nil {
		return err
	}

	var (
		pool      *pgxpool.Pool
		snapshots catalog.SnapshotStore
	)
	if cfg.DatabaseURL != "" {
		pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		snapshots = store.New(pool)
	} else {
		logger.Info("DATABASE_URL not set; vault snapshots and sessions stay in memory")
	}

	cat := catalog.New(client, catalog.Options{ChainIDs: cfg.ChainIDs, Snapshots: snapshots, Logger: logger})
	if err := cat.Restore(ctx); err != nil {
		logger.Warn("restore vault snapshots failed", "err", err)
	}
	scheduler := catalog.Scheduler{
		Runner:    cat,
		Interval:  cfg.CatalogRefreshInterval,
		RetryBase: catalogRetryBase,
		Logger:    logger,
	}
	go scheduler.Run(ctx)

	srv := httpapp.NewEchoServer(&handlers.Handlers{
		Cfg:     cfg,
		Catalog: cat,
		Reports: reports.NewCache(client, reports.CacheOptions{
			TTL:          cfg.ReportsCacheTTL,
			FetchTimeout: cfg.HTTPClientTimeout,
			Logger:       logger,
		}),
		Chains:   registry,
		Sessions: httpapp.NewSessionManager(cfg, pool),
		Logger:   logger,
	})

	metricsServer, err := metrics.Listen(cfg.MetricsAddr)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	if metricsServer != nil {
		g.Go(func() error { return metricsServer.Run(gctx, logger) })
	}
	g.Go(func() error {
		logger.Info("listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
