package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"techmart/internal/config"
	httpapi "techmart/internal/http"
	"techmart/internal/logging"
	"techmart/internal/repository"
	"techmart/internal/service"

	_ "techmart/docs"
)

// @title Techmart API
// @version 1.0
// @description Catalog, inventory and transaction endpoints backing the Techmart dashboard.
// @BasePath /api
func main() {
	app := &cli.App{
		Name:  "techmart",
		Usage: "Techmart dashboard backend and transaction builder",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to YAML config",
				EnvVars: []string{"TECHMART_CONFIG"},
			},
		},
		Action: runServe,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: runServe,
			},
			quoteCommand(),
			createCommand(),
			browseCommand(),
			overviewCommand(),
			exportCommand(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := app.RunContext(ctx, os.Args); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// setup загружает конфиг и создаёт логгер
func setup(c *cli.Context) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func runServe(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store := repository.NewMemoryStore()
	if cfg.Server.Seed {
		if err := repository.SeedProducts(c.Context, store); err != nil {
			return err
		}
	}
	txRepo := repository.NewMemoryTransactions(store)
	tx := repository.NewMemoryTx(store)

	productsSvc := service.NewProductService(store)
	txSvc := service.NewTransactionService(store, txRepo, tx)
	analytics := service.NewAnalyticsService(store, txRepo, tx)

	limiter := httpapi.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go limiter.Run(c.Context, time.Minute)

	srv := httpapi.NewServer(productsSvc, txSvc,
		httpapi.WithLogger(logger),
		httpapi.WithAnalytics(analytics),
		httpapi.WithRateLimiter(limiter),
		httpapi.WithLowStockThreshold(cfg.Inventory.LowStockThreshold),
	)

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Engine(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", zap.Error(err))
			return err
		}
		return nil
	case <-c.Context.Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}
