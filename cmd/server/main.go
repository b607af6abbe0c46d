package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"dashboard/internal/api"
	"dashboard/internal/config"
	"dashboard/internal/engine"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default: ./dashboard.yaml if present)")
	flag.Parse()

	// 1. Environment and config
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	v, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg, err := config.Decode(v)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// 2. Initialize Echo with no data
	// Routes are live immediately and answer 503 until the datasets land.
	metrics := api.NewMetrics()
	h := api.NewHandler(logger, metrics)
	e, err := api.NewServer(cfg, logger, h, metrics)
	if err != nil {
		logger.Fatal("building server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Load datasets in the background
	go func() {
		logger.Info("loading datasets", zap.String("file", cfg.Data.TimeSeries))
		t0 := time.Now()

		catalog, err := engine.LoadCatalog(ctx, engine.Sources{
			TimeSeries: cfg.Data.TimeSeries,
			Gapminder:  cfg.Data.Gapminder,
			Tips:       cfg.Data.Tips,
			Carshare:   cfg.Data.Carshare,
		}, logger)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			// Without its data the dashboard has nothing to show.
			logger.Fatal("loading datasets failed", zap.Error(err))
		}

		h.SetData(catalog)
		logger.Info("datasets ready", zap.Duration("took", time.Since(t0)))
	}()

	// 4. Start server
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr()))
		if err := e.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
