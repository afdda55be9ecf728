package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"delitrack/internal/config"
	"delitrack/internal/dashboard"
	"delitrack/internal/infrastructure/logger"
	"delitrack/internal/infrastructure/metrics"
	"delitrack/internal/order"
	"delitrack/internal/server"
	"delitrack/internal/telemetry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	appMetrics := metrics.New()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	orders, err := order.LoadDataset(startupCtx, cfg, zapLogger)
	cancelStartup()
	if err != nil {
		zapLogger.Fatal("loading order dataset", zap.Error(err))
	}

	orderModule, err := order.NewModule(orders, appMetrics, zapLogger)
	if err != nil {
		zapLogger.Fatal("building order catalog", zap.Error(err))
	}

	telemetryCfg := telemetry.ConfigFromSettings(cfg.Telemetry)
	sessions := telemetry.NewRegistry(telemetryCfg, zapLogger, telemetry.WithRecorder(appMetrics))

	dashCtrl, err := dashboard.NewModule(orderModule.Catalog, sessions, telemetryCfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("building dashboard", zap.Error(err))
	}

	router := server.NewRouter(orderModule.Controller, dashCtrl, appMetrics, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)
	srv.BeforeShutdown(sessions.StopAll)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
