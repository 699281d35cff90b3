package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	kafkaadapter "github.com/cdcockrum/cneos-explorer/internal/adapter/kafka"
	"github.com/cdcockrum/cneos-explorer/internal/adapter/ssd"
	"github.com/cdcockrum/cneos-explorer/internal/adapter/web"
	"github.com/cdcockrum/cneos-explorer/internal/config"
	"github.com/cdcockrum/cneos-explorer/internal/explorer"
	"github.com/cdcockrum/cneos-explorer/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := ssd.NewClient(cfg, logger, metrics)

	// Export sink (feature-flagged via EXPORT_ENABLED / KAFKA_BROKERS).
	var exporter explorer.Exporter
	var writer *kafkaadapter.Writer
	if cfg.ExportEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		exporter = writer
		metrics.ExportEnabled.Set(1)
		logger.Info("kafka export enabled", "topic", cfg.KafkaExportTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka export disabled")
	}

	svc := explorer.New(client, exporter, logger, metrics)
	srv := web.NewServer(cfg.HTTPAddr, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
