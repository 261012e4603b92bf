// cmd/analytics-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"smarthome-crm-analytics/internal/analytics/alerts"
	"smarthome-crm-analytics/internal/analytics/events"
	"smarthome-crm-analytics/internal/analytics/summary"
	"smarthome-crm-analytics/internal/api"
	"smarthome-crm-analytics/internal/common/aws"
	"smarthome-crm-analytics/internal/common/config"
	"smarthome-crm-analytics/internal/common/database"
	"smarthome-crm-analytics/internal/common/httpclient"
	"smarthome-crm-analytics/internal/common/logger"
	"smarthome-crm-analytics/internal/common/observability"
	"smarthome-crm-analytics/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting analytics server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Elasticsearch (optional) ---
	var esClient *database.ElasticsearchClient
	if cfg.Database.Elasticsearch.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 10, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Notification channels (all optional) ---
	notifier := buildNotifier(ctx, cfg, log, zapLog)

	// --- Wire the analytics service ---
	st := store.NewPostgres(pg.DB)
	orchestrator := summary.New(st, cfg.Analytics, redisClient.Client, notifier, log)

	var indexer events.Indexer
	if esClient != nil {
		indexer = esClient
	}
	tracker := events.NewTracker(st, indexer, cfg.Database.Elasticsearch.EventIndex, log)

	server := api.New(orchestrator, tracker, map[string]api.Pinger{
		"postgres": pg,
		"redis":    redisClient,
	}, obs, log)

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      server.Handler(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("Shutting down analytics server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("Analytics server stopped")
}

// buildNotifier assembles the alert fan-out from the enabled channels; returns
// nil when every channel is disabled.
func buildNotifier(ctx context.Context, cfg *config.Config, log logger.Logger, zapLog *zap.Logger) *alerts.Notifier {
	nc := cfg.Notifications
	if !nc.SNS.Enabled && !nc.Email.Enabled && !nc.Webhook.Enabled {
		return nil
	}

	var snsClient alerts.SNSPublisher
	if nc.SNS.Enabled {
		client, err := aws.NewSNSClient(ctx, nc.AWS.Region)
		if err != nil {
			zapLog.Warn("sns client init failed, channel disabled", zap.Error(err))
		} else {
			snsClient = client
		}
	}

	var sesClient alerts.EmailSender
	if nc.Email.Enabled {
		client, err := aws.NewSESClient(ctx, nc.AWS.Region)
		if err != nil {
			zapLog.Warn("ses client init failed, channel disabled", zap.Error(err))
		} else {
			sesClient = client
		}
	}

	var webhook alerts.WebhookPoster
	if nc.Webhook.Enabled {
		webhook = httpclient.NewClient(time.Duration(nc.Webhook.Timeout) * time.Millisecond)
	}

	return alerts.NewNotifier(nc, snsClient, sesClient, webhook, log)
}
