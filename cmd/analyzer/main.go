package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/user/threat-log-analyzer/internal/adapter/chromedp_scraper"
	"github.com/user/threat-log-analyzer/internal/adapter/filesystem"
	"github.com/user/threat-log-analyzer/internal/adapter/httpfeed"
	"github.com/user/threat-log-analyzer/internal/adapter/logfile"
	"github.com/user/threat-log-analyzer/internal/adapter/postgres"
	redis_adapter "github.com/user/threat-log-analyzer/internal/adapter/redis"
	"github.com/user/threat-log-analyzer/internal/repository"
	"github.com/user/threat-log-analyzer/internal/usecase"
	"github.com/user/threat-log-analyzer/pkg/config"
	"github.com/user/threat-log-analyzer/pkg/logger"
	"github.com/user/threat-log-analyzer/pkg/metrics"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	// --- Logger ---
	log := logger.New(cfg.LogLevel, cfg.LogEncoding, cfg.AppLogFile)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Metrics ---
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	// --- Stages ---
	deps := usecase.Dependencies{
		Logs:    logfile.NewReader(cfg.LogFilePath, log),
		Feed:    newThreatFeed(cfg, log),
		Reports: filesystem.NewReportRepo(cfg.OutputDir, log),
		Metrics: m,
		Logger:  log,
	}

	// --- Optional sinks ---
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, skipping redis sinks", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			deps.Flagged = redis_adapter.NewFlaggedIPRepo(rdb)
			deps.Matches = redis_adapter.NewMatchQueueRepo(rdb)
			log.Info("redis sinks enabled", zap.String("addr", cfg.RedisAddr))
		}
	}

	if cfg.PostgresURL != "" {
		if archive, closeFn, err := newRunArchive(ctx, cfg.PostgresURL); err != nil {
			log.Warn("postgres unavailable, skipping run archive", zap.Error(err))
		} else {
			defer closeFn()
			deps.Archive = archive
			log.Info("postgres run archive enabled")
		}
	}

	// --- Run ---
	pipeline := usecase.NewPipeline(deps, usecase.Settings{
		FeedURL:    cfg.ThreatFeedURL,
		FlaggedTTL: cfg.FlaggedTTL(),
	})

	_, err = pipeline.Run(ctx)
	switch {
	case errors.Is(err, usecase.ErrNoLogRecords):
		log.Warn("nothing to analyze", zap.String("log_file", cfg.LogFilePath))
	case err != nil:
		log.Warn("analysis finished with errors", zap.Int("errors", len(multierr.Errors(err))))
	default:
		log.Info("analysis finished")
	}

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile, reg); err != nil {
			log.Error("failed to write metrics textfile", zap.String("path", cfg.MetricsTextfile), zap.Error(err))
		}
	}
}

func newThreatFeed(cfg *config.Config, log *zap.Logger) repository.ThreatFeedRepository {
	if cfg.ThreatFeedMode == config.FeedModeHTTP {
		return httpfeed.NewFetcher(cfg.PageLoadTimeoutDuration(), log)
	}
	return chromedp_scraper.NewChromedpScraper(cfg.PageLoadTimeoutDuration(), log)
}

func newRunArchive(ctx context.Context, connString string) (*postgres.RunArchiveRepoImpl, func(), error) {
	dbpool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, nil, fmt.Errorf("unable to reach database: %w", err)
	}
	archive := postgres.NewRunArchiveRepo(dbpool)
	if err := archive.EnsureSchema(ctx); err != nil {
		dbpool.Close()
		return nil, nil, err
	}
	return archive, dbpool.Close, nil
}
