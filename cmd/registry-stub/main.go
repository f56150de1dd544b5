package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crpt-gateway/crpt/domain"
	"crpt-gateway/crpt/infra"
	"crpt-gateway/crpt/registry"
	"crpt-gateway/internal/logger"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

func main() {
	log, err := logger.NewLogger(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := readConfig()
	if err != nil {
		log.Fatalw("config error", "error", err)
	}

	var stats domain.StatsStore
	if cfg.statsRedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.statsRedisAddr,
			Password: cfg.statsRedisPassword,
			DB:       cfg.statsRedisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			log.Fatalw("redis stats ping error", "addr", cfg.statsRedisAddr, "error", err)
		}
		stats = infra.NewRedisStatsStore(rdb,
			infra.WithStatsPrefix(cfg.statsPrefix),
			infra.WithStatsTTL(cfg.statsTTL),
		)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store := infra.NewStore(cfg.rps, cfg.burst)
	store.StartJanitor(ctx)

	h := registry.NewHandler(registry.HandlerOptions{
		Path:   cfg.path,
		Logger: log.With("component", "registry"),
		Stats:  stats,
	})
	h = registry.ConcurrencyMiddleware(registry.ConcurrencyOptions{
		Max:            cfg.concurrencyMax,
		AcquireTimeout: cfg.concurrencyTimeout,
	})(h)
	h = registry.Middleware(registry.Options{
		Store:               store,
		KeyHeader:           cfg.keyHeader,
		TrustXForwardedFor:  cfg.trustXFF,
		RetryAfter:          cfg.retryAfter,
		AddRateLimitHeaders: cfg.addHeaders,
	})(h)

	srv := &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Infow("registry stub listening",
		"addr", cfg.listenAddr,
		"path", cfg.path,
		"rps", cfg.rps,
		"burst", cfg.burst,
		"concurrency_max", cfg.concurrencyMax,
		"stats_redis", cfg.statsRedisAddr != "",
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalw("server error", "error", err)
	}
}
