package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/manenim/limitation/pkg/limitation"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)

	period, err := cfg.period()
	if err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	store, err := limitation.NewRedisStore(client)
	if err != nil {
		logger.Error("connecting to redis", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}

	recorder, err := limitation.NewPrometheusRecorder(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Error("registering metrics", "error", err)
		os.Exit(1)
	}

	opts := []limitation.Option{
		limitation.WithLimit(cfg.Limit),
		limitation.WithPeriod(period),
		limitation.WithRecorder(recorder),
		limitation.WithLogger(logger),
	}
	if cfg.CookieName != "" {
		opts = append(opts, limitation.WithCookieName(cfg.CookieName))
	}
	if cfg.KeyPrefix != "" {
		opts = append(opts, limitation.WithKeyPrefix(cfg.KeyPrefix))
	}
	if cfg.FailOpen {
		// Availability over strictness: shed the limiter, not the
		// traffic, when Redis is down.
		opts = append(opts,
			limitation.WithStoreFailurePolicy(limitation.FailOpen),
			limitation.WithUnresolvedKeyPolicy(limitation.FailOpen),
		)
	}

	l, err := limitation.New(store, opts...)
	if err != nil {
		logger.Error("building limiter", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/ping", limitation.Middleware(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Pong!\n"))
	})))

	logger.Info("server listening",
		"addr", cfg.Listen, "redis", cfg.RedisAddr,
		"limit", cfg.Limit, "period", period.String())

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
