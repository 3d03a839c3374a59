package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"phytoguard/internal/audit"
	audithandler "phytoguard/internal/audit/handler"
	"phytoguard/internal/compliance/cache"
	"phytoguard/internal/compliance/handler"
	"phytoguard/internal/compliance/metrics"
	"phytoguard/internal/compliance/service"
	"phytoguard/internal/platform/config"
	"phytoguard/internal/platform/httpserver"
	"phytoguard/internal/platform/logger"
	platformmetrics "phytoguard/internal/platform/metrics"
	platformredis "phytoguard/internal/platform/redis"
	"phytoguard/internal/registry"
	registrystore "phytoguard/internal/registry/store"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal compliance packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	gateway, pool, cleanup := buildGateway(cfg, log)
	defer cleanup()

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}

	var auditStore audit.Store = audit.NewInMemoryStore()
	if pool != nil {
		auditStore = audit.NewPostgresStore(pool)
	}

	// Audit persistence runs off the check path: the service enqueues,
	// the worker drains into the store.
	auditInbox := make(chan audit.Event, 256)
	auditCtx, stopAudit := context.WithCancel(context.Background())
	defer stopAudit()
	go func() {
		if err := audit.NewWorker(auditStore, auditInbox, log).Run(auditCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
		service.WithAuditor(audit.NewEnqueuer(auditInbox)),
	}
	if redisClient != nil {
		defer redisClient.Close()
		opts = append(opts, service.WithCache(
			cache.NewRedis(redisClient.Client, cfg.ReportCacheTTL, cfg.ProfileCacheTTL)))
		log.Info("report cache enabled", "report_ttl", cfg.ReportCacheTTL, "profile_ttl", cfg.ProfileCacheTTL)
	}

	checker, err := service.New(gateway, opts...)
	if err != nil {
		log.Error("service construction failed", "error", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(platformmetrics.New().Middleware)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())
	handler.New(checker, log).Register(router)
	audithandler.New(audit.NewPublisher(auditStore), log).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting phytoguard", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// buildGateway connects the PostgreSQL registry when a DSN is configured and
// falls back to an empty in-memory registry for local runs. The pool is also
// returned so other stores can share it; nil in the in-memory case.
func buildGateway(cfg config.Server, log *slog.Logger) (registry.Gateway, *pgxpool.Pool, func()) {
	if cfg.PostgresDSN == "" {
		log.Info("no postgres DSN configured, using in-memory registry")
		return registrystore.NewInMemory(), nil, func() {}
	}

	pool, err := pgxpool.New(context.Background(), cfg.PostgresDSN)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	return registrystore.NewPostgres(pool), pool, pool.Close
}
