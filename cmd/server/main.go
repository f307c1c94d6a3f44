package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"skillhub/internal/domain/analysis"
	"skillhub/internal/domain/assessment"
	"skillhub/internal/platform/cache"
	"skillhub/internal/platform/config"
	"skillhub/internal/platform/db"
	"skillhub/internal/platform/logger"
	"skillhub/internal/platform/metrics"
	analysishandler "skillhub/internal/transport/http/handlers/analysis"
	"skillhub/internal/transport/http/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	logg, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logg.Sync()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		logg.Fatal("db connect failed", "err", err)
	}
	defer pool.Close()

	collector := metrics.New("skillhub")

	// A missing or unreachable Redis degrades the cache to the in-process
	// store; analysis must never depend on the cache being up.
	var backing cache.Store = cache.NewMemoryStore()
	if cfg.RedisAddr != "" {
		redisStore, err := cache.NewRedisStore(ctx, cfg.RedisAddr)
		if err != nil {
			logg.Warn("redis unavailable, using in-process cache", "addr", cfg.RedisAddr, "err", err)
		} else {
			defer redisStore.Close()
			backing = redisStore
		}
	}
	cacheSvc := cache.NewService(backing, logg, collector, cfg.SoftSkillsTTL, cfg.AnalysisTTL)

	store := assessment.NewStore(pool)
	analysisSvc := analysis.NewService(store, cacheSvc, logg, collector, analysis.Config{
		TopSkillsLimit: cfg.TopSkillsLimit,
		Thresholds: analysis.StatusThresholds{
			WarningBelow:  cfg.DistWarningBelow,
			CriticalBelow: cfg.DistCriticalBelow,
		},
		FetchConcurrency: cfg.FetchConcurrency,
	})

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logg))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Method(http.MethodGet, "/metrics", collector.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		analysishandler.NewHandler(analysisSvc, logg).RegisterRoutes(r)
	})

	logg.Info("skillhub server listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		logg.Fatal("server failed", "err", err)
	}
}
