package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"busfinder/internal/cache"
	intconfig "busfinder/internal/config"
	router "busfinder/internal/http"
	"busfinder/internal/http/handlers"
	"busfinder/internal/repositories"
	"busfinder/internal/services"
	"busfinder/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	slog.SetDefault(utils.NewLogger(utils.LoggerConfig{Level: env.LogLevel, Format: env.LogFormat}))

	ctx := context.Background()

	db, err := intconfig.OpenDB(ctx, env.DB)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store, closeStore := optionsStore(ctx, env)
	defer closeStore()

	repo := repositories.BusRepository{
		DB:             db,
		CurrencyPrefix: env.CurrencyPrefix,
		QueryTimeout:   env.DB.QueryTimeout,
	}
	filters := services.NewFilterService(repo, store)
	if err := filters.Warm(ctx); err != nil {
		slog.Warn("form options not loaded at startup, will retry on first request", "error", err)
	}

	h := &handlers.Handler{
		DB:      db,
		Filters: filters,
		Search:  services.SearchService{Filters: filters, Repo: repo},
		Export:  services.ExportService{CurrencyPrefix: env.CurrencyPrefix},
		Auth: services.AuthService{
			Username:     env.AdminUsername,
			PasswordHash: env.AdminPasswordHash,
			Secret:       []byte(env.JWTSecret),
		},
	}

	if env.JWTSecret == "" || env.AdminPasswordHash == "" {
		slog.Warn("JWT_SECRET or ADMIN_PASSWORD_HASH not set, admin endpoints are disabled")
	}

	r := router.NewRouter(env, h)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", "http://localhost"+env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
		return
	}

	slog.Info("server stopped")
}

// optionsStore picks the cache backend for the form options. A redis
// backend that cannot be reached falls back to the in-process store.
func optionsStore(ctx context.Context, env intconfig.Env) (cache.Store, func()) {
	if strings.EqualFold(env.CacheBackend, "redis") {
		client, err := intconfig.ConnectRedis(ctx, env.RedisURL)
		if err == nil {
			slog.Info("form options cached in redis")
			return cache.NewRedisStore(client, env.OptionsCacheTTL), func() { _ = client.Close() }
		}
		slog.Warn("redis unavailable, caching form options in memory", "error", err)
	}
	return cache.NewMemoryStore(env.OptionsCacheTTL), func() {}
}
