package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/autoxpress/partsearch/app/api"
	"github.com/autoxpress/partsearch/app/cache"
	"github.com/autoxpress/partsearch/app/cfg"
	"github.com/autoxpress/partsearch/app/database"
	"github.com/autoxpress/partsearch/app/listing"
	"github.com/autoxpress/partsearch/app/ranking"
	"github.com/autoxpress/partsearch/app/search"
	"github.com/autoxpress/partsearch/app/sources"
	"github.com/autoxpress/partsearch/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting PartSearch server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	favoriteRepo := database.NewFavoriteRepository(db)
	watchRepo := database.NewWatchRepository(db)

	configCache := sources.NewConfigCache(appCfg.SourcesDir)
	if err := configCache.Run(); err != nil {
		slog.Error("Failed to load source configurations", "dir", appCfg.SourcesDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Source configurations loaded", "count", configCache.GetConfigCount())

	httpClient := &http.Client{Timeout: 60 * time.Second}

	var providers []sources.Provider
	for _, config := range configCache.GetEnabledConfigs() {
		provider, err := sources.NewProvider(config, httpClient, appCfg.UserAgent)
		if err != nil {
			slog.Warn("Skipping source", "source", config.ID, "error", err)
			continue
		}
		providers = append(providers, provider)
		slog.Info("Source registered", "source", config.ID, "kind", config.Source.Kind)
	}

	var resultCache *cache.Cache
	if appCfg.RedisAddr != "" {
		resultCache, err = cache.New(appCfg.RedisAddr)
		if err != nil {
			slog.Warn("Redis unavailable, search caching disabled", "addr", appCfg.RedisAddr, "error", err)
			resultCache = nil
		} else {
			defer resultCache.Close()
		}
	} else {
		slog.Info("Search caching disabled (REDIS_ADDR not set)")
	}

	searchService := search.NewService(providers, listing.NewNormalizer(), ranking.NewRanker(), resultCache)

	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "interval", appCfg.SchedulerInterval)
	scheduler := tasks.NewScheduler(searchService, watchRepo, favoriteRepo, httpClient, listing.NewDescriptionExtractor())
	scheduler.Start()
	defer scheduler.Stop()

	apiHandler := api.NewHandler(searchService, favoriteRepo, watchRepo, configCache, resultCache, scheduler)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
