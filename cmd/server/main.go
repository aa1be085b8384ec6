// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"siteadmin/internal/alias"
	"siteadmin/internal/alias/folders"
	aliasservice "siteadmin/internal/alias/service"
	aliasstore "siteadmin/internal/alias/store"
	httptransport "siteadmin/internal/http"
	"siteadmin/internal/platform/config"
	"siteadmin/internal/platform/database"
	"siteadmin/internal/platform/httpserver"
	"siteadmin/internal/platform/logger"
	"siteadmin/internal/platform/metrics"
	platformredis "siteadmin/internal/platform/redis"
	"siteadmin/internal/profile"
	profileservice "siteadmin/internal/profile/service"
	profilestore "siteadmin/internal/profile/store"
	"siteadmin/internal/settings"
	"siteadmin/internal/settings/cache"
	settingsservice "siteadmin/internal/settings/service"
	settingsstore "siteadmin/internal/settings/store"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		aliasStore    aliasservice.Store
		fieldStore    profileservice.Store
		settingsStore settingsservice.Store
		health        []func(ctx context.Context) error
	)
	if cfg.DatabaseURL != "" {
		db, err := database.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("database setup failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		aliasStore = aliasstore.NewPostgres(db)
		fieldStore = profilestore.NewPostgres(db)
		settingsStore = settingsstore.NewPostgres(db)
		health = append(health, db.PingContext)
	} else {
		log.Warn("no database configured, using in-memory stores")
		aliasStore = aliasstore.NewInMemory()
		fieldStore = profilestore.NewInMemory()
		settingsStore = settingsstore.NewInMemory()
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis setup failed", "error", err)
		os.Exit(1)
	}
	var invalidator cache.Invalidator = cache.Noop{}
	if redisClient != nil {
		defer redisClient.Close()
		invalidator = cache.NewRedis(redisClient)
		health = append(health, redisClient.Health)
	}

	m := metrics.New()

	aliasRegistry := alias.NewRegistry(aliasStore,
		aliasservice.WithLogger(log),
		aliasservice.WithMetrics(m),
		aliasservice.WithFolderCleaner(folders.NewCleaner(cfg.AppRoot)),
	)
	fieldRegistry := profile.NewRegistry(fieldStore,
		profileservice.WithLogger(log),
		profileservice.WithMetrics(m),
	)
	settingsService := settings.NewService(settingsStore,
		settingsservice.WithLogger(log),
		settingsservice.WithMetrics(m),
		settingsservice.WithCache(invalidator),
	)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:     log,
		AdminToken: cfg.AdminToken,
		HostToken:  cfg.HostToken,
		Alias:      alias.NewHandler(aliasRegistry, log),
		Profile:    profile.NewHandler(fieldRegistry, log),
		Settings:   settings.NewHandler(settingsService, log),
		Health:     health,
	})
	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting siteadmin", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("siteadmin stopped")
}
