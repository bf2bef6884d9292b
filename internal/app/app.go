package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dailyglow/glow/internal/achievement"
	"github.com/dailyglow/glow/internal/catalog"
	"github.com/dailyglow/glow/internal/config"
	"github.com/dailyglow/glow/internal/deck"
	"github.com/dailyglow/glow/internal/events"
	"github.com/dailyglow/glow/internal/httpserver"
	"github.com/dailyglow/glow/internal/httpserver/deps"
	"github.com/dailyglow/glow/internal/logger"
	"github.com/dailyglow/glow/internal/redis"
	"github.com/dailyglow/glow/internal/scheduler"
	"github.com/dailyglow/glow/internal/selection"
	"github.com/dailyglow/glow/internal/store"
	"github.com/dailyglow/glow/internal/store/memory"
	redisstore "github.com/dailyglow/glow/internal/store/redis"
	"github.com/dailyglow/glow/internal/streak"
	"github.com/dailyglow/glow/internal/version"
)

type App struct {
	cfg          *config.Config
	logger       logger.Logger
	server       *httpserver.Server
	redisClient  *goredis.Client
	selection    *selection.Service
	streak       *streak.Tracker
	achievements *achievement.Engine
	reloader     *scheduler.LibraryReloader
	rollover     *scheduler.DayRollover
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Pick the store: Redis when configured, in-memory otherwise.
	var kv store.KV
	var redisClient *goredis.Client
	if cfg.RedisAddr != "" {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")
		redisClient = client
		kv = redisstore.NewStore(client)
	} else {
		loggerClient.Warn("no Redis address configured, state will not survive restarts")
		kv = memory.NewStore()
	}

	// Domain wiring: catalog, deck, streak, achievements, selection.
	cat := catalog.NewIndex()
	sink := events.Fanout{&events.LogSink{Logger: loggerClient}}
	deckEngine := deck.NewEngine(kv, loggerClient, cfg.DeckMinValidRatio)
	streakTracker := streak.NewTracker(kv, loggerClient, sink, time.Now)
	achievements := achievement.NewEngine(kv, loggerClient, sink, time.Now)
	sel := selection.NewService(cat, deckEngine, kv, streakTracker, achievements, sink, loggerClient, time.Now)

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewLibraryReloader(
		cfg.LibraryFile,
		cat,
		sel,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	rollover := scheduler.NewDayRollover(sel, loggerClient, cfg.RolloverInterval, time.Now)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		LibraryFile:   cfg.LibraryFile,
		RedisClient:   redisClient,
		Store:         kv,
		Catalog:       cat,
		Selection:     sel,
		Streak:        streakTracker,
		Achievements:  achievements,
		ReloadTrigger: reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:          cfg,
		logger:       loggerClient,
		server:       server,
		redisClient:  redisClient,
		selection:    sel,
		streak:       streakTracker,
		achievements: achievements,
		reloader:     reloader,
		rollover:     rollover,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Glow v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Glow %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the library first so the catalog is populated before any state
	// restore resolves ids against it.
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start library reloader: %w", err)
	}
	a.logger.Info("library reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	// Restore persisted user state.
	a.streak.Load(ctx)
	a.achievements.Load(ctx)
	a.selection.Load(ctx)

	// First session of this process, then watch for midnight.
	a.rollover.Start(ctx)
	a.logger.Info("day rollover watcher started",
		logger.Duration("interval", a.cfg.RolloverInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.reloader.Stop()
	a.rollover.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Glow stopped cleanly")
	return nil
}
