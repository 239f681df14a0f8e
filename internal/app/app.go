package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pinnote/pinnote/internal/config"
	"github.com/pinnote/pinnote/internal/httpserver"
	"github.com/pinnote/pinnote/internal/httpserver/deps"
	"github.com/pinnote/pinnote/internal/logger"
	"github.com/pinnote/pinnote/internal/overlay"
	"github.com/pinnote/pinnote/internal/pages"
	"github.com/pinnote/pinnote/internal/redisconn"
	"github.com/pinnote/pinnote/internal/scheduler"
	"github.com/pinnote/pinnote/internal/store"
	"github.com/pinnote/pinnote/internal/store/redisblob"
	"github.com/pinnote/pinnote/internal/toolbar"
	"github.com/pinnote/pinnote/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	store       *store.CommentStore
	reloader    *scheduler.SitemapReloader
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redisconn.New(redisconn.Options{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// Hydrate the comment store from redis once; after that memory is
	// canonical and redis is rewritten on every mutation.
	commentStore := store.New(context.Background(), redisblob.New(redisClient), loggerClient)
	loggerClient.Info("comment store hydrated",
		logger.Int("comments", commentStore.Count()))

	controller := overlay.NewController(commentStore, loggerClient)
	pageRegistry := pages.NewRegistry()
	toolbarSvc := toolbar.New(commentStore, controller, pageRegistry)

	// Initialize sitemap reloader (if sitemap file is configured)
	var reloader *scheduler.SitemapReloader
	var reloadTrigger chan struct{}
	if cfg.SitemapFile != "" {
		loggerClient.Info("sitemap file configured, initializing sitemap reloader",
			logger.String("file", cfg.SitemapFile))
		reloadTrigger = make(chan struct{}, 1)
		reloader = scheduler.NewSitemapReloader(
			cfg.SitemapFile,
			pageRegistry,
			loggerClient,
			cfg.ReloadInterval,
			reloadTrigger,
		)
	} else {
		loggerClient.Info("sitemap file not configured, page breakdown limited to annotated pages")
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		AllowedOrigins: cfg.AllowedOrigins,
		TrustProxy:     cfg.TrustProxy,
		RedisClient:    redisClient,
		Store:          commentStore,
		Overlay:        controller,
		Toolbar:        toolbarSvc,
		Pages:          pageRegistry,
		SitemapFile:    cfg.SitemapFile,
		MaxCommentLen:  cfg.MaxCommentLen,
		ReloadTrigger:  reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		store:       commentStore,
		reloader:    reloader,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Pinnote v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Pinnote %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start sitemap reloader (if enabled)
	if a.reloader != nil {
		if err := a.reloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start sitemap reloader: %w", err)
		}
		a.logger.Info("sitemap reloader started",
			logger.Duration("interval", a.cfg.ReloadInterval))
	}

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

	if a.reloader != nil {
		a.reloader.Stop()
	}

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

	a.logger.Info("✅ Pinnote stopped cleanly")
	return nil
}
