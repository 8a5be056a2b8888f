package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/echoplay/server/internal/config"
	appcron "github.com/echoplay/server/internal/cron"
	"github.com/echoplay/server/internal/handler"
	"github.com/echoplay/server/internal/repository"
	"github.com/echoplay/server/internal/resume"
	"github.com/echoplay/server/internal/service"
	"github.com/echoplay/server/internal/storage"
	"github.com/echoplay/server/pkg/auth"
	"github.com/echoplay/server/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Output: os.Stdout,
	})

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited with error", logger.Error(err))
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := repository.NewPool(ctx, &repository.DBConfig{
		Host:              cfg.Postgres.Host,
		Port:              cfg.Postgres.Port,
		User:              cfg.Postgres.User,
		Password:          cfg.Postgres.Password,
		Database:          cfg.Postgres.Database,
		SSLMode:           cfg.Postgres.SSLMode,
		MaxConns:          cfg.Postgres.MaxConns,
		MinConns:          cfg.Postgres.MinConns,
		MaxConnLifetime:   cfg.Postgres.MaxConnLifetime,
		MaxConnIdleTime:   cfg.Postgres.MaxConnIdleTime,
		HealthCheckPeriod: cfg.Postgres.HealthCheckPeriod,
	})
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if err := repository.Migrate(pool); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Info("database migrated")

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}

	blobs, err := storage.NewMediaStore(cfg.Storage.MediaDir)
	if err != nil {
		return fmt.Errorf("open media store: %w", err)
	}

	tokens := auth.NewManager(&auth.Config{
		Secret:      cfg.Auth.JWTSecret,
		Issuer:      cfg.Auth.Issuer,
		TokenExpiry: cfg.Auth.TokenExpiry,
	})

	userRepo := repository.NewUserRepository(pool)
	audioRepo := repository.NewAudioRepository(pool)
	playlistRepo := repository.NewPlaylistRepository(pool)
	tagRepo := repository.NewTagRepository(pool)
	listenRepo := repository.NewListenRepository(pool)
	searchRepo := repository.NewSearchRepository(pool)
	resumeStore := resume.NewStore(rdb, resume.DefaultTTL)

	svcs := handler.Services{
		Users:     service.NewUserService(userRepo, tokens, log),
		Audios:    service.NewAudioService(audioRepo, tagRepo, blobs, log),
		Playlists: service.NewPlaylistService(playlistRepo, audioRepo, log),
		Tags:      service.NewTagService(tagRepo, audioRepo, log),
		Search:    service.NewSearchService(searchRepo, log),
		Discovery: service.NewDiscoveryService(listenRepo, tagRepo, audioRepo, log),
		Listens:   service.NewListenService(listenRepo, audioRepo, playlistRepo, resumeStore, log),
	}

	maint := service.NewMaintenanceService(audioRepo, blobs, log)
	jobs := appcron.NewManager(maint, log)
	if err := jobs.Start(cfg.Maint.PruneSchedule); err != nil {
		return fmt.Errorf("start cron: %w", err)
	}
	defer jobs.Stop()

	gin.SetMode(cfg.Server.Mode)
	router := handler.NewRouter(svcs, tokens, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", logger.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	log.Info("server stopped")
	return nil
}
