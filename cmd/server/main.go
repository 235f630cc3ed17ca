package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/maxviazov/boxscore-tracker/internal/analysis"
	"github.com/maxviazov/boxscore-tracker/internal/boxscore"
	"github.com/maxviazov/boxscore-tracker/internal/config"
	"github.com/maxviazov/boxscore-tracker/internal/handler"
	"github.com/maxviazov/boxscore-tracker/internal/live"
	"github.com/maxviazov/boxscore-tracker/internal/logger"
	"github.com/maxviazov/boxscore-tracker/internal/publisher"
	"github.com/maxviazov/boxscore-tracker/internal/repository"
	"github.com/maxviazov/boxscore-tracker/internal/repository/memory"
	"github.com/maxviazov/boxscore-tracker/internal/repository/postgres"
	redisstore "github.com/maxviazov/boxscore-tracker/internal/repository/redis"
	"github.com/maxviazov/boxscore-tracker/internal/repository/sqlite"
	"github.com/maxviazov/boxscore-tracker/internal/service"
)

func main() {
	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	loggerConfig(cfg)
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("service stopped with error")
	}
	appLogger.Info().Msg("service stopped")
}

func configPath() string {
	if p := os.Getenv("APP_CONFIG"); p != "" {
		return p
	}
	return "config.yaml"
}

// loggerConfig fills logger identity from the app section when the logger section leaves it out.
func loggerConfig(cfg *config.Config) {
	if cfg.Logger.ServiceName == "" {
		cfg.Logger.ServiceName = cfg.App.Name
	}
	if cfg.Logger.ServiceVersion == "" {
		cfg.Logger.ServiceVersion = cfg.App.Version
	}
	if cfg.Logger.Env == "" {
		cfg.Logger.Env = cfg.App.Env
		if cfg.Logger.Env == "test" {
			cfg.Logger.Env = "dev"
		}
	}
}

func run(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger) error {
	blobs, redisClient, err := openStore(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := blobs.Close(); err != nil {
			appLogger.Warn().Err(err).Msg("closing store")
		}
	}()

	var notifiers []service.Notifier
	var hub *live.Hub
	if cfg.Live.WebSocket {
		hub = live.NewHub(appLogger)
		go hub.Run(ctx)
		notifiers = append(notifiers, hub)
	}
	if cfg.Live.Stream {
		if redisClient == nil {
			opts, err := redis.ParseURL(cfg.Redis.URL)
			if err != nil {
				return fmt.Errorf("parse redis url: %w", err)
			}
			redisClient = redis.NewClient(opts)
			defer redisClient.Close()
		}
		notifiers = append(notifiers, publisher.NewStreamPublisher(redisClient, cfg.Live.StreamPrefix, appLogger))
	}

	opts := []service.Option{service.WithNotifiers(notifiers...)}
	if cfg.Analysis.Enabled {
		gemini := analysis.NewGeminiClient(analysis.GeminiConfig{
			BaseURL: cfg.Analysis.BaseURL,
			Model:   cfg.Analysis.Model,
			APIKey:  cfg.Analysis.APIKey,
			Timeout: cfg.Analysis.Timeout,
		})
		opts = append(opts, service.WithAnalyzer(analysis.NewAnalyzer(gemini, appLogger)))
	}

	matches := repository.NewMatchStore(blobs, appLogger)
	tracker := service.NewTracker(ctx, matches, boxscore.NewGenerator(), appLogger, opts...)

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestLogger(appLogger))

	// a nil *live.Hub must not become a non-nil interface
	var liveServer handler.LiveServer
	if hub != nil {
		liveServer = hub
	}
	handler.Register(ctx, r, blobs, tracker, liveServer)

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.App.Port),
		Handler: r,
	}
	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().
			Int("port", cfg.App.Port).
			Str("driver", cfg.Storage.Driver).
			Bool("websocket", cfg.Live.WebSocket).
			Bool("stream", cfg.Live.Stream).
			Bool("analysis", cfg.Analysis.Enabled).
			Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	appLogger.Info().Dur("timeout", cfg.App.ShutdownTimeout).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore returns the configured blob store, plus its redis client when the driver is redis
// so the stream publisher can share the connection.
func openStore(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger) (repository.BlobStore, *redis.Client, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLite.Path, appLogger)
		return s, nil, err
	case config.DriverRedis:
		s, err := redisstore.Open(ctx, cfg.Redis.URL, cfg.Redis.KeyPrefix, appLogger)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Client(), nil
	case config.DriverPostgres:
		s, err := postgres.Open(ctx, cfg.Postgres, appLogger)
		return s, nil, err
	default:
		return memory.New(), nil, nil
	}
}
