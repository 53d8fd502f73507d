package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/handika51/openmusic-api/internal/auth"
	"github.com/handika51/openmusic-api/internal/collab"
	"github.com/handika51/openmusic-api/internal/config"
	"github.com/handika51/openmusic-api/internal/db"
	"github.com/handika51/openmusic-api/internal/events"
	"github.com/handika51/openmusic-api/internal/playlist"
	"github.com/handika51/openmusic-api/internal/server"
	"github.com/handika51/openmusic-api/internal/songs"
	"github.com/handika51/openmusic-api/internal/users"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.ConfigureLogging(); err != nil {
		log.Fatalf("logging: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sentryMW, err := server.InitSentry(cfg.SentryDSN, version)
	if err != nil {
		return err
	}
	defer server.FlushSentry()

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.AutoMigrate(ctx, pool); err != nil {
		return err
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return err
	}
	rdb := redis.NewClient(opt)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warnf("redis unreachable, events and song cache degrade: %v", err)
	}

	publisher := events.NewPublisher(rdb)
	tokens := auth.NewTokenManager([]byte(cfg.AccessTokenKey), []byte(cfg.RefreshTokenKey), cfg.AccessTokenAge)

	userStore := users.NewPostgresStore(pool)
	songCatalog := songs.NewCache(songs.NewPostgresStore(pool), rdb, cfg.SongCacheTTL)
	registry := collab.NewPostgresRegistry(pool)
	playlists := playlist.NewService(playlist.NewPostgresStore(pool), registry, songCatalog, publisher)

	srv := server.New(tokens, cfg.RequestTimeout,
		[]server.Routes{
			songs.NewHandler(songCatalog),
			users.NewHandler(userStore),
			auth.NewHandler(tokens, auth.NewPostgresTokenStore(pool), userStore),
		},
		[]server.Routes{
			playlist.NewHandler(playlists),
			collab.NewHandler(registry, playlists, userStore, publisher),
		},
	)

	var middlewares []func(http.Handler) http.Handler
	if sentryMW != nil {
		middlewares = append(middlewares, sentryMW)
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Router(middlewares...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("openmusic-api on %s", cfg.Addr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
