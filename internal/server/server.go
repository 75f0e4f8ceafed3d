// Package server boots every subsystem and runs the HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/ecommerce/app/jobs"
	"github.com/shashiranjanraj/ecommerce/app/routes"
	"github.com/shashiranjanraj/ecommerce/config"
	"github.com/shashiranjanraj/ecommerce/pkg/cache"
	"github.com/shashiranjanraj/ecommerce/pkg/database"
	"github.com/shashiranjanraj/ecommerce/pkg/logger"
	"github.com/shashiranjanraj/ecommerce/pkg/metrics"
	"github.com/shashiranjanraj/ecommerce/pkg/middleware"
	"github.com/shashiranjanraj/ecommerce/pkg/migration"
	"github.com/shashiranjanraj/ecommerce/pkg/queue"
	"github.com/shashiranjanraj/ecommerce/pkg/reqid"
	"github.com/shashiranjanraj/ecommerce/pkg/router"
	"github.com/shashiranjanraj/ecommerce/pkg/storage"
)

// Start boots config, logging, database, cache, storage and the queue, then
// serves the API until SIGINT/SIGTERM. Shutdown drains in-flight requests.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if uri := config.MongoLogURI(); uri != "" {
		mh, err := logger.NewMongoHandler(context.Background(), slog.LevelInfo)
		if err != nil {
			logger.Warn("mongo log handler disabled", "error", err)
		} else {
			stdout := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
			logger.SetHandler(logger.NewTeeHandler(stdout, mh))
			defer mh.Close(context.Background())
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}

	if err := migration.New(database.DB).Run(); err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, serving without it", "error", err)
	}

	storage.Connect()

	// Background jobs: Redis-backed when the cache connected, in-memory
	// otherwise. Failed jobs land in the failed_jobs table either way.
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.UseDB(database.DB)
	jobs.RegisterAll()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue.StartWorkers(ctx, 5)

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)
	r.Get("/metrics", "metrics", metrics.Handler())
	routes.RegisterAPI(r, database.DB)

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
