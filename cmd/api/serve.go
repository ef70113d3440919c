package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Tomlord1122/task-manager/internal/auth"
	"github.com/Tomlord1122/task-manager/internal/config"
	"github.com/Tomlord1122/task-manager/internal/database"
	"github.com/Tomlord1122/task-manager/internal/repository"
	"github.com/Tomlord1122/task-manager/internal/server"
	"github.com/Tomlord1122/task-manager/internal/service"
)

const shutdownTimeout = 5 * time.Second

func runServe(ctx context.Context, opts *rootOptions) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return err
	}

	dbService, err := database.New(cfg.Database, log, cfg.IsProduction())
	if err != nil {
		log.WithError(err).Error("failed to open database")
		return err
	}

	if cfg.Database.AutoMigrate {
		if err := dbService.Migrate(ctx); err != nil {
			_ = dbService.Close()
			return err
		}
	}

	apiServer := server.NewServer(buildDependencies(cfg, log, dbService))
	log.WithField("env", cfg.Env).Info("configuration loaded")
	return serve(ctx, apiServer, dbService, log)
}

// serve runs apiServer until a shutdown signal or a listener failure. The
// pool is closed on both paths.
func serve(ctx context.Context, apiServer *http.Server, dbService database.Service, log *logrus.Logger) error {
	// Cancelling ctx also unblocks gracefulShutdown when the listener fails.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go gracefulShutdown(ctx, apiServer, dbService, log, done)

	log.WithField("addr", apiServer.Addr).Info("starting server")
	if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("HTTP server ListenAndServe error")
		cancel()
		<-done
		return fmt.Errorf("listen: %w", err)
	}

	<-done
	log.Info("graceful shutdown complete")
	return nil
}

func runMigrate(ctx context.Context, opts *rootOptions) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return err
	}

	dbService, err := database.New(cfg.Database, log, cfg.IsProduction())
	if err != nil {
		return err
	}
	defer dbService.Close()

	return dbService.Migrate(ctx)
}

// buildDependencies wires repositories, auth and services on top of the
// open database.
func buildDependencies(cfg *config.Config, log *logrus.Logger, dbService database.Service) server.Dependencies {
	gormDB := dbService.GetDB()
	userRepo := repository.NewGormUserRepository(gormDB)
	taskRepo := repository.NewGormTaskRepository(gormDB)

	hasher := auth.NewBcryptHasher(cfg.Bcrypt.Cost)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Audience, cfg.JWT.Issuer, cfg.JWT.TTL)

	return server.Dependencies{
		Config: cfg,
		Tasks:  service.NewTaskService(taskRepo, log),
		Users:  service.NewUserService(userRepo, hasher, log),
		Auth:   service.NewAuthService(userRepo, hasher, tokens, log),
		Tokens: tokens,
		DB:     dbService,
		Log:    log,
	}
}

func gracefulShutdown(parent context.Context, apiServer *http.Server, dbService database.Service, log *logrus.Logger, done chan<- struct{}) {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info("shutting down gracefully, press Ctrl+C again to force")
	stop()

	// The server has shutdownTimeout to finish in-flight requests.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}

	if err := dbService.Close(); err != nil {
		log.WithError(err).Error("error closing database connection pool")
	}

	log.Info("server exiting")
	close(done)
}
