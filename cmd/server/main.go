package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"linkrank/config"
	"linkrank/internal/api"
	"linkrank/internal/api/handler"
	"linkrank/internal/repository"
	"linkrank/internal/service"
	"linkrank/internal/store"
	"linkrank/pkg/database"
	"linkrank/pkg/logger"
	"linkrank/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.App.Env != "production"); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN, Environment: cfg.App.Env}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := tracing.Init(ctx, cfg)
	if err != nil {
		logger.Error("tracing init failed", zap.Error(err))
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }()
	}

	rdb, err := database.InitRedis(cfg)
	if err != nil {
		logger.Error("redis init failed", zap.Error(err))
		return
	}
	defer rdb.Close()

	st := store.NewRedis(rdb)
	postRepo := repository.NewPostRepository(st)
	userRepo := repository.NewUserRepository(st)

	voteService := service.NewVoteService(st, postRepo, userRepo, cfg.Ranking.Gravity, cfg.Vote.MinKarma)
	postService := service.NewPostService(st, postRepo, userRepo, voteService)
	userService := service.NewUserService(userRepo, cfg.SignupInterval(), cfg.Signup.Burst)

	h := handler.New(userService, postService, voteService, cfg.Ranking.PageSize)
	router := api.NewRouter(cfg, h, userService)

	srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server exited", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
