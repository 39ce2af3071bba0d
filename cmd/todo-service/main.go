// Package main Todo Service API
//
// @title           Todo Service API
// @version         1.0
// @description     API для управления списком задач пользователя

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey TokenAuth
// @in header
// @name x-auth
// @description Токен сессии, выдаваемый при регистрации и входе.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	todoservice "github.com/msavelyeva/todo-service/internal/app/todo-service"
	"github.com/msavelyeva/todo-service/internal/config"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting todo-service", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := todoservice.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("todo-service stopped gracefully")
}
