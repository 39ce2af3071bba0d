package todoservice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/msavelyeva/todo-service/internal/config"
	jwtlib "github.com/msavelyeva/todo-service/internal/lib/jwt"
	authservice "github.com/msavelyeva/todo-service/internal/services/auth"
	todosvc "github.com/msavelyeva/todo-service/internal/services/todo"
	"github.com/msavelyeva/todo-service/internal/storage/mongodb"
)

// App собирает HTTP-сервер, хранилище и сервисы в одно приложение.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *mongodb.Storage
}

// New создаёт приложение: подключается к хранилищу, собирает сервисы
// и маршруты. Вся конфигурация приходит одной структурой и дальше
// передаётся по ссылке, глобального состояния нет.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := mongodb.New(ctx, cfg.StorageConnectionString, cfg.DatabaseName)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwtlib.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker, cfg.BcryptCost)
	todoService := todosvc.NewTodoService(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, todoService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до остановки контекста
// или ошибки сервера. При остановке выполняет graceful shutdown
// и разрывает соединение с базой.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if dbErr := a.db.Close(timeoutCtx); dbErr != nil {
			a.logger.Error("failed to disconnect storage", slog.Any("err", dbErr))
		}
		return err
	}
}
