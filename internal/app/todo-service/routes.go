// Package todoservice предоставляет маршруты и сборку основного приложения.
package todoservice

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	todocreate "github.com/msavelyeva/todo-service/internal/http/handlers/todo/create"
	todolist "github.com/msavelyeva/todo-service/internal/http/handlers/todo/list"
	todoread "github.com/msavelyeva/todo-service/internal/http/handlers/todo/read"
	todoremove "github.com/msavelyeva/todo-service/internal/http/handlers/todo/remove"
	todoupdate "github.com/msavelyeva/todo-service/internal/http/handlers/todo/update"
	userlogin "github.com/msavelyeva/todo-service/internal/http/handlers/user/login"
	userlogout "github.com/msavelyeva/todo-service/internal/http/handlers/user/logout"
	userme "github.com/msavelyeva/todo-service/internal/http/handlers/user/me"
	userregister "github.com/msavelyeva/todo-service/internal/http/handlers/user/register"
	"github.com/msavelyeva/todo-service/internal/http/middlewarectx"
	authservice "github.com/msavelyeva/todo-service/internal/services/auth"
	todosvc "github.com/msavelyeva/todo-service/internal/services/todo"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, todoService *todosvc.TodoService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Post("/users", userregister.New(logger, authService).ServeHTTP)
	r.Post("/users/login", userlogin.New(logger, authService).ServeHTTP)

	// Группа с аутентификацией по заголовку x-auth
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.AuthMiddleware(authService, logger))
		r.Post("/todos", todocreate.New(logger, todoService).ServeHTTP)
		r.Get("/todos", todolist.New(logger, todoService).ServeHTTP)
		r.Get("/todos/{id}", todoread.New(logger, todoService).ServeHTTP)
		r.Delete("/todos/{id}", todoremove.New(logger, todoService).ServeHTTP)
		r.Patch("/todos/{id}", todoupdate.New(logger, todoService).ServeHTTP)
		r.Get("/users/me", userme.New(logger).ServeHTTP)
		r.Delete("/users/me/token", userlogout.New(logger, authService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
