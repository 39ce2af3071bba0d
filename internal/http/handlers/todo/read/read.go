// Package read реализует HTTP-обработчик для получения конкретной задачи по ID.
//
// Handler извлекает ID из URL-параметров, вызывает бизнес-логику для чтения
// задачи текущего пользователя и возвращает её в JSON-формате.
//
// Некорректный идентификатор, отсутствующая задача и задача чужого
// пользователя дают одинаковый ответ 404.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/msavelyeva/todo-service/internal/http/middlewarectx"
	"github.com/msavelyeva/todo-service/internal/http/response"
	"github.com/msavelyeva/todo-service/internal/lib/sl"
	"github.com/msavelyeva/todo-service/internal/models"
	todoservice "github.com/msavelyeva/todo-service/internal/services/todo"
)

// Handler обрабатывает запросы на получение задачи по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для получения задачи по ID
}

// Service описывает интерфейс бизнес-логики чтения задачи.
type Service interface {
	Read(ctx context.Context, id string, creatorID primitive.ObjectID) (*models.Todo, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает HTTP-запрос на получение задачи по ID.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.todo.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id := chi.URLParam(r, "id")
	todo, err := h.service.Read(r.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, todoservice.ErrTodoNotFound) {
			log.Info("todo not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			return
		}
		log.Error("failed to read todo", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("could not read todo"))
		return
	}

	log.Info("success to read todo", slog.String("id", id))
	render.JSON(w, r, map[string]any{
		"todo": todo,
	})
}
