package remove

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

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Remove(ctx context.Context, id string, creatorID primitive.ObjectID) (*models.Todo, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP удаляет задачу текущего пользователя и возвращает удалённый документ.
// Чужая, отсутствующая или некорректно адресованная задача дают 404.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.todo.remove"

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
	todo, err := h.service.Remove(r.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, todoservice.ErrTodoNotFound) {
			log.Info("todo not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			return
		}
		log.Error("failed to delete todo", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("could not delete todo"))
		return
	}

	log.Info("success to delete todo", slog.String("id", id))
	render.JSON(w, r, map[string]any{
		"todo": todo,
	})
}
