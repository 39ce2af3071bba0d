package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/msavelyeva/todo-service/internal/http/middlewarectx"
	"github.com/msavelyeva/todo-service/internal/http/response"
	"github.com/msavelyeva/todo-service/internal/lib/sl"
	"github.com/msavelyeva/todo-service/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	List(ctx context.Context, creatorID primitive.ObjectID) ([]models.Todo, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает запрос списка задач текущего пользователя.
// В ответ попадают только задачи, созданные им самим.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.todo.list"

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

	todos, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to list todos", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list todos"))
		return
	}

	log.Info("list todos", slog.Int("count", len(todos)))
	render.JSON(w, r, map[string]any{
		"todos": todos,
	})
}
