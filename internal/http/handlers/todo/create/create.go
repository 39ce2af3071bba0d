// Package create реализует HTTP-обработчик для создания новых задач пользователя.
//
// Handler принимает JSON-запрос с текстом задачи, валидирует его, извлекает
// пользователя из контекста, вызывает бизнес-логику создания задачи через сервис
// и возвращает созданную запись в JSON-формате.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/msavelyeva/todo-service/internal/http/middlewarectx"
	"github.com/msavelyeva/todo-service/internal/http/response"
	"github.com/msavelyeva/todo-service/internal/lib/sl"
	"github.com/msavelyeva/todo-service/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request — входные данные для создания задачи.
type Request struct {
	Text string `json:"text" validate:"required"`
}

// Handler управляет HTTP-запросами на создание новых задач.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания задач
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания задачи.
type Service interface {
	Create(ctx context.Context, creatorID primitive.ObjectID, text string) (*models.Todo, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать новую задачу
// @Description Создает новую задачу для текущего пользователя. Возвращает созданную запись.
// @Tags Todos
// @Accept  json
// @Produce  json
// @Param request body Request true "Текст новой задачи"
// @Success 200 {object} map[string]any "Успешное создание задачи"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или пустой текст"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /todos [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.todo.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	req.Text = strings.TrimSpace(req.Text)
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	todo, err := h.service.Create(r.Context(), user.ID, req.Text)
	if err != nil {
		log.Error("failed to create todo", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("could not create todo"))
		return
	}

	log.Info("success to create todo", slog.String("id", todo.ID.Hex()))
	render.JSON(w, r, map[string]any{
		"todo": todo,
	})
}
