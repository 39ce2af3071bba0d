// Package services содержит бизнес-логику для управления задачами пользователя.
//
// Каждая операция чтения и записи ограничена владельцем: фильтр
// {id, creator_id} уходит в хранилище одним составным запросом,
// проверка владельца в коде приложения не выполняется.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/msavelyeva/todo-service/internal/models"
	"github.com/msavelyeva/todo-service/internal/storage/mongodb"
)

// ErrTodoNotFound покрывает три неразличимых случая: некорректный
// идентификатор, отсутствующую задачу и задачу чужого пользователя.
var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository определяет методы для работы с задачами в хранилище.
type TodoRepository interface {
	// CreateTodo добавляет новую задачу и возвращает её с присвоенным ID.
	CreateTodo(ctx context.Context, todo models.Todo) (*models.Todo, error)
	// ListTodos возвращает все задачи владельца.
	ListTodos(ctx context.Context, creatorID primitive.ObjectID) ([]models.Todo, error)
	// FindTodo возвращает задачу по составному фильтру {id, владелец}.
	FindTodo(ctx context.Context, id, creatorID primitive.ObjectID) (*models.Todo, error)
	// DeleteTodo удаляет задачу по составному фильтру и возвращает удалённый документ.
	DeleteTodo(ctx context.Context, id, creatorID primitive.ObjectID) (*models.Todo, error)
	// UpdateTodo атомарно обновляет задачу по составному фильтру.
	UpdateTodo(ctx context.Context, id, creatorID primitive.ObjectID, upd models.TodoUpdate) (*models.Todo, error)
}

// TodoService реализует бизнес-логику работы с задачами.
type TodoService struct {
	repo TodoRepository
	log  *slog.Logger
}

// NewTodoService создает новый экземпляр TodoService.
func NewTodoService(repo TodoRepository, log *slog.Logger) *TodoService {
	return &TodoService{
		repo: repo,
		log:  log,
	}
}

// Create создает новую задачу для пользователя.
func (s *TodoService) Create(ctx context.Context, creatorID primitive.ObjectID, text string) (*models.Todo, error) {
	todo := models.Todo{
		Text:      text,
		Completed: false,
		CreatorID: creatorID,
	}
	created, err := s.repo.CreateTodo(ctx, todo)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new todo", slog.String("id", created.ID.Hex()))
	return created, nil
}

// List возвращает все задачи пользователя.
func (s *TodoService) List(ctx context.Context, creatorID primitive.ObjectID) ([]models.Todo, error) {
	return s.repo.ListTodos(ctx, creatorID)
}

// Read возвращает задачу пользователя по строковому идентификатору из URL.
func (s *TodoService) Read(ctx context.Context, id string, creatorID primitive.ObjectID) (*models.Todo, error) {
	todoID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrTodoNotFound
	}
	todo, err := s.repo.FindTodo(ctx, todoID, creatorID)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return todo, nil
}

// Remove удаляет задачу пользователя и возвращает удалённый документ.
func (s *TodoService) Remove(ctx context.Context, id string, creatorID primitive.ObjectID) (*models.Todo, error) {
	todoID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrTodoNotFound
	}
	todo, err := s.repo.DeleteTodo(ctx, todoID, creatorID)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	s.log.Info("deleted todo", slog.String("id", todo.ID.Hex()))
	return todo, nil
}

// Update обновляет задачу пользователя. Отметка времени выполнения
// пересчитывается на сервере: completed=true даёт текущее время в
// миллисекундах, отсутствующий или ложный completed снимает отметку.
// Присланный клиентом completedAt никогда не используется.
func (s *TodoService) Update(ctx context.Context, id string, creatorID primitive.ObjectID, req models.DummyTodo) (*models.Todo, error) {
	todoID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrTodoNotFound
	}

	completed := req.Completed != nil && *req.Completed
	upd := models.TodoUpdate{
		Text:      req.Text,
		Completed: completed,
	}
	if completed {
		now := time.Now().UnixMilli()
		upd.CompletedAt = &now
	}

	todo, err := s.repo.UpdateTodo(ctx, todoID, creatorID, upd)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("services.todo.Update: %w", err)
	}
	s.log.Info("updated todo", slog.String("id", todo.ID.Hex()))
	return todo, nil
}
