package services_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/msavelyeva/todo-service/internal/models"
	services "github.com/msavelyeva/todo-service/internal/services/todo"
	"github.com/msavelyeva/todo-service/internal/storage/mongodb"
)

// MockRepo реализует интерфейс services.TodoRepository
type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) CreateTodo(ctx context.Context, todo models.Todo) (*models.Todo, error) {
	args := m.Called(ctx, todo)
	if res := args.Get(0); res != nil {
		return res.(*models.Todo), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepo) ListTodos(ctx context.Context, creatorID primitive.ObjectID) ([]models.Todo, error) {
	args := m.Called(ctx, creatorID)
	if res := args.Get(0); res != nil {
		return res.([]models.Todo), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepo) FindTodo(ctx context.Context, id, creatorID primitive.ObjectID) (*models.Todo, error) {
	args := m.Called(ctx, id, creatorID)
	if res := args.Get(0); res != nil {
		return res.(*models.Todo), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepo) DeleteTodo(ctx context.Context, id, creatorID primitive.ObjectID) (*models.Todo, error) {
	args := m.Called(ctx, id, creatorID)
	if res := args.Get(0); res != nil {
		return res.(*models.Todo), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepo) UpdateTodo(ctx context.Context, id, creatorID primitive.ObjectID, upd models.TodoUpdate) (*models.Todo, error) {
	args := m.Called(ctx, id, creatorID, upd)
	if res := args.Get(0); res != nil {
		return res.(*models.Todo), args.Error(1)
	}
	return nil, args.Error(1)
}

func newService(repo *MockRepo) *services.TodoService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return services.NewTodoService(repo, logger)
}

func TestTodoService_CreateSetsCreator(t *testing.T) {
	repo := new(MockRepo)
	svc := newService(repo)
	creatorID := primitive.NewObjectID()

	repo.On("CreateTodo", mock.Anything, mock.MatchedBy(func(todo models.Todo) bool {
		return todo.CreatorID == creatorID && todo.Text == "buy milk" && !todo.Completed && todo.CompletedAt == nil
	})).Return(&models.Todo{ID: primitive.NewObjectID(), Text: "buy milk", CreatorID: creatorID}, nil)

	created, err := svc.Create(context.Background(), creatorID, "buy milk")
	require.NoError(t, err)
	assert.Equal(t, creatorID, created.CreatorID)
	repo.AssertExpectations(t)
}

func TestTodoService_ReadMalformedID(t *testing.T) {
	repo := new(MockRepo)
	svc := newService(repo)

	// слишком короткая строка не является валидным ObjectID,
	// до обращения к хранилищу дело не доходит
	_, err := svc.Read(context.Background(), "123", primitive.NewObjectID())
	assert.ErrorIs(t, err, services.ErrTodoNotFound)
	repo.AssertNotCalled(t, "FindTodo", mock.Anything, mock.Anything, mock.Anything)
}

func TestTodoService_ReadForeignTodo(t *testing.T) {
	repo := new(MockRepo)
	svc := newService(repo)
	todoID := primitive.NewObjectID()
	callerID := primitive.NewObjectID()

	repo.On("FindTodo", mock.Anything, todoID, callerID).Return(nil, mongodb.ErrNotFound)

	_, err := svc.Read(context.Background(), todoID.Hex(), callerID)
	assert.ErrorIs(t, err, services.ErrTodoNotFound)
	repo.AssertExpectations(t)
}

func TestTodoService_UpdateRecomputesCompletedAt(t *testing.T) {
	creatorID := primitive.NewObjectID()
	todoID := primitive.NewObjectID()
	boolPtr := func(b bool) *bool { return &b }
	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name          string
		req           models.DummyTodo
		wantCompleted bool
		wantTimestamp bool
	}{
		{
			name:          "completed=true выставляет отметку времени",
			req:           models.DummyTodo{Completed: boolPtr(true)},
			wantCompleted: true,
			wantTimestamp: true,
		},
		{
			name:          "completed=false снимает отметку",
			req:           models.DummyTodo{Completed: boolPtr(false)},
			wantCompleted: false,
			wantTimestamp: false,
		},
		{
			name:          "отсутствующий completed означает false",
			req:           models.DummyTodo{Text: strPtr("new text")},
			wantCompleted: false,
			wantTimestamp: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepo)
			svc := newService(repo)

			before := time.Now().UnixMilli()
			repo.On("UpdateTodo", mock.Anything, todoID, creatorID, mock.MatchedBy(func(upd models.TodoUpdate) bool {
				if upd.Completed != tt.wantCompleted {
					return false
				}
				if !tt.wantTimestamp {
					return upd.CompletedAt == nil
				}
				return upd.CompletedAt != nil && *upd.CompletedAt >= before
			})).Return(&models.Todo{ID: todoID, CreatorID: creatorID, Completed: tt.wantCompleted}, nil)

			_, err := svc.Update(context.Background(), todoID.Hex(), creatorID, tt.req)
			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestTodoService_RemoveReturnsDeleted(t *testing.T) {
	repo := new(MockRepo)
	svc := newService(repo)
	todoID := primitive.NewObjectID()
	callerID := primitive.NewObjectID()

	deleted := &models.Todo{ID: todoID, Text: "buy milk", CreatorID: callerID}
	repo.On("DeleteTodo", mock.Anything, todoID, callerID).Return(deleted, nil)

	got, err := svc.Remove(context.Background(), todoID.Hex(), callerID)
	require.NoError(t, err)
	assert.Equal(t, deleted, got)
	repo.AssertExpectations(t)
}
