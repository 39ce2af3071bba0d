package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/msavelyeva/todo-service/internal/http/middlewarectx"
	"github.com/msavelyeva/todo-service/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, creatorID primitive.ObjectID, text string) (*models.Todo, error) {
	args := m.Called(ctx, creatorID, text)
	if res := args.Get(0); res != nil {
		return res.(*models.Todo), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	userID := primitive.NewObjectID()

	tests := []struct {
		name           string
		body           string
		withUser       bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешное создание задачи",
			body:     `{"text":"buy milk"}`,
			withUser: true,
			setupMock: func(m *MockService) {
				todo := &models.Todo{
					ID:        primitive.NewObjectID(),
					Text:      "buy milk",
					Completed: false,
					CreatorID: userID,
				}
				m.On("Create", mock.Anything, userID, "buy milk").Return(todo, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"text":"buy milk"`,
		},
		{
			name:           "пустой текст",
			body:           `{"text":"   "}`,
			withUser:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Text is a required field`,
		},
		{
			name:           "некорректный JSON",
			body:           `{bad`,
			withUser:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name:     "ошибка хранилища",
			body:     `{"text":"buy milk"}`,
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, userID, "buy milk").Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `could not create todo`,
		},
		{
			name:           "пользователь отсутствует в контексте",
			body:           `{"text":"buy milk"}`,
			withUser:       false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `unauthorized`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader(tt.body))
			if tt.withUser {
				ctx := context.WithValue(req.Context(), middlewarectx.User, &models.User{ID: userID})
				req = req.WithContext(ctx)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
