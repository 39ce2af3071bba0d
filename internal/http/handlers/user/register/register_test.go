package register

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
	authservice "github.com/msavelyeva/todo-service/internal/services/auth"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, email, password)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	userID := primitive.NewObjectID()

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
		expectedToken  string
	}{
		{
			name: "успешная регистрация",
			body: `{"email":"a@b.com","password":"abcdef"}`,
			setupMock: func(m *MockService) {
				user := &models.User{
					ID:           userID,
					Email:        "a@b.com",
					PasswordHash: "$2a$04$hash",
					Sessions:     []models.Session{{Scope: "auth", Token: "issued-token"}},
				}
				m.On("Register", mock.Anything, "a@b.com", "abcdef").Return(user, "issued-token", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"email":"a@b.com"`,
			expectedToken:  "issued-token",
		},
		{
			name:           "невалидная почта",
			body:           `{"email":"not-an-email","password":"abcdef"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Email must be a valid email`,
		},
		{
			name:           "короткий пароль",
			body:           `{"email":"a@b.com","password":"abc"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Password is too short`,
		},
		{
			name: "почта уже занята",
			body: `{"email":"a@b.com","password":"abcdef"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "a@b.com", "abcdef").
					Return(nil, "", authservice.ErrEmailTaken)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `email already taken`,
		},
		{
			name: "ошибка хранилища",
			body: `{"email":"a@b.com","password":"abcdef"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "a@b.com", "abcdef").
					Return(nil, "", errors.New("db error"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `failed to register user`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			assert.Equal(t, tt.expectedToken, w.Header().Get(middlewarectx.AuthHeader))

			// наружу никогда не уходят хэш пароля и сессии
			assert.NotContains(t, w.Body.String(), "password")
			assert.NotContains(t, w.Body.String(), "sessions")
			mockService.AssertExpectations(t)
		})
	}
}
