package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/msavelyeva/todo-service/internal/models"
)

// MockService реализует интерфейс middlewarectx.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestAuthMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	userID := primitive.NewObjectID()

	tests := []struct {
		name           string
		header         string
		setupMock      func(*MockService)
		expectedStatus int
		expectNext     bool
	}{
		{
			name:           "отсутствует заголовок x-auth",
			header:         "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectNext:     false,
		},
		{
			name:   "невалидный или отозванный токен",
			header: "bad-token",
			setupMock: func(m *MockService) {
				m.On("Authenticate", mock.Anything, "bad-token").Return(nil, errors.New("invalid token"))
			},
			expectedStatus: http.StatusUnauthorized,
			expectNext:     false,
		},
		{
			name:   "валидный токен",
			header: "good-token",
			setupMock: func(m *MockService) {
				m.On("Authenticate", mock.Anything, "good-token").
					Return(&models.User{ID: userID, Email: "a@b.com"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true

				user, ok := UserFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, userID, user.ID)

				token, ok := TokenFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, tt.header, token)

				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/todos", nil)
			if tt.header != "" {
				req.Header.Set(AuthHeader, tt.header)
			}
			w := httptest.NewRecorder()

			AuthMiddleware(mockService, logger)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
			if !tt.expectNext {
				// тело пустое, причина отказа не раскрывается
				assert.Empty(t, w.Body.String())
			}
			mockService.AssertExpectations(t)
		})
	}
}
