// Package middlewarectx содержит HTTP middleware для аутентификации запросов.
//
// AuthMiddleware читает токен сессии из заголовка x-auth, резолвит его
// в пользователя через сервис аутентификации (подпись плюс членство в
// списке сессий) и в случае успеха добавляет пользователя и сырой токен
// в контекст запроса для дальнейшего использования в обработчиках.
//
// При любой ошибке проверки возвращает HTTP 401 Unauthorized без тела,
// чтобы не раскрывать причину отказа.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/msavelyeva/todo-service/internal/lib/sl"
	"github.com/msavelyeva/todo-service/internal/models"
)

// AuthHeader — заголовок, переносящий токен сессии на каждом защищённом запросе.
const AuthHeader = "x-auth"

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// User — ключ для аутентифицированного пользователя в контексте
	User Key = "user"
	// Token — ключ для сырого токена текущего запроса в контексте
	Token Key = "token"
)

// Service описывает интерфейс сервиса для резолва токена в пользователя.
type Service interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware возвращает HTTP middleware, который проверяет токен из заголовка x-auth.
//
// Если токен резолвится в пользователя, добавляет пользователя и токен
// в контекст запроса, иначе возвращает 401 Unauthorized с пустым телом.
func AuthMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token := r.Header.Get(AuthHeader)
			if token == "" {
				log.Error("missing auth header")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			user, err := authService.Authenticate(r.Context(), token)
			if err != nil {
				log.Error("invalid or revoked token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), User, user)
			ctx = context.WithValue(ctx, Token, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext достаёт аутентифицированного пользователя из контекста запроса.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(User).(*models.User)
	return user, ok && user != nil
}

// TokenFromContext достаёт сырой токен текущего запроса из контекста.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(Token).(string)
	return token, ok && token != ""
}
