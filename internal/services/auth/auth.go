// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	jwtlib "github.com/msavelyeva/todo-service/internal/lib/jwt"
	"github.com/msavelyeva/todo-service/internal/lib/password"
	"github.com/msavelyeva/todo-service/internal/models"
	"github.com/msavelyeva/todo-service/internal/storage/mongodb"
)

var (
	// ErrEmailTaken возвращается при регистрации на уже занятую почту.
	ErrEmailTaken = errors.New("email already taken")
	// ErrInvalidCredentials сворачивает "нет такого пользователя"
	// и "неверный пароль" в один неразличимый исход.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken сворачивает все дефекты токена: битую подпись,
	// чужой секрет, отозванную или несуществующую сессию.
	ErrInvalidToken = errors.New("invalid token")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя с уже захэшированным паролем.
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)
	// FindUserByEmail возвращает пользователя по почте или ошибку, если не найден.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	// FindUserByToken ищет пользователя по id и точной паре {scope, token} в его сессиях.
	FindUserByToken(ctx context.Context, userID primitive.ObjectID, scope, token string) (*models.User, error)
	// AddSession дописывает сессию в конец списка сессий пользователя.
	AddSession(ctx context.Context, userID primitive.ObjectID, session models.Session) error
	// RemoveSession удаляет сессию по точному совпадению токена.
	RemoveSession(ctx context.Context, userID primitive.ObjectID, token string) error
	// UpdatePassword заменяет хэш пароля пользователя.
	UpdatePassword(ctx context.Context, userID primitive.ObjectID, passwordHash string) error
}

// AuthService отвечает за регистрацию, вход, проверку токенов и выход.
type AuthService struct {
	users      UserRepository
	jwtMaker   jwtlib.Maker
	bcryptCost int
}

// NewAuthService создает новый экземпляр AuthService.
// Стоимость bcrypt приходит из конфигурации: в тестовом профиле минимальная.
func NewAuthService(users UserRepository, jwtMaker jwtlib.Maker, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		jwtMaker:   jwtMaker,
		bcryptCost: bcryptCost,
	}
}

// Register создает нового пользователя, хэширует пароль, выпускает токен
// сессии и сразу сохраняет его в списке сессий. Возвращает пользователя и токен.
func (s *AuthService) Register(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	hashed, err := password.GetHash(rawPassword, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}
	user, err := s.users.CreateUser(ctx, email, hashed)
	if err != nil {
		if errors.Is(err, mongodb.ErrEmailTaken) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}
	token, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login проверяет пароль пользователя и выпускает новый токен сессии,
// дописывая его к уже существующим. Неизвестная почта и неверный пароль
// дают один и тот же результат.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate резолвит токен в пользователя: сначала проверка подписи,
// затем членство точной пары {scope, token} в сессиях субъекта.
// Подписи недостаточно — отзыв работает через удаление из sessions.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	userID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.users.FindUserByToken(ctx, userID, claims.Scope, token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// Logout удаляет ровно ту сессию, токен которой использовался в запросе.
// Остальные сессии пользователя продолжают действовать.
func (s *AuthService) Logout(ctx context.Context, userID primitive.ObjectID, token string) error {
	const op = "services.auth.Logout"
	if err := s.users.RemoveSession(ctx, userID, token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ChangePassword всегда хэширует новый пароль перед записью.
func (s *AuthService) ChangePassword(ctx context.Context, userID primitive.ObjectID, rawPassword string) error {
	const op = "services.auth.ChangePassword"
	hashed, err := password.GetHash(rawPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hashed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *AuthService) issueSession(ctx context.Context, user *models.User) (string, error) {
	token, err := s.jwtMaker.Issue(user.ID.Hex())
	if err != nil {
		return "", err
	}
	session := models.Session{Scope: jwtlib.ScopeAuth, Token: token}
	if err := s.users.AddSession(ctx, user.ID, session); err != nil {
		return "", err
	}
	user.Sessions = append(user.Sessions, session)
	return token, nil
}
