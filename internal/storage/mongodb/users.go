package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/msavelyeva/todo-service/internal/models"
)

// CreateUser сохраняет нового пользователя с пустым списком сессий
// и возвращает созданную запись. Пароль сюда попадает уже в виде хэша.
// При нарушении уникальности почты возвращает ErrEmailTaken.
func (s *Storage) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	const op = "storage.CreateUser"

	user := models.User{
		Email:        email,
		PasswordHash: passwordHash,
		Sessions:     []models.Session{},
	}
	res, err := s.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return &user, nil
}

// FindUserByEmail возвращает пользователя по почте или ErrNotFound.
func (s *Storage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.FindUserByEmail"

	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// FindUserByToken ищет пользователя по идентификатору и точной паре
// {scope, token} в его списке сессий одним составным запросом.
// Отозванный токен уже не состоит в sessions, поэтому запрос промахнётся
// даже при валидной подписи.
func (s *Storage) FindUserByToken(ctx context.Context, userID primitive.ObjectID, scope, token string) (*models.User, error) {
	const op = "storage.FindUserByToken"

	filter := bson.M{
		"_id": userID,
		"sessions": bson.M{"$elemMatch": bson.M{
			"scope": scope,
			"token": token,
		}},
	}
	var user models.User
	err := s.users.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// AddSession дописывает сессию в конец списка сессий пользователя.
func (s *Storage) AddSession(ctx context.Context, userID primitive.ObjectID, session models.Session) error {
	const op = "storage.AddSession"

	res, err := s.users.UpdateByID(ctx, userID, bson.M{
		"$push": bson.M{"sessions": session},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// RemoveSession удаляет из списка сессий ровно те записи,
// чей токен совпадает с переданным.
func (s *Storage) RemoveSession(ctx context.Context, userID primitive.ObjectID, token string) error {
	const op = "storage.RemoveSession"

	res, err := s.users.UpdateByID(ctx, userID, bson.M{
		"$pull": bson.M{"sessions": bson.M{"token": token}},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// UpdatePassword заменяет хэш пароля пользователя. Хэширование всегда
// происходит у вызывающей стороны до записи, неявных хуков нет.
func (s *Storage) UpdatePassword(ctx context.Context, userID primitive.ObjectID, passwordHash string) error {
	const op = "storage.UpdatePassword"

	res, err := s.users.UpdateByID(ctx, userID, bson.M{
		"$set": bson.M{"password_hash": passwordHash},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
