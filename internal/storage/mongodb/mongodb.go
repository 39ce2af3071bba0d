// Package mongodb реализует хранилище данных на основе MongoDB
// для управления пользователями и их задачами. Предоставляет методы
// создания, чтения, обновления и удаления записей, а также работу
// с сессиями пользователей.
//
// Все операции над одним документом атомарны на уровне самой базы,
// многодокументные транзакции не используются.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound возвращается, когда документ не найден по фильтру.
	// Отсутствующая запись и запись чужого пользователя неразличимы.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken возвращается при нарушении уникальности почты.
	ErrEmailTaken = errors.New("email already taken")
)

// Storage инкапсулирует соединение с MongoDB
// и реализует методы работы с пользователями и задачами.
type Storage struct {
	client *mongo.Client
	users  *mongo.Collection
	todos  *mongo.Collection
}

// New создаёт подключение к MongoDB и инициализирует необходимые индексы.
func New(ctx context.Context, storageConnectionString, databaseName string) (*Storage, error) {
	const op = "storage.New"

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(storageConnectionString))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db := client.Database(databaseName)
	s := &Storage{
		client: client,
		users:  db.Collection("users"),
		todos:  db.Collection("todos"),
	}
	if err = s.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// ensureIndexes создаёт уникальный индекс по почте пользователя
// и индекс по владельцу задач.
func (s *Storage) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = s.todos.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "creator_id", Value: 1}},
	})
	return err
}

// Close разрывает соединение с базой.
func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
