package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/msavelyeva/todo-service/internal/models"
)

// CreateTodo сохраняет новую задачу и возвращает её с присвоенным идентификатором.
func (s *Storage) CreateTodo(ctx context.Context, todo models.Todo) (*models.Todo, error) {
	const op = "storage.CreateTodo"

	res, err := s.todos.InsertOne(ctx, todo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	todo.ID = res.InsertedID.(primitive.ObjectID)
	return &todo, nil
}

// ListTodos возвращает все задачи указанного владельца.
func (s *Storage) ListTodos(ctx context.Context, creatorID primitive.ObjectID) ([]models.Todo, error) {
	const op = "storage.ListTodos"

	cursor, err := s.todos.Find(ctx, bson.M{"creator_id": creatorID})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	todos := []models.Todo{}
	if err = cursor.All(ctx, &todos); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return todos, nil
}

// FindTodo возвращает задачу по составному фильтру {id, владелец}.
// Чужая или отсутствующая задача одинаково дают ErrNotFound.
func (s *Storage) FindTodo(ctx context.Context, id, creatorID primitive.ObjectID) (*models.Todo, error) {
	const op = "storage.FindTodo"

	var todo models.Todo
	err := s.todos.FindOne(ctx, bson.M{"_id": id, "creator_id": creatorID}).Decode(&todo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &todo, nil
}

// DeleteTodo атомарно находит и удаляет задачу по составному фильтру,
// возвращая удалённый документ.
func (s *Storage) DeleteTodo(ctx context.Context, id, creatorID primitive.ObjectID) (*models.Todo, error) {
	const op = "storage.DeleteTodo"

	var todo models.Todo
	err := s.todos.FindOneAndDelete(ctx, bson.M{"_id": id, "creator_id": creatorID}).Decode(&todo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &todo, nil
}

// UpdateTodo атомарно обновляет задачу по составному фильтру и возвращает
// её новое состояние. Поле creator_id никогда не входит в $set.
func (s *Storage) UpdateTodo(ctx context.Context, id, creatorID primitive.ObjectID, upd models.TodoUpdate) (*models.Todo, error) {
	const op = "storage.UpdateTodo"

	set := bson.M{"completed": upd.Completed}
	if upd.Text != nil {
		set["text"] = *upd.Text
	}
	update := bson.M{"$set": set}
	if upd.CompletedAt != nil {
		set["completed_at"] = *upd.CompletedAt
	} else {
		update["$unset"] = bson.M{"completed_at": ""}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var todo models.Todo
	err := s.todos.FindOneAndUpdate(ctx, bson.M{"_id": id, "creator_id": creatorID}, update, opts).Decode(&todo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &todo, nil
}
