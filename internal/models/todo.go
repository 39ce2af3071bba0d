// Package models содержит доменную структуру задачи пользователя,
// а также вспомогательный тип для приёма данных из JSON-запроса.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Todo представляет собой задачу пользователя.
// CompletedAt хранится в миллисекундах unix-времени и заполнен
// только когда Completed равно true. CreatorID назначается при
// создании из аутентифицированного пользователя и неизменяем.
type Todo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text        string             `bson:"text" json:"text"`
	Completed   bool               `bson:"completed" json:"completed"`
	CompletedAt *int64             `bson:"completed_at,omitempty" json:"completedAt"`
	CreatorID   primitive.ObjectID `bson:"creator_id" json:"creatorId"`
}

// TodoUpdate описывает итоговые изменяемые поля задачи для хранилища.
// Nil-текст не трогает текущее значение. CompletedAt равный nil снимает
// отметку времени. Владелец задачи сюда не входит и не меняется.
type TodoUpdate struct {
	Text        *string
	Completed   bool
	CompletedAt *int64
}

// DummyTodo используется для приёма данных из JSON-запроса на изменение задачи,
// прежде чем конвертировать их в Todo. Оба поля опциональны: отсутствующее поле
// не трогает текущее значение. CompletedAt клиентом не передаётся — он
// пересчитывается на сервере.
type DummyTodo struct {
	Text      *string `json:"text" validate:"omitempty,min=1"` // Новый текст задачи
	Completed *bool   `json:"completed"`                       // Новое состояние выполнения
}
