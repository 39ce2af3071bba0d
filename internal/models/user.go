// Package models содержит доменную модель пользователя системы,
// включающую почту, хэш пароля и список активных сессий.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Session представляет одну активную сессию пользователя.
// Токен попадает сюда только через сервис токенов при логине
// и удаляется точным совпадением при логауте.
type Session struct {
	Scope string `bson:"scope"` // Область применения токена, сейчас всегда "auth"
	Token string `bson:"token"` // Подписанный токен сессии
}

// User представляет зарегистрированного пользователя системы.
// Поля PasswordHash и Sessions никогда не сериализуются наружу,
// внешнее представление строится через Public.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"` // Уникальный идентификатор, присваивается хранилищем
	Email        string             `bson:"email"`         // Электронная почта (уникальная)
	PasswordHash string             `bson:"password_hash"` // bcrypt-хэш пароля
	Sessions     []Session          `bson:"sessions"`      // Активные сессии, порядок вставки значим
}

// PublicUser — внешнее представление пользователя: только идентификатор и почта.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Public возвращает представление пользователя для JSON-ответов.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID.Hex(),
		Email: u.Email,
	}
}
