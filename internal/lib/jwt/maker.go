// Package jwt реализует выпуск и проверку подписанных токенов сессии.
//
// Maker определяет интерфейс сервиса токенов: выпуск токена для пользователя
// и проверку подписи с извлечением claims. Сервис не хранит состояния —
// за отзыв отвечает список сессий пользователя в хранилище.
package jwt

import (
	"errors"
	"time"
)

// ScopeAuth — единственная используемая сейчас область применения токена.
const ScopeAuth = "auth"

// ErrInvalidToken возвращается, когда токен повреждён, не подписан
// или подпись не совпадает с секретом сервиса.
var ErrInvalidToken = errors.New("invalid token")

// Maker описывает интерфейс для выпуска и проверки токенов сессии.
type Maker interface {
	// Issue выпускает подписанный токен для пользователя с областью "auth".
	Issue(userID string) (string, error)
	// Verify проверяет подпись и возвращает *SessionClaims с данными токена.
	Verify(tokenStr string) (*SessionClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
