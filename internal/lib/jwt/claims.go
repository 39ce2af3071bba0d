// Package jwt реализует выпуск и проверку подписанных токенов сессии.
//
// SessionClaims расширяет стандартные claims JWT полем scope.
// Идентификатор пользователя передаётся в стандартном поле sub.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims описывает данные, хранящиеся в токене сессии.
type SessionClaims struct {
	Scope                string `json:"scope"` // Область применения токена
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (Subject, ExpiresAt, IssuedAt и пр.)
}

// Issue выпускает токен для пользователя userID с областью ScopeAuth,
// подписывая его секретным ключом. Время жизни токена определяется tokenTTL.
func (j *MakerImpl) Issue(userID string) (string, error) {
	claims := SessionClaims{
		Scope: ScopeAuth,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// Verify разбирает токен, проверяет его подпись и валидность,
// возвращает SessionClaims, если токен корректен.
// Любой дефект токена сворачивается в ErrInvalidToken.
func (j *MakerImpl) Verify(tokenStr string) (*SessionClaims, error) {
	const op = "jwt.Verify"
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	return claims, nil
}
