package utils

import (
	"errors"
	"fmt"
	"time"

	"formulator/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer — значение iss во всех сессионных токенах.
const TokenIssuer = "formulator"

var ErrInvalidToken = errors.New("неверный или просроченный токен")

// SessionClaims — полезная нагрузка сессионного токена. Subject = id пользователя.
type SessionClaims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken создаёт подписанный HS256 токен сессии.
func GenerateToken(secret, userID string, role models.Role, ttl time.Duration, now time.Time) (string, time.Time, error) {
	exp := now.Add(ttl)
	claims := SessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    TokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseToken проверяет подпись, срок, издателя и роль.
func ParseToken(secret, tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: пустой subject", ErrInvalidToken)
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: недопустимая роль %q", ErrInvalidToken, claims.Role)
	}
	return claims, nil
}
