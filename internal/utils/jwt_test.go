package utils

import (
	"errors"
	"testing"
	"time"

	"formulator/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func TestGenerateAndParseToken(t *testing.T) {
	now := time.Now()
	tok, exp, err := GenerateToken(testSecret, "user-1", models.RoleEditor, time.Hour, now)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if !exp.Equal(now.Add(time.Hour)) {
		t.Errorf("exp = %v", exp)
	}

	claims, err := ParseToken(testSecret, tok)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Subject != "user-1" || claims.Role != models.RoleEditor {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseToken_Rejects(t *testing.T) {
	now := time.Now()

	expired, _, _ := GenerateToken(testSecret, "u", models.RoleAdmin, -time.Minute, now)
	if _, err := ParseToken(testSecret, expired); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("просроченный токен: %v", err)
	}

	good, _, _ := GenerateToken(testSecret, "u", models.RoleAdmin, time.Hour, now)
	if _, err := ParseToken("other-secret", good); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("чужой секрет: %v", err)
	}

	bad := SessionClaims{
		Role: models.Role("SUPERUSER"),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u",
			Issuer:    TokenIssuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	raw, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, bad).SignedString([]byte(testSecret))
	if _, err := ParseToken(testSecret, raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("неизвестная роль должна отвергаться: %v", err)
	}

	if _, err := ParseToken(testSecret, "not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("мусор: %v", err)
	}
}
