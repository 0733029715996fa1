package services

import (
	"context"
	"errors"
	"testing"

	"formulator/internal/apperr"
	"formulator/internal/models"
	"formulator/internal/utils"
)

func seedLoginUser(t *testing.T, e *testEnv) models.User {
	t.Helper()
	hash, err := utils.HashPassword("Secret123")
	if err != nil {
		t.Fatal(err)
	}
	return e.store.AddUser(models.User{
		ID: "u-login", Email: "login@example.com", Name: "Логин", Role: models.RoleSEO, PasswordHash: hash,
	})
}

func TestLogin_Success(t *testing.T) {
	e := newTestEnv(t)
	u := seedLoginUser(t, e)

	resp, err := e.auth.Login(context.Background(), models.LoginRequest{Email: "  LOGIN@example.com ", Password: "Secret123"})
	if err != nil {
		t.Fatalf("ошибка входа: %v", err)
	}
	if resp.Token == "" || resp.User == nil || resp.User.ID != u.ID {
		t.Fatalf("неполный ответ: %+v", resp)
	}

	claims, err := utils.ParseToken(testSecret, resp.Token)
	if err != nil {
		t.Fatalf("токен не разбирается: %v", err)
	}
	if claims.Subject != u.ID || claims.Role != models.RoleSEO {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLogin_SameErrorForUnknownEmailAndBadPassword(t *testing.T) {
	e := newTestEnv(t)
	seedLoginUser(t, e)

	_, errUnknown := e.auth.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "Secret123"})
	_, errBadPass := e.auth.Login(context.Background(), models.LoginRequest{Email: "login@example.com", Password: "wrong"})

	if !errors.Is(errUnknown, apperr.ErrInvalidCredentials) || !errors.Is(errBadPass, apperr.ErrInvalidCredentials) {
		t.Fatalf("ожидалась ErrInvalidCredentials: %v / %v", errUnknown, errBadPass)
	}
	if errUnknown.Error() != errBadPass.Error() {
		t.Errorf("тексты ошибок различаются: %q vs %q", errUnknown, errBadPass)
	}
}

func TestMe(t *testing.T) {
	e := newTestEnv(t)

	if _, err := e.auth.Me(context.Background()); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("без сессии ожидалась ErrUnauthorized, получено %v", err)
	}
	u, err := e.auth.Me(asUser(e.editor))
	if err != nil {
		t.Fatal(err)
	}
	if u.Email != e.editor.Email {
		t.Errorf("me = %s", u.Email)
	}
}
