package services

import (
	"errors"
	"testing"

	"formulator/internal/apperr"
	"formulator/internal/models"
	"formulator/internal/utils"
)

func TestUserCreate(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.admin)

	u, err := e.users.Create(ctx, models.UserInput{Email: "New@Example.com", Name: "Новый", Password: "Passw0rd"})
	if err != nil {
		t.Fatalf("создание: %v", err)
	}
	if u.Email != "new@example.com" || u.Role != models.RoleEditor {
		t.Errorf("email=%s role=%s", u.Email, u.Role)
	}
	if !utils.CheckPasswordHash("Passw0rd", u.PasswordHash) {
		t.Error("пароль не захеширован")
	}

	_, err = e.users.Create(ctx, models.UserInput{Email: "new@example.com", Name: "Дубль", Password: "Passw0rd"})
	if !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("ожидалась ErrAlreadyExists, получено %v", err)
	}
}

func TestUserCreate_PasswordRules(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.admin)

	for _, pw := range []string{"", "short1A", "alllowercase1", "NoDigitsHere"} {
		_, err := e.users.Create(ctx, models.UserInput{Email: "pw@example.com", Name: "Пароль", Password: pw})
		var ve *apperr.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("пароль %q: ожидалась ValidationError, получено %v", pw, err)
		}
	}
}

func TestUserUpdate_KeepsPasswordWhenEmpty(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.admin)

	u, err := e.users.Create(ctx, models.UserInput{Email: "keep@example.com", Name: "Сохранить", Password: "Passw0rd"})
	if err != nil {
		t.Fatal(err)
	}
	got, err := e.users.Update(ctx, u.ID, models.UserInput{Email: "keep@example.com", Name: "Переименован"})
	if err != nil {
		t.Fatal(err)
	}
	if got.PasswordHash != u.PasswordHash || got.Role != models.RoleEditor {
		t.Error("пустой пароль или роль не должны менять прежние значения")
	}

	if _, err := e.users.Update(ctx, u.ID, models.UserInput{Email: e.editor.Email, Name: "Переименован"}); !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("занятый email: ожидалась ErrAlreadyExists, получено %v", err)
	}
}

func TestUserDelete_Guards(t *testing.T) {
	e := newTestEnv(t)

	if err := e.users.Delete(asUser(e.admin), e.admin.ID); !errors.Is(err, apperr.ErrSelfDelete) {
		t.Errorf("удаление себя: ожидалась ErrSelfDelete, получено %v", err)
	}

	if _, err := e.articles.Create(asUser(e.editor), articleInput("Owned Article")); err != nil {
		t.Fatal(err)
	}
	if err := e.users.Delete(asUser(e.admin), e.editor.ID); !errors.Is(err, apperr.ErrUserHasContent) {
		t.Errorf("автор со статьёй: ожидалась ErrUserHasContent, получено %v", err)
	}
	if _, err := e.users.Get(asUser(e.admin), e.editor.ID); err != nil {
		t.Errorf("пользователь должен остаться: %v", err)
	}
}

func TestUserDelete_Success(t *testing.T) {
	e := newTestEnv(t)

	if err := e.users.Delete(asUser(e.admin), e.editor.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := e.users.Get(asUser(e.admin), e.editor.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("ожидалась ErrNotFound, получено %v", err)
	}
	entries := e.store.AuditEntries()
	if len(entries) != 1 || entries[0].Action != models.AuditDelete || entries[0].Entity != models.EntityUser {
		t.Errorf("аудит удаления: %+v", entries)
	}
}
