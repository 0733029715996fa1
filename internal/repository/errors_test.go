package repository

import (
	"errors"
	"fmt"
	"testing"

	"formulator/internal/apperr"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapErr(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", pgx.ErrNoRows, apperr.ErrNotFound},
		{"slug", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "articles_slug_key"}, apperr.ErrSlugConflict},
		{"email", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"}, apperr.ErrAlreadyExists},
		{"fk", fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}), apperr.ErrInvalidRequest},
		{"check", &pgconn.PgError{Code: pgerrcode.CheckViolation}, apperr.ErrInvalidRequest},
	}
	for _, c := range cases {
		if got := mapErr(c.in, "статья"); !errors.Is(got, c.want) {
			t.Errorf("%s: mapErr = %v, ожидалось %v", c.name, got, c.want)
		}
	}

	plain := errors.New("conn reset")
	if got := mapErr(plain, "статья"); got != plain {
		t.Errorf("прочие ошибки должны проходить как есть: %v", got)
	}
	if mapErr(nil, "x") != nil {
		t.Error("nil должен остаться nil")
	}
}

func TestMapUserDeleteErr(t *testing.T) {
	fk := fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "articles_author_id_fkey"})
	if got := mapUserDeleteErr(fk); !errors.Is(got, apperr.ErrUserHasContent) {
		t.Errorf("FK при удалении пользователя: %v, ожидалась ErrUserHasContent", got)
	}
	if got := mapUserDeleteErr(pgx.ErrNoRows); !errors.Is(got, apperr.ErrNotFound) {
		t.Errorf("no rows: %v", got)
	}
}

func TestLikePattern(t *testing.T) {
	if got := likePattern(`50%_off\`); got != `%50\%\_off\\%` {
		t.Errorf("likePattern = %q", got)
	}
}
