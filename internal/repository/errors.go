package repository

import (
	"errors"
	"fmt"
	"strings"

	"formulator/internal/apperr"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// mapErr переводит ошибки pgx в таксономию apperr.
func mapErr(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(entity)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		if strings.HasSuffix(pgErr.ConstraintName, "_slug_key") {
			return fmt.Errorf("%s: %w", entity, apperr.ErrSlugConflict)
		}
		return apperr.Exists("%s (%s)", entity, pgErr.ConstraintName)
	case pgerrcode.ForeignKeyViolation:
		return apperr.Invalid("%s: ссылка на несуществующую запись (%s)", entity, pgErr.ConstraintName)
	case pgerrcode.CheckViolation:
		return apperr.Invalid("%s: нарушено ограничение %s", entity, pgErr.ConstraintName)
	}
	return err
}

// affected превращает 0 затронутых строк в NotFound.
func affected(tag pgconn.CommandTag, entity string) error {
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(entity)
	}
	return nil
}

// likePattern экранирует спецсимволы LIKE и оборачивает строку в %...%.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}
