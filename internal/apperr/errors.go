// Package apperr — таксономия ошибок приложения. Сервисы возвращают ошибки,
// обёрнутые вокруг одной из сигнальных ошибок, а HTTP-слой выбирает статус
// через errors.Is/As.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound           = errors.New("не найдено")
	ErrUnauthorized       = errors.New("требуется авторизация")
	ErrForbidden          = fmt.Errorf("%w: недостаточно прав", ErrUnauthorized)
	ErrSlugConflict       = errors.New("slug уже занят")
	ErrAlreadyExists      = errors.New("запись уже существует")
	ErrInvalidRequest     = errors.New("некорректный запрос")
	ErrInvalidCredentials = errors.New("неверный email или пароль")
	ErrUserHasContent     = errors.New("нельзя удалить пользователя, у которого есть статьи или проекты")
	ErrSelfDelete         = errors.New("нельзя удалить собственную учётную запись")
)

// FieldError — одно сообщение валидации.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError собирает все нарушения, а не только первое.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	e.Fields = append(e.Fields, other.Fields...)
}

// OrNil возвращает nil, если нарушений нет. Нужен, чтобы не вернуть
// типизированный nil в интерфейсе error.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Messages() []string {
	out := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, f.Message)
	}
	return out
}

func (e *ValidationError) Error() string {
	return "ошибка валидации: " + strings.Join(e.Messages(), "; ")
}

func NotFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrNotFound)
}

func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

func SlugTaken(slug string) error {
	return fmt.Errorf("%w: %q", ErrSlugConflict, slug)
}

func Exists(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrAlreadyExists, fmt.Sprintf(format, args...))
}
