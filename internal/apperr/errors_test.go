package apperr

import (
	"errors"
	"testing"
)

func TestForbiddenIsUnauthorized(t *testing.T) {
	if !errors.Is(ErrForbidden, ErrUnauthorized) {
		t.Fatal("ErrForbidden должна быть разновидностью ErrUnauthorized")
	}
}

func TestValidationError_OrNil(t *testing.T) {
	var ve ValidationError
	if ve.OrNil() != nil {
		t.Fatal("пустая ValidationError должна давать nil")
	}
	ve.Add("title", "короткий заголовок")
	ve.Add("content", "короткий контент")

	err := ve.OrNil()
	var got *ValidationError
	if !errors.As(err, &got) {
		t.Fatalf("errors.As не сработал: %v", err)
	}
	if len(got.Messages()) != 2 {
		t.Errorf("ожидалось 2 сообщения, получено %v", got.Messages())
	}
}

func TestHelpersWrapSentinels(t *testing.T) {
	cases := []struct {
		err  error
		want error
	}{
		{NotFound("article"), ErrNotFound},
		{Invalid("bad %s", "id"), ErrInvalidRequest},
		{SlugTaken("a-b"), ErrSlugConflict},
		{Exists("email %s", "x@y.z"), ErrAlreadyExists},
	}
	for _, c := range cases {
		if !errors.Is(c.err, c.want) {
			t.Errorf("%v не оборачивает %v", c.err, c.want)
		}
	}
}
