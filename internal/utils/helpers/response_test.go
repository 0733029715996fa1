package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"formulator/internal/apperr"
	"formulator/internal/models"
)

func TestStatusFor(t *testing.T) {
	ve := &apperr.ValidationError{}
	ve.Add("title", "слишком короткий заголовок")

	cases := []struct {
		err  error
		want int
	}{
		{apperr.NotFound("статья"), http.StatusNotFound},
		{apperr.ErrUnauthorized, http.StatusUnauthorized},
		{apperr.ErrForbidden, http.StatusForbidden},
		{apperr.SlugTaken("abc"), http.StatusConflict},
		{apperr.Exists("email"), http.StatusConflict},
		{apperr.ErrUserHasContent, http.StatusConflict},
		{apperr.Invalid("плохо"), http.StatusBadRequest},
		{apperr.ErrSelfDelete, http.StatusBadRequest},
		{apperr.ErrInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("обёртка: %w", ve), http.StatusBadRequest},
		{errors.New("pg: connection reset"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := StatusFor(c.err); got != c.want {
			t.Errorf("StatusFor(%v) = %d, ожидалось %d", c.err, got, c.want)
		}
	}
}

func TestWriteError_ValidationDetails(t *testing.T) {
	ve := &apperr.ValidationError{}
	ve.Add("title", "a")
	ve.Add("content", "b")

	rec := httptest.NewRecorder()
	WriteError(rec, ve)

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest || resp.Success || len(resp.Details) != 2 {
		t.Errorf("code=%d resp=%+v", rec.Code, resp)
	}
}

func TestWriteError_HidesInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("password=hunter2 at db"))
	if strings.Contains(rec.Body.String(), "hunter2") {
		t.Errorf("внутренние детали утекли: %s", rec.Body.String())
	}
}

func TestPage(t *testing.T) {
	rec := httptest.NewRecorder()
	Page(rec, models.NewPageResult([]int{1, 2}, models.Page{Page: 2, Limit: 2}, 5))

	var resp struct {
		Success    bool              `json:"success"`
		Data       []int             `json:"data"`
		Pagination models.Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || len(resp.Data) != 2 || resp.Pagination.Pages != 3 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	if err := DecodeJSON(r, &dst); err != nil || dst.Name != "x" {
		t.Fatalf("DecodeJSON: %v %+v", err, dst)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	if err := DecodeJSON(r, &dst); !errors.Is(err, apperr.ErrInvalidRequest) {
		t.Errorf("обрезанный JSON: %v", err)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}{"name":"b"}`))
	if err := DecodeJSON(r, &dst); !errors.Is(err, apperr.ErrInvalidRequest) {
		t.Errorf("два объекта подряд: %v", err)
	}
}

func TestIntQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?page=3&limit=abc", nil)
	if got := IntQuery(r, "page", 1); got != 3 {
		t.Errorf("page = %d", got)
	}
	if got := IntQuery(r, "limit", 10); got != 10 {
		t.Errorf("limit = %d", got)
	}
	if got := IntQuery(r, "missing", 7); got != 7 {
		t.Errorf("missing = %d", got)
	}
}
