package handlers

import (
	"net/http"
	"strings"

	"formulator/internal/apperr"
	"formulator/internal/models"
	"formulator/internal/utils/helpers"

	"github.com/gorilla/mux"
)

func pathVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

func pageQuery(r *http.Request) (page, limit int) {
	return helpers.IntQuery(r, "page", 1), helpers.IntQuery(r, "limit", models.DefaultPageLimit)
}

// statusQuery читает ?status=; пустое значение означает «без фильтра».
func statusQuery(r *http.Request) (models.ContentStatus, error) {
	raw := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status")))
	if raw == "" {
		return "", nil
	}
	s := models.ContentStatus(raw)
	if !s.Valid() {
		return "", apperr.Invalid("недопустимый статус %q", raw)
	}
	return s, nil
}
