package services

import (
	"context"
	"strings"
	"time"

	"formulator/internal/apperr"
	"formulator/internal/reqctx"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// newContentPolicy — политика очистки HTML статей и проектов.
func newContentPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("img", "figure", "figcaption")
	p.AllowAttrs("src", "alt", "title").OnElements("img")
	return p
}

func newID() string { return uuid.NewString() }

// requireIdentity возвращает личность из контекста или ErrUnauthorized.
func requireIdentity(ctx context.Context) (reqctx.Identity, error) {
	id, ok := reqctx.GetIdentity(ctx)
	if !ok || id.UserID == "" {
		return reqctx.Identity{}, apperr.ErrUnauthorized
	}
	return id, nil
}

func strPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// trimPtr обрезает пробелы; пустая строка превращается в nil.
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return strPtr(strings.TrimSpace(*s))
}

func normalizeTags(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// uniqueIDs убирает пустые и повторяющиеся id, сохраняя порядок.
func uniqueIDs(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, id := range in {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

type clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }
