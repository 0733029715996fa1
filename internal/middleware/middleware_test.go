package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"formulator/internal/logger"
	"formulator/internal/models"
	"formulator/internal/reqctx"
	"formulator/internal/utils"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const secret = "mw-secret"

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := reqctx.GetIdentity(r.Context())
		w.Header().Set("X-User", id.UserID)
		w.WriteHeader(http.StatusOK)
	})
}

func token(t *testing.T, role models.Role) string {
	t.Helper()
	tok, _, err := utils.GenerateToken(secret, "u1", role, time.Hour, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func TestSession_BearerAndCookie(t *testing.T) {
	h := Session(secret, "sid")(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, models.RoleEditor))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("X-User") != "u1" {
		t.Errorf("Bearer: личность не установлена")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: token(t, models.RoleSEO)})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("X-User") != "u1" {
		t.Errorf("Cookie: личность не установлена")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Header().Get("X-User") != "" {
		t.Errorf("негодный токен должен давать анонимный запрос")
	}
}

func TestAnyRole(t *testing.T) {
	h := Session(secret, "")(AnyRole(models.RoleEditor)(okHandler()))

	cases := []struct {
		name string
		role models.Role
		want int
	}{
		{"без сессии", "", http.StatusUnauthorized},
		{"SEO", models.RoleSEO, http.StatusForbidden},
		{"EDITOR", models.RoleEditor, http.StatusOK},
		{"ADMIN проходит всегда", models.RoleAdmin, http.StatusOK},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if c.role != "" {
			req.Header.Set("Authorization", "Bearer "+token(t, c.role))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != c.want {
			t.Errorf("%s: код %d, ожидался %d", c.name, rec.Code, c.want)
		}
	}
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("код %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRequestID(t *testing.T) {
	var got string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = reqctx.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if got == "" || rec.Header().Get(HeaderRequestID) != got {
		t.Errorf("request id не проброшен: %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "abc" {
		t.Errorf("входящий request id потерян: %q", got)
	}
}

func observeLog(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })
	return logs
}

// Session стоит глубже, чем Logging и Recoverer, как на /api-подроутере.
func TestAccessLogCarriesUser(t *testing.T) {
	logs := observeLog(t)
	h := RequestID(Recoverer(Logging(Session(secret, "sid")(okHandler()))))

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, models.RoleEditor))
	h.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("HTTP-запрос").All()
	if len(entries) != 1 {
		t.Fatalf("строк access-лога: %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["user_id"] != "u1" || fields["role"] != string(models.RoleEditor) {
		t.Errorf("в access-логе нет пользователя: %v", fields)
	}
	if fields["request_id"] == nil {
		t.Errorf("в access-логе нет request_id: %v", fields)
	}

	logs.TakeAll()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/articles", nil))
	if _, ok := logs.All()[0].ContextMap()["user_id"]; ok {
		t.Error("анонимный запрос не должен получать user_id")
	}
}

func TestRecovererLogsUser(t *testing.T) {
	logs := observeLog(t)
	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	h := RequestID(Recoverer(Session(secret, "")(panicky)))

	req := httptest.NewRequest(http.MethodPost, "/api/articles", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, models.RoleAdmin))
	h.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("panic recovered").All()
	if len(entries) != 1 || entries[0].ContextMap()["user_id"] != "u1" {
		t.Errorf("лог паники без пользователя: %v", entries)
	}
}
