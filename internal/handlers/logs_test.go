package handlers

import (
	"compress/gzip"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"formulator/internal/logger"
)

func writeLogDir(t *testing.T) (string, time.Time) {
	t.Helper()
	dir := t.TempDir()
	now := time.Date(2026, 3, 5, 15, 0, 0, 0, time.Local)

	today := strings.Join([]string{
		`{"level":"info","time":"2026-03-05T10:01:00.000+0300","msg":"HTTP-запрос","path":"/api/articles"}`,
		`{"level":"error","time":"2026-03-05T10:02:00.000+0300","msg":"Ошибка создания статьи","slug":"calendula"}`,
		`{"level":"error","time":"2026-03-05T11:00:00.000+0300","msg":"Ошибка удаления медиа"}`,
		`not json`,
	}, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, logger.LogFile), []byte(today), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := os.Create(filepath.Join(dir, "app-2026-03-03T23-59-59.000.log.gz"))
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	gz.Write([]byte(`{"level":"warn","time":"2026-03-03T22:00:00.000+0300","msg":"Конфиг: S3 не настроен"}` + "\n"))
	gz.Close()
	f.Close()

	return dir, now
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil || !env.Success {
		t.Fatalf("код %d, тело %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(env.Data, into); err != nil {
		t.Fatal(err)
	}
}

func TestAdminLogs_ListDays(t *testing.T) {
	dir, now := writeLogDir(t)
	h := NewAdminLogsHandler(dir)
	h.now = func() time.Time { return now }

	rec := httptest.NewRecorder()
	h.ListDays(rec, httptest.NewRequest(http.MethodGet, "/api/admin/logs/days", nil))

	var data struct {
		Days []string `json:"days"`
	}
	decodeData(t, rec, &data)
	if strings.Join(data.Days, ",") != "2026-03-03,2026-03-05" {
		t.Errorf("дни = %v", data.Days)
	}
}

func TestAdminLogs_GetLogsFilters(t *testing.T) {
	dir, now := writeLogDir(t)
	h := NewAdminLogsHandler(dir)
	h.now = func() time.Time { return now }

	cases := []struct {
		name  string
		query string
		want  int
	}{
		{"все строки JSON", "day=2026-03-05", 3},
		{"уровень", "day=2026-03-05&level=error", 2},
		{"уровень и подстрока", "day=2026-03-05&level=ERROR&q=CALENDULA", 1},
		{"лимит", "day=2026-03-05&limit=1", 1},
		{"ротированный gz", "day=2026-03-03&level=warn", 1},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		h.GetLogs(rec, httptest.NewRequest(http.MethodGet, "/api/admin/logs?"+c.query, nil))

		var data struct {
			Items []map[string]any `json:"items"`
		}
		decodeData(t, rec, &data)
		if len(data.Items) != c.want {
			t.Errorf("%s: строк %d, ожидалось %d", c.name, len(data.Items), c.want)
		}
	}
}

func TestAdminLogs_BadDayAndMissing(t *testing.T) {
	dir, now := writeLogDir(t)
	h := NewAdminLogsHandler(dir)
	h.now = func() time.Time { return now }

	rec := httptest.NewRecorder()
	h.GetLogs(rec, httptest.NewRequest(http.MethodGet, "/api/admin/logs?day=05.03.2026", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("кривая дата: код %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.GetLogs(rec, httptest.NewRequest(http.MethodGet, "/api/admin/logs?day=2026-01-01", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("день без логов: код %d", rec.Code)
	}
}
