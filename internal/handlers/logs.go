package handlers

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"formulator/internal/logger"
	"formulator/internal/utils/helpers"
)

// AdminLogsHandler — просмотр JSON-логов приложения. Понимает текущий
// app.log (только за сегодня) и ротированные lumberjack-файлы
// app-<timestamp>.log[.gz], день берётся из имени файла.
type AdminLogsHandler struct {
	LogDir    string
	Retention int // дней
	now       func() time.Time
}

func NewAdminLogsHandler(logDir string) *AdminLogsHandler {
	return &AdminLogsHandler{LogDir: logDir, Retention: 14, now: time.Now}
}

// ListDays
// @Summary      Доступные дни логов
// @Description  Даты (YYYY-MM-DD), за которые есть файлы логов, за последние 14 дней.
// @Tags         admin-logs
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} helpers.Response
// @Failure      403 {object} helpers.Response
// @Router       /api/admin/logs/days [get]
func (h *AdminLogsHandler) ListDays(w http.ResponseWriter, r *http.Request) {
	today := h.now().Local()
	days := []string{}
	for i := 0; i < h.Retention; i++ {
		d := today.AddDate(0, 0, -i).Format(time.DateOnly)
		if files, err := h.listFilesForDay(d); err == nil && len(files) > 0 {
			days = append(days, d)
		}
	}
	sort.Strings(days)
	helpers.JSON(w, http.StatusOK, map[string]any{"days": days})
}

// GetLogs
// @Summary      Логи за день
// @Description  JSON-строки логов за день с фильтром по уровню, часу и подстроке.
// @Tags         admin-logs
// @Security     BearerAuth
// @Produce      json
// @Param        day     query  string true  "Дата (YYYY-MM-DD)"
// @Param        level   query  string false "CSV уровней: debug,info,warn,error"
// @Param        hour    query  int    false "Час (0-23)"
// @Param        q       query  string false "Поиск по подстроке"
// @Param        limit   query  int    false "Лимит (по умолч. 200, макс. 1000)"
// @Param        cursor  query  int    false "Номер строки, с которой продолжить"
// @Success      200 {object} helpers.Response
// @Failure      400 {object} helpers.Response
// @Failure      404 {object} helpers.Response
// @Router       /api/admin/logs [get]
func (h *AdminLogsHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	day := q.Get("day")
	if !reDay.MatchString(day) {
		helpers.Error(w, http.StatusBadRequest, "day: ожидается YYYY-MM-DD")
		return
	}

	levelSet := toUpperSet(q.Get("level"))

	var qre *regexp.Regexp
	if s := strings.TrimSpace(q.Get("q")); s != "" {
		qre = regexp.MustCompile("(?i)" + regexp.QuoteMeta(s))
	}

	var hourPtr *int
	if hv, err := strconv.Atoi(q.Get("hour")); err == nil && hv >= 0 && hv <= 23 {
		hourPtr = &hv
	}

	limit := clampAtoi(q.Get("limit"), 200, 1, 1000)
	cursor := clampAtoi(q.Get("cursor"), 0, 0, 10_000_000)

	lineNo := 0
	items := make([]json.RawMessage, 0)

	err := h.forEachDayLine(day, func(raw []byte) bool {
		lineNo++
		if lineNo <= cursor {
			return true
		}
		if qre != nil && !qre.Match(raw) {
			return true
		}
		var obj map[string]any
		if err := json.Unmarshal(raw, &obj); err != nil {
			return true
		}
		if len(levelSet) > 0 && !levelSet[strings.ToUpper(getString(obj, "level"))] {
			return true
		}
		if hourPtr != nil {
			if t, ok := logTime(getString(obj, "time")); ok && t.Hour() != *hourPtr {
				return true
			}
		}
		items = append(items, append([]byte{}, raw...))
		return len(items) < limit
	})
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "Логи за этот день не найдены")
		return
	}

	helpers.JSON(w, http.StatusOK, map[string]any{
		"day":        day,
		"items":      items,
		"nextCursor": lineNo,
	})
}

var reDay = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func (h *AdminLogsHandler) listFilesForDay(day string) ([]string, error) {
	entries, err := os.ReadDir(h.LogDir)
	if err != nil {
		return nil, err
	}
	today := h.now().Local().Format(time.DateOnly)

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if name == logger.LogFile {
			if day == today {
				files = append(files, filepath.Join(h.LogDir, name))
			}
			continue
		}
		// lumberjack: app-2025-09-11T12-34-56.123.log[.gz]
		if strings.HasPrefix(name, "app-") && strings.Contains(name, day) &&
			(strings.HasSuffix(name, ".log") || strings.HasSuffix(name, ".gz")) {
			files = append(files, filepath.Join(h.LogDir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

func (h *AdminLogsHandler) forEachDayLine(day string, handle func([]byte) bool) error {
	files, err := h.listFilesForDay(day)
	if err != nil || len(files) == 0 {
		return os.ErrNotExist
	}
	for _, path := range files {
		if !scanFile(path, handle) {
			break
		}
	}
	return nil
}

// scanFile возвращает false, если handle попросил остановиться.
func scanFile(path string, handle func([]byte) bool) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(f)
		if err != nil {
			return true
		}
		defer gr.Close()
		reader = gr
	}

	sc := bufio.NewScanner(reader)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if !handle(sc.Bytes()) {
			return false
		}
	}
	return true
}

// logTime разбирает время из ISO8601-энкодера zap.
func logTime(ts string) (time.Time, bool) {
	if ts == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.000Z0700"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func toUpperSet(csv string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(csv, ",") {
		if p = strings.TrimSpace(p); p != "" {
			m[strings.ToUpper(p)] = true
		}
	}
	return m
}

func getString(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func clampAtoi(s string, def, min, max int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
