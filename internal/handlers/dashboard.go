package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"formulator/internal/apperr"
	"formulator/internal/models"
	"formulator/internal/services"
	"formulator/internal/utils/helpers"
)

type DashboardHandler struct {
	dashboard *services.DashboardService
	search    *services.SearchService
	audit     *services.AuditService
}

func NewDashboardHandler(dashboard *services.DashboardService, search *services.SearchService, audit *services.AuditService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, search: search, audit: audit}
}

// Stats
// @Summary      Сводка для дашборда
// @Description  Счётчики по сущностям, статьи по статусам, топ категорий, последние и популярные статьи.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  helpers.Response{data=models.DashboardStats}
// @Failure      401  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.dashboard.Stats(r.Context())
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, st)
}

// Analytics
// @Summary      Аналитика за период
// @Tags         dashboard
// @Produce      json
// @Param        period  query  int  false  "Число дней, 1..365 (по умолч. 30)"
// @Success      200  {object}  helpers.Response{data=models.Analytics}
// @Failure      400  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/dashboard/analytics [get]
func (h *DashboardHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	days := services.DefaultAnalyticsDays
	if raw := strings.TrimSpace(r.URL.Query().Get("period")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			helpers.WriteError(w, apperr.Invalid("period должен быть числом"))
			return
		}
		days = n
		if days == 0 {
			// 0 внутри сервиса означает «по умолчанию», а здесь это ошибка
			days = -1
		}
	}
	a, err := h.dashboard.Analytics(r.Context(), days)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, a)
}

// Search
// @Summary      Поиск по контенту
// @Description  Запрос короче двух символов даёт пустой результат.
// @Tags         search
// @Produce      json
// @Param        q      query  string  true   "Строка поиска"
// @Param        type   query  string  false  "all | articles | projects | videos"
// @Param        limit  query  int     false  "Лимит на тип (по умолч. 10, макс. 50)"
// @Success      200  {object}  helpers.Response{data=models.SearchResult}
// @Failure      400  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/search [get]
func (h *DashboardHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	typ := models.SearchType(strings.ToLower(strings.TrimSpace(q.Get("type"))))
	res, err := h.search.Search(r.Context(), q.Get("q"), typ, helpers.IntQuery(r, "limit", models.SearchDefaultLimit))
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, res)
}

// Audit
// @Summary      Журнал аудита
// @Tags         audit
// @Produce      json
// @Param        page    query  int     false  "Страница"
// @Param        limit   query  int     false  "Размер страницы (по умолч. 20)"
// @Param        action  query  string  false  "CREATE | UPDATE | DELETE"
// @Param        entity  query  string  false  "Тип сущности, например Article"
// @Param        userId  query  string  false  "Автор изменения"
// @Param        since   query  string  false  "Не раньше даты (RFC3339 или YYYY-MM-DD)"
// @Success      200  {object}  helpers.Response{data=[]models.AuditLog}
// @Failure      403  {object}  helpers.Response
// @Security     BearerAuth
// @Router       /api/audit [get]
func (h *DashboardHandler) Audit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := models.AuditFilter{
		Action: models.AuditAction(strings.ToUpper(strings.TrimSpace(q.Get("action")))),
		Entity: strings.TrimSpace(q.Get("entity")),
		UserID: strings.TrimSpace(q.Get("userId")),
	}
	if f.Action != "" && !f.Action.Valid() {
		helpers.WriteError(w, apperr.Invalid("недопустимое действие %q", f.Action))
		return
	}
	if raw := strings.TrimSpace(q.Get("since")); raw != "" {
		t, err := parseSince(raw)
		if err != nil {
			helpers.WriteError(w, apperr.Invalid("since: неверный формат даты"))
			return
		}
		f.Since = &t
	}

	page := helpers.IntQuery(r, "page", 1)
	limit := helpers.IntQuery(r, "limit", 0)
	res, err := h.audit.List(r.Context(), f, page, limit)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.Page(w, res)
}

func parseSince(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, raw)
}
