package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"formulator/internal/app"
	"formulator/internal/config"
	"formulator/internal/mocks"
	"formulator/internal/models"
	"formulator/internal/utils"

	"github.com/gorilla/mux"
)

const (
	secret   = "handlers-secret"
	cookie   = "sid"
	password = "Herbal-Pass1"
)

type envelope struct {
	Success    bool               `json:"success"`
	Data       json.RawMessage    `json:"data"`
	Error      string             `json:"error"`
	Message    string             `json:"message"`
	Details    []string           `json:"details"`
	Pagination *models.Pagination `json:"pagination"`
}

type server struct {
	t      *testing.T
	store  *mocks.Store
	router *mux.Router
	tokens map[models.Role]string
}

func newServer(t *testing.T) *server {
	t.Helper()

	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatal(err)
	}
	store := mocks.NewStore()
	cfg := &config.Config{
		JWTSecret:     secret,
		SessionTTL:    time.Hour,
		SessionCookie: cookie,
		LogDir:        t.TempDir(),
	}
	router := mux.NewRouter()
	app.Mount(router, cfg, store.Repos(), nil, nil)

	s := &server{t: t, store: store, router: router, tokens: map[models.Role]string{}}
	for _, u := range []models.User{
		{ID: "u-admin", Email: "admin@example.com", Name: "Админ", Role: models.RoleAdmin, PasswordHash: hash},
		{ID: "u-editor", Email: "editor@example.com", Name: "Редактор", Role: models.RoleEditor, PasswordHash: hash},
		{ID: "u-seo", Email: "seo@example.com", Name: "SEO", Role: models.RoleSEO, PasswordHash: hash},
	} {
		store.AddUser(u)
		tok, _, err := utils.GenerateToken(secret, u.ID, u.Role, time.Hour, time.Now())
		if err != nil {
			t.Fatal(err)
		}
		s.tokens[u.Role] = tok
	}
	return s
}

// do выполняет запрос; role == "" означает анонимный запрос.
func (s *server) do(method, path string, role models.Role, body any) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()

	var rdr *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.t.Fatal(err)
		}
		rdr = bytes.NewReader(raw)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+s.tokens[role])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		s.t.Fatalf("%s %s: ответ не JSON: %q", method, path, rec.Body.String())
	}
	return rec, env
}

func article(title string) map[string]any {
	return map[string]any{
		"title":   title,
		"content": title + " " + strings.Repeat("травяной уход за кожей ", 4),
	}
}

func TestArticles_Pagination(t *testing.T) {
	s := newServer(t)
	for i := 1; i <= 15; i++ {
		rec, _ := s.do(http.MethodPost, "/api/articles", models.RoleEditor, article(fmt.Sprintf("Herbal note %02d", i)))
		if rec.Code != http.StatusCreated {
			t.Fatalf("создание %d: код %d, тело %s", i, rec.Code, rec.Body.String())
		}
	}

	rec, env := s.do(http.MethodGet, "/api/articles?page=2&limit=10", "", nil)
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("код %d, %+v", rec.Code, env)
	}
	var items []models.Article
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatal(err)
	}
	if len(items) != 5 {
		t.Errorf("на второй странице %d строк, ожидалось 5", len(items))
	}
	if env.Pagination == nil || env.Pagination.Total != 15 || env.Pagination.Pages != 2 || env.Pagination.Page != 2 {
		t.Errorf("пагинация: %+v", env.Pagination)
	}
}

func TestMutations_RequireSession(t *testing.T) {
	s := newServer(t)

	routes := []struct {
		method, path string
		body         any
	}{
		{http.MethodPost, "/api/articles", article("Anonymous draft")},
		{http.MethodPost, "/api/articles/preview", map[string]any{"content": "# Заголовок"}},
		{http.MethodPut, "/api/articles/a1", article("Anonymous edit")},
		{http.MethodDelete, "/api/articles/a1", nil},
		{http.MethodPost, "/api/projects", map[string]any{"title": "Крем с календулой"}},
		{http.MethodPut, "/api/projects/p1", map[string]any{"title": "Крем"}},
		{http.MethodDelete, "/api/projects/p1", nil},
		{http.MethodPost, "/api/categories", map[string]any{"name": "Масла"}},
		{http.MethodPut, "/api/categories/c1", map[string]any{"name": "Масла"}},
		{http.MethodDelete, "/api/categories/c1", nil},
		{http.MethodPost, "/api/tags", map[string]any{"name": "ромашка"}},
		{http.MethodDelete, "/api/tags/t1", nil},
		{http.MethodPost, "/api/youtube", map[string]any{"title": "Видео", "url": "https://youtu.be/dQw4w9WgXcQ"}},
		{http.MethodPut, "/api/youtube/v1", map[string]any{"title": "Видео"}},
		{http.MethodDelete, "/api/youtube/v1", nil},
		{http.MethodPost, "/api/media", map[string]any{"filename": "a.png", "url": "/uploads/a.png"}},
		{http.MethodPut, "/api/media/m1", map[string]any{"alt": "лист"}},
		{http.MethodDelete, "/api/media/m1", nil},
		{http.MethodPut, "/api/company", map[string]any{"name": "Травы"}},
		{http.MethodPut, "/api/seo", map[string]any{"siteName": "Травы"}},
		{http.MethodPost, "/api/batch", map[string]any{"action": "DELETE", "entity": "articles", "ids": []string{"a1"}}},
		{http.MethodPost, "/api/users", map[string]any{"email": "new@example.com", "password": password, "role": "EDITOR"}},
		{http.MethodPut, "/api/users/u-editor", map[string]any{"name": "Другое имя"}},
		{http.MethodDelete, "/api/users/u-editor", nil},
	}
	for _, rt := range routes {
		rec, env := s.do(rt.method, rt.path, "", rt.body)
		if rec.Code != http.StatusUnauthorized || env.Success {
			t.Errorf("%s %s: код %d, success=%v", rt.method, rt.path, rec.Code, env.Success)
		}
	}
	if n := s.store.ArticleCount() + s.store.ProjectCount(); n != 0 {
		t.Errorf("записей контента %d, ожидалось 0", n)
	}
	if n := s.store.AuditCount(); n != 0 {
		t.Errorf("записей аудита %d, ожидалось 0: анонимный запрос что-то изменил", n)
	}
}

func TestArticles_HugePage(t *testing.T) {
	s := newServer(t)
	s.do(http.MethodPost, "/api/articles", models.RoleEditor, article("Herbal only note"))

	rec, env := s.do(http.MethodGet, "/api/articles?page=9223372036854775807", "", nil)
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("код %d, %+v", rec.Code, env)
	}
	if string(env.Data) != "[]" {
		t.Errorf("страница за пределами выборки должна быть пустой: %s", env.Data)
	}
	if env.Pagination == nil || env.Pagination.Page != models.MaxPage {
		t.Errorf("пагинация: %+v", env.Pagination)
	}
}

func TestArticles_ValidationDetails(t *testing.T) {
	s := newServer(t)

	rec, env := s.do(http.MethodPost, "/api/articles", models.RoleEditor, map[string]any{"title": "ab", "content": "коротко"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("код %d", rec.Code)
	}
	if len(env.Details) < 2 {
		t.Errorf("ожидались ошибки по title и content, получено %v", env.Details)
	}
}

func TestArticles_SlugConflict(t *testing.T) {
	s := newServer(t)

	if rec, _ := s.do(http.MethodPost, "/api/articles", models.RoleEditor, article("Rose water")); rec.Code != http.StatusCreated {
		t.Fatalf("первое создание: %d", rec.Code)
	}
	rec, env := s.do(http.MethodPost, "/api/articles", models.RoleEditor, article("Rose  Water"))
	if rec.Code != http.StatusConflict || env.Success {
		t.Errorf("код %d, ожидался 409", rec.Code)
	}
}

func TestArticles_DeleteRoles(t *testing.T) {
	s := newServer(t)

	rec, env := s.do(http.MethodPost, "/api/articles", models.RoleSEO, article("Chamomile toner"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("создание: %d", rec.Code)
	}
	var a models.Article
	if err := json.Unmarshal(env.Data, &a); err != nil {
		t.Fatal(err)
	}

	if rec, _ := s.do(http.MethodDelete, "/api/articles/"+a.ID, models.RoleSEO, nil); rec.Code != http.StatusForbidden {
		t.Errorf("SEO: код %d, ожидался 403", rec.Code)
	}
	if rec, _ := s.do(http.MethodDelete, "/api/articles/"+a.ID, "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("аноним: код %d, ожидался 401", rec.Code)
	}
	if rec, _ := s.do(http.MethodDelete, "/api/articles/"+a.ID, models.RoleEditor, nil); rec.Code != http.StatusOK {
		t.Errorf("EDITOR: код %d", rec.Code)
	}
	if rec, _ := s.do(http.MethodGet, "/api/articles/"+a.ID, "", nil); rec.Code != http.StatusNotFound {
		t.Errorf("после удаления: код %d", rec.Code)
	}
}

func TestSearch_ShortQuery(t *testing.T) {
	s := newServer(t)

	rec, env := s.do(http.MethodGet, "/api/search?q=a", models.RoleEditor, nil)
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("код %d, %+v", rec.Code, env)
	}
	var res models.SearchResult
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatal(err)
	}
	if res.Total != 0 || len(res.Articles) != 0 {
		t.Errorf("короткий запрос должен давать пустой результат: %+v", res)
	}

	if rec, _ := s.do(http.MethodGet, "/api/search?q=rose", "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("поиск без сессии: код %d", rec.Code)
	}
}

func TestAuth_LoginCookieAndMe(t *testing.T) {
	s := newServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"Editor@Example.com","password":"`+password+`"}`))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("вход: код %d, тело %s", rec.Code, rec.Body.String())
	}

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookie {
			session = c
		}
	}
	if session == nil || !session.HttpOnly || session.Value == "" {
		t.Fatalf("cookie сессии не выставлена: %+v", session)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(session)
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "editor@example.com") {
		t.Errorf("me: код %d, тело %s", rec.Code, rec.Body.String())
	}
}

func TestAuth_LoginFailuresLookAlike(t *testing.T) {
	s := newServer(t)

	_, wrongPass := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "editor@example.com", "password": "nope-nope1"})
	rec, unknown := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ghost@example.com", "password": "nope-nope1"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("код %d", rec.Code)
	}
	if wrongPass.Error != unknown.Error {
		t.Errorf("сообщения различаются: %q и %q", wrongPass.Error, unknown.Error)
	}
}

func TestSettings_CompanyLifecycle(t *testing.T) {
	s := newServer(t)

	if rec, _ := s.do(http.MethodGet, "/api/company", "", nil); rec.Code != http.StatusNotFound {
		t.Errorf("до сохранения: код %d, ожидался 404", rec.Code)
	}
	body := map[string]any{"name": "Formula Herbal"}
	if rec, _ := s.do(http.MethodPut, "/api/company", models.RoleSEO, body); rec.Code != http.StatusForbidden {
		t.Errorf("SEO не может менять профиль компании: код %d", rec.Code)
	}
	if rec, _ := s.do(http.MethodPut, "/api/company", models.RoleAdmin, body); rec.Code != http.StatusOK {
		t.Fatalf("сохранение: код %d", rec.Code)
	}
	rec, env := s.do(http.MethodGet, "/api/company", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(string(env.Data), "Formula Herbal") {
		t.Errorf("после сохранения: код %d, data %s", rec.Code, env.Data)
	}

	if rec, _ := s.do(http.MethodPut, "/api/seo", models.RoleSEO, map[string]any{"siteName": "Formula"}); rec.Code != http.StatusOK {
		t.Errorf("SEO-настройки от роли SEO: код %d", rec.Code)
	}
}

func TestBatch_RollbackReport(t *testing.T) {
	s := newServer(t)

	var ids []string
	for _, title := range []string{"Aloe gel", "Neem oil"} {
		_, env := s.do(http.MethodPost, "/api/articles", models.RoleEditor, article(title))
		var a models.Article
		if err := json.Unmarshal(env.Data, &a); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, a.ID)
	}

	req := models.BatchRequest{
		Action: models.BatchDelete,
		Entity: models.BatchArticles,
		IDs:    []string{ids[0], "missing", ids[1]},
	}
	rec, env := s.do(http.MethodPost, "/api/batch", models.RoleEditor, req)
	if env.Success || rec.Code != http.StatusNotFound {
		t.Fatalf("код %d, success=%v", rec.Code, env.Success)
	}
	var res models.BatchResult
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Items) != 3 || !res.Items[0].RolledBack || res.Items[1].Error == "" || !res.Items[2].Skipped {
		t.Errorf("отчёт по элементам: %+v", res.Items)
	}
	if n := s.store.ArticleCount(); n != 2 {
		t.Errorf("после отката статей %d, ожидалось 2", n)
	}
}

func TestUsers_AdminOnly(t *testing.T) {
	s := newServer(t)

	if rec, _ := s.do(http.MethodGet, "/api/users", models.RoleEditor, nil); rec.Code != http.StatusForbidden {
		t.Errorf("EDITOR: код %d", rec.Code)
	}
	rec, env := s.do(http.MethodGet, "/api/users", models.RoleAdmin, nil)
	if rec.Code != http.StatusOK || env.Pagination == nil || env.Pagination.Total != 3 {
		t.Errorf("ADMIN: код %d, пагинация %+v", rec.Code, env.Pagination)
	}
	if strings.Contains(string(env.Data), "PasswordHash") || strings.Contains(string(env.Data), "$2a$") {
		t.Errorf("хеш пароля попал в ответ")
	}

	if rec, _ := s.do(http.MethodDelete, "/api/users/u-admin", models.RoleAdmin, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("удаление себя: код %d, ожидался 400", rec.Code)
	}
}

func TestDashboard_AnalyticsPeriod(t *testing.T) {
	s := newServer(t)

	for _, c := range []struct {
		query string
		want  int
	}{
		{"", http.StatusOK},
		{"?period=7", http.StatusOK},
		{"?period=0", http.StatusBadRequest},
		{"?period=400", http.StatusBadRequest},
		{"?period=abc", http.StatusBadRequest},
	} {
		if rec, _ := s.do(http.MethodGet, "/api/dashboard/analytics"+c.query, models.RoleEditor, nil); rec.Code != c.want {
			t.Errorf("%q: код %d, ожидался %d", c.query, rec.Code, c.want)
		}
	}
}

func TestUnknownRoute_JSON(t *testing.T) {
	s := newServer(t)

	rec, env := s.do(http.MethodGet, "/api/nothing-here", "", nil)
	if rec.Code != http.StatusNotFound || env.Success {
		t.Errorf("код %d, %+v", rec.Code, env)
	}
}
