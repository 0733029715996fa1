package routes

import (
	"net/http"
	"time"

	"formulator/internal/handlers"
	"formulator/internal/middleware"
	"formulator/internal/models"
	"formulator/internal/utils/helpers"

	"github.com/go-chi/httprate"
	"github.com/gorilla/mux"
)

// Handlers — все HTTP-хендлеры API.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Articles  *handlers.ArticleHandler
	Projects  *handlers.ProjectHandler
	Taxonomy  *handlers.TaxonomyHandler
	YouTube   *handlers.YouTubeHandler
	Media     *handlers.MediaHandler
	Settings  *handlers.SettingsHandler
	Users     *handlers.UserHandler
	Dashboard *handlers.DashboardHandler
	Batch     *handlers.BatchHandler
	Logs      *handlers.AdminLogsHandler
	Health    *handlers.HealthHandler
}

// Options — параметры сессии и ограничения частоты входа.
type Options struct {
	JWTSecret      string
	SessionCookie  string
	LoginRateLimit int // запросов в минуту с одного IP
}

func InitRoutes(router *mux.Router, h Handlers, opt Options) {
	router.Use(middleware.RequestID, middleware.Recoverer, middleware.Logging)

	if h.Health != nil {
		router.HandleFunc("/healthz", h.Health.Healthz).Methods(http.MethodGet)
		router.Handle("/metrics", h.Health.Metrics()).Methods(http.MethodGet)
	}

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.Session(opt.JWTSecret, opt.SessionCookie))

	editors := middleware.AnyRole(models.RoleEditor)
	adminOnly := middleware.OnlyRole(models.RoleAdmin)
	seo := middleware.AnyRole(models.RoleSEO)
	session := middleware.Authenticated

	// --- Авторизация ---
	login := http.Handler(http.HandlerFunc(h.Auth.Login))
	if opt.LoginRateLimit > 0 {
		login = httprate.LimitByIP(opt.LoginRateLimit, time.Minute)(login)
	}
	api.Handle("/auth/login", login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", h.Auth.Logout).Methods(http.MethodPost)
	api.Handle("/auth/me", session(http.HandlerFunc(h.Auth.Me))).Methods(http.MethodGet)

	// --- Статьи ---
	api.HandleFunc("/articles", h.Articles.List).Methods(http.MethodGet)
	api.Handle("/articles", session(http.HandlerFunc(h.Articles.Create))).Methods(http.MethodPost)
	api.Handle("/articles/preview", session(http.HandlerFunc(h.Articles.Preview))).Methods(http.MethodPost)
	api.HandleFunc("/articles/slug/{slug}", h.Articles.GetBySlug).Methods(http.MethodGet)
	api.HandleFunc("/articles/{id}", h.Articles.GetByID).Methods(http.MethodGet)
	api.Handle("/articles/{id}", session(http.HandlerFunc(h.Articles.Update))).Methods(http.MethodPut)
	api.Handle("/articles/{id}", editors(http.HandlerFunc(h.Articles.Delete))).Methods(http.MethodDelete)

	// --- Проекты ---
	api.HandleFunc("/projects", h.Projects.List).Methods(http.MethodGet)
	api.Handle("/projects", session(http.HandlerFunc(h.Projects.Create))).Methods(http.MethodPost)
	api.HandleFunc("/projects/slug/{slug}", h.Projects.GetBySlug).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id}", h.Projects.GetByID).Methods(http.MethodGet)
	api.Handle("/projects/{id}", session(http.HandlerFunc(h.Projects.Update))).Methods(http.MethodPut)
	api.Handle("/projects/{id}", editors(http.HandlerFunc(h.Projects.Delete))).Methods(http.MethodDelete)

	// --- Категории и теги ---
	api.HandleFunc("/categories", h.Taxonomy.ListCategories).Methods(http.MethodGet)
	api.Handle("/categories", editors(http.HandlerFunc(h.Taxonomy.CreateCategory))).Methods(http.MethodPost)
	api.HandleFunc("/categories/{id}", h.Taxonomy.GetCategory).Methods(http.MethodGet)
	api.Handle("/categories/{id}", editors(http.HandlerFunc(h.Taxonomy.UpdateCategory))).Methods(http.MethodPut)
	api.Handle("/categories/{id}", editors(http.HandlerFunc(h.Taxonomy.DeleteCategory))).Methods(http.MethodDelete)

	api.HandleFunc("/tags", h.Taxonomy.ListTags).Methods(http.MethodGet)
	api.Handle("/tags", session(http.HandlerFunc(h.Taxonomy.CreateTag))).Methods(http.MethodPost)
	api.Handle("/tags/{id}", editors(http.HandlerFunc(h.Taxonomy.DeleteTag))).Methods(http.MethodDelete)

	// --- Видео ---
	api.HandleFunc("/youtube", h.YouTube.List).Methods(http.MethodGet)
	api.Handle("/youtube", session(http.HandlerFunc(h.YouTube.Create))).Methods(http.MethodPost)
	api.HandleFunc("/youtube/{id}", h.YouTube.GetByID).Methods(http.MethodGet)
	api.Handle("/youtube/{id}", session(http.HandlerFunc(h.YouTube.Update))).Methods(http.MethodPut)
	api.Handle("/youtube/{id}", editors(http.HandlerFunc(h.YouTube.Delete))).Methods(http.MethodDelete)

	// --- Медиатека ---
	media := api.PathPrefix("/media").Subrouter()
	media.Use(session)
	media.HandleFunc("", h.Media.List).Methods(http.MethodGet)
	media.HandleFunc("", h.Media.Create).Methods(http.MethodPost)
	media.HandleFunc("/{id}", h.Media.Get).Methods(http.MethodGet)
	media.HandleFunc("/{id}", h.Media.Update).Methods(http.MethodPut)
	media.Handle("/{id}", editors(http.HandlerFunc(h.Media.Delete))).Methods(http.MethodDelete)

	// --- Настройки сайта ---
	api.HandleFunc("/company", h.Settings.GetCompany).Methods(http.MethodGet)
	api.Handle("/company", adminOnly(http.HandlerFunc(h.Settings.SaveCompany))).Methods(http.MethodPut)
	api.HandleFunc("/seo", h.Settings.GetSeo).Methods(http.MethodGet)
	api.Handle("/seo", seo(http.HandlerFunc(h.Settings.SaveSeo))).Methods(http.MethodPut)

	// --- Дашборд и поиск ---
	api.Handle("/dashboard/stats", session(http.HandlerFunc(h.Dashboard.Stats))).Methods(http.MethodGet)
	api.Handle("/dashboard/analytics", session(http.HandlerFunc(h.Dashboard.Analytics))).Methods(http.MethodGet)
	api.Handle("/search", session(http.HandlerFunc(h.Dashboard.Search))).Methods(http.MethodGet)
	api.Handle("/batch", editors(http.HandlerFunc(h.Batch.Execute))).Methods(http.MethodPost)

	// --- Только ADMIN ---
	users := api.PathPrefix("/users").Subrouter()
	users.Use(adminOnly)
	users.HandleFunc("", h.Users.List).Methods(http.MethodGet)
	users.HandleFunc("", h.Users.Create).Methods(http.MethodPost)
	users.HandleFunc("/{id}", h.Users.Get).Methods(http.MethodGet)
	users.HandleFunc("/{id}", h.Users.Update).Methods(http.MethodPut)
	users.HandleFunc("/{id}", h.Users.Delete).Methods(http.MethodDelete)

	api.Handle("/audit", adminOnly(http.HandlerFunc(h.Dashboard.Audit))).Methods(http.MethodGet)

	if h.Logs != nil {
		logs := api.PathPrefix("/admin/logs").Subrouter()
		logs.Use(adminOnly)
		logs.HandleFunc("/days", h.Logs.ListDays).Methods(http.MethodGet)
		logs.HandleFunc("", h.Logs.GetLogs).Methods(http.MethodGet)
	}

	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	helpers.Error(w, http.StatusNotFound, "Маршрут не найден")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	helpers.Error(w, http.StatusMethodNotAllowed, "Метод не поддерживается")
}
