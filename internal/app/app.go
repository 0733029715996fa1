package app

import (
	"context"

	"formulator/internal/config"
	"formulator/internal/db"
	"formulator/internal/handlers"
	"formulator/internal/logger"
	"formulator/internal/repository"
	"formulator/internal/routes"
	"formulator/internal/services"
	"formulator/internal/storage"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// App — собранное приложение: роутер и пул соединений, который надо закрыть.
type App struct {
	Router *mux.Router
	DB     *pgxpool.Pool
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

func InitApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg.MigrateOnStart {
		if err := db.MigrateUp(cfg); err != nil {
			return nil, err
		}
	}

	conn, err := db.NewPostgresConnection(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("Подключение к БД установлено", zap.String("dsn", cfg.GetDSNSafe()))

	store, err := storage.New(ctx, cfg)
	if err != nil {
		conn.Close()
		return nil, err
	}
	logger.Log.Info("Хранилище медиа", zap.String("backend", store.Name()))

	router := mux.NewRouter()
	Mount(router, cfg, repository.NewSet(conn), store, conn)
	return &App{Router: router, DB: conn}, nil
}

// Mount собирает сервисы и хендлеры поверх набора репозиториев и вешает
// маршруты на router. db может быть nil: тогда /healthz и /metrics не
// регистрируются.
func Mount(router *mux.Router, cfg *config.Config, repos repository.Set, store storage.Storage, db handlers.Pinger) {
	// Сервисы
	auditSvc := services.NewAuditService(repos.Audit)
	slugSvc := services.NewSlugService(repos.Articles, repos.Projects)
	articleSvc := services.NewArticleService(repos.Articles, repos.Tags, repos.Tx, slugSvc, auditSvc)
	projectSvc := services.NewProjectService(repos.Projects, repos.Tx, slugSvc, auditSvc)
	videoSvc := services.NewYouTubeService(repos.Videos, repos.Tx, auditSvc)
	taxonomySvc := services.NewTaxonomyService(repos.Categories, repos.Tags, repos.Tx, auditSvc)
	mediaSvc := services.NewMediaService(repos.Media, store, repos.Tx, auditSvc)
	settingsSvc := services.NewSettingsService(repos.Settings, repos.Tx, auditSvc)
	userSvc := services.NewUserService(repos.Users, repos.Tx, auditSvc)
	authSvc := services.NewAuthService(repos.Users, cfg.JWTSecret, cfg.SessionTTL)
	dashboardSvc := services.NewDashboardService(repos.Stats, repos.Audit)
	searchSvc := services.NewSearchService(repos.Articles, repos.Projects, repos.Videos)
	batchSvc := services.NewBatchService(repos.Tx, articleSvc, projectSvc, videoSvc)

	// Хендлеры
	h := routes.Handlers{
		Auth:      handlers.NewAuthHandler(authSvc, cfg),
		Articles:  handlers.NewArticleHandler(articleSvc),
		Projects:  handlers.NewProjectHandler(projectSvc),
		Taxonomy:  handlers.NewTaxonomyHandler(taxonomySvc),
		YouTube:   handlers.NewYouTubeHandler(videoSvc),
		Media:     handlers.NewMediaHandler(mediaSvc),
		Settings:  handlers.NewSettingsHandler(settingsSvc),
		Users:     handlers.NewUserHandler(userSvc),
		Dashboard: handlers.NewDashboardHandler(dashboardSvc, searchSvc, auditSvc),
		Batch:     handlers.NewBatchHandler(batchSvc),
		Logs:      handlers.NewAdminLogsHandler(cfg.LogDir),
	}
	if db != nil {
		h.Health = handlers.NewHealthHandler(db)
	}

	routes.InitRoutes(router, h, routes.Options{
		JWTSecret:      cfg.JWTSecret,
		SessionCookie:  cfg.SessionCookie,
		LoginRateLimit: cfg.LoginRateLimit,
	})
}
