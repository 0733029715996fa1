package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"formulator/internal/mocks"
	"formulator/internal/models"
	"formulator/internal/reqctx"
)

const testSecret = "test-secret"

// testEnv — все сервисы поверх одного хранилища в памяти.
type testEnv struct {
	store *mocks.Store
	repos mocks.Repos

	audit     *AuditService
	articles  ArticleService
	projects  ProjectService
	videos    YouTubeService
	taxonomy  *TaxonomyService
	users     *UserService
	auth      *AuthService
	settings  *SettingsService
	dashboard *DashboardService
	search    *SearchService
	batch     *BatchService

	admin  models.User
	editor models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := mocks.NewStore()
	r := store.Repos()
	audit := NewAuditService(r.Audit)
	slugs := NewSlugService(r.Articles, r.Projects)

	e := &testEnv{store: store, repos: r, audit: audit}
	e.articles = NewArticleService(r.Articles, r.Tags, r.Tx, slugs, audit)
	e.projects = NewProjectService(r.Projects, r.Tx, slugs, audit)
	e.videos = NewYouTubeService(r.Videos, r.Tx, audit)
	e.taxonomy = NewTaxonomyService(r.Categories, r.Tags, r.Tx, audit)
	e.users = NewUserService(r.Users, r.Tx, audit)
	e.auth = NewAuthService(r.Users, testSecret, time.Hour)
	e.settings = NewSettingsService(r.Settings, r.Tx, audit)
	e.dashboard = NewDashboardService(r.Stats, r.Audit)
	e.search = NewSearchService(r.Articles, r.Projects, r.Videos)
	e.batch = NewBatchService(r.Tx, e.articles, e.projects, e.videos)

	e.admin = store.AddUser(models.User{ID: "u-admin", Email: "admin@example.com", Name: "Админ", Role: models.RoleAdmin})
	e.editor = store.AddUser(models.User{ID: "u-editor", Email: "editor@example.com", Name: "Редактор", Role: models.RoleEditor})
	return e
}

func asUser(u models.User) context.Context {
	return reqctx.WithIdentity(context.Background(), reqctx.Identity{UserID: u.ID, Role: u.Role})
}

func longText(prefix string) string {
	return prefix + " " + strings.Repeat("травяной уход за кожей ", 4)
}

func articleInput(title string) models.ArticleInput {
	return models.ArticleInput{Title: title, Content: longText(title)}
}

func projectInput(title string) models.ProjectInput {
	return models.ProjectInput{Title: title, Description: longText(title)}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
