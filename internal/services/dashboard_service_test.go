package services

import (
	"context"
	"errors"
	"testing"

	"formulator/internal/apperr"
	"formulator/internal/mocks"
	"formulator/internal/models"
)

func TestDashboardStats_Empty(t *testing.T) {
	r := mocks.NewStore().Repos()
	svc := NewDashboardService(r.Stats, r.Audit)

	st, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("пустая база не должна давать ошибку: %v", err)
	}
	if st.Overview != (models.DashboardOverview{}) {
		t.Errorf("ожидались нули: %+v", st.Overview)
	}
	if len(st.RecentArticles) != 0 || len(st.PopularArticles) != 0 || len(st.ArticlesByCategory) != 0 {
		t.Error("списки должны быть пустыми")
	}
	if st.RecentArticles == nil || st.PopularArticles == nil || st.ArticlesByCategory == nil {
		t.Error("пустые списки должны сериализоваться как [], а не null")
	}
	if len(st.ContentByStatus) != 3 {
		t.Fatalf("contentByStatus должен содержать все три статуса: %+v", st.ContentByStatus)
	}
	for _, c := range st.ContentByStatus {
		if c.Count != 0 {
			t.Errorf("%s = %d", c.Status, c.Count)
		}
	}
}

func TestDashboardStats_Counts(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.editor)

	pub := articleInput("Stats Published")
	pub.Status = models.StatusPublished
	a, err := e.articles.Create(ctx, pub)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.articles.Create(ctx, articleInput("Stats Draft")); err != nil {
		t.Fatal(err)
	}
	if _, err := e.articles.GetPublishedBySlug(context.Background(), a.Slug); err != nil {
		t.Fatal(err)
	}

	st, err := e.dashboard.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	o := st.Overview
	if o.TotalArticles != 2 || o.PublishedArticles != 1 || o.DraftArticles != 1 || o.TotalUsers != 2 || o.TotalViews != 1 {
		t.Errorf("overview = %+v", o)
	}
	if o.PublishedPct != 50 {
		t.Errorf("publishedPct = %v, ожидалось 50", o.PublishedPct)
	}
	if len(st.PopularArticles) != 1 || st.PopularArticles[0].ID != a.ID {
		t.Errorf("popular = %+v", st.PopularArticles)
	}
}

func TestDashboardAnalytics(t *testing.T) {
	e := newTestEnv(t)
	ctx := asUser(e.editor)

	if _, err := e.articles.Create(ctx, articleInput("Analytics Article")); err != nil {
		t.Fatal(err)
	}

	an, err := e.dashboard.Analytics(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if an.PeriodDays != DefaultAnalyticsDays {
		t.Errorf("period = %d", an.PeriodDays)
	}
	if len(an.RecentActivity) != 1 {
		t.Errorf("recentActivity = %d, ожидалась 1 запись", len(an.RecentActivity))
	}
	var editorArticles int
	for _, u := range an.UserActivity {
		if u.UserID == e.editor.ID {
			editorArticles = u.Articles
		}
	}
	if editorArticles != 1 {
		t.Errorf("активность редактора = %d", editorArticles)
	}

	for _, bad := range []int{-1, 366} {
		if _, err := e.dashboard.Analytics(ctx, bad); !errors.Is(err, apperr.ErrInvalidRequest) {
			t.Errorf("period=%d: ожидалась ErrInvalidRequest, получено %v", bad, err)
		}
	}
}

func TestPercent(t *testing.T) {
	if percent(1, 0) != 0 {
		t.Error("деление на ноль должно давать 0")
	}
	if got := percent(1, 3); got != 33.3 {
		t.Errorf("percent(1,3) = %v", got)
	}
}
