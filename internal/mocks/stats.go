package mocks

import (
	"context"
	"sort"
	"time"

	"formulator/internal/models"
)

type statsRepo struct{ s *Store }

func (r *statsRepo) Overview(_ context.Context) (*models.DashboardOverview, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var o models.DashboardOverview
	for _, a := range r.s.data.articles {
		o.TotalArticles++
		o.TotalViews += a.ViewCount
		switch a.Status {
		case models.StatusPublished:
			o.PublishedArticles++
		case models.StatusDraft:
			o.DraftArticles++
		case models.StatusInReview:
			o.InReviewArticles++
		}
	}
	for _, p := range r.s.data.projects {
		o.TotalProjects++
		if p.Status == models.StatusPublished {
			o.PublishedProjects++
		}
	}
	o.TotalVideos = len(r.s.data.videos)
	o.TotalUsers = len(r.s.data.users)
	return &o, nil
}

func (r *statsRepo) summaries(match func(a models.Article) bool, less func(a, b models.Article) bool, limit int) []models.ArticleSummary {
	list := []models.Article{}
	for _, a := range r.s.data.articles {
		if match(a) {
			list = append(list, a)
		}
	}
	sort.Slice(list, func(i, j int) bool { return less(list[i], list[j]) })
	if len(list) > limit {
		list = list[:limit]
	}

	out := []models.ArticleSummary{}
	for _, a := range list {
		out = append(out, models.ArticleSummary{
			ID:          a.ID,
			Title:       a.Title,
			Slug:        a.Slug,
			Status:      a.Status,
			ViewCount:   a.ViewCount,
			PublishedAt: a.PublishedAt,
			CreatedAt:   a.CreatedAt,
			AuthorName:  r.s.data.users[a.AuthorID].Name,
		})
	}
	return out
}

func (r *statsRepo) RecentArticles(_ context.Context, limit int) ([]models.ArticleSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.summaries(
		func(models.Article) bool { return true },
		func(a, b models.Article) bool { return a.CreatedAt.After(b.CreatedAt) },
		limit,
	), nil
}

func (r *statsRepo) PopularArticles(_ context.Context, since *time.Time, limit int) ([]models.ArticleSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.summaries(
		func(a models.Article) bool {
			return a.Status == models.StatusPublished && (since == nil || !a.CreatedAt.Before(*since))
		},
		func(a, b models.Article) bool {
			if a.ViewCount != b.ViewCount {
				return a.ViewCount > b.ViewCount
			}
			return a.CreatedAt.After(b.CreatedAt)
		},
		limit,
	), nil
}

func (r *statsRepo) ArticlesByStatus(_ context.Context, since *time.Time) ([]models.StatusCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[models.ContentStatus]int{}
	for _, a := range r.s.data.articles {
		if since == nil || !a.CreatedAt.Before(*since) {
			counts[a.Status]++
		}
	}
	out := []models.StatusCount{}
	for st, n := range counts {
		out = append(out, models.StatusCount{Status: st, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, nil
}

func (r *statsRepo) ArticlesByCategory(_ context.Context, limit int) ([]models.CategoryCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.CategoryCount{}
	for _, c := range r.s.data.categories {
		cc := models.CategoryCount{CategoryID: c.ID, Name: c.Name, Color: c.Color}
		for _, a := range r.s.data.articles {
			if deref(a.CategoryID) == c.ID {
				cc.Count++
			}
		}
		out = append(out, cc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *statsRepo) CategoryActivity(_ context.Context, since time.Time) ([]models.CategoryActivity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.CategoryActivity{}
	for _, c := range r.s.data.categories {
		ca := models.CategoryActivity{CategoryID: c.ID, Name: c.Name}
		for _, a := range r.s.data.articles {
			if deref(a.CategoryID) == c.ID && a.Status == models.StatusPublished && !a.CreatedAt.Before(since) {
				ca.Articles++
			}
		}
		for _, p := range r.s.data.projects {
			if deref(p.CategoryID) == c.ID && p.Status == models.StatusPublished && !p.CreatedAt.Before(since) {
				ca.Projects++
			}
		}
		out = append(out, ca)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *statsRepo) UserActivity(_ context.Context, since time.Time) ([]models.UserActivity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.UserActivity{}
	for _, u := range r.s.data.users {
		ua := models.UserActivity{UserID: u.ID, Name: u.Name, Email: u.Email}
		for _, a := range r.s.data.articles {
			if a.AuthorID == u.ID && !a.CreatedAt.Before(since) {
				ua.Articles++
			}
		}
		for _, p := range r.s.data.projects {
			if p.AuthorID == u.ID && !p.CreatedAt.Before(since) {
				ua.Projects++
			}
		}
		out = append(out, ua)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
