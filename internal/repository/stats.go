package repository

import (
	"context"
	"time"

	"formulator/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StatsRepo — агрегирующие запросы для дашборда и аналитики.
type StatsRepo interface {
	Overview(ctx context.Context) (*models.DashboardOverview, error)
	RecentArticles(ctx context.Context, limit int) ([]models.ArticleSummary, error)
	PopularArticles(ctx context.Context, since *time.Time, limit int) ([]models.ArticleSummary, error)
	ArticlesByStatus(ctx context.Context, since *time.Time) ([]models.StatusCount, error)
	ArticlesByCategory(ctx context.Context, limit int) ([]models.CategoryCount, error)
	CategoryActivity(ctx context.Context, since time.Time) ([]models.CategoryActivity, error)
	UserActivity(ctx context.Context, since time.Time) ([]models.UserActivity, error)
}

type statsRepo struct{ db *pgxpool.Pool }

func NewStatsRepo(db *pgxpool.Pool) StatsRepo { return &statsRepo{db: db} }

func (r *statsRepo) Overview(ctx context.Context) (*models.DashboardOverview, error) {
	const q = `
	SELECT
	  (SELECT COUNT(*) FROM articles),
	  (SELECT COUNT(*) FROM articles WHERE status = 'PUBLISHED'),
	  (SELECT COUNT(*) FROM articles WHERE status = 'DRAFT'),
	  (SELECT COUNT(*) FROM articles WHERE status = 'IN_REVIEW'),
	  (SELECT COUNT(*) FROM projects),
	  (SELECT COUNT(*) FROM projects WHERE status = 'PUBLISHED'),
	  (SELECT COUNT(*) FROM youtube_contents),
	  (SELECT COUNT(*) FROM users),
	  (SELECT COALESCE(SUM(view_count), 0) FROM articles)
	`
	var o models.DashboardOverview
	err := conn(ctx, r.db).QueryRow(ctx, q).Scan(
		&o.TotalArticles, &o.PublishedArticles, &o.DraftArticles, &o.InReviewArticles,
		&o.TotalProjects, &o.PublishedProjects, &o.TotalVideos, &o.TotalUsers, &o.TotalViews,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

const summarySelect = `
	SELECT a.id, a.title, a.slug, a.status, a.view_count, a.published_at, a.created_at, u.name
	FROM articles a
	JOIN users u ON u.id = a.author_id
`

func (r *statsRepo) summaries(ctx context.Context, sql string, args ...interface{}) ([]models.ArticleSummary, error) {
	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ArticleSummary{}
	for rows.Next() {
		var s models.ArticleSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Slug, &s.Status, &s.ViewCount, &s.PublishedAt,
			&s.CreatedAt, &s.AuthorName); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *statsRepo) RecentArticles(ctx context.Context, limit int) ([]models.ArticleSummary, error) {
	return r.summaries(ctx, summarySelect+` ORDER BY a.created_at DESC LIMIT $1`, limit)
}

// PopularArticles — опубликованные статьи по просмотрам; since ограничивает окно по дате создания.
func (r *statsRepo) PopularArticles(ctx context.Context, since *time.Time, limit int) ([]models.ArticleSummary, error) {
	return r.summaries(ctx, summarySelect+`
		WHERE a.status = 'PUBLISHED' AND ($1::timestamptz IS NULL OR a.created_at >= $1)
		ORDER BY a.view_count DESC, a.created_at DESC
		LIMIT $2`, since, limit)
}

func (r *statsRepo) ArticlesByStatus(ctx context.Context, since *time.Time) ([]models.StatusCount, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `
		SELECT status, COUNT(*) FROM articles
		WHERE $1::timestamptz IS NULL OR created_at >= $1
		GROUP BY status ORDER BY status`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.StatusCount{}
	for rows.Next() {
		var s models.StatusCount
		if err := rows.Scan(&s.Status, &s.Count); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *statsRepo) ArticlesByCategory(ctx context.Context, limit int) ([]models.CategoryCount, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `
		SELECT c.id, c.name, c.color, COUNT(a.id) AS cnt
		FROM categories c
		LEFT JOIN articles a ON a.category_id = c.id
		GROUP BY c.id, c.name, c.color
		ORDER BY cnt DESC, c.name
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.CategoryCount{}
	for rows.Next() {
		var c models.CategoryCount
		if err := rows.Scan(&c.CategoryID, &c.Name, &c.Color, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *statsRepo) CategoryActivity(ctx context.Context, since time.Time) ([]models.CategoryActivity, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `
		SELECT c.id, c.name,
		  (SELECT COUNT(*) FROM articles a WHERE a.category_id = c.id AND a.status = 'PUBLISHED' AND a.created_at >= $1),
		  (SELECT COUNT(*) FROM projects p WHERE p.category_id = c.id AND p.status = 'PUBLISHED' AND p.created_at >= $1)
		FROM categories c
		ORDER BY c.name`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.CategoryActivity{}
	for rows.Next() {
		var c models.CategoryActivity
		if err := rows.Scan(&c.CategoryID, &c.Name, &c.Articles, &c.Projects); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *statsRepo) UserActivity(ctx context.Context, since time.Time) ([]models.UserActivity, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `
		SELECT u.id, u.name, u.email,
		  (SELECT COUNT(*) FROM articles a WHERE a.author_id = u.id AND a.created_at >= $1),
		  (SELECT COUNT(*) FROM projects p WHERE p.author_id = u.id AND p.created_at >= $1)
		FROM users u
		ORDER BY u.name`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.UserActivity{}
	for rows.Next() {
		var u models.UserActivity
		if err := rows.Scan(&u.UserID, &u.Name, &u.Email, &u.Articles, &u.Projects); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
