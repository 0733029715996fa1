package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"formulator/internal/models"
)

type ArticleRepo interface {
	List(ctx context.Context, f models.ArticleFilter, p models.Page) ([]models.Article, int64, error)
	GetByID(ctx context.Context, id string) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, a *models.Article) error
	Update(ctx context.Context, a *models.Article) error
	Delete(ctx context.Context, id string) error
	ReplaceTags(ctx context.Context, articleID string, tagIDs []string) error
	IncrementViews(ctx context.Context, id string) (int64, error)
	Search(ctx context.Context, q string, limit int) ([]models.Article, error)
}

type articleRepo struct{ db *pgxpool.Pool }

func NewArticleRepo(db *pgxpool.Pool) ArticleRepo { return &articleRepo{db: db} }

const articleSelect = `
	SELECT a.id, a.title, a.slug, a.content, a.excerpt, a.featured_image, a.status, a.published_at,
	       a.view_count, a.meta_title, a.meta_description, a.canonical_url, a.robots_meta,
	       a.author_id, a.category_id, a.created_at, a.updated_at,
	       u.name, u.email, c.name, c.slug, c.color
	FROM articles a
	JOIN users u ON u.id = a.author_id
	LEFT JOIN categories c ON c.id = a.category_id
`

func scanArticle(row pgx.Row) (*models.Article, error) {
	var a models.Article
	var authorName, authorEmail string
	var catName, catSlug, catColor *string
	if err := row.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Content, &a.Excerpt, &a.FeaturedImage, &a.Status, &a.PublishedAt,
		&a.ViewCount, &a.MetaTitle, &a.MetaDescription, &a.CanonicalURL, &a.RobotsMeta,
		&a.AuthorID, &a.CategoryID, &a.CreatedAt, &a.UpdatedAt,
		&authorName, &authorEmail, &catName, &catSlug, &catColor,
	); err != nil {
		return nil, err
	}
	a.Author = &models.UserRef{ID: a.AuthorID, Name: authorName, Email: authorEmail}
	if a.CategoryID != nil && catName != nil {
		a.Category = &models.CategoryRef{ID: *a.CategoryID, Name: *catName, Slug: deref(catSlug), Color: deref(catColor)}
	}
	a.Tags = []models.TagRef{}
	return &a, nil
}

func (r *articleRepo) List(ctx context.Context, f models.ArticleFilter, p models.Page) ([]models.Article, int64, error) {
	where := []string{}
	args := []interface{}{}
	i := 1

	if f.Status != "" {
		where = append(where, fmt.Sprintf("a.status = $%d", i))
		args = append(args, f.Status)
		i++
	}
	if f.CategoryID != "" {
		where = append(where, fmt.Sprintf("a.category_id = $%d", i))
		args = append(args, f.CategoryID)
		i++
	}
	if f.AuthorID != "" {
		where = append(where, fmt.Sprintf("a.author_id = $%d", i))
		args = append(args, f.AuthorID)
		i++
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		where = append(where, fmt.Sprintf("(a.title ILIKE $%d OR a.content ILIKE $%d OR a.excerpt ILIKE $%d)", i, i, i))
		args = append(args, likePattern(q))
		i++
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	db := conn(ctx, r.db)

	var total int64
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM articles a"+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sql := articleSelect + cond + fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, p.Limit, p.Offset())

	list, err := r.query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *articleRepo) query(ctx context.Context, sql string, args ...interface{}) ([]models.Article, error) {
	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachTags(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *articleRepo) attachTags(ctx context.Context, list []models.Article) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, len(list))
	idx := make(map[string]int, len(list))
	for n, a := range list {
		ids[n] = a.ID
		idx[a.ID] = n
	}

	const q = `
		SELECT at.article_id, t.id, t.name, t.slug
		FROM article_tags at
		JOIN tags t ON t.id = at.tag_id
		WHERE at.article_id = ANY($1)
		ORDER BY t.name
	`
	rows, err := conn(ctx, r.db).Query(ctx, q, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var articleID string
		var t models.TagRef
		if err := rows.Scan(&articleID, &t.ID, &t.Name, &t.Slug); err != nil {
			return err
		}
		n := idx[articleID]
		list[n].Tags = append(list[n].Tags, t)
	}
	return rows.Err()
}

func (r *articleRepo) getOne(ctx context.Context, where string, arg string) (*models.Article, error) {
	a, err := scanArticle(conn(ctx, r.db).QueryRow(ctx, articleSelect+where, arg))
	if err != nil {
		return nil, mapErr(err, "статья")
	}
	one := []models.Article{*a}
	if err := r.attachTags(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	return r.getOne(ctx, " WHERE a.id = $1", id)
}

func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return r.getOne(ctx, " WHERE a.slug = $1", slug)
}

func (r *articleRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM articles WHERE slug = $1 AND id <> $2)`
	var ok bool
	if err := conn(ctx, r.db).QueryRow(ctx, q, slug, excludeID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *articleRepo) Create(ctx context.Context, a *models.Article) error {
	const q = `
		INSERT INTO articles (id, title, slug, content, excerpt, featured_image, status, published_at,
		                      meta_title, meta_description, canonical_url, robots_meta, author_id, category_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING view_count, created_at, updated_at
	`
	err := conn(ctx, r.db).QueryRow(ctx, q,
		a.ID, a.Title, a.Slug, a.Content, a.Excerpt, a.FeaturedImage, a.Status, a.PublishedAt,
		a.MetaTitle, a.MetaDescription, a.CanonicalURL, a.RobotsMeta, a.AuthorID, a.CategoryID,
	).Scan(&a.ViewCount, &a.CreatedAt, &a.UpdatedAt)
	return mapErr(err, "статья")
}

func (r *articleRepo) Update(ctx context.Context, a *models.Article) error {
	const q = `
		UPDATE articles
		SET title=$2, slug=$3, content=$4, excerpt=$5, featured_image=$6, status=$7, published_at=$8,
		    meta_title=$9, meta_description=$10, canonical_url=$11, robots_meta=$12, category_id=$13,
		    updated_at=NOW()
		WHERE id=$1
		RETURNING updated_at
	`
	err := conn(ctx, r.db).QueryRow(ctx, q,
		a.ID, a.Title, a.Slug, a.Content, a.Excerpt, a.FeaturedImage, a.Status, a.PublishedAt,
		a.MetaTitle, a.MetaDescription, a.CanonicalURL, a.RobotsMeta, a.CategoryID,
	).Scan(&a.UpdatedAt)
	return mapErr(err, "статья")
}

func (r *articleRepo) Delete(ctx context.Context, id string) error {
	tag, err := conn(ctx, r.db).Exec(ctx, "DELETE FROM articles WHERE id=$1", id)
	if err != nil {
		return mapErr(err, "статья")
	}
	return affected(tag, "статья")
}

// ReplaceTags полностью заменяет набор тегов статьи.
func (r *articleRepo) ReplaceTags(ctx context.Context, articleID string, tagIDs []string) error {
	db := conn(ctx, r.db)
	if _, err := db.Exec(ctx, "DELETE FROM article_tags WHERE article_id=$1", articleID); err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	const q = `
		INSERT INTO article_tags (article_id, tag_id)
		SELECT $1, unnest($2::text[])
		ON CONFLICT DO NOTHING
	`
	_, err := db.Exec(ctx, q, articleID, tagIDs)
	return mapErr(err, "тег статьи")
}

func (r *articleRepo) IncrementViews(ctx context.Context, id string) (int64, error) {
	const q = `UPDATE articles SET view_count = view_count + 1 WHERE id = $1 RETURNING view_count`
	var n int64
	if err := conn(ctx, r.db).QueryRow(ctx, q, id).Scan(&n); err != nil {
		return 0, mapErr(err, "статья")
	}
	return n, nil
}

func (r *articleRepo) Search(ctx context.Context, q string, limit int) ([]models.Article, error) {
	sql := articleSelect + `
		WHERE a.title ILIKE $1 OR a.content ILIKE $1 OR a.excerpt ILIKE $1
		ORDER BY a.updated_at DESC
		LIMIT $2
	`
	return r.query(ctx, sql, likePattern(q), limit)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
