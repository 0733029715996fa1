package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"formulator/internal/models"
)

type ProjectRepo interface {
	List(ctx context.Context, f models.ProjectFilter, p models.Page) ([]models.Project, int64, error)
	GetByID(ctx context.Context, id string) (*models.Project, error)
	GetBySlug(ctx context.Context, slug string) (*models.Project, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, p *models.Project) error
	Update(ctx context.Context, p *models.Project) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) (int64, error)
	Search(ctx context.Context, q string, limit int) ([]models.Project, error)
}

type projectRepo struct{ db *pgxpool.Pool }

func NewProjectRepo(db *pgxpool.Pool) ProjectRepo { return &projectRepo{db: db} }

const projectSelect = `
	SELECT p.id, p.title, p.slug, p.description, p.short_description, p.featured_image, p.gallery,
	       p.status, p.published_at, p.view_count, p.meta_title, p.meta_description, p.canonical_url,
	       p.author_id, p.category_id, p.created_at, p.updated_at,
	       u.name, u.email, c.name, c.slug, c.color
	FROM projects p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN categories c ON c.id = p.category_id
`

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	var authorName, authorEmail string
	var catName, catSlug, catColor *string
	if err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.ShortDescription, &p.FeaturedImage, &p.Gallery,
		&p.Status, &p.PublishedAt, &p.ViewCount, &p.MetaTitle, &p.MetaDescription, &p.CanonicalURL,
		&p.AuthorID, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt,
		&authorName, &authorEmail, &catName, &catSlug, &catColor,
	); err != nil {
		return nil, err
	}
	if p.Gallery == nil {
		p.Gallery = []string{}
	}
	p.Author = &models.UserRef{ID: p.AuthorID, Name: authorName, Email: authorEmail}
	if p.CategoryID != nil && catName != nil {
		p.Category = &models.CategoryRef{ID: *p.CategoryID, Name: *catName, Slug: deref(catSlug), Color: deref(catColor)}
	}
	return &p, nil
}

func (r *projectRepo) List(ctx context.Context, f models.ProjectFilter, pg models.Page) ([]models.Project, int64, error) {
	where := []string{}
	args := []interface{}{}
	i := 1

	if f.Status != "" {
		where = append(where, fmt.Sprintf("p.status = $%d", i))
		args = append(args, f.Status)
		i++
	}
	if f.CategoryID != "" {
		where = append(where, fmt.Sprintf("p.category_id = $%d", i))
		args = append(args, f.CategoryID)
		i++
	}
	if f.AuthorID != "" {
		where = append(where, fmt.Sprintf("p.author_id = $%d", i))
		args = append(args, f.AuthorID)
		i++
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		where = append(where, fmt.Sprintf("(p.title ILIKE $%d OR p.description ILIKE $%d OR p.short_description ILIKE $%d)", i, i, i))
		args = append(args, likePattern(q))
		i++
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := conn(ctx, r.db).QueryRow(ctx, "SELECT COUNT(*) FROM projects p"+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sql := projectSelect + cond + fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, pg.Limit, pg.Offset())

	list, err := r.query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *projectRepo) query(ctx context.Context, sql string, args ...interface{}) ([]models.Project, error) {
	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

func (r *projectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	p, err := scanProject(conn(ctx, r.db).QueryRow(ctx, projectSelect+" WHERE p.id = $1", id))
	if err != nil {
		return nil, mapErr(err, "проект")
	}
	return p, nil
}

func (r *projectRepo) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	p, err := scanProject(conn(ctx, r.db).QueryRow(ctx, projectSelect+" WHERE p.slug = $1", slug))
	if err != nil {
		return nil, mapErr(err, "проект")
	}
	return p, nil
}

func (r *projectRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM projects WHERE slug = $1 AND id <> $2)`
	var ok bool
	if err := conn(ctx, r.db).QueryRow(ctx, q, slug, excludeID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *projectRepo) Create(ctx context.Context, p *models.Project) error {
	const q = `
		INSERT INTO projects (id, title, slug, description, short_description, featured_image, gallery,
		                      status, published_at, meta_title, meta_description, canonical_url,
		                      author_id, category_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING view_count, created_at, updated_at
	`
	err := conn(ctx, r.db).QueryRow(ctx, q,
		p.ID, p.Title, p.Slug, p.Description, p.ShortDescription, p.FeaturedImage, nonNil(p.Gallery),
		p.Status, p.PublishedAt, p.MetaTitle, p.MetaDescription, p.CanonicalURL,
		p.AuthorID, p.CategoryID,
	).Scan(&p.ViewCount, &p.CreatedAt, &p.UpdatedAt)
	return mapErr(err, "проект")
}

func (r *projectRepo) Update(ctx context.Context, p *models.Project) error {
	const q = `
		UPDATE projects
		SET title=$2, slug=$3, description=$4, short_description=$5, featured_image=$6, gallery=$7,
		    status=$8, published_at=$9, meta_title=$10, meta_description=$11, canonical_url=$12,
		    category_id=$13, updated_at=NOW()
		WHERE id=$1
		RETURNING updated_at
	`
	err := conn(ctx, r.db).QueryRow(ctx, q,
		p.ID, p.Title, p.Slug, p.Description, p.ShortDescription, p.FeaturedImage, nonNil(p.Gallery),
		p.Status, p.PublishedAt, p.MetaTitle, p.MetaDescription, p.CanonicalURL, p.CategoryID,
	).Scan(&p.UpdatedAt)
	return mapErr(err, "проект")
}

func (r *projectRepo) Delete(ctx context.Context, id string) error {
	tag, err := conn(ctx, r.db).Exec(ctx, "DELETE FROM projects WHERE id=$1", id)
	if err != nil {
		return mapErr(err, "проект")
	}
	return affected(tag, "проект")
}

func (r *projectRepo) IncrementViews(ctx context.Context, id string) (int64, error) {
	const q = `UPDATE projects SET view_count = view_count + 1 WHERE id = $1 RETURNING view_count`
	var n int64
	if err := conn(ctx, r.db).QueryRow(ctx, q, id).Scan(&n); err != nil {
		return 0, mapErr(err, "проект")
	}
	return n, nil
}

func (r *projectRepo) Search(ctx context.Context, q string, limit int) ([]models.Project, error) {
	sql := projectSelect + `
		WHERE p.title ILIKE $1 OR p.description ILIKE $1 OR p.short_description ILIKE $1
		ORDER BY p.updated_at DESC
		LIMIT $2
	`
	return r.query(ctx, sql, likePattern(q), limit)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
