package repository

import (
	"context"

	"formulator/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoryRepo interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	NameOrSlugTaken(ctx context.Context, name, slug, excludeID string) (bool, error)
	Create(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id string) error
}

type TagRepo interface {
	List(ctx context.Context) ([]models.Tag, error)
	GetByID(ctx context.Context, id string) (*models.Tag, error)
	NameOrSlugTaken(ctx context.Context, name, slug string) (bool, error)
	CountExisting(ctx context.Context, ids []string) (int, error)
	Create(ctx context.Context, t *models.Tag) error
	Delete(ctx context.Context, id string) error
}

// ----- Categories -----

type categoryRepo struct{ db *pgxpool.Pool }

func NewCategoryRepo(db *pgxpool.Pool) CategoryRepo { return &categoryRepo{db: db} }

const categorySelect = `
SELECT c.id, c.name, c.slug, c.description, c.color, c.created_at, c.updated_at,
       (SELECT COUNT(*) FROM articles a WHERE a.category_id = c.id),
       (SELECT COUNT(*) FROM projects p WHERE p.category_id = c.id)
FROM categories c
`

func scanCategory(row pgx.Row) (*models.Category, error) {
	var c models.Category
	var counts models.CategoryCounts
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color, &c.CreatedAt, &c.UpdatedAt,
		&counts.Articles, &counts.Projects); err != nil {
		return nil, err
	}
	c.Counts = &counts
	return &c, nil
}

func (r *categoryRepo) List(ctx context.Context) ([]models.Category, error) {
	rows, err := conn(ctx, r.db).Query(ctx, categorySelect+" ORDER BY c.name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	c, err := scanCategory(conn(ctx, r.db).QueryRow(ctx, categorySelect+" WHERE c.id = $1", id))
	if err != nil {
		return nil, mapErr(err, "категория")
	}
	return c, nil
}

func (r *categoryRepo) NameOrSlugTaken(ctx context.Context, name, slug, excludeID string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM categories WHERE (name = $1 OR slug = $2) AND id <> $3)`
	var ok bool
	err := conn(ctx, r.db).QueryRow(ctx, q, name, slug, excludeID).Scan(&ok)
	return ok, err
}

func (r *categoryRepo) Create(ctx context.Context, c *models.Category) error {
	err := conn(ctx, r.db).QueryRow(ctx,
		`INSERT INTO categories (id, name, slug, description, color) VALUES ($1,$2,$3,$4,$5)
		 RETURNING created_at, updated_at`,
		c.ID, c.Name, c.Slug, c.Description, c.Color,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	return mapErr(err, "категория")
}

func (r *categoryRepo) Update(ctx context.Context, c *models.Category) error {
	err := conn(ctx, r.db).QueryRow(ctx,
		`UPDATE categories SET name=$2, slug=$3, description=$4, color=$5, updated_at=now()
		 WHERE id=$1 RETURNING updated_at`,
		c.ID, c.Name, c.Slug, c.Description, c.Color,
	).Scan(&c.UpdatedAt)
	return mapErr(err, "категория")
}

// Delete удаляет категорию; статьи и проекты остаются без категории (ON DELETE SET NULL).
func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return mapErr(err, "категория")
	}
	return affected(tag, "категория")
}

// ----- Tags -----

type tagRepo struct{ db *pgxpool.Pool }

func NewTagRepo(db *pgxpool.Pool) TagRepo { return &tagRepo{db: db} }

const tagSelect = `
SELECT t.id, t.name, t.slug, t.created_at,
       (SELECT COUNT(*) FROM article_tags at WHERE at.tag_id = t.id)
FROM tags t
`

func (r *tagRepo) List(ctx context.Context) ([]models.Tag, error) {
	rows, err := conn(ctx, r.db).Query(ctx, tagSelect+" ORDER BY t.name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Tag{}
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.Articles); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tagRepo) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	var t models.Tag
	err := conn(ctx, r.db).QueryRow(ctx, tagSelect+" WHERE t.id = $1", id).
		Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.Articles)
	if err != nil {
		return nil, mapErr(err, "тег")
	}
	return &t, nil
}

func (r *tagRepo) NameOrSlugTaken(ctx context.Context, name, slug string) (bool, error) {
	var ok bool
	err := conn(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM tags WHERE name = $1 OR slug = $2)`, name, slug,
	).Scan(&ok)
	return ok, err
}

// CountExisting считает, сколько id из списка реально есть в tags.
func (r *tagRepo) CountExisting(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int
	err := conn(ctx, r.db).QueryRow(ctx,
		`SELECT COUNT(DISTINCT id) FROM tags WHERE id = ANY($1)`, ids,
	).Scan(&n)
	return n, err
}

func (r *tagRepo) Create(ctx context.Context, t *models.Tag) error {
	err := conn(ctx, r.db).QueryRow(ctx,
		`INSERT INTO tags (id, name, slug) VALUES ($1,$2,$3) RETURNING created_at`,
		t.ID, t.Name, t.Slug,
	).Scan(&t.CreatedAt)
	return mapErr(err, "тег")
}

func (r *tagRepo) Delete(ctx context.Context, id string) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM tags WHERE id=$1`, id)
	if err != nil {
		return mapErr(err, "тег")
	}
	return affected(tag, "тег")
}
