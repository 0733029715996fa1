package repository

import (
	"context"
	"fmt"
	"strings"

	"formulator/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MediaRepo interface {
	List(ctx context.Context, search string, p models.Page) ([]models.Media, int64, error)
	GetByID(ctx context.Context, id string) (*models.Media, error)
	Create(ctx context.Context, m *models.Media) error
	Update(ctx context.Context, m *models.Media) error
	Delete(ctx context.Context, id string) error
}

type mediaRepo struct{ db *pgxpool.Pool }

func NewMediaRepo(db *pgxpool.Pool) MediaRepo { return &mediaRepo{db: db} }

const mediaSelect = `
	SELECT id, filename, url, mime_type, size, alt_text, caption, uploaded_by, created_at, updated_at
	FROM media
`

func scanMedia(row pgx.Row) (*models.Media, error) {
	var m models.Media
	if err := row.Scan(&m.ID, &m.Filename, &m.URL, &m.MimeType, &m.Size, &m.AltText, &m.Caption,
		&m.UploadedBy, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mediaRepo) List(ctx context.Context, search string, p models.Page) ([]models.Media, int64, error) {
	cond := ""
	args := []interface{}{}
	if q := strings.TrimSpace(search); q != "" {
		cond = " WHERE filename ILIKE $1 OR alt_text ILIKE $1 OR caption ILIKE $1"
		args = append(args, likePattern(q))
	}

	db := conn(ctx, r.db)
	var total int64
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM media"+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	sql := mediaSelect + cond + fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, p.Limit, p.Offset())

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Media{}
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *m)
	}
	return out, total, rows.Err()
}

func (r *mediaRepo) GetByID(ctx context.Context, id string) (*models.Media, error) {
	m, err := scanMedia(conn(ctx, r.db).QueryRow(ctx, mediaSelect+" WHERE id = $1", id))
	if err != nil {
		return nil, mapErr(err, "медиафайл")
	}
	return m, nil
}

func (r *mediaRepo) Create(ctx context.Context, m *models.Media) error {
	const q = `
		INSERT INTO media (id, filename, url, mime_type, size, alt_text, caption, uploaded_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at
	`
	err := conn(ctx, r.db).QueryRow(ctx, q,
		m.ID, m.Filename, m.URL, m.MimeType, m.Size, m.AltText, m.Caption, m.UploadedBy,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	return mapErr(err, "медиафайл")
}

func (r *mediaRepo) Update(ctx context.Context, m *models.Media) error {
	err := conn(ctx, r.db).QueryRow(ctx,
		`UPDATE media SET alt_text=$2, caption=$3, updated_at=NOW() WHERE id=$1 RETURNING updated_at`,
		m.ID, m.AltText, m.Caption,
	).Scan(&m.UpdatedAt)
	return mapErr(err, "медиафайл")
}

func (r *mediaRepo) Delete(ctx context.Context, id string) error {
	tag, err := conn(ctx, r.db).Exec(ctx, "DELETE FROM media WHERE id=$1", id)
	if err != nil {
		return mapErr(err, "медиафайл")
	}
	return affected(tag, "медиафайл")
}
