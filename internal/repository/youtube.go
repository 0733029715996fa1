package repository

import (
	"context"
	"fmt"
	"strings"

	"formulator/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type YouTubeRepo interface {
	List(ctx context.Context, f models.YouTubeFilter, p models.Page) ([]models.YouTubeContent, int64, error)
	GetByID(ctx context.Context, id string) (*models.YouTubeContent, error)
	Create(ctx context.Context, y *models.YouTubeContent) error
	Update(ctx context.Context, y *models.YouTubeContent) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q string, limit int) ([]models.YouTubeContent, error)
}

type youtubeRepo struct{ db *pgxpool.Pool }

func NewYouTubeRepo(db *pgxpool.Pool) YouTubeRepo { return &youtubeRepo{db: db} }

const youtubeSelect = `
	SELECT id, title, video_id, url, thumbnail, description, tags, status, published_at, created_at, updated_at
	FROM youtube_contents
`

func scanYouTube(row pgx.Row) (*models.YouTubeContent, error) {
	var y models.YouTubeContent
	if err := row.Scan(&y.ID, &y.Title, &y.VideoID, &y.URL, &y.Thumbnail, &y.Description, &y.Tags,
		&y.Status, &y.PublishedAt, &y.CreatedAt, &y.UpdatedAt); err != nil {
		return nil, err
	}
	if y.Tags == nil {
		y.Tags = []string{}
	}
	return &y, nil
}

func (r *youtubeRepo) query(ctx context.Context, sql string, args ...interface{}) ([]models.YouTubeContent, error) {
	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.YouTubeContent{}
	for rows.Next() {
		y, err := scanYouTube(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *y)
	}
	return out, rows.Err()
}

func (r *youtubeRepo) List(ctx context.Context, f models.YouTubeFilter, p models.Page) ([]models.YouTubeContent, int64, error) {
	where := []string{}
	args := []interface{}{}
	i := 1

	if f.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", i))
		args = append(args, f.Status)
		i++
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", i, i))
		args = append(args, likePattern(q))
		i++
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := conn(ctx, r.db).QueryRow(ctx, "SELECT COUNT(*) FROM youtube_contents"+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sql := youtubeSelect + cond + fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, p.Limit, p.Offset())
	list, err := r.query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *youtubeRepo) GetByID(ctx context.Context, id string) (*models.YouTubeContent, error) {
	y, err := scanYouTube(conn(ctx, r.db).QueryRow(ctx, youtubeSelect+" WHERE id = $1", id))
	if err != nil {
		return nil, mapErr(err, "видео")
	}
	return y, nil
}

func (r *youtubeRepo) Create(ctx context.Context, y *models.YouTubeContent) error {
	const q = `
		INSERT INTO youtube_contents (id, title, video_id, url, thumbnail, description, tags, status, published_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at
	`
	err := conn(ctx, r.db).QueryRow(ctx, q,
		y.ID, y.Title, y.VideoID, y.URL, y.Thumbnail, y.Description, nonNil(y.Tags), y.Status, y.PublishedAt,
	).Scan(&y.CreatedAt, &y.UpdatedAt)
	return mapErr(err, "видео")
}

func (r *youtubeRepo) Update(ctx context.Context, y *models.YouTubeContent) error {
	const q = `
		UPDATE youtube_contents
		SET title=$2, video_id=$3, url=$4, thumbnail=$5, description=$6, tags=$7, status=$8,
		    published_at=$9, updated_at=NOW()
		WHERE id=$1
		RETURNING updated_at
	`
	err := conn(ctx, r.db).QueryRow(ctx, q,
		y.ID, y.Title, y.VideoID, y.URL, y.Thumbnail, y.Description, nonNil(y.Tags), y.Status, y.PublishedAt,
	).Scan(&y.UpdatedAt)
	return mapErr(err, "видео")
}

func (r *youtubeRepo) Delete(ctx context.Context, id string) error {
	tag, err := conn(ctx, r.db).Exec(ctx, "DELETE FROM youtube_contents WHERE id=$1", id)
	if err != nil {
		return mapErr(err, "видео")
	}
	return affected(tag, "видео")
}

func (r *youtubeRepo) Search(ctx context.Context, q string, limit int) ([]models.YouTubeContent, error) {
	return r.query(ctx, youtubeSelect+`
		WHERE title ILIKE $1 OR description ILIKE $1
		ORDER BY updated_at DESC
		LIMIT $2`, likePattern(q), limit)
}
