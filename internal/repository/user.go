package repository

import (
	"context"
	"errors"

	"formulator/internal/apperr"
	"formulator/internal/logger"
	"formulator/internal/models"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserRepo interface {
	List(ctx context.Context, p models.Page) ([]models.User, int64, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	IsEmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id string) error
}

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userSelect = `
	SELECT u.id, u.email, u.name, u.password_hash, u.role, u.image, u.email_verified_at,
	       u.created_at, u.updated_at,
	       (SELECT COUNT(*) FROM articles a WHERE a.author_id = u.id),
	       (SELECT COUNT(*) FROM projects p WHERE p.author_id = u.id)
	FROM users u
`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	var counts models.UserCounts
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.Image, &u.EmailVerifiedAt,
		&u.CreatedAt, &u.UpdatedAt, &counts.Articles, &counts.Projects); err != nil {
		return nil, err
	}
	u.Counts = &counts
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, p models.Page) ([]models.User, int64, error) {
	logger.Log.Debug("Список пользователей (repo)", zap.Int("page", p.Page), zap.Int("limit", p.Limit))
	db := conn(ctx, r.db)

	var total int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := db.Query(ctx, userSelect+` ORDER BY u.created_at DESC LIMIT $1 OFFSET $2`, p.Limit, p.Offset())
	if err != nil {
		logger.Log.Error("Ошибка выборки пользователей (repo)", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *u)
	}
	return out, total, rows.Err()
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := scanUser(conn(ctx, r.db).QueryRow(ctx, userSelect+` WHERE u.id = $1`, id))
	if err != nil {
		return nil, mapErr(err, "пользователь")
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	logger.Log.Debug("Поиск пользователя по email (repo)")
	u, err := scanUser(conn(ctx, r.db).QueryRow(ctx, userSelect+` WHERE u.email = $1`, email))
	if err != nil {
		return nil, mapErr(err, "пользователь")
	}
	return u, nil
}

func (r *UserRepository) IsEmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id <> $2)`
	var exists bool
	err := conn(ctx, r.db).QueryRow(ctx, query, email, excludeID).Scan(&exists)
	if err != nil {
		logger.Log.Error("Ошибка проверки email (repo)", zap.Error(err))
	}
	return exists, err
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	logger.Log.Info("Создание пользователя (repo)", zap.String("id", u.ID), zap.String("role", string(u.Role)))
	query := `
	INSERT INTO users (id, email, name, password_hash, role, image)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at, updated_at`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Role, u.Image,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	return mapErr(err, "пользователь")
}

func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	query := `
	UPDATE users SET email=$2, name=$3, password_hash=$4, role=$5, image=$6, updated_at=NOW()
	WHERE id=$1
	RETURNING updated_at`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Role, u.Image,
	).Scan(&u.UpdatedAt)
	return mapErr(err, "пользователь")
}

// Delete удаляет пользователя. Сервис проверяет авторство заранее, но статья
// могла появиться после проверки: тогда FK RESTRICT даёт ErrUserHasContent.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return mapUserDeleteErr(err)
	}
	return affected(tag, "пользователь")
}

func mapUserDeleteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		return apperr.ErrUserHasContent
	}
	return mapErr(err, "пользователь")
}
