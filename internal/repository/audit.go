package repository

import (
	"context"
	"fmt"
	"strings"

	"formulator/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditRepo interface {
	Create(ctx context.Context, l *models.AuditLog) error
	List(ctx context.Context, f models.AuditFilter, p models.Page) ([]models.AuditLog, int64, error)
}

type auditRepo struct{ db *pgxpool.Pool }

func NewAuditRepo(db *pgxpool.Pool) AuditRepo { return &auditRepo{db: db} }

func (r *auditRepo) Create(ctx context.Context, l *models.AuditLog) error {
	const q = `
		INSERT INTO audit_logs (id, user_id, action, entity, entity_id, old_data, new_data)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at
	`
	err := conn(ctx, r.db).QueryRow(ctx, q,
		l.ID, l.UserID, l.Action, l.Entity, l.EntityID, nullJSON(l.OldData), nullJSON(l.NewData),
	).Scan(&l.CreatedAt)
	return mapErr(err, "запись аудита")
}

func (r *auditRepo) List(ctx context.Context, f models.AuditFilter, p models.Page) ([]models.AuditLog, int64, error) {
	where := []string{}
	args := []interface{}{}
	i := 1

	if f.Action != "" {
		where = append(where, fmt.Sprintf("l.action = $%d", i))
		args = append(args, f.Action)
		i++
	}
	if f.Entity != "" {
		where = append(where, fmt.Sprintf("l.entity = $%d", i))
		args = append(args, f.Entity)
		i++
	}
	if f.UserID != "" {
		where = append(where, fmt.Sprintf("l.user_id = $%d", i))
		args = append(args, f.UserID)
		i++
	}
	if f.Since != nil {
		where = append(where, fmt.Sprintf("l.created_at >= $%d", i))
		args = append(args, *f.Since)
		i++
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	db := conn(ctx, r.db)
	var total int64
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM audit_logs l"+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sql := `
		SELECT l.id, l.user_id, l.action, l.entity, l.entity_id, l.old_data, l.new_data, l.created_at,
		       u.name, u.email
		FROM audit_logs l
		LEFT JOIN users u ON u.id = l.user_id` + cond +
		fmt.Sprintf(" ORDER BY l.created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, p.Limit, p.Offset())

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.AuditLog{}
	for rows.Next() {
		var l models.AuditLog
		var name, email *string
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.Entity, &l.EntityID, &l.OldData, &l.NewData,
			&l.CreatedAt, &name, &email); err != nil {
			return nil, 0, err
		}
		if l.UserID != nil && name != nil {
			l.User = &models.UserRef{ID: *l.UserID, Name: *name, Email: deref(email)}
		}
		out = append(out, l)
	}
	return out, total, rows.Err()
}

func nullJSON(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return b
}
