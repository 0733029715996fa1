package services

import (
	"context"
	"encoding/json"
	"reflect"

	"formulator/internal/logger"
	"formulator/internal/models"
	"formulator/internal/reqctx"
	"formulator/internal/repository"

	"go.uber.org/zap"
)

const defaultAuditLimit = 20

type AuditService struct {
	repo repository.AuditRepo
}

func NewAuditService(repo repository.AuditRepo) *AuditService {
	return &AuditService{repo: repo}
}

// Record пишет запись журнала в текущей транзакции контекста. before —
// снимок до изменения (nil для CREATE), after — результат (nil для DELETE).
func (s *AuditService) Record(ctx context.Context, action models.AuditAction, entity, entityID string, before, after any) error {
	oldData, err := snapshot(before)
	if err != nil {
		return err
	}
	newData, err := snapshot(after)
	if err != nil {
		return err
	}

	entry := &models.AuditLog{
		ID:       newID(),
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		OldData:  oldData,
		NewData:  newData,
	}
	if uid := reqctx.UserID(ctx); uid != "" {
		entry.UserID = &uid
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		logger.WithCtx(ctx).Error("Ошибка записи аудита (repo)",
			zap.String("action", string(action)), zap.String("entity", entity), zap.String("entity_id", entityID), zap.Error(err))
		return err
	}
	return nil
}

func (s *AuditService) List(ctx context.Context, f models.AuditFilter, page, limit int) (*models.PageResult[models.AuditLog], error) {
	p := models.NewPage(page, limit, defaultAuditLimit)
	items, total, err := s.repo.List(ctx, f, p)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка чтения журнала аудита (repo)", zap.Error(err))
		return nil, err
	}
	return models.NewPageResult(items, p, total), nil
}

func snapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return nil, nil
	}
	return json.Marshal(v)
}
