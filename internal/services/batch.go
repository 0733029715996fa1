package services

import (
	"context"
	"errors"
	"fmt"

	"formulator/internal/apperr"
	"formulator/internal/logger"
	"formulator/internal/models"
	"formulator/internal/repository"

	"go.uber.org/zap"
)

// batchTarget — операции над одной сущностью, доступные пакетной обработке.
// setCategory == nil означает, что у сущности нет категории.
type batchTarget struct {
	delete      func(ctx context.Context, id string) error
	setStatus   func(ctx context.Context, id string, st models.ContentStatus) error
	setCategory func(ctx context.Context, id string, categoryID *string) error
}

type BatchService struct {
	tx      repository.Transactor
	targets map[models.BatchEntity]batchTarget
}

func NewBatchService(tx repository.Transactor, articles ArticleService, projects ProjectService, videos YouTubeService) *BatchService {
	return &BatchService{
		tx: tx,
		targets: map[models.BatchEntity]batchTarget{
			models.BatchArticles: {delete: articles.Delete, setStatus: articles.SetStatus, setCategory: articles.SetCategory},
			models.BatchProjects: {delete: projects.Delete, setStatus: projects.SetStatus, setCategory: projects.SetCategory},
			models.BatchYouTube:  {delete: videos.Delete, setStatus: videos.SetStatus},
		},
	}
}

func (s *BatchService) validate(req *models.BatchRequest) (func(ctx context.Context, id string) error, error) {
	target, ok := s.targets[req.Entity]
	if !ok {
		return nil, apperr.Invalid("неизвестная сущность %q", req.Entity)
	}
	req.IDs = uniqueIDs(req.IDs)
	if len(req.IDs) == 0 {
		return nil, apperr.Invalid("список ids пуст")
	}
	if len(req.IDs) > models.MaxBatchSize {
		return nil, apperr.Invalid("не больше %d id за запрос", models.MaxBatchSize)
	}

	switch req.Action {
	case models.BatchDelete:
		return target.delete, nil
	case models.BatchUpdateStatus:
		if req.Data.Status == nil || !req.Data.Status.Valid() {
			return nil, apperr.Invalid("для UPDATE_STATUS нужен корректный data.status")
		}
		st := *req.Data.Status
		return func(ctx context.Context, id string) error { return target.setStatus(ctx, id, st) }, nil
	case models.BatchAssignCategory:
		if target.setCategory == nil {
			return nil, apperr.Invalid("действие %s недоступно для %s", req.Action, req.Entity)
		}
		cat := req.Data.CategoryID
		return func(ctx context.Context, id string) error { return target.setCategory(ctx, id, cat) }, nil
	default:
		return nil, apperr.Invalid("неизвестное действие %q", req.Action)
	}
}

// Execute выполняет пакет в одной транзакции. При первой ошибке транзакция
// откатывается, результат возвращается вместе с ошибкой: уже обработанные
// элементы помечены RolledBack, оставшиеся Skipped.
func (s *BatchService) Execute(ctx context.Context, req models.BatchRequest) (*models.BatchResult, error) {
	log := logger.WithCtx(ctx)

	op, err := s.validate(&req)
	if err != nil {
		log.Warn("batch: некорректный запрос", zap.Error(err))
		return nil, err
	}
	log.Info("batch: старт",
		zap.String("action", string(req.Action)),
		zap.String("entity", string(req.Entity)),
		zap.Int("count", len(req.IDs)),
	)

	res := &models.BatchResult{
		Action: req.Action,
		Entity: req.Entity,
		Items:  make([]models.BatchItemResult, len(req.IDs)),
	}
	for i, id := range req.IDs {
		res.Items[i] = models.BatchItemResult{ID: id}
	}

	failed := -1
	txErr := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for i, id := range req.IDs {
			if err := op(ctx, id); err != nil {
				failed = i
				return fmt.Errorf("batch %s %s: %w", req.Action, id, err)
			}
			res.Items[i].OK = true
			res.Processed++
		}
		return nil
	})
	if txErr == nil {
		log.Info("batch: выполнено", zap.Int("processed", res.Processed))
		return res, nil
	}

	for i := range res.Items {
		switch {
		case i < failed:
			res.Items[i].OK = false
			res.Items[i].RolledBack = true
		case i == failed:
			res.Items[i].Error = itemError(txErr)
		default:
			res.Items[i].Skipped = true
		}
	}
	res.Processed = 0
	log.Warn("batch: откат", zap.Int("failed_index", failed), zap.Error(txErr))
	return res, txErr
}

// itemError — текст ошибки элемента без внутренних подробностей.
func itemError(err error) string {
	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, apperr.ErrNotFound),
		errors.Is(err, apperr.ErrInvalidRequest),
		errors.Is(err, apperr.ErrSlugConflict),
		errors.Is(err, apperr.ErrAlreadyExists):
		return err.Error()
	default:
		return "внутренняя ошибка"
	}
}
