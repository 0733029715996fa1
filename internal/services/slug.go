package services

import (
	"context"

	"formulator/internal/apperr"
	"formulator/internal/logger"
	"formulator/internal/models"
	"formulator/internal/utils"

	"go.uber.org/zap"
)

// SlugChecker — репозиторий, умеющий проверять занятость slug.
type SlugChecker interface {
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
}

// SlugService строит slug из заголовка и проверяет уникальность.
// При коллизии возвращается ErrSlugConflict: суффиксы не подбираются.
type SlugService struct {
	checkers map[string]SlugChecker
}

func NewSlugService(articles, projects SlugChecker) *SlugService {
	return &SlugService{checkers: map[string]SlugChecker{
		models.EntityArticle: articles,
		models.EntityProject: projects,
	}}
}

func (s *SlugService) Slugify(title string) string {
	return utils.Slugify(title)
}

// EnsureUnique проверяет, что slug свободен для сущности entity
// (строка excludeID при обновлении не считается).
func (s *SlugService) EnsureUnique(ctx context.Context, entity, candidate, excludeID string) (string, error) {
	log := logger.WithCtx(ctx)

	if candidate == "" {
		ve := &apperr.ValidationError{}
		ve.Add("title", "title: заголовок должен содержать латинские буквы или цифры")
		return "", ve
	}
	checker, ok := s.checkers[entity]
	if !ok {
		return "", apperr.Invalid("slug не поддерживается для %s", entity)
	}

	exists, err := checker.SlugExists(ctx, candidate, excludeID)
	if err != nil {
		log.Error("Ошибка проверки slug (repo)", zap.String("entity", entity), zap.Error(err))
		return "", err
	}
	if exists {
		log.Warn("Slug уже занят", zap.String("entity", entity), zap.String("slug", candidate))
		return "", apperr.SlugTaken(candidate)
	}
	return candidate, nil
}
