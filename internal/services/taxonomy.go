package services

import (
	"context"
	"strings"

	"formulator/internal/apperr"
	"formulator/internal/logger"
	"formulator/internal/models"
	"formulator/internal/repository"
	"formulator/internal/utils"
	"formulator/internal/validation"

	"go.uber.org/zap"
)

type TaxonomyService struct {
	categories repository.CategoryRepo
	tags       repository.TagRepo
	tx         repository.Transactor
	audit      *AuditService
}

func NewTaxonomyService(categories repository.CategoryRepo, tags repository.TagRepo, tx repository.Transactor, audit *AuditService) *TaxonomyService {
	return &TaxonomyService{categories: categories, tags: tags, tx: tx, audit: audit}
}

// ----- Categories -----

func (s *TaxonomyService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func (s *TaxonomyService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func normalizeCategory(req *models.CategoryInput) (string, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = trimPtr(req.Description)
	req.Color = strings.TrimSpace(req.Color)

	ve := validation.Struct(req)
	slug := utils.Slugify(req.Name)
	if req.Name != "" && slug == "" {
		if ve == nil {
			ve = &apperr.ValidationError{}
		}
		ve.Add("name", "name: название должно содержать латинские буквы или цифры")
	}
	if req.Color == "" {
		req.Color = models.DefaultCategoryColor
	}
	return slug, ve.OrNil()
}

func (s *TaxonomyService) CreateCategory(ctx context.Context, req models.CategoryInput) (*models.Category, error) {
	log := logger.WithCtx(ctx)
	log.Info("taxonomy: создание категории", zap.String("name", req.Name))

	slug, err := normalizeCategory(&req)
	if err != nil {
		log.Warn("taxonomy: валидация категории не пройдена", zap.Error(err))
		return nil, err
	}

	c := &models.Category{
		ID:          newID(),
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Color:       req.Color,
	}

	var created *models.Category
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		taken, err := s.categories.NameOrSlugTaken(ctx, c.Name, c.Slug, "")
		if err != nil {
			return err
		}
		if taken {
			return apperr.Exists("категория с таким названием уже существует")
		}
		if err := s.categories.Create(ctx, c); err != nil {
			return err
		}
		if created, err = s.categories.GetByID(ctx, c.ID); err != nil {
			return err
		}
		return s.audit.Record(ctx, models.AuditCreate, models.EntityCategory, c.ID, nil, created)
	})
	if err != nil {
		log.Error("taxonomy: ошибка создания категории", zap.Error(err))
		return nil, err
	}

	log.Info("taxonomy: категория создана", zap.String("id", created.ID), zap.String("slug", created.Slug))
	return created, nil
}

func (s *TaxonomyService) UpdateCategory(ctx context.Context, id string, req models.CategoryInput) (*models.Category, error) {
	log := logger.WithCtx(ctx)

	slug, err := normalizeCategory(&req)
	if err != nil {
		return nil, err
	}

	var updated *models.Category
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		old, err := s.categories.GetByID(ctx, id)
		if err != nil {
			return err
		}
		taken, err := s.categories.NameOrSlugTaken(ctx, req.Name, slug, id)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Exists("категория с таким названием уже существует")
		}

		c := *old
		c.Name = req.Name
		c.Slug = slug
		c.Description = req.Description
		c.Color = req.Color
		if err := s.categories.Update(ctx, &c); err != nil {
			return err
		}
		if updated, err = s.categories.GetByID(ctx, id); err != nil {
			return err
		}
		return s.audit.Record(ctx, models.AuditUpdate, models.EntityCategory, id, old, updated)
	})
	if err != nil {
		log.Error("taxonomy: ошибка обновления категории", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func (s *TaxonomyService) DeleteCategory(ctx context.Context, id string) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		old, err := s.categories.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.categories.Delete(ctx, id); err != nil {
			return err
		}
		logger.WithCtx(ctx).Info("taxonomy: категория удалена", zap.String("id", id))
		return s.audit.Record(ctx, models.AuditDelete, models.EntityCategory, id, old, nil)
	})
}

// ----- Tags -----

func (s *TaxonomyService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tags.List(ctx)
}

func (s *TaxonomyService) CreateTag(ctx context.Context, req models.TagInput) (*models.Tag, error) {
	log := logger.WithCtx(ctx)

	req.Name = strings.TrimSpace(req.Name)
	if ve := validation.Struct(&req); ve != nil {
		return nil, ve
	}
	slug := utils.Slugify(req.Name)
	if slug == "" {
		ve := &apperr.ValidationError{}
		ve.Add("name", "name: название должно содержать латинские буквы или цифры")
		return nil, ve
	}

	t := &models.Tag{ID: newID(), Name: req.Name, Slug: slug}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		taken, err := s.tags.NameOrSlugTaken(ctx, t.Name, t.Slug)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Exists("тег %q уже существует", t.Name)
		}
		if err := s.tags.Create(ctx, t); err != nil {
			return err
		}
		return s.audit.Record(ctx, models.AuditCreate, models.EntityTag, t.ID, nil, t)
	})
	if err != nil {
		log.Warn("taxonomy: тег не создан", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}
	return t, nil
}

func (s *TaxonomyService) DeleteTag(ctx context.Context, id string) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		old, err := s.tags.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.tags.Delete(ctx, id); err != nil {
			return err
		}
		return s.audit.Record(ctx, models.AuditDelete, models.EntityTag, id, old, nil)
	})
}
