package services

import (
	"context"
	"strings"

	"formulator/internal/apperr"
	"formulator/internal/logger"
	"formulator/internal/models"
	"formulator/internal/repository"
	"formulator/internal/validation"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

type ProjectService interface {
	List(ctx context.Context, f models.ProjectFilter, page, limit int) (*models.PageResult[models.Project], error)
	GetByID(ctx context.Context, id string) (*models.Project, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Project, error)
	Create(ctx context.Context, req models.ProjectInput) (*models.Project, error)
	Update(ctx context.Context, id string, req models.ProjectInput) (*models.Project, error)
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status models.ContentStatus) error
	SetCategory(ctx context.Context, id string, categoryID *string) error
}

type projectService struct {
	repo   repository.ProjectRepo
	tx     repository.Transactor
	slugs  *SlugService
	audit  *AuditService
	policy *bluemonday.Policy
	now    clock
}

func NewProjectService(repo repository.ProjectRepo, tx repository.Transactor, slugs *SlugService, audit *AuditService) ProjectService {
	return &projectService{
		repo:   repo,
		tx:     tx,
		slugs:  slugs,
		audit:  audit,
		policy: newContentPolicy(),
		now:    systemClock,
	}
}

func (s *projectService) List(ctx context.Context, f models.ProjectFilter, page, limit int) (*models.PageResult[models.Project], error) {
	p := models.NewPage(page, limit, models.DefaultPageLimit)
	items, total, err := s.repo.List(ctx, f, p)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка получения списка проектов (repo)", zap.Error(err))
		return nil, err
	}
	return models.NewPageResult(items, p, total), nil
}

func (s *projectService) GetByID(ctx context.Context, id string) (*models.Project, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *projectService) GetPublishedBySlug(ctx context.Context, slug string) (*models.Project, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if p.Status != models.StatusPublished {
		return nil, apperr.NotFound("проект")
	}
	views, err := s.repo.IncrementViews(ctx, p.ID)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка увеличения счётчика просмотров проекта (repo)", zap.String("id", p.ID), zap.Error(err))
		return nil, err
	}
	p.ViewCount = views
	return p, nil
}

func normalizeProject(req *models.ProjectInput) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.ShortDescription = trimPtr(req.ShortDescription)
	req.FeaturedImage = trimPtr(req.FeaturedImage)
	req.CategoryID = trimPtr(req.CategoryID)
	req.MetaTitle = trimPtr(req.MetaTitle)
	req.MetaDescription = trimPtr(req.MetaDescription)
	req.CanonicalURL = trimPtr(req.CanonicalURL)

	gallery := make([]string, 0, len(req.Gallery))
	for _, g := range req.Gallery {
		if g = strings.TrimSpace(g); g != "" {
			gallery = append(gallery, g)
		}
	}
	req.Gallery = gallery

	return validation.Struct(req).OrNil()
}

func (s *projectService) Create(ctx context.Context, req models.ProjectInput) (*models.Project, error) {
	log := logger.WithCtx(ctx)
	log.Info("Создание проекта", zap.String("title", strings.TrimSpace(req.Title)))

	author, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if err := normalizeProject(&req); err != nil {
		log.Warn("Валидация проекта не пройдена", zap.Error(err))
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StatusDraft
	}

	p := &models.Project{
		ID:               newID(),
		Title:            req.Title,
		Description:      s.policy.Sanitize(req.Description),
		ShortDescription: req.ShortDescription,
		FeaturedImage:    req.FeaturedImage,
		Gallery:          req.Gallery,
		Status:           status,
		PublishedAt:      models.NextPublishedAt(nil, status, s.now()),
		MetaTitle:        req.MetaTitle,
		MetaDescription:  req.MetaDescription,
		CanonicalURL:     req.CanonicalURL,
		AuthorID:         author.UserID,
		CategoryID:       req.CategoryID,
	}

	var created *models.Project
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		slug, err := s.slugs.EnsureUnique(ctx, models.EntityProject, s.slugs.Slugify(p.Title), "")
		if err != nil {
			return err
		}
		p.Slug = slug
		if err := s.repo.Create(ctx, p); err != nil {
			return err
		}
		if created, err = s.repo.GetByID(ctx, p.ID); err != nil {
			return err
		}
		return s.audit.Record(ctx, models.AuditCreate, models.EntityProject, p.ID, nil, created)
	})
	if err != nil {
		log.Error("Ошибка создания проекта", zap.Error(err))
		return nil, err
	}

	log.Info("Проект создан", zap.String("id", created.ID), zap.String("slug", created.Slug))
	return created, nil
}

func (s *projectService) Update(ctx context.Context, id string, req models.ProjectInput) (*models.Project, error) {
	log := logger.WithCtx(ctx)
	log.Info("Обновление проекта", zap.String("id", id))

	if err := normalizeProject(&req); err != nil {
		log.Warn("Валидация проекта не пройдена", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	var updated *models.Project
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		old, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		p := *old
		if req.Title != old.Title {
			slug, err := s.slugs.EnsureUnique(ctx, models.EntityProject, s.slugs.Slugify(req.Title), id)
			if err != nil {
				return err
			}
			p.Slug = slug
		}

		status := req.Status
		if status == "" {
			status = old.Status
		}

		p.Title = req.Title
		p.Description = s.policy.Sanitize(req.Description)
		p.ShortDescription = req.ShortDescription
		p.FeaturedImage = req.FeaturedImage
		p.Gallery = req.Gallery
		p.Status = status
		p.PublishedAt = models.NextPublishedAt(old.PublishedAt, status, s.now())
		p.MetaTitle = req.MetaTitle
		p.MetaDescription = req.MetaDescription
		p.CanonicalURL = req.CanonicalURL
		p.CategoryID = req.CategoryID

		if err := s.repo.Update(ctx, &p); err != nil {
			return err
		}
		if updated, err = s.repo.GetByID(ctx, id); err != nil {
			return err
		}
		return s.audit.Record(ctx, models.AuditUpdate, models.EntityProject, id, old, updated)
	})
	if err != nil {
		log.Error("Ошибка обновления проекта", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	log := logger.WithCtx(ctx)
	log.Info("Удаление проекта", zap.String("id", id))

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		old, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
		return s.audit.Record(ctx, models.AuditDelete, models.EntityProject, id, old, nil)
	})
	if err != nil {
		log.Error("Ошибка удаления проекта", zap.String("id", id), zap.Error(err))
	}
	return err
}

func (s *projectService) SetStatus(ctx context.Context, id string, status models.ContentStatus) error {
	if !status.Valid() {
		return apperr.Invalid("недопустимый статус %q", status)
	}
	return s.patch(ctx, id, func(p *models.Project) {
		p.Status = status
		p.PublishedAt = models.NextPublishedAt(p.PublishedAt, status, s.now())
	})
}

func (s *projectService) SetCategory(ctx context.Context, id string, categoryID *string) error {
	return s.patch(ctx, id, func(p *models.Project) {
		p.CategoryID = trimPtr(categoryID)
	})
}

func (s *projectService) patch(ctx context.Context, id string, mutate func(p *models.Project)) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		old, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		p := *old
		mutate(&p)
		if err := s.repo.Update(ctx, &p); err != nil {
			return err
		}
		updated, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return s.audit.Record(ctx, models.AuditUpdate, models.EntityProject, id, old, updated)
	})
}
