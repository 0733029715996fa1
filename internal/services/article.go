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

type ArticleService interface {
	List(ctx context.Context, f models.ArticleFilter, page, limit int) (*models.PageResult[models.Article], error)
	GetByID(ctx context.Context, id string) (*models.Article, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Article, error)
	PreviewHTML(rawHTML string) string
	Create(ctx context.Context, req models.ArticleInput) (*models.Article, error)
	Update(ctx context.Context, id string, req models.ArticleInput) (*models.Article, error)
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status models.ContentStatus) error
	SetCategory(ctx context.Context, id string, categoryID *string) error
}

type articleService struct {
	repo   repository.ArticleRepo
	tags   repository.TagRepo
	tx     repository.Transactor
	slugs  *SlugService
	audit  *AuditService
	policy *bluemonday.Policy
	now    clock
}

func NewArticleService(repo repository.ArticleRepo, tags repository.TagRepo, tx repository.Transactor,
	slugs *SlugService, audit *AuditService) ArticleService {
	return &articleService{
		repo:   repo,
		tags:   tags,
		tx:     tx,
		slugs:  slugs,
		audit:  audit,
		policy: newContentPolicy(),
		now:    systemClock,
	}
}

func (s *articleService) PreviewHTML(rawHTML string) string {
	// безопасно логируем только длины
	log := logger.WithCtx(context.Background())
	clean := s.policy.Sanitize(rawHTML)
	log.Debug("Предпросмотр HTML (sanitize)",
		zap.Int("raw_len", len(rawHTML)),
		zap.Int("clean_len", len(clean)),
	)
	return clean
}

func (s *articleService) List(ctx context.Context, f models.ArticleFilter, page, limit int) (*models.PageResult[models.Article], error) {
	log := logger.WithCtx(ctx)
	p := models.NewPage(page, limit, models.DefaultPageLimit)
	log.Debug("Получение списка статей",
		zap.Int("page", p.Page),
		zap.Int("limit", p.Limit),
		zap.String("status", string(f.Status)),
		zap.String("category_id", f.CategoryID),
	)

	items, total, err := s.repo.List(ctx, f, p)
	if err != nil {
		log.Error("Ошибка получения списка статей (repo)", zap.Error(err))
		return nil, err
	}

	log.Debug("Список статей получен", zap.Int("count", len(items)), zap.Int64("total", total))
	return models.NewPageResult(items, p, total), nil
}

func (s *articleService) GetByID(ctx context.Context, id string) (*models.Article, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.WithCtx(ctx).Warn("Статья не найдена (repo)", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return a, nil
}

// GetPublishedBySlug отдаёт опубликованную статью и атомарно увеличивает счётчик просмотров.
func (s *articleService) GetPublishedBySlug(ctx context.Context, slug string) (*models.Article, error) {
	log := logger.WithCtx(ctx)

	a, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		log.Debug("Статья по slug не найдена", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	if a.Status != models.StatusPublished {
		return nil, apperr.NotFound("статья")
	}

	views, err := s.repo.IncrementViews(ctx, a.ID)
	if err != nil {
		log.Error("Ошибка увеличения счётчика просмотров (repo)", zap.String("id", a.ID), zap.Error(err))
		return nil, err
	}
	a.ViewCount = views
	return a, nil
}

// normalize обрезает пробелы и прогоняет правила валидации. Все нарушения
// собираются в один ValidationError.
func (s *articleService) normalize(ctx context.Context, req *models.ArticleInput) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	req.Excerpt = trimPtr(req.Excerpt)
	req.FeaturedImage = trimPtr(req.FeaturedImage)
	req.CategoryID = trimPtr(req.CategoryID)
	req.MetaTitle = trimPtr(req.MetaTitle)
	req.MetaDescription = trimPtr(req.MetaDescription)
	req.CanonicalURL = trimPtr(req.CanonicalURL)
	req.RobotsMeta = trimPtr(req.RobotsMeta)
	if req.TagIDs != nil {
		req.TagIDs = uniqueIDs(req.TagIDs)
	}

	ve := &apperr.ValidationError{}
	ve.Merge(validation.Struct(req))

	if len(req.TagIDs) > 0 {
		n, err := s.tags.CountExisting(ctx, req.TagIDs)
		if err != nil {
			return err
		}
		if n != len(req.TagIDs) {
			ve.Add("tagIds", "tagIds: один или несколько тегов не найдены")
		}
	}
	return ve.OrNil()
}

func (s *articleService) Create(ctx context.Context, req models.ArticleInput) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Info("Создание статьи",
		zap.String("title", strings.TrimSpace(req.Title)),
		zap.String("status", string(req.Status)),
		zap.Int("tags_count", len(req.TagIDs)),
	)

	author, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.normalize(ctx, &req); err != nil {
		log.Warn("Валидация статьи не пройдена", zap.Error(err))
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StatusDraft
	}

	a := &models.Article{
		ID:              newID(),
		Title:           req.Title,
		Content:         s.policy.Sanitize(req.Content),
		Excerpt:         req.Excerpt,
		FeaturedImage:   req.FeaturedImage,
		Status:          status,
		PublishedAt:     models.NextPublishedAt(nil, status, s.now()),
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		CanonicalURL:    req.CanonicalURL,
		RobotsMeta:      req.RobotsMeta,
		AuthorID:        author.UserID,
		CategoryID:      req.CategoryID,
	}

	var created *models.Article
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		slug, err := s.slugs.EnsureUnique(ctx, models.EntityArticle, s.slugs.Slugify(a.Title), "")
		if err != nil {
			return err
		}
		a.Slug = slug

		if err := s.repo.Create(ctx, a); err != nil {
			return err
		}
		if len(req.TagIDs) > 0 {
			if err := s.repo.ReplaceTags(ctx, a.ID, req.TagIDs); err != nil {
				return err
			}
		}
		if created, err = s.repo.GetByID(ctx, a.ID); err != nil {
			return err
		}
		return s.audit.Record(ctx, models.AuditCreate, models.EntityArticle, a.ID, nil, created)
	})
	if err != nil {
		log.Error("Ошибка создания статьи", zap.Error(err))
		return nil, err
	}

	log.Info("Статья создана",
		zap.String("id", created.ID),
		zap.String("slug", created.Slug),
		zap.String("status", string(created.Status)),
	)
	return created, nil
}

func (s *articleService) Update(ctx context.Context, id string, req models.ArticleInput) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Info("Обновление статьи", zap.String("id", id), zap.String("title", strings.TrimSpace(req.Title)))

	if err := s.normalize(ctx, &req); err != nil {
		log.Warn("Валидация статьи не пройдена", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	var updated *models.Article
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		old, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		a := *old
		if req.Title != old.Title {
			slug, err := s.slugs.EnsureUnique(ctx, models.EntityArticle, s.slugs.Slugify(req.Title), id)
			if err != nil {
				return err
			}
			a.Slug = slug
		}

		status := req.Status
		if status == "" {
			status = old.Status
		}

		a.Title = req.Title
		a.Content = s.policy.Sanitize(req.Content)
		a.Excerpt = req.Excerpt
		a.FeaturedImage = req.FeaturedImage
		a.Status = status
		a.PublishedAt = models.NextPublishedAt(old.PublishedAt, status, s.now())
		a.MetaTitle = req.MetaTitle
		a.MetaDescription = req.MetaDescription
		a.CanonicalURL = req.CanonicalURL
		a.RobotsMeta = req.RobotsMeta
		a.CategoryID = req.CategoryID

		if err := s.repo.Update(ctx, &a); err != nil {
			return err
		}
		if req.TagIDs != nil {
			if err := s.repo.ReplaceTags(ctx, id, req.TagIDs); err != nil {
				return err
			}
		}
		if updated, err = s.repo.GetByID(ctx, id); err != nil {
			return err
		}
		return s.audit.Record(ctx, models.AuditUpdate, models.EntityArticle, id, old, updated)
	})
	if err != nil {
		log.Error("Ошибка обновления статьи", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	log.Info("Статья обновлена", zap.String("id", id), zap.String("status", string(updated.Status)))
	return updated, nil
}

func (s *articleService) Delete(ctx context.Context, id string) error {
	log := logger.WithCtx(ctx)
	log.Info("Удаление статьи", zap.String("id", id))

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		old, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
		return s.audit.Record(ctx, models.AuditDelete, models.EntityArticle, id, old, nil)
	})
	if err != nil {
		log.Error("Ошибка удаления статьи", zap.String("id", id), zap.Error(err))
		return err
	}

	log.Info("Статья удалена", zap.String("id", id))
	return nil
}

// SetStatus меняет только статус; publishedAt выводится так же, как при Update.
func (s *articleService) SetStatus(ctx context.Context, id string, status models.ContentStatus) error {
	if !status.Valid() {
		return apperr.Invalid("недопустимый статус %q", status)
	}
	return s.patch(ctx, id, func(a *models.Article) {
		a.Status = status
		a.PublishedAt = models.NextPublishedAt(a.PublishedAt, status, s.now())
	})
}

// SetCategory переносит статью в категорию; nil снимает категорию.
func (s *articleService) SetCategory(ctx context.Context, id string, categoryID *string) error {
	return s.patch(ctx, id, func(a *models.Article) {
		a.CategoryID = trimPtr(categoryID)
	})
}

func (s *articleService) patch(ctx context.Context, id string, mutate func(a *models.Article)) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		old, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		a := *old
		mutate(&a)
		if err := s.repo.Update(ctx, &a); err != nil {
			return err
		}
		updated, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return s.audit.Record(ctx, models.AuditUpdate, models.EntityArticle, id, old, updated)
	})
}
