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

type YouTubeService interface {
	List(ctx context.Context, f models.YouTubeFilter, page, limit int) (*models.PageResult[models.YouTubeContent], error)
	GetByID(ctx context.Context, id string) (*models.YouTubeContent, error)
	Create(ctx context.Context, req models.YouTubeInput) (*models.YouTubeContent, error)
	Update(ctx context.Context, id string, req models.YouTubeInput) (*models.YouTubeContent, error)
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status models.ContentStatus) error
}

type youtubeService struct {
	repo  repository.YouTubeRepo
	tx    repository.Transactor
	audit *AuditService
	now   clock
}

func NewYouTubeService(repo repository.YouTubeRepo, tx repository.Transactor, audit *AuditService) YouTubeService {
	return &youtubeService{repo: repo, tx: tx, audit: audit, now: systemClock}
}

func (s *youtubeService) List(ctx context.Context, f models.YouTubeFilter, page, limit int) (*models.PageResult[models.YouTubeContent], error) {
	p := models.NewPage(page, limit, models.DefaultPageLimit)
	items, total, err := s.repo.List(ctx, f, p)
	if err != nil {
		logger.WithCtx(ctx).Error("youtube: ошибка получения списка (repo)", zap.Error(err))
		return nil, err
	}
	return models.NewPageResult(items, p, total), nil
}

func (s *youtubeService) GetByID(ctx context.Context, id string) (*models.YouTubeContent, error) {
	return s.repo.GetByID(ctx, id)
}

// normalizeVideo валидирует ввод и извлекает id ролика из ссылки.
func normalizeVideo(req *models.YouTubeInput) (string, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.URL = strings.TrimSpace(req.URL)
	req.Description = trimPtr(req.Description)
	req.Tags = normalizeTags(req.Tags)

	if ve := validation.Struct(req); ve != nil {
		return "", ve
	}
	videoID, ok := utils.ExtractVideoID(req.URL)
	if !ok {
		return "", apperr.Invalid("не удалось извлечь id видео из ссылки %q", req.URL)
	}
	return videoID, nil
}

func (s *youtubeService) Create(ctx context.Context, req models.YouTubeInput) (*models.YouTubeContent, error) {
	log := logger.WithCtx(ctx)

	videoID, err := normalizeVideo(&req)
	if err != nil {
		log.Warn("youtube: некорректный ввод", zap.Error(err))
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StatusPublished
	}
	thumb := utils.YouTubeThumbnail(videoID)

	y := &models.YouTubeContent{
		ID:          newID(),
		Title:       req.Title,
		VideoID:     videoID,
		URL:         req.URL,
		Thumbnail:   &thumb,
		Description: req.Description,
		Tags:        req.Tags,
		Status:      status,
		PublishedAt: models.NextPublishedAt(nil, status, s.now()),
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, y); err != nil {
			return err
		}
		return s.audit.Record(ctx, models.AuditCreate, models.EntityYouTube, y.ID, nil, y)
	})
	if err != nil {
		log.Error("youtube: ошибка создания", zap.Error(err))
		return nil, err
	}

	log.Info("youtube: видео добавлено", zap.String("id", y.ID), zap.String("video_id", videoID))
	return y, nil
}

func (s *youtubeService) Update(ctx context.Context, id string, req models.YouTubeInput) (*models.YouTubeContent, error) {
	videoID, err := normalizeVideo(&req)
	if err != nil {
		return nil, err
	}

	var updated *models.YouTubeContent
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		old, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		status := req.Status
		if status == "" {
			status = old.Status
		}
		thumb := utils.YouTubeThumbnail(videoID)

		y := *old
		y.Title = req.Title
		y.VideoID = videoID
		y.URL = req.URL
		y.Thumbnail = &thumb
		y.Description = req.Description
		y.Tags = req.Tags
		y.Status = status
		y.PublishedAt = models.NextPublishedAt(old.PublishedAt, status, s.now())
		if err := s.repo.Update(ctx, &y); err != nil {
			return err
		}
		updated = &y
		return s.audit.Record(ctx, models.AuditUpdate, models.EntityYouTube, id, old, updated)
	})
	if err != nil {
		logger.WithCtx(ctx).Error("youtube: ошибка обновления", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func (s *youtubeService) Delete(ctx context.Context, id string) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		old, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
		return s.audit.Record(ctx, models.AuditDelete, models.EntityYouTube, id, old, nil)
	})
}

func (s *youtubeService) SetStatus(ctx context.Context, id string, status models.ContentStatus) error {
	if !status.Valid() {
		return apperr.Invalid("недопустимый статус %q", status)
	}
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		old, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		y := *old
		y.Status = status
		y.PublishedAt = models.NextPublishedAt(old.PublishedAt, status, s.now())
		if err := s.repo.Update(ctx, &y); err != nil {
			return err
		}
		return s.audit.Record(ctx, models.AuditUpdate, models.EntityYouTube, id, old, &y)
	})
}
