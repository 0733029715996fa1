package services

import (
	"context"
	"strings"

	"formulator/internal/logger"
	"formulator/internal/models"
	"formulator/internal/repository"
	"formulator/internal/storage"
	"formulator/internal/validation"

	"go.uber.org/zap"
)

type MediaService struct {
	repo  repository.MediaRepo
	store storage.Storage
	tx    repository.Transactor
	audit *AuditService
}

func NewMediaService(repo repository.MediaRepo, store storage.Storage, tx repository.Transactor, audit *AuditService) *MediaService {
	return &MediaService{repo: repo, store: store, tx: tx, audit: audit}
}

func (s *MediaService) List(ctx context.Context, search string, page, limit int) (*models.PageResult[models.Media], error) {
	p := models.NewPage(page, limit, models.DefaultPageLimit)
	items, total, err := s.repo.List(ctx, strings.TrimSpace(search), p)
	if err != nil {
		logger.WithCtx(ctx).Error("media: ошибка получения списка (repo)", zap.Error(err))
		return nil, err
	}
	return models.NewPageResult(items, p, total), nil
}

func (s *MediaService) Get(ctx context.Context, id string) (*models.Media, error) {
	return s.repo.GetByID(ctx, id)
}

// Create регистрирует уже загруженный файл; загрузчиком считается текущий пользователь.
func (s *MediaService) Create(ctx context.Context, req models.MediaInput) (*models.Media, error) {
	log := logger.WithCtx(ctx)

	who, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	req.Filename = strings.TrimSpace(req.Filename)
	req.URL = strings.TrimSpace(req.URL)
	req.MimeType = trimPtr(req.MimeType)
	req.AltText = trimPtr(req.AltText)
	req.Caption = trimPtr(req.Caption)
	if ve := validation.Struct(&req); ve != nil {
		return nil, ve
	}

	uploader := who.UserID
	m := &models.Media{
		ID:         newID(),
		Filename:   req.Filename,
		URL:        req.URL,
		MimeType:   req.MimeType,
		Size:       req.Size,
		AltText:    req.AltText,
		Caption:    req.Caption,
		UploadedBy: &uploader,
	}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, m); err != nil {
			return err
		}
		return s.audit.Record(ctx, models.AuditCreate, models.EntityMedia, m.ID, nil, m)
	})
	if err != nil {
		log.Error("media: ошибка регистрации файла", zap.String("filename", req.Filename), zap.Error(err))
		return nil, err
	}
	log.Info("media: файл зарегистрирован", zap.String("id", m.ID), zap.Int64("size", m.Size))
	return m, nil
}

func (s *MediaService) Update(ctx context.Context, id string, req models.MediaUpdate) (*models.Media, error) {
	req.AltText = trimPtr(req.AltText)
	req.Caption = trimPtr(req.Caption)
	if ve := validation.Struct(&req); ve != nil {
		return nil, ve
	}

	var updated *models.Media
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		old, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		m := *old
		m.AltText = req.AltText
		m.Caption = req.Caption
		if err := s.repo.Update(ctx, &m); err != nil {
			return err
		}
		updated = &m
		return s.audit.Record(ctx, models.AuditUpdate, models.EntityMedia, id, old, updated)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete удаляет запись и пытается убрать файл из хранилища. Ошибка
// хранилища только логируется.
func (s *MediaService) Delete(ctx context.Context, id string) error {
	log := logger.WithCtx(ctx)
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		old, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if s.store != nil {
			if err := s.store.Remove(ctx, old.URL); err != nil {
				log.Warn("media: не удалось удалить файл из хранилища",
					zap.String("storage", s.store.Name()), zap.String("url", old.URL), zap.Error(err))
			}
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
		log.Info("media: файл удалён", zap.String("id", id))
		return s.audit.Record(ctx, models.AuditDelete, models.EntityMedia, id, old, nil)
	})
}
