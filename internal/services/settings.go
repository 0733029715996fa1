package services

import (
	"context"
	"errors"
	"strings"

	"formulator/internal/apperr"
	"formulator/internal/logger"
	"formulator/internal/models"
	"formulator/internal/repository"
	"formulator/internal/validation"

	"go.uber.org/zap"
)

// SettingsService управляет строками-одиночками: профилем компании и SEO.
type SettingsService struct {
	repo  repository.SettingsRepo
	tx    repository.Transactor
	audit *AuditService
}

func NewSettingsService(repo repository.SettingsRepo, tx repository.Transactor, audit *AuditService) *SettingsService {
	return &SettingsService{repo: repo, tx: tx, audit: audit}
}

// GetCompany возвращает профиль или nil, если он ещё не заполнен.
func (s *SettingsService) GetCompany(ctx context.Context) (*models.CompanyProfile, error) {
	c, err := s.repo.GetCompany(ctx)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, nil
	}
	return c, err
}

func (s *SettingsService) SaveCompany(ctx context.Context, req models.CompanyProfileInput) (*models.CompanyProfile, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Tagline = trimPtr(req.Tagline)
	req.Description = trimPtr(req.Description)
	req.Email = trimPtr(req.Email)
	req.Phone = trimPtr(req.Phone)
	req.Address = trimPtr(req.Address)
	req.Logo = trimPtr(req.Logo)
	if ve := validation.Struct(&req); ve != nil {
		return nil, ve
	}

	c := &models.CompanyProfile{
		ID:          models.CompanyProfileID,
		Name:        req.Name,
		Tagline:     req.Tagline,
		Description: req.Description,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Logo:        req.Logo,
		SocialMedia: req.SocialMedia,
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		old, err := s.GetCompany(ctx)
		if err != nil {
			return err
		}
		if err := s.repo.UpsertCompany(ctx, c); err != nil {
			return err
		}
		return s.audit.Record(ctx, upsertAction(old != nil), models.EntityCompany, c.ID, old, c)
	})
	if err != nil {
		logger.WithCtx(ctx).Error("settings: ошибка сохранения профиля компании", zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (s *SettingsService) GetSeo(ctx context.Context) (*models.SeoSetting, error) {
	v, err := s.repo.GetSeo(ctx)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, nil
	}
	return v, err
}

func (s *SettingsService) SaveSeo(ctx context.Context, req models.SeoSettingInput) (*models.SeoSetting, error) {
	req.SiteName = strings.TrimSpace(req.SiteName)
	req.SiteDescription = strings.TrimSpace(req.SiteDescription)
	req.SiteKeywords = trimPtr(req.SiteKeywords)
	req.DefaultImage = trimPtr(req.DefaultImage)
	req.Favicon = trimPtr(req.Favicon)
	req.GoogleAnalyticsID = trimPtr(req.GoogleAnalyticsID)
	req.GoogleSearchConsole = trimPtr(req.GoogleSearchConsole)
	req.OgImage = trimPtr(req.OgImage)
	req.TwitterHandle = trimPtr(req.TwitterHandle)
	if ve := validation.Struct(&req); ve != nil {
		return nil, ve
	}

	v := &models.SeoSetting{
		ID:                  models.SeoSettingID,
		SiteName:            req.SiteName,
		SiteDescription:     req.SiteDescription,
		SiteKeywords:        req.SiteKeywords,
		DefaultImage:        req.DefaultImage,
		Favicon:             req.Favicon,
		GoogleAnalyticsID:   req.GoogleAnalyticsID,
		GoogleSearchConsole: req.GoogleSearchConsole,
		OgImage:             req.OgImage,
		TwitterHandle:       req.TwitterHandle,
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		old, err := s.GetSeo(ctx)
		if err != nil {
			return err
		}
		if err := s.repo.UpsertSeo(ctx, v); err != nil {
			return err
		}
		return s.audit.Record(ctx, upsertAction(old != nil), models.EntitySeo, v.ID, old, v)
	})
	if err != nil {
		logger.WithCtx(ctx).Error("settings: ошибка сохранения SEO", zap.Error(err))
		return nil, err
	}
	return v, nil
}

func upsertAction(existed bool) models.AuditAction {
	if existed {
		return models.AuditUpdate
	}
	return models.AuditCreate
}
