package repository

import (
	"context"

	"formulator/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsRepo — строки-одиночки профиля компании и SEO.
type SettingsRepo interface {
	GetCompany(ctx context.Context) (*models.CompanyProfile, error)
	UpsertCompany(ctx context.Context, c *models.CompanyProfile) error
	GetSeo(ctx context.Context) (*models.SeoSetting, error)
	UpsertSeo(ctx context.Context, s *models.SeoSetting) error
}

type settingsRepo struct{ db *pgxpool.Pool }

func NewSettingsRepo(db *pgxpool.Pool) SettingsRepo { return &settingsRepo{db: db} }

func (r *settingsRepo) GetCompany(ctx context.Context) (*models.CompanyProfile, error) {
	const q = `
		SELECT id, name, tagline, description, email, phone, address, logo, social_media, updated_at
		FROM company_profiles WHERE id = $1
	`
	var c models.CompanyProfile
	var social []byte
	err := conn(ctx, r.db).QueryRow(ctx, q, models.CompanyProfileID).Scan(
		&c.ID, &c.Name, &c.Tagline, &c.Description, &c.Email, &c.Phone, &c.Address, &c.Logo, &social, &c.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err, "профиль компании")
	}
	if c.SocialMedia, err = models.UnmarshalSocialLinks(social); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *settingsRepo) UpsertCompany(ctx context.Context, c *models.CompanyProfile) error {
	social, err := c.SocialMedia.Marshal()
	if err != nil {
		return err
	}
	c.ID = models.CompanyProfileID
	const q = `
		INSERT INTO company_profiles (id, name, tagline, description, email, phone, address, logo, social_media)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE
		SET name=EXCLUDED.name, tagline=EXCLUDED.tagline, description=EXCLUDED.description,
		    email=EXCLUDED.email, phone=EXCLUDED.phone, address=EXCLUDED.address, logo=EXCLUDED.logo,
		    social_media=EXCLUDED.social_media, updated_at=NOW()
		RETURNING updated_at
	`
	err = conn(ctx, r.db).QueryRow(ctx, q,
		c.ID, c.Name, c.Tagline, c.Description, c.Email, c.Phone, c.Address, c.Logo, social,
	).Scan(&c.UpdatedAt)
	return mapErr(err, "профиль компании")
}

func (r *settingsRepo) GetSeo(ctx context.Context) (*models.SeoSetting, error) {
	const q = `
		SELECT id, site_name, site_description, site_keywords, default_image, favicon,
		       google_analytics_id, google_search_console, og_image, twitter_handle, updated_at
		FROM seo_settings WHERE id = $1
	`
	var s models.SeoSetting
	err := conn(ctx, r.db).QueryRow(ctx, q, models.SeoSettingID).Scan(
		&s.ID, &s.SiteName, &s.SiteDescription, &s.SiteKeywords, &s.DefaultImage, &s.Favicon,
		&s.GoogleAnalyticsID, &s.GoogleSearchConsole, &s.OgImage, &s.TwitterHandle, &s.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err, "SEO-настройки")
	}
	return &s, nil
}

func (r *settingsRepo) UpsertSeo(ctx context.Context, s *models.SeoSetting) error {
	s.ID = models.SeoSettingID
	const q = `
		INSERT INTO seo_settings (id, site_name, site_description, site_keywords, default_image, favicon,
		                          google_analytics_id, google_search_console, og_image, twitter_handle)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE
		SET site_name=EXCLUDED.site_name, site_description=EXCLUDED.site_description,
		    site_keywords=EXCLUDED.site_keywords, default_image=EXCLUDED.default_image,
		    favicon=EXCLUDED.favicon, google_analytics_id=EXCLUDED.google_analytics_id,
		    google_search_console=EXCLUDED.google_search_console, og_image=EXCLUDED.og_image,
		    twitter_handle=EXCLUDED.twitter_handle, updated_at=NOW()
		RETURNING updated_at
	`
	err := conn(ctx, r.db).QueryRow(ctx, q,
		s.ID, s.SiteName, s.SiteDescription, s.SiteKeywords, s.DefaultImage, s.Favicon,
		s.GoogleAnalyticsID, s.GoogleSearchConsole, s.OgImage, s.TwitterHandle,
	).Scan(&s.UpdatedAt)
	return mapErr(err, "SEO-настройки")
}
