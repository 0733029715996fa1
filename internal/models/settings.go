package models

import (
	"encoding/json"
	"time"
)

// Фиксированные id строк-одиночек.
const (
	CompanyProfileID = "company_profile"
	SeoSettingID     = "global_seo"
)

// SocialLinks — соцсети компании (instagram -> url). Хранится в JSONB,
// (де)сериализуется только здесь.
type SocialLinks map[string]string

func (s SocialLinks) Marshal() ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func UnmarshalSocialLinks(raw []byte) (SocialLinks, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out SocialLinks
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type CompanyProfile struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Tagline     *string     `json:"tagline,omitempty"`
	Description *string     `json:"description,omitempty"`
	Email       *string     `json:"email,omitempty"`
	Phone       *string     `json:"phone,omitempty"`
	Address     *string     `json:"address,omitempty"`
	Logo        *string     `json:"logo,omitempty"`
	SocialMedia SocialLinks `json:"socialMedia,omitempty"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type CompanyProfileInput struct {
	Name        string      `json:"name"        validate:"required,min=2,max=255"`
	Tagline     *string     `json:"tagline"     validate:"omitempty,max=255"`
	Description *string     `json:"description" validate:"omitempty,max=5000"`
	Email       *string     `json:"email"       validate:"omitempty,email"`
	Phone       *string     `json:"phone"       validate:"omitempty,max=50"`
	Address     *string     `json:"address"     validate:"omitempty,max=500"`
	Logo        *string     `json:"logo"        validate:"omitempty,max=500"`
	SocialMedia SocialLinks `json:"socialMedia" validate:"omitempty,dive,keys,required,max=50,endkeys,url"`
}

type SeoSetting struct {
	ID                  string    `json:"id"`
	SiteName            string    `json:"siteName"`
	SiteDescription     string    `json:"siteDescription"`
	SiteKeywords        *string   `json:"siteKeywords,omitempty"`
	DefaultImage        *string   `json:"defaultImage,omitempty"`
	Favicon             *string   `json:"favicon,omitempty"`
	GoogleAnalyticsID   *string   `json:"googleAnalyticsId,omitempty"`
	GoogleSearchConsole *string   `json:"googleSearchConsole,omitempty"`
	OgImage             *string   `json:"ogImage,omitempty"`
	TwitterHandle       *string   `json:"twitterHandle,omitempty"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type SeoSettingInput struct {
	SiteName            string  `json:"siteName"            validate:"required,max=255"`
	SiteDescription     string  `json:"siteDescription"     validate:"max=500"`
	SiteKeywords        *string `json:"siteKeywords"        validate:"omitempty,max=500"`
	DefaultImage        *string `json:"defaultImage"        validate:"omitempty,max=500"`
	Favicon             *string `json:"favicon"             validate:"omitempty,max=500"`
	GoogleAnalyticsID   *string `json:"googleAnalyticsId"   validate:"omitempty,max=50"`
	GoogleSearchConsole *string `json:"googleSearchConsole" validate:"omitempty,max=255"`
	OgImage             *string `json:"ogImage"             validate:"omitempty,max=500"`
	TwitterHandle       *string `json:"twitterHandle"       validate:"omitempty,max=50"`
}
