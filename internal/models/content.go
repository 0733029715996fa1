package models

import "time"

// ContentStatus — стадия жизненного цикла публикуемого контента.
type ContentStatus string

const (
	StatusDraft     ContentStatus = "DRAFT"
	StatusInReview  ContentStatus = "IN_REVIEW"
	StatusPublished ContentStatus = "PUBLISHED"
)

func (s ContentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusInReview, StatusPublished:
		return true
	}
	return false
}

// NextPublishedAt вычисляет publishedAt после смены статуса.
// Дата ставится один раз — при первом переходе в PUBLISHED — и дальше не
// меняется и не сбрасывается, даже если статус снова стал черновиком.
func NextPublishedAt(prev *time.Time, status ContentStatus, now time.Time) *time.Time {
	if prev != nil {
		return prev
	}
	if status == StatusPublished {
		t := now
		return &t
	}
	return nil
}

// Имена сущностей для журнала аудита.
const (
	EntityArticle  = "Article"
	EntityProject  = "Project"
	EntityCategory = "Category"
	EntityTag      = "Tag"
	EntityYouTube  = "YouTubeContent"
	EntityMedia    = "Media"
	EntityCompany  = "CompanyProfile"
	EntitySeo      = "SeoSetting"
	EntityUser     = "User"
)

// UserRef — автор в выдаче контента.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CategoryRef — категория в выдаче контента.
type CategoryRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Color string `json:"color"`
}

// TagRef — тег статьи.
type TagRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
