package models

import "time"

type YouTubeContent struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	VideoID     string        `json:"videoId"`
	URL         string        `json:"url"`
	Thumbnail   *string       `json:"thumbnail,omitempty"`
	Description *string       `json:"description,omitempty"`
	Tags        []string      `json:"tags"`
	Status      ContentStatus `json:"status"`
	PublishedAt *time.Time    `json:"publishedAt,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type YouTubeInput struct {
	Title       string        `json:"title"       validate:"required,min=3,max=255"`
	URL         string        `json:"url"         validate:"required,url"`
	Description *string       `json:"description" validate:"omitempty,max=5000"`
	Tags        []string      `json:"tags"        validate:"omitempty,max=20,dive,required,max=50"`
	Status      ContentStatus `json:"status"      validate:"omitempty,oneof=DRAFT IN_REVIEW PUBLISHED"`
}

type YouTubeFilter struct {
	Status ContentStatus
	Search string
}
