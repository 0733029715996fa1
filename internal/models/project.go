package models

import "time"

type Project struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	Slug             string        `json:"slug"`
	Description      string        `json:"description"`
	ShortDescription *string       `json:"shortDescription,omitempty"`
	FeaturedImage    *string       `json:"featuredImage,omitempty"`
	Gallery          []string      `json:"gallery"`
	Status           ContentStatus `json:"status"`
	PublishedAt      *time.Time    `json:"publishedAt,omitempty"`
	ViewCount        int64         `json:"viewCount"`
	MetaTitle        *string       `json:"metaTitle,omitempty"`
	MetaDescription  *string       `json:"metaDescription,omitempty"`
	CanonicalURL     *string       `json:"canonicalUrl,omitempty"`
	AuthorID         string        `json:"authorId"`
	CategoryID       *string       `json:"categoryId,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`

	Author   *UserRef     `json:"author,omitempty"`
	Category *CategoryRef `json:"category,omitempty"`
}

// swagger:model ProjectInput
type ProjectInput struct {
	Title            string        `json:"title"            validate:"required,min=3,max=255"`
	Description      string        `json:"description"      validate:"required,min=50"`
	ShortDescription *string       `json:"shortDescription" validate:"omitempty,max=300"`
	FeaturedImage    *string       `json:"featuredImage"    validate:"omitempty,max=500"`
	Gallery          []string      `json:"gallery"          validate:"omitempty,max=50,dive,required,max=500"`
	Status           ContentStatus `json:"status"           validate:"omitempty,oneof=DRAFT IN_REVIEW PUBLISHED"`
	CategoryID       *string       `json:"categoryId"       validate:"omitempty,max=64"`
	MetaTitle        *string       `json:"metaTitle"        validate:"omitempty,max=70"`
	MetaDescription  *string       `json:"metaDescription"  validate:"omitempty,max=160"`
	CanonicalURL     *string       `json:"canonicalUrl"     validate:"omitempty,url"`
}

type ProjectFilter struct {
	Status     ContentStatus
	CategoryID string
	AuthorID   string
	Search     string
}
