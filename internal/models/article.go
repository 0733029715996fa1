package models

import "time"

type Article struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Slug            string        `json:"slug"`
	Content         string        `json:"content"`
	Excerpt         *string       `json:"excerpt,omitempty"`
	FeaturedImage   *string       `json:"featuredImage,omitempty"`
	Status          ContentStatus `json:"status"`
	PublishedAt     *time.Time    `json:"publishedAt,omitempty"`
	ViewCount       int64         `json:"viewCount"`
	MetaTitle       *string       `json:"metaTitle,omitempty"`
	MetaDescription *string       `json:"metaDescription,omitempty"`
	CanonicalURL    *string       `json:"canonicalUrl,omitempty"`
	RobotsMeta      *string       `json:"robotsMeta,omitempty"`
	AuthorID        string        `json:"authorId"`
	CategoryID      *string       `json:"categoryId,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`

	Author   *UserRef     `json:"author,omitempty"`
	Category *CategoryRef `json:"category,omitempty"`
	Tags     []TagRef     `json:"tags"`
}

// swagger:model ArticleInput
type ArticleInput struct {
	Title           string        `json:"title"           validate:"required,min=3,max=255"   example:"Manfaat Adaptogen"`
	Content         string        `json:"content"         validate:"required,min=50"`
	Excerpt         *string       `json:"excerpt"         validate:"omitempty,max=300"`
	FeaturedImage   *string       `json:"featuredImage"   validate:"omitempty,max=500"`
	Status          ContentStatus `json:"status"          validate:"omitempty,oneof=DRAFT IN_REVIEW PUBLISHED"`
	CategoryID      *string       `json:"categoryId"      validate:"omitempty,max=64"`
	TagIDs          []string      `json:"tagIds"          validate:"omitempty,max=20,dive,required"`
	MetaTitle       *string       `json:"metaTitle"       validate:"omitempty,max=70"`
	MetaDescription *string       `json:"metaDescription" validate:"omitempty,max=160"`
	CanonicalURL    *string       `json:"canonicalUrl"    validate:"omitempty,url"`
	RobotsMeta      *string       `json:"robotsMeta"      validate:"omitempty,max=100"`
}

type ArticleFilter struct {
	Status     ContentStatus
	CategoryID string
	AuthorID   string
	Search     string
}
