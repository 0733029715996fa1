package models

import "time"

const DefaultCategoryColor = "#10B981"

type Category struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description *string         `json:"description,omitempty"`
	Color       string          `json:"color"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Counts      *CategoryCounts `json:"_count,omitempty"`
}

type CategoryCounts struct {
	Articles int `json:"articles"`
	Projects int `json:"projects"`
}

type CategoryInput struct {
	Name        string  `json:"name"        validate:"required,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Color       string  `json:"color"       validate:"omitempty,hexcolor"`
}

type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	Articles  int       `json:"articleCount"`
}

type TagInput struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
}
