package models

import "time"

type Media struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	MimeType   *string   `json:"mimeType,omitempty"`
	Size       int64     `json:"size"`
	AltText    *string   `json:"altText,omitempty"`
	Caption    *string   `json:"caption,omitempty"`
	UploadedBy *string   `json:"uploadedBy,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// MediaInput регистрирует уже сохранённый файл.
type MediaInput struct {
	Filename string  `json:"filename" validate:"required,max=255"`
	URL      string  `json:"url"      validate:"required,max=500"`
	MimeType *string `json:"mimeType" validate:"omitempty,max=100"`
	Size     int64   `json:"size"     validate:"gte=0"`
	AltText  *string `json:"altText"  validate:"omitempty,max=255"`
	Caption  *string `json:"caption"  validate:"omitempty,max=500"`
}

type MediaUpdate struct {
	AltText *string `json:"altText" validate:"omitempty,max=255"`
	Caption *string `json:"caption" validate:"omitempty,max=500"`
}
