// Package storage удаляет файлы медиатеки из хранилища: локальной папки
// или S3-совместимого бакета.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"formulator/internal/config"
)

// Storage удаляет файл по URL, под которым он зарегистрирован в медиатеке.
// Отсутствие файла ошибкой не считается.
type Storage interface {
	Remove(ctx context.Context, fileURL string) error
	Name() string
}

func New(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.MediaStorage {
	case "", "local":
		return NewLocal(cfg.MediaRoot), nil
	case "s3":
		return NewS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("неизвестный MEDIA_STORAGE: %q", cfg.MediaStorage)
	}
}

// objectKey достаёт из URL путь без ведущего слэша: "/uploads/a.jpg" -> "uploads/a.jpg".
func objectKey(fileURL string) string {
	p := fileURL
	if u, err := url.Parse(fileURL); err == nil && u.Path != "" {
		p = u.Path
	}
	return strings.TrimLeft(p, "/")
}
