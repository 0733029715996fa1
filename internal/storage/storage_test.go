package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"formulator/internal/config"
)

func TestObjectKey(t *testing.T) {
	cases := map[string]string{
		"/uploads/a.jpg":                         "uploads/a.jpg",
		"uploads/b.png":                          "uploads/b.png",
		"https://cdn.example.com/media/c.webp?v": "media/c.webp",
		"":                                       "",
	}
	for in, want := range cases {
		if got := objectKey(in); got != want {
			t.Errorf("objectKey(%q) = %q, ожидалось %q", in, got, want)
		}
	}
}

func TestLocalRemove(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "uploads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(dir, "photo.jpg")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLocal(root)
	if err := l.Remove(context.Background(), "/uploads/photo.jpg"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(file); !os.IsNotExist(err) {
		t.Error("файл не удалён")
	}

	if err := l.Remove(context.Background(), "/uploads/photo.jpg"); err != nil {
		t.Errorf("повторное удаление должно быть без ошибки: %v", err)
	}
}

func TestLocalRemove_Traversal(t *testing.T) {
	l := NewLocal(t.TempDir())
	if err := l.Remove(context.Background(), "/../../etc/passwd"); err == nil {
		t.Error("выход за пределы корня должен отвергаться")
	}
}

func TestNew_Unknown(t *testing.T) {
	if _, err := New(context.Background(), &config.Config{MediaStorage: "ftp"}); err == nil {
		t.Error("ожидалась ошибка для неизвестного хранилища")
	}
	s, err := New(context.Background(), &config.Config{MediaRoot: t.TempDir()})
	if err != nil || s.Name() != "local" {
		t.Errorf("по умолчанию локальное хранилище: %v %v", s, err)
	}
}
