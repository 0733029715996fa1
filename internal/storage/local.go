package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Local struct {
	root string
}

func NewLocal(root string) *Local {
	return &Local{root: root}
}

func (l *Local) Name() string { return "local" }

func (l *Local) Remove(_ context.Context, fileURL string) error {
	key := objectKey(fileURL)
	if key == "" {
		return nil
	}

	root, err := filepath.Abs(l.root)
	if err != nil {
		return err
	}
	full := filepath.Join(root, filepath.FromSlash(key))
	if full != root && !strings.HasPrefix(full, root+string(os.PathSeparator)) {
		return fmt.Errorf("путь %q выходит за пределы медиатеки", fileURL)
	}

	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
