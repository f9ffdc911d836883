package storage

import (
	"context"
	"os"
	"path"
	"path/filepath"
)

// localBackend writes files under a directory served back through the
// /uploads route.
type localBackend struct {
	dir string
}

func newLocalBackend(dir string) *localBackend {
	if dir == "" {
		dir = filepath.Join("public", "uploads")
	}
	return &localBackend{dir: dir}
}

func (b *localBackend) Name() string { return "local" }

func (b *localBackend) Upload(_ context.Context, data []byte, key, _ string) (string, error) {
	dest := filepath.Join(b.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", err
	}
	return b.PublicURL(key), nil
}

func (b *localBackend) PublicURL(key string) string {
	return path.Join("/uploads", key)
}
