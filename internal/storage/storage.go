// Package storage provides the file-upload abstraction: one Upload/PublicURL
// contract with three interchangeable backends (ImageKit, S3-compatible
// object store, local filesystem).
package storage

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Backend is a file-upload destination. Upload stores data under key and
// returns the public URL; PublicURL constructs the same URL without
// re-uploading.
type Backend interface {
	Name() string
	Upload(ctx context.Context, data []byte, key, contentType string) (string, error)
	PublicURL(key string) string
}

// Config selects and configures a backend explicitly. Exactly which backend
// wins is decided by presence, in fixed priority order: ImageKit, then the
// object store, then the local filesystem.
type Config struct {
	ImageKit ImageKitConfig
	S3       S3Config
	LocalDir string
}

type ImageKitConfig struct {
	PrivateKey  string
	URLEndpoint string
	Folder      string
	Quality     int // 1-100, 0 means default (80)
}

type S3Config struct {
	Endpoint  string
	Port      int
	UseSSL    bool
	AccessKey string
	SecretKey string
	Bucket    string
}

// New builds the backend the config selects. It does not memoize; use
// Resolve for the process-wide instance.
func New(cfg Config, logger *zap.Logger) (Backend, error) {
	switch {
	case cfg.ImageKit.PrivateKey != "" && cfg.ImageKit.URLEndpoint != "":
		return newImageKitBackend(cfg.ImageKit, logger), nil
	case cfg.S3.Endpoint != "":
		return newS3Backend(cfg.S3, logger)
	default:
		return newLocalBackend(cfg.LocalDir), nil
	}
}

var (
	resolveOnce     sync.Once
	resolvedBackend Backend
	resolveErr      error
)

// Resolve picks the backend once for the life of the process. Repeated calls
// return the same instance; the selection never hot-reloads.
func Resolve(cfg Config, logger *zap.Logger) (Backend, error) {
	resolveOnce.Do(func() {
		resolvedBackend, resolveErr = New(cfg, logger)
		if resolveErr == nil {
			logger.Info("storage backend selected",
				zap.String("backend", resolvedBackend.Name()))
		}
	})
	return resolvedBackend, resolveErr
}
