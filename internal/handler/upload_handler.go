package handler

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shishir1337/maneelclub-sub001/internal/storage"
)

const maxUploadBytes = 10 << 20 // 10 MiB

type UploadHandler struct {
	backend  storage.Backend
	localDir string
	logger   *zap.Logger
}

func NewUploadHandler(backend storage.Backend, localDir string, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{backend: backend, localDir: localDir, logger: logger}
}

// Upload stores a multipart file under a UUID-prefixed key on the selected
// backend and returns its public URL.
func (h *UploadHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondErr(c, http.StatusBadRequest, "A file is required")
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		respondErr(c, http.StatusBadRequest, "File is too large")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		respondErr(c, http.StatusBadRequest, "Failed to read file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("%s-%s", uuid.New().String()[:8], filepath.Base(header.Filename))
	url, err := h.backend.Upload(c.Request.Context(), data, key, contentType)
	if err != nil {
		h.logger.Error("upload failed",
			zap.String("backend", h.backend.Name()),
			zap.String("key", key),
			zap.Error(err))
		respondErr(c, http.StatusInternalServerError, "Upload failed")
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"key": key, "url": url})
}

// Serve answers /uploads/<key> from the local upload directory. Traversal
// outside the directory is rejected; served files are immutable by key, so
// clients may cache them forever.
func (h *UploadHandler) Serve(c *gin.Context) {
	rel := strings.TrimPrefix(c.Param("filepath"), "/")
	if rel == "" || strings.Contains(rel, "..") || filepath.IsAbs(rel) {
		respondErr(c, http.StatusBadRequest, "Invalid path")
		return
	}

	dest := filepath.Join(h.localDir, filepath.FromSlash(rel))
	cleanRoot := filepath.Clean(h.localDir) + string(filepath.Separator)
	if !strings.HasPrefix(filepath.Clean(dest), cleanRoot) {
		respondErr(c, http.StatusBadRequest, "Invalid path")
		return
	}

	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.File(dest)
}
