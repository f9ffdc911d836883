package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	imagekitUploadURL = "https://upload.imagekit.io/api/v1/files/upload"
	defaultQuality    = 80
)

// imagekitBackend uploads through the ImageKit REST API, applying a
// server-side quality compression transform to image content types.
type imagekitBackend struct {
	cfg       ImageKitConfig
	uploadURL string
	client    *http.Client
	logger    *zap.Logger
}

func newImageKitBackend(cfg ImageKitConfig, logger *zap.Logger) *imagekitBackend {
	if cfg.Quality < 1 || cfg.Quality > 100 {
		cfg.Quality = defaultQuality
	}
	if cfg.Folder == "" {
		cfg.Folder = "uploads"
	}
	return &imagekitBackend{
		cfg:       cfg,
		uploadURL: imagekitUploadURL,
		client:    &http.Client{Timeout: 30 * time.Second},
		logger:    logger,
	}
}

func (b *imagekitBackend) Name() string { return "imagekit" }

type imagekitUploadResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

func (b *imagekitBackend) Upload(ctx context.Context, data []byte, key, contentType string) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fields := map[string]string{
		"file":              base64.StdEncoding.EncodeToString(data),
		"fileName":          key,
		"folder":            "/" + strings.Trim(b.cfg.Folder, "/"),
		"useUniqueFileName": "false",
	}
	// Quality compression applies to images only; other content types pass
	// through untouched.
	if strings.HasPrefix(contentType, "image/") {
		fields["transformation"] = fmt.Sprintf(`{"pre":"q-%d"}`, b.cfg.Quality)
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return "", err
		}
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.uploadURL, &body)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(b.cfg.PrivateKey, "")
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("imagekit upload: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		var ikErr imagekitUploadResponse
		if json.Unmarshal(respBody, &ikErr) == nil && ikErr.Message != "" {
			return "", fmt.Errorf("imagekit upload (%d): %s", resp.StatusCode, ikErr.Message)
		}
		return "", fmt.Errorf("imagekit upload failed with status %d", resp.StatusCode)
	}

	var uploaded imagekitUploadResponse
	if err := json.Unmarshal(respBody, &uploaded); err != nil {
		return "", fmt.Errorf("decode imagekit response: %w", err)
	}
	if uploaded.URL == "" {
		return b.PublicURL(key), nil
	}
	return uploaded.URL, nil
}

func (b *imagekitBackend) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s",
		strings.TrimRight(b.cfg.URLEndpoint, "/"),
		strings.Trim(b.cfg.Folder, "/"),
		key)
}
