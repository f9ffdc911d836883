package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newTestImageKit(t *testing.T, handler http.HandlerFunc, quality int) *imagekitBackend {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	b := newImageKitBackend(ImageKitConfig{
		PrivateKey:  "private_key",
		URLEndpoint: "https://ik.imagekit.io/maneel",
		Folder:      "shop",
		Quality:     quality,
	}, zap.NewNop())
	b.uploadURL = srv.URL
	return b
}

func TestImageKitUploadAppliesQualityTransformToImages(t *testing.T) {
	var gotTransform string
	b := newTestImageKit(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotTransform = r.FormValue("transformation")
		if user, _, ok := r.BasicAuth(); !ok || user != "private_key" {
			t.Error("private key must be sent as basic-auth user")
		}
		w.Write([]byte(`{"url":"https://ik.imagekit.io/maneel/shop/x.webp"}`))
	}, 70)

	url, err := b.Upload(context.Background(), []byte("img"), "x.webp", "image/webp")
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if url != "https://ik.imagekit.io/maneel/shop/x.webp" {
		t.Fatalf("url mismatch: %q", url)
	}
	if gotTransform != `{"pre":"q-70"}` {
		t.Fatalf("transformation field: %q", gotTransform)
	}
}

func TestImageKitUploadSkipsTransformForNonImages(t *testing.T) {
	var gotTransform string
	b := newTestImageKit(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(32 << 20)
		gotTransform = r.FormValue("transformation")
		w.Write([]byte(`{"url":"https://ik.imagekit.io/maneel/shop/doc.pdf"}`))
	}, 70)

	if _, err := b.Upload(context.Background(), []byte("pdf"), "doc.pdf", "application/pdf"); err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if gotTransform != "" {
		t.Fatalf("non-image should not be transformed, got %q", gotTransform)
	}
}

func TestImageKitQualityOutOfRangeUsesDefault(t *testing.T) {
	b := newImageKitBackend(ImageKitConfig{PrivateKey: "pk", URLEndpoint: "https://ik.example.com", Quality: 150}, zap.NewNop())
	if b.cfg.Quality != defaultQuality {
		t.Fatalf("quality should default to %d, got %d", defaultQuality, b.cfg.Quality)
	}
	b = newImageKitBackend(ImageKitConfig{PrivateKey: "pk", URLEndpoint: "https://ik.example.com", Quality: 0}, zap.NewNop())
	if b.cfg.Quality != defaultQuality {
		t.Fatalf("quality should default to %d, got %d", defaultQuality, b.cfg.Quality)
	}
}

func TestImageKitUploadSurfacesAPIError(t *testing.T) {
	b := newTestImageKit(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"Invalid API key"}`))
	}, 80)

	if _, err := b.Upload(context.Background(), []byte("img"), "x.webp", "image/webp"); err == nil {
		t.Fatal("expected error from rejected upload")
	}
}
