package courier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClient(apiKey, endpoint string) *Client {
	c := NewClient(apiKey, zap.NewNop())
	c.endpoint = endpoint
	c.retryDelay = time.Millisecond
	return c
}

func TestCheckUnconfiguredMakesNoCall(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := newTestClient("", srv.URL)
	_, err := c.Check(context.Background(), "01730285500")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if err.Error() != "Courier check not configured" {
		t.Fatalf("message mismatch: %q", err.Error())
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatal("no network call expected without an API key")
	}
}

func TestCheckMalformedPhoneMakesNoCall(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := newTestClient("key", srv.URL)
	if _, err := c.Check(context.Background(), "12345"); !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("expected ErrInvalidPhone, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatal("no network call expected for a malformed phone")
	}
}

func TestCheckRetriesOnServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient("key", srv.URL)
	_, err := c.Check(context.Background(), "01730285500")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("expected 3 attempts (1 + 2 retries), got %d", got)
	}
}

func TestCheckNoRetryOnClientError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient("key", srv.URL)
	_, err := c.Check(context.Background(), "01730285500")
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected a single attempt on 4xx, got %d", got)
	}
}

func TestCheckCancelledContextIsNotATimeout(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	c := newTestClient("key", srv.URL)
	_, err := c.Check(ctx, "01730285500")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if errors.Is(err, ErrTimedOut) {
		t.Fatal("caller cancellation must not be reported as a timeout")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected no retry after cancellation, got %d calls", got)
	}
}

func TestCheckRecoversAfterTransientError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","data":{
			"summary":{"name":"Summary","total_parcel":12,"success_parcel":10,"cancelled_parcel":2,"success_ratio":83.33},
			"pathao":{"name":"Pathao","total_parcel":7,"success_parcel":6,"cancelled_parcel":1,"success_ratio":85.71}
		}}`))
	}))
	defer srv.Close()

	c := newTestClient("key", srv.URL)
	result, err := c.Check(context.Background(), "01730285500")
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if result.Status != "success" {
		t.Fatalf("status: got %q", result.Status)
	}
	if result.Summary == nil || result.Summary.TotalParcel != 12 {
		t.Fatalf("summary not parsed: %+v", result.Summary)
	}
	stats, ok := result.Couriers["pathao"]
	if !ok {
		t.Fatal("pathao stats missing")
	}
	if stats.SuccessParcel != 6 || stats.SuccessRatio != 85.71 {
		t.Fatalf("pathao stats wrong: %+v", stats)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected recovery on second attempt, got %d calls", got)
	}
}

func TestCheckRemoteErrorPayloadIsTransportSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"error","error":"Invalid phone number"}`))
	}))
	defer srv.Close()

	c := newTestClient("key", srv.URL)
	result, err := c.Check(context.Background(), "01730285500")
	if err != nil {
		t.Fatalf("remote error payload is a transport success, got %v", err)
	}
	if result.Status != "error" || result.Error != "Invalid phone number" {
		t.Fatalf("remote error not surfaced: %+v", result)
	}
}

func TestCheckSendsBearerTokenAndNormalizedPhone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret-key" {
			t.Errorf("authorization header: %q", got)
		}
		var body struct {
			Phone string `json:"phone"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.Phone != "01730285500" {
			t.Errorf("phone not normalized: %q", body.Phone)
		}
		w.Write([]byte(`{"status":"success","data":{}}`))
	}))
	defer srv.Close()

	c := newTestClient("secret-key", srv.URL)
	if _, err := c.Check(context.Background(), "+880 1730-285500"); err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
}
