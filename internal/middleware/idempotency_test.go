package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"
)

func countingHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("call-" + strconv.Itoa(*calls)))
	})
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	t.Parallel()

	store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Minute})
	defer store.Stop()

	calls := 0
	handler := Idempotency(store)(countingHandler(&calls))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/places", strings.NewReader(`{"title":"Cozy"}`))
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("Idempotency-Key", "key-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	first := send()
	second := send()

	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}
	if first.Code != http.StatusCreated || second.Code != http.StatusCreated {
		t.Errorf("unexpected status codes %d, %d", first.Code, second.Code)
	}
	if second.Body.String() != first.Body.String() {
		t.Errorf("expected replayed body %q, got %q", first.Body.String(), second.Body.String())
	}
	if second.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("expected replay marker header")
	}
}

func TestIdempotency_DifferentKeysRunSeparately(t *testing.T) {
	t.Parallel()

	store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Minute})
	defer store.Stop()

	calls := 0
	handler := Idempotency(store)(countingHandler(&calls))

	for _, key := range []string{"key-1", "key-2"} {
		req := httptest.NewRequest(http.MethodPost, "/v1/places", strings.NewReader(`{}`))
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("Idempotency-Key", key)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	if calls != 2 {
		t.Errorf("expected 2 handler runs, got %d", calls)
	}
}

func TestIdempotency_DifferentBodiesRunSeparately(t *testing.T) {
	t.Parallel()

	store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Minute})
	defer store.Stop()

	calls := 0
	handler := Idempotency(store)(countingHandler(&calls))

	for _, body := range []string{`{"title":"A"}`, `{"title":"B"}`} {
		req := httptest.NewRequest(http.MethodPost, "/v1/places", strings.NewReader(body))
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("Idempotency-Key", "key-1")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	if calls != 2 {
		t.Errorf("expected 2 handler runs, got %d", calls)
	}
}

func TestIdempotency_IgnoresGet(t *testing.T) {
	t.Parallel()

	store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Minute})
	defer store.Stop()

	calls := 0
	handler := Idempotency(store)(countingHandler(&calls))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/places", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	if calls != 2 {
		t.Errorf("expected GET requests to bypass the cache, got %d runs", calls)
	}
}

func TestIdempotency_NoKeyBypasses(t *testing.T) {
	t.Parallel()

	store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Minute})
	defer store.Stop()

	calls := 0
	handler := Idempotency(store)(countingHandler(&calls))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/places", strings.NewReader(`{}`))
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	if calls != 2 {
		t.Errorf("expected requests without a key to bypass the cache, got %d runs", calls)
	}
}
