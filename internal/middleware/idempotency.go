package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// IdempotencyStore caches responses to replayed write requests. Entries
// expire after the configured TTL; an entry still being produced blocks
// concurrent duplicates until the first request finishes.
type IdempotencyStore struct {
	mu    sync.Mutex
	cache *ttlcache.Cache[string, *idempotencyEntry]
}

type idempotencyEntry struct {
	status   int
	headers  http.Header
	body     []byte
	inFlight bool
	done     chan struct{}
}

// IdempotencyConfig holds configuration for idempotency middleware
type IdempotencyConfig struct {
	TTL time.Duration // How long to keep cached responses (default 24h)
}

// NewIdempotencyStore creates a new idempotency store
func NewIdempotencyStore(cfg IdempotencyConfig) *IdempotencyStore {
	if cfg.TTL == 0 {
		cfg.TTL = 24 * time.Hour
	}

	cache := ttlcache.New(
		ttlcache.WithTTL[string, *idempotencyEntry](cfg.TTL),
		ttlcache.WithDisableTouchOnHit[string, *idempotencyEntry](),
	)
	go cache.Start()

	return &IdempotencyStore{cache: cache}
}

// Stop stops the background expiry loop
func (s *IdempotencyStore) Stop() {
	s.cache.Stop()
}

// generateKey creates a unique key from user ID, idempotency key, and request fingerprint
func generateKey(userID, idempotencyKey, method, path string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(userID))
	h.Write([]byte(idempotencyKey))
	h.Write([]byte(method))
	h.Write([]byte(path))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// idempotencyResponseWriter captures the response for caching
type idempotencyResponseWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *idempotencyResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *idempotencyResponseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func replay(w http.ResponseWriter, entry *idempotencyEntry) {
	for k, v := range entry.headers {
		for _, val := range v {
			w.Header().Add(k, val)
		}
	}
	w.Header().Set("X-Idempotency-Replayed", "true")
	w.WriteHeader(entry.status)
	_, _ = w.Write(entry.body)
}

// Idempotency returns middleware that handles Idempotency-Key headers on
// POST and PATCH requests
func Idempotency(store *IdempotencyStore) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost && r.Method != http.MethodPatch {
				next.ServeHTTP(w, r)
				return
			}

			idempotencyKey := r.Header.Get("Idempotency-Key")
			if idempotencyKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			// Key by caller so two users cannot collide on the same token
			caller := r.RemoteAddr
			if identity := GetIdentity(r.Context()); identity != nil {
				caller = identity.UserID
			}

			// Read and restore request body
			body, err := io.ReadAll(r.Body)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			key := generateKey(caller, idempotencyKey, r.Method, r.URL.Path, body)

			store.mu.Lock()
			if item := store.cache.Get(key); item != nil {
				entry := item.Value()
				if entry.inFlight {
					// Wait for the first request to finish, then replay it
					store.mu.Unlock()
					<-entry.done
					replay(w, entry)
					return
				}
				store.mu.Unlock()
				replay(w, entry)
				return
			}

			entry := &idempotencyEntry{
				inFlight: true,
				done:     make(chan struct{}),
			}
			store.cache.Set(key, entry, ttlcache.DefaultTTL)
			store.mu.Unlock()

			irw := &idempotencyResponseWriter{
				ResponseWriter: w,
				status:         http.StatusOK,
			}

			next.ServeHTTP(irw, r)

			store.mu.Lock()
			entry.status = irw.status
			entry.headers = irw.Header().Clone()
			entry.body = irw.body.Bytes()
			entry.inFlight = false
			close(entry.done)
			store.mu.Unlock()
		})
	}
}
