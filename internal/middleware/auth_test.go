package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stayloft/api/internal/model"
	"github.com/stayloft/api/pkg/jwt"
)

func newTokens(t *testing.T) *jwt.Service {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return jwt.NewTestService(key, "stayloft-test", time.Hour)
}

func signToken(t *testing.T, tokens *jwt.Service, userID, role string) string {
	t.Helper()
	token, err := tokens.Sign(jwt.Claims{
		Subject: userID,
		UserID:  userID,
		Role:    role,
	})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func identityEcho(captured **model.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = GetIdentity(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_ValidToken(t *testing.T) {
	t.Parallel()

	tokens := newTokens(t)
	var captured *model.Identity
	handler := Auth(tokens)(identityEcho(&captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, tokens, "u1", "user"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured == nil || captured.UserID != "u1" || captured.IsAdmin {
		t.Errorf("unexpected identity: %+v", captured)
	}
}

func TestAuth_AdminRole(t *testing.T) {
	t.Parallel()

	tokens := newTokens(t)
	var captured *model.Identity
	handler := Auth(tokens)(identityEcho(&captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, tokens, "a1", "admin"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if captured == nil || !captured.IsAdmin {
		t.Errorf("expected admin identity, got %+v", captured)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	t.Parallel()

	tokens := newTokens(t)
	handler := Auth(tokens)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	t.Parallel()

	tokens := newTokens(t)
	handler := Auth(tokens)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	t.Parallel()

	tokens := newTokens(t)
	token, err := tokens.Sign(jwt.Claims{
		UserID:    "u1",
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	handler := Auth(tokens)(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_ForgedSignature(t *testing.T) {
	t.Parallel()

	tokens := newTokens(t)
	other := newTokens(t)

	handler := Auth(tokens)(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, other, "u1", "user"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestOptionalAuth_AnonymousPasses(t *testing.T) {
	t.Parallel()

	tokens := newTokens(t)
	var captured *model.Identity
	handler := OptionalAuth(tokens)(identityEcho(&captured))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if captured != nil {
		t.Errorf("expected anonymous request, got %+v", captured)
	}
}

func TestOptionalAuth_ValidTokenAttachesIdentity(t *testing.T) {
	t.Parallel()

	tokens := newTokens(t)
	var captured *model.Identity
	handler := OptionalAuth(tokens)(identityEcho(&captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, tokens, "u1", "user"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if captured == nil || captured.UserID != "u1" {
		t.Errorf("expected identity attached, got %+v", captured)
	}
}

func TestOptionalAuth_InvalidTokenStaysAnonymous(t *testing.T) {
	t.Parallel()

	tokens := newTokens(t)
	var captured *model.Identity
	handler := OptionalAuth(tokens)(identityEcho(&captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if captured != nil {
		t.Errorf("expected anonymous request, got %+v", captured)
	}
}
