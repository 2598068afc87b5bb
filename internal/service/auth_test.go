package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"github.com/stayloft/api/internal/model"
	"github.com/stayloft/api/pkg/jwt"
)

func newAuth(t *testing.T, f *Facade) *AuthService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return NewAuthService(AuthConfig{
		Users:  f.users,
		Tokens: jwt.NewTestService(key, "stayloft-test", time.Hour),
	})
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	f := newFacade()
	auth := newAuth(t, f)
	user := mustCreateUser(t, f, "john@example.com")

	result, err := auth.Login(context.Background(), &model.LoginRequest{
		Email:    "John@Example.com",
		Password: "cowabunga",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a signed token")
	}
	if result.User.ID != user.ID {
		t.Errorf("unexpected user %q", result.User.ID)
	}
	if result.ExpiresIn != time.Hour {
		t.Errorf("unexpected expiry %v", result.ExpiresIn)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	f := newFacade()
	auth := newAuth(t, f)
	mustCreateUser(t, f, "john@example.com")

	_, err := auth.Login(context.Background(), &model.LoginRequest{
		Email:    "john@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()

	f := newFacade()
	auth := newAuth(t, f)

	_, err := auth.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "cowabunga",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_AdminRoleClaim(t *testing.T) {
	t.Parallel()

	f := newFacade()
	auth := newAuth(t, f)

	if _, err := f.EnsureAdmin(context.Background(), "admin@stayloft.dev", "changeme-now"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}

	result, err := auth.Login(context.Background(), &model.LoginRequest{
		Email:    "admin@stayloft.dev",
		Password: "changeme-now",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := auth.tokens.Validate(result.Token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !claims.IsAdmin() {
		t.Error("expected admin role claim")
	}
	if claims.UserID != result.User.ID {
		t.Errorf("unexpected user_id claim %q", claims.UserID)
	}
}

func TestCurrentUser(t *testing.T) {
	t.Parallel()

	f := newFacade()
	auth := newAuth(t, f)
	user := mustCreateUser(t, f, "john@example.com")

	got, err := auth.CurrentUser(context.Background(), actorFor(user))
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("unexpected user %q", got.ID)
	}

	if _, err := auth.CurrentUser(context.Background(), nil); !errors.Is(err, ErrAuthRequired) {
		t.Errorf("anonymous: expected ErrAuthRequired, got %v", err)
	}
	if _, err := auth.CurrentUser(context.Background(), &model.Identity{UserID: "ghost"}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("ghost: expected ErrUserNotFound, got %v", err)
	}
}
