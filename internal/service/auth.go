package service

import (
	"context"
	"strings"
	"time"

	"github.com/stayloft/api/internal/model"
	"github.com/stayloft/api/pkg/jwt"
)

// AuthService handles credential checks and token issuance.
type AuthService struct {
	users  UserLookup
	tokens *jwt.Service
}

// UserLookup is the slice of the user store the auth service needs.
type UserLookup interface {
	Get(ctx context.Context, id string) (*model.User, error)
	GetByAttribute(ctx context.Context, name string, value any) (*model.User, error)
}

// AuthConfig holds configuration for the auth service.
type AuthConfig struct {
	Users  UserLookup
	Tokens *jwt.Service
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg AuthConfig) *AuthService {
	return &AuthService{
		users:  cfg.Users,
		tokens: cfg.Tokens,
	}
}

// LoginResult carries a signed token and the authenticated account.
type LoginResult struct {
	Token     string
	ExpiresIn time.Duration
	User      *model.User
}

// Login verifies the credentials and issues a bearer token. Unknown
// addresses and wrong passwords both map to ErrInvalidCredentials so the
// response does not reveal which half failed.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByAttribute(ctx, "email", email)
	if err != nil {
		return nil, err
	}
	if user == nil || !checkPassword(user.Hash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(jwt.Claims{
		Subject: user.ID,
		UserID:  user.ID,
		Email:   user.Email,
		Role:    roleOf(user),
	})
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresIn: s.tokens.GetExpiration(),
		User:      user,
	}, nil
}

// CurrentUser resolves the account behind an authenticated identity.
func (s *AuthService) CurrentUser(ctx context.Context, actor *model.Identity) (*model.User, error) {
	if actor == nil {
		return nil, ErrAuthRequired
	}
	user, err := s.users.Get(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func roleOf(user *model.User) string {
	if user.IsAdmin {
		return jwt.RoleAdmin
	}
	return jwt.RoleUser
}
