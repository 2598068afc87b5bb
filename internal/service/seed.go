package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/stayloft/api/internal/model"
)

// EnsureAdmin guarantees that an administrator account with the given email
// exists. An existing admin account is left as is, so restarting the server
// never resets a changed password. The first boot of a fresh deployment
// creates the account. An existing non-admin account at the seed email is an
// error: starting without any administrator would make user creation
// impossible.
func (f *Facade) EnsureAdmin(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !model.IsValidEmail(email) {
		return nil, validationErr([]model.FieldError{
			{Field: "email", Message: "invalid email format"},
		})
	}
	if msg := model.ValidatePassword(password); msg != "" {
		return nil, validationErr([]model.FieldError{
			{Field: "password", Message: msg},
		})
	}

	existing, err := f.users.GetByAttribute(ctx, "email", email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !existing.IsAdmin {
			return nil, fmt.Errorf("account %s exists but is not an administrator", email)
		}
		return existing, nil
	}

	hash, err := hashPassword(password, f.hashCost)
	if err != nil {
		return nil, err
	}

	now := f.now().UTC()
	admin := &model.User{
		ID:        f.newID(),
		FirstName: "Admin",
		LastName:  "User",
		Email:     email,
		Hash:      hash,
		IsAdmin:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := f.users.Add(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}
