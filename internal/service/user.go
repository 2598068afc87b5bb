package service

import (
	"context"
	"errors"
	"strings"

	"github.com/stayloft/api/internal/model"
	"github.com/stayloft/api/internal/store"
)

// CreateUser registers a new account. Only administrators may create users.
func (f *Facade) CreateUser(ctx context.Context, actor *model.Identity, req *model.CreateUserRequest) (*model.User, error) {
	if actor == nil {
		return nil, ErrAuthRequired
	}
	if !actor.IsAdmin {
		return nil, ErrNotAuthorized
	}
	if fields := req.Validate(); len(fields) > 0 {
		return nil, validationErr(fields)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := f.users.GetByAttribute(ctx, "email", email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := hashPassword(req.Password, f.hashCost)
	if err != nil {
		return nil, err
	}

	now := f.now().UTC()
	user := &model.User{
		ID:        f.newID(),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     email,
		Hash:      hash,
		IsAdmin:   req.IsAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := f.users.Add(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by id.
func (f *Facade) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := f.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email address. The lookup is
// case-insensitive since emails are stored lowercased.
func (f *Facade) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := f.users.GetByAttribute(ctx, "email", strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ListUsers retrieves all users.
func (f *Facade) ListUsers(ctx context.Context) ([]*model.User, error) {
	return f.users.GetAll(ctx)
}

// UpdateUser applies a partial update to a user. Users may change their own
// first and last name; email and password changes require an administrator.
func (f *Facade) UpdateUser(ctx context.Context, actor *model.Identity, id string, req *model.UpdateUserRequest) (*model.User, error) {
	if actor == nil {
		return nil, ErrAuthRequired
	}
	if !actor.CanActFor(id) {
		return nil, ErrNotAuthorized
	}
	if fields := req.Validate(); len(fields) > 0 {
		return nil, validationErr(fields)
	}
	if (req.Email != nil || req.Password != nil) && !actor.IsAdmin {
		return nil, ErrNotAuthorized
	}

	var email string
	if req.Email != nil {
		email = strings.ToLower(strings.TrimSpace(*req.Email))
		existing, err := f.users.GetByAttribute(ctx, "email", email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrEmailAlreadyExists
		}
	}

	var hash string
	if req.Password != nil {
		var err error
		hash, err = hashPassword(*req.Password, f.hashCost)
		if err != nil {
			return nil, err
		}
	}

	user, err := f.users.Update(ctx, id, func(u *model.User) error {
		if req.FirstName != nil {
			u.FirstName = strings.TrimSpace(*req.FirstName)
		}
		if req.LastName != nil {
			u.LastName = strings.TrimSpace(*req.LastName)
		}
		if req.Email != nil {
			u.Email = email
		}
		if req.Password != nil {
			u.Hash = hash
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// DeleteUser removes a user together with everything hanging off the
// account: owned places with their reviews and amenity links, and the
// reviews the user wrote elsewhere.
func (f *Facade) DeleteUser(ctx context.Context, actor *model.Identity, id string) error {
	if actor == nil {
		return ErrAuthRequired
	}
	if !actor.CanActFor(id) {
		return ErrNotAuthorized
	}

	user, err := f.users.Get(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	owned, err := f.places.ListByAttribute(ctx, "owner_id", id)
	if err != nil {
		return err
	}
	for _, place := range owned {
		if err := f.removePlace(ctx, place.ID); err != nil {
			return err
		}
	}

	authored, err := f.reviews.ListByAttribute(ctx, "user_id", id)
	if err != nil {
		return err
	}
	for _, review := range authored {
		if err := f.reviews.Delete(ctx, review.ID); err != nil {
			return err
		}
	}

	return f.users.Delete(ctx, id)
}
