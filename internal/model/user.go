package model

import (
	"regexp"
	"strings"
	"time"
)

// Name and credential constraints
const (
	MaxNameLength     = 50
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9+_.-]+@[a-zA-Z0-9.-]+$`)

// IsValidEmail reports whether the address matches the accepted format.
// Callers are expected to pass a trimmed, lowercased address.
func IsValidEmail(email string) bool {
	return email != "" && emailPattern.MatchString(email)
}

// User represents a user account
type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Hash      string    `json:"-"` // Never expose the password hash
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntityID returns the storage key
func (u *User) EntityID() string { return u.ID }

// Clone returns a deep copy for staged updates
func (u *User) Clone() *User {
	cp := *u
	return &cp
}

// Touch refreshes the updated_at timestamp
func (u *User) Touch(now time.Time) { u.UpdatedAt = now }

// Attr exposes named attributes to the store's attribute lookups
func (u *User) Attr(name string) (any, bool) {
	switch name {
	case "email":
		return u.Email, true
	case "first_name":
		return u.FirstName, true
	case "last_name":
		return u.LastName, true
	default:
		return nil, false
	}
}

// Validate checks the field invariants of the entity
func (u *User) Validate() []FieldError {
	var errors []FieldError

	if l := len(strings.TrimSpace(u.FirstName)); l == 0 || l > MaxNameLength {
		errors = append(errors, FieldError{Field: "first_name", Message: "first_name must be 1-50 characters"})
	}
	if l := len(strings.TrimSpace(u.LastName)); l == 0 || l > MaxNameLength {
		errors = append(errors, FieldError{Field: "last_name", Message: "last_name must be 1-50 characters"})
	}
	if !IsValidEmail(u.Email) {
		errors = append(errors, FieldError{Field: "email", Message: "invalid email format"})
	}
	if u.Hash == "" {
		errors = append(errors, FieldError{Field: "password", Message: "password is required"})
	}

	return errors
}

// CreateUserRequest represents a request to register a user (admin only)
type CreateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	IsAdmin   bool   `json:"is_admin,omitempty"`
}

// Validate checks if the create request is valid
func (r *CreateUserRequest) Validate() []FieldError {
	var errors []FieldError

	if l := len(strings.TrimSpace(r.FirstName)); l == 0 || l > MaxNameLength {
		errors = append(errors, FieldError{Field: "first_name", Message: "first_name must be 1-50 characters"})
	}
	if l := len(strings.TrimSpace(r.LastName)); l == 0 || l > MaxNameLength {
		errors = append(errors, FieldError{Field: "last_name", Message: "last_name must be 1-50 characters"})
	}
	if !IsValidEmail(strings.ToLower(strings.TrimSpace(r.Email))) {
		errors = append(errors, FieldError{Field: "email", Message: "invalid email format"})
	}
	if err := ValidatePassword(r.Password); err != "" {
		errors = append(errors, FieldError{Field: "password", Message: err})
	}

	return errors
}

// UpdateUserRequest represents a partial update to a user.
// Email and password may only be set by administrators.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Password  *string `json:"password,omitempty"`
}

// IsEmpty reports whether no field was submitted
func (r *UpdateUserRequest) IsEmpty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Email == nil && r.Password == nil
}

// Validate checks if the update request is valid
func (r *UpdateUserRequest) Validate() []FieldError {
	var errors []FieldError

	if r.IsEmpty() {
		errors = append(errors, FieldError{Field: "body", Message: "at least one field must be provided"})
	}
	if r.FirstName != nil {
		if l := len(strings.TrimSpace(*r.FirstName)); l == 0 || l > MaxNameLength {
			errors = append(errors, FieldError{Field: "first_name", Message: "first_name must be 1-50 characters"})
		}
	}
	if r.LastName != nil {
		if l := len(strings.TrimSpace(*r.LastName)); l == 0 || l > MaxNameLength {
			errors = append(errors, FieldError{Field: "last_name", Message: "last_name must be 1-50 characters"})
		}
	}
	if r.Email != nil && !IsValidEmail(strings.ToLower(strings.TrimSpace(*r.Email))) {
		errors = append(errors, FieldError{Field: "email", Message: "invalid email format"})
	}
	if r.Password != nil {
		if err := ValidatePassword(*r.Password); err != "" {
			errors = append(errors, FieldError{Field: "password", Message: err})
		}
	}

	return errors
}

// ValidatePassword returns a message describing why the password is
// unacceptable, or "" if it is fine.
func ValidatePassword(password string) string {
	switch {
	case password == "":
		return "password is required"
	case len(password) < MinPasswordLength:
		return "password must be at least 8 characters"
	case len(password) > MaxPasswordLength:
		return "password must be at most 128 characters"
	}
	return ""
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
