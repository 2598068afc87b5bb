package model

import (
	"strings"
	"time"
)

// MaxAmenityNameLength bounds amenity names
const MaxAmenityNameLength = 50

// Amenity represents a named feature attachable to places
type Amenity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntityID returns the storage key
func (a *Amenity) EntityID() string { return a.ID }

// Clone returns a deep copy for staged updates
func (a *Amenity) Clone() *Amenity {
	cp := *a
	return &cp
}

// Touch refreshes the updated_at timestamp
func (a *Amenity) Touch(now time.Time) { a.UpdatedAt = now }

// Attr exposes named attributes to the store's attribute lookups
func (a *Amenity) Attr(name string) (any, bool) {
	switch name {
	case "name":
		return a.Name, true
	default:
		return nil, false
	}
}

// Validate checks the field invariants of the entity
func (a *Amenity) Validate() []FieldError {
	var errors []FieldError

	if l := len(strings.TrimSpace(a.Name)); l == 0 || l > MaxAmenityNameLength {
		errors = append(errors, FieldError{Field: "name", Message: "name must be 1-50 characters"})
	}

	return errors
}

// CreateAmenityRequest represents a request to create an amenity (admin only)
type CreateAmenityRequest struct {
	Name string `json:"name"`
}

// Validate checks if the create request is valid
func (r *CreateAmenityRequest) Validate() []FieldError {
	var errors []FieldError

	if l := len(strings.TrimSpace(r.Name)); l == 0 || l > MaxAmenityNameLength {
		errors = append(errors, FieldError{Field: "name", Message: "name must be 1-50 characters"})
	}

	return errors
}

// UpdateAmenityRequest renames an amenity. The name is the only mutable field.
type UpdateAmenityRequest struct {
	Name string `json:"name"`
}

// Validate checks if the update request is valid
func (r *UpdateAmenityRequest) Validate() []FieldError {
	return (*CreateAmenityRequest)(r).Validate()
}
