package model

import (
	"strings"
	"time"
)

// Place constraints
const (
	MaxTitleLength = 100
	MinLatitude    = -90.0
	MaxLatitude    = 90.0
	MinLongitude   = -180.0
	MaxLongitude   = 180.0
)

// Place represents a listing owned by a user
type Place struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	OwnerID     string    `json:"owner_id"` // Immutable after creation
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EntityID returns the storage key
func (p *Place) EntityID() string { return p.ID }

// Clone returns a deep copy for staged updates
func (p *Place) Clone() *Place {
	cp := *p
	return &cp
}

// Touch refreshes the updated_at timestamp
func (p *Place) Touch(now time.Time) { p.UpdatedAt = now }

// Attr exposes named attributes to the store's attribute lookups
func (p *Place) Attr(name string) (any, bool) {
	switch name {
	case "owner_id":
		return p.OwnerID, true
	case "title":
		return p.Title, true
	default:
		return nil, false
	}
}

// Validate checks the field invariants of the entity
func (p *Place) Validate() []FieldError {
	var errors []FieldError

	if l := len(strings.TrimSpace(p.Title)); l == 0 || l > MaxTitleLength {
		errors = append(errors, FieldError{Field: "title", Message: "title must be 1-100 characters"})
	}
	if p.Description == "" {
		errors = append(errors, FieldError{Field: "description", Message: "description is required"})
	}
	if p.Price <= 0 {
		errors = append(errors, FieldError{Field: "price", Message: "price must be greater than zero"})
	}
	if p.Latitude < MinLatitude || p.Latitude > MaxLatitude {
		errors = append(errors, FieldError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if p.Longitude < MinLongitude || p.Longitude > MaxLongitude {
		errors = append(errors, FieldError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}
	if p.OwnerID == "" {
		errors = append(errors, FieldError{Field: "owner_id", Message: "owner_id is required"})
	}

	return errors
}

// CreatePlaceRequest represents a request to create a place.
// The owner is always the authenticated caller.
type CreatePlaceRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Validate checks if the create request is valid
func (r *CreatePlaceRequest) Validate() []FieldError {
	var errors []FieldError

	if l := len(strings.TrimSpace(r.Title)); l == 0 || l > MaxTitleLength {
		errors = append(errors, FieldError{Field: "title", Message: "title must be 1-100 characters"})
	}
	if r.Description == "" {
		errors = append(errors, FieldError{Field: "description", Message: "description is required"})
	}
	if r.Price <= 0 {
		errors = append(errors, FieldError{Field: "price", Message: "price must be greater than zero"})
	}
	if r.Latitude < MinLatitude || r.Latitude > MaxLatitude {
		errors = append(errors, FieldError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if r.Longitude < MinLongitude || r.Longitude > MaxLongitude {
		errors = append(errors, FieldError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}

	return errors
}

// UpdatePlaceRequest represents a partial update to a place.
// Coordinates and ownership are immutable after creation.
type UpdatePlaceRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

// IsEmpty reports whether no field was submitted
func (r *UpdatePlaceRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Price == nil
}

// Validate checks if the update request is valid
func (r *UpdatePlaceRequest) Validate() []FieldError {
	var errors []FieldError

	if r.IsEmpty() {
		errors = append(errors, FieldError{Field: "body", Message: "at least one field must be provided"})
	}
	if r.Title != nil {
		if l := len(strings.TrimSpace(*r.Title)); l == 0 || l > MaxTitleLength {
			errors = append(errors, FieldError{Field: "title", Message: "title must be 1-100 characters"})
		}
	}
	if r.Description != nil && *r.Description == "" {
		errors = append(errors, FieldError{Field: "description", Message: "description is required"})
	}
	if r.Price != nil && *r.Price <= 0 {
		errors = append(errors, FieldError{Field: "price", Message: "price must be greater than zero"})
	}

	return errors
}

// SearchPlacesRequest represents a place search. Zero values are no-ops:
// an empty name fragment, a zero minimum price, and an empty amenity set
// do not constrain the result.
type SearchPlacesRequest struct {
	Name      string   `json:"name"`
	MinPrice  float64  `json:"min_price"`
	Amenities []string `json:"amenities"`
}

// PlaceSearchResult is a place projection enriched with its amenity names
type PlaceSearchResult struct {
	Place     *Place   `json:"place"`
	Amenities []string `json:"amenities"`
}
