package model

import "time"

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// Review represents a rated comment a user leaves on a place
type Review struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	UserID    string    `json:"user_id"`
	PlaceID   string    `json:"place_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntityID returns the storage key
func (r *Review) EntityID() string { return r.ID }

// Clone returns a deep copy for staged updates
func (r *Review) Clone() *Review {
	cp := *r
	return &cp
}

// Touch refreshes the updated_at timestamp
func (r *Review) Touch(now time.Time) { r.UpdatedAt = now }

// Attr exposes named attributes to the store's attribute lookups
func (r *Review) Attr(name string) (any, bool) {
	switch name {
	case "user_id":
		return r.UserID, true
	case "place_id":
		return r.PlaceID, true
	default:
		return nil, false
	}
}

// Validate checks the field invariants of the entity
func (r *Review) Validate() []FieldError {
	var errors []FieldError

	if r.Text == "" {
		errors = append(errors, FieldError{Field: "text", Message: "text is required"})
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		errors = append(errors, FieldError{Field: "rating", Message: "rating must be between 1 and 5"})
	}
	if r.UserID == "" {
		errors = append(errors, FieldError{Field: "user_id", Message: "user_id is required"})
	}
	if r.PlaceID == "" {
		errors = append(errors, FieldError{Field: "place_id", Message: "place_id is required"})
	}

	return errors
}

// CreateReviewRequest represents a request to review a place.
// The writer is always the authenticated caller.
type CreateReviewRequest struct {
	Text    string `json:"text"`
	Rating  int    `json:"rating"`
	PlaceID string `json:"place_id"`
}

// Validate checks if the create request is valid
func (r *CreateReviewRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Text == "" {
		errors = append(errors, FieldError{Field: "text", Message: "text is required"})
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		errors = append(errors, FieldError{Field: "rating", Message: "rating must be between 1 and 5"})
	}
	if r.PlaceID == "" {
		errors = append(errors, FieldError{Field: "place_id", Message: "place_id is required"})
	}

	return errors
}

// UpdateReviewRequest represents a partial update to a review.
// Only text and rating are mutable.
type UpdateReviewRequest struct {
	Text   *string `json:"text,omitempty"`
	Rating *int    `json:"rating,omitempty"`
}

// IsEmpty reports whether no field was submitted
func (r *UpdateReviewRequest) IsEmpty() bool {
	return r.Text == nil && r.Rating == nil
}

// Validate checks if the update request is valid
func (r *UpdateReviewRequest) Validate() []FieldError {
	var errors []FieldError

	if r.IsEmpty() {
		errors = append(errors, FieldError{Field: "body", Message: "at least one field must be provided"})
	}
	if r.Text != nil && *r.Text == "" {
		errors = append(errors, FieldError{Field: "text", Message: "text is required"})
	}
	if r.Rating != nil && (*r.Rating < MinRating || *r.Rating > MaxRating) {
		errors = append(errors, FieldError{Field: "rating", Message: "rating must be between 1 and 5"})
	}

	return errors
}
