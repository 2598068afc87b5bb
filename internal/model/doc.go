// Package model defines domain entities and data structures for the Stayloft API.
//
// The model package contains the four domain entities (User, Place, Amenity,
// Review), the request/patch types consumed by the HTTP layer, and the error
// definitions shared across all layers.
//
// # Domain Entities
//
//   - User: account with hashed credentials and an admin flag
//   - Place: a listing owned by a user, with geo coordinates and a price
//   - Amenity: a named feature attachable to places (many-to-many)
//   - Review: a rated comment a user leaves on a place they do not own
//
// # Validation
//
// Entities carry their field invariants in Validate, which returns a list of
// FieldError values. Request types validate payload shape the same way.
// Update requests use pointer fields: a nil pointer means "leave unchanged",
// which makes the per-entity mutable-field allowlist structural.
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string `json:"type"`
//	    Title   string `json:"title"`
//	    Status  int    `json:"status"`
//	    Detail  string `json:"detail"`
//	}
package model
