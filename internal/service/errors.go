package service

import "errors"

// Centralized service layer errors.
// All errors returned by facade methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication / Authorization Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAuthRequired       = errors.New("authentication required")
	ErrNotAuthorized      = errors.New("not authorized to perform this action")
)

// ===== User Errors =====
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
)

// ===== Place Errors =====
var (
	ErrPlaceNotFound = errors.New("place not found")
	ErrOwnerNotFound = errors.New("owner not found")
)

// ===== Amenity Errors =====
var (
	ErrAmenityNotFound   = errors.New("amenity not found")
	ErrAmenityNameExists = errors.New("an amenity with this name already exists")
)

// ===== Review Errors =====
var (
	ErrReviewNotFound       = errors.New("review not found")
	ErrAlreadyReviewed      = errors.New("you have already reviewed this place")
	ErrCannotReviewOwnPlace = errors.New("you cannot review your own place")
)
