package handler

import (
	"errors"

	"github.com/stayloft/api/internal/model"
	"github.com/stayloft/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	// Field-level failures carry their own details.
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return model.NewValidationError(verr.Fields)
	}

	// Already a problem response, pass it through.
	var problem *model.ProblemDetails
	if errors.As(err, &problem) {
		return problem
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAuthRequired):
		return model.NewUnauthorizedError(err.Error())

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrNotAuthorized):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrOwnerNotFound):
		return model.NewNotFoundError("owner")
	case errors.Is(err, service.ErrPlaceNotFound):
		return model.NewNotFoundError("place")
	case errors.Is(err, service.ErrAmenityNotFound):
		return model.NewNotFoundError("amenity")
	case errors.Is(err, service.ErrReviewNotFound):
		return model.NewNotFoundError("review")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrAmenityNameExists),
		errors.Is(err, service.ErrAlreadyReviewed):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrCannotReviewOwnPlace):
		return model.NewValidationError([]model.FieldError{{Field: "place_id", Message: err.Error()}})

	default:
		return model.NewInternalError("an unexpected error occurred")
	}
}
