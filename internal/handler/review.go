package handler

import (
	"net/http"

	"github.com/stayloft/api/internal/middleware"
	"github.com/stayloft/api/internal/model"
	"github.com/stayloft/api/internal/service"
)

// ReviewHandler handles review endpoints
type ReviewHandler struct {
	facade *service.Facade
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(facade *service.Facade) *ReviewHandler {
	return &ReviewHandler{facade: facade}
}

// Create handles POST /v1/reviews - leave a review
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateReviewRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	review, err := h.facade.CreateReview(r.Context(), middleware.GetIdentity(r.Context()), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, review, map[string]string{
		"self":  "/v1/reviews/" + review.ID,
		"place": "/v1/places/" + review.PlaceID,
	})
}

// List handles GET /v1/reviews - list all reviews
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.facade.ListReviews(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, reviews, nil)
}

// Get handles GET /v1/reviews/{reviewId} - a single review
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	reviewID := r.PathValue("reviewId")

	review, err := h.facade.GetReview(r.Context(), reviewID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, review, map[string]string{
		"self":  "/v1/reviews/" + review.ID,
		"place": "/v1/places/" + review.PlaceID,
	})
}

// Update handles PATCH /v1/reviews/{reviewId} - edit text or rating
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	reviewID := r.PathValue("reviewId")

	var req model.UpdateReviewRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	review, err := h.facade.UpdateReview(r.Context(), middleware.GetIdentity(r.Context()), reviewID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, review, map[string]string{
		"self": "/v1/reviews/" + review.ID,
	})
}

// Writer handles GET /v1/reviews/{reviewId}/writer - the review's author
func (h *ReviewHandler) Writer(w http.ResponseWriter, r *http.Request) {
	reviewID := r.PathValue("reviewId")

	review, err := h.facade.GetReview(r.Context(), reviewID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	user, err := h.facade.GetUser(r.Context(), review.UserID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, user, map[string]string{
		"self":   "/v1/users/" + user.ID,
		"review": "/v1/reviews/" + review.ID,
	})
}

// Place handles GET /v1/reviews/{reviewId}/place - the reviewed place
func (h *ReviewHandler) Place(w http.ResponseWriter, r *http.Request) {
	reviewID := r.PathValue("reviewId")

	review, err := h.facade.GetReview(r.Context(), reviewID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	place, err := h.facade.GetPlace(r.Context(), review.PlaceID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, place, map[string]string{
		"self":   "/v1/places/" + place.ID,
		"review": "/v1/reviews/" + review.ID,
	})
}

// Delete handles DELETE /v1/reviews/{reviewId} - author only
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	reviewID := r.PathValue("reviewId")

	if err := h.facade.DeleteReview(r.Context(), middleware.GetIdentity(r.Context()), reviewID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
