package handler

import (
	"net/http"

	"github.com/stayloft/api/internal/middleware"
	"github.com/stayloft/api/internal/model"
	"github.com/stayloft/api/internal/service"
)

// PlaceHandler handles place endpoints
type PlaceHandler struct {
	facade *service.Facade
}

// NewPlaceHandler creates a new place handler
func NewPlaceHandler(facade *service.Facade) *PlaceHandler {
	return &PlaceHandler{facade: facade}
}

// Create handles POST /v1/places - create a listing owned by the caller
func (h *PlaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePlaceRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	place, err := h.facade.CreatePlace(r.Context(), middleware.GetIdentity(r.Context()), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, place, map[string]string{
		"self":  "/v1/places/" + place.ID,
		"owner": "/v1/users/" + place.OwnerID,
	})
}

// List handles GET /v1/places - list all places
func (h *PlaceHandler) List(w http.ResponseWriter, r *http.Request) {
	places, err := h.facade.ListPlaces(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, places, nil)
}

// Get handles GET /v1/places/{placeId} - a single place
func (h *PlaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	placeID := r.PathValue("placeId")

	place, err := h.facade.GetPlace(r.Context(), placeID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, place, map[string]string{
		"self":      "/v1/places/" + place.ID,
		"owner":     "/v1/users/" + place.OwnerID,
		"amenities": "/v1/places/" + place.ID + "/amenities",
		"reviews":   "/v1/places/" + place.ID + "/reviews",
	})
}

// Update handles PATCH /v1/places/{placeId} - partial update
func (h *PlaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	placeID := r.PathValue("placeId")

	var req model.UpdatePlaceRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	place, err := h.facade.UpdatePlace(r.Context(), middleware.GetIdentity(r.Context()), placeID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, place, map[string]string{
		"self": "/v1/places/" + place.ID,
	})
}

// Delete handles DELETE /v1/places/{placeId} - remove a listing
func (h *PlaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	placeID := r.PathValue("placeId")

	if err := h.facade.DeletePlace(r.Context(), middleware.GetIdentity(r.Context()), placeID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// Owner handles GET /v1/places/{placeId}/owner - the place's owner
func (h *PlaceHandler) Owner(w http.ResponseWriter, r *http.Request) {
	placeID := r.PathValue("placeId")

	place, err := h.facade.GetPlace(r.Context(), placeID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	owner, err := h.facade.GetUser(r.Context(), place.OwnerID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, owner, map[string]string{
		"self":  "/v1/users/" + owner.ID,
		"place": "/v1/places/" + place.ID,
	})
}

// Amenities handles GET /v1/places/{placeId}/amenities
func (h *PlaceHandler) Amenities(w http.ResponseWriter, r *http.Request) {
	placeID := r.PathValue("placeId")

	amenities, err := h.facade.ListPlaceAmenities(r.Context(), placeID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, amenities, map[string]string{
		"place": "/v1/places/" + placeID,
	})
}

// Reviews handles GET /v1/places/{placeId}/reviews
func (h *PlaceHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	placeID := r.PathValue("placeId")

	reviews, err := h.facade.ListPlaceReviews(r.Context(), placeID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, reviews, map[string]string{
		"place": "/v1/places/" + placeID,
	})
}

// AttachAmenity handles PUT /v1/places/{placeId}/amenities/{amenityId}
func (h *PlaceHandler) AttachAmenity(w http.ResponseWriter, r *http.Request) {
	placeID := r.PathValue("placeId")
	amenityID := r.PathValue("amenityId")

	err := h.facade.AttachAmenity(r.Context(), middleware.GetIdentity(r.Context()), placeID, amenityID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// DetachAmenity handles DELETE /v1/places/{placeId}/amenities/{amenityId}
func (h *PlaceHandler) DetachAmenity(w http.ResponseWriter, r *http.Request) {
	placeID := r.PathValue("placeId")
	amenityID := r.PathValue("amenityId")

	err := h.facade.DetachAmenity(r.Context(), middleware.GetIdentity(r.Context()), placeID, amenityID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// Search handles POST /v1/places/search - filter the catalog
func (h *PlaceHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req model.SearchPlacesRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	results, err := h.facade.SearchPlaces(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, results, nil)
}
