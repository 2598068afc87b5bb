package service

import (
	"context"
	"strings"

	"github.com/stayloft/api/internal/model"
)

// CreatePlace creates a listing owned by the acting user.
func (f *Facade) CreatePlace(ctx context.Context, actor *model.Identity, req *model.CreatePlaceRequest) (*model.Place, error) {
	if actor == nil {
		return nil, ErrAuthRequired
	}
	if fields := req.Validate(); len(fields) > 0 {
		return nil, validationErr(fields)
	}

	owner, err := f.users.Get(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrOwnerNotFound
	}

	now := f.now().UTC()
	place := &model.Place{
		ID:          f.newID(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Price:       req.Price,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		OwnerID:     owner.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := f.places.Add(ctx, place); err != nil {
		return nil, err
	}
	return place, nil
}

// GetPlace retrieves a place by id.
func (f *Facade) GetPlace(ctx context.Context, id string) (*model.Place, error) {
	place, err := f.places.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, ErrPlaceNotFound
	}
	return place, nil
}

// ListPlaces retrieves all places.
func (f *Facade) ListPlaces(ctx context.Context) ([]*model.Place, error) {
	return f.places.GetAll(ctx)
}

// UpdatePlace applies a partial update to a place. Only the owner or an
// administrator may modify a listing, and only its title, description, and
// price are mutable.
func (f *Facade) UpdatePlace(ctx context.Context, actor *model.Identity, id string, req *model.UpdatePlaceRequest) (*model.Place, error) {
	if actor == nil {
		return nil, ErrAuthRequired
	}
	if fields := req.Validate(); len(fields) > 0 {
		return nil, validationErr(fields)
	}

	place, err := f.places.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, ErrPlaceNotFound
	}
	if !actor.CanActFor(place.OwnerID) {
		return nil, ErrNotAuthorized
	}

	updated, err := f.places.Update(ctx, id, func(p *model.Place) error {
		if req.Title != nil {
			p.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrPlaceNotFound
	}
	return updated, nil
}

// DeletePlace removes a place together with its reviews and amenity links.
// Only the owner or an administrator may delete a listing.
func (f *Facade) DeletePlace(ctx context.Context, actor *model.Identity, id string) error {
	if actor == nil {
		return ErrAuthRequired
	}

	place, err := f.places.Get(ctx, id)
	if err != nil {
		return err
	}
	if place == nil {
		return ErrPlaceNotFound
	}
	if !actor.CanActFor(place.OwnerID) {
		return ErrNotAuthorized
	}

	return f.removePlace(ctx, id)
}

// removePlace drops a place's reviews and amenity links, then the place.
func (f *Facade) removePlace(ctx context.Context, id string) error {
	reviews, err := f.reviews.ListByAttribute(ctx, "place_id", id)
	if err != nil {
		return err
	}
	for _, review := range reviews {
		if err := f.reviews.Delete(ctx, review.ID); err != nil {
			return err
		}
	}
	if err := f.links.UnlinkPlace(ctx, id); err != nil {
		return err
	}
	return f.places.Delete(ctx, id)
}

// AttachAmenity links an amenity to a place. Only the owner or an
// administrator may change a listing's amenities. Attaching an amenity that
// is already linked is a no-op.
func (f *Facade) AttachAmenity(ctx context.Context, actor *model.Identity, placeID, amenityID string) error {
	if err := f.authorizePlaceChange(ctx, actor, placeID); err != nil {
		return err
	}

	amenity, err := f.amenities.Get(ctx, amenityID)
	if err != nil {
		return err
	}
	if amenity == nil {
		return ErrAmenityNotFound
	}

	_, err = f.links.Link(ctx, placeID, amenityID)
	return err
}

// DetachAmenity unlinks an amenity from a place.
func (f *Facade) DetachAmenity(ctx context.Context, actor *model.Identity, placeID, amenityID string) error {
	if err := f.authorizePlaceChange(ctx, actor, placeID); err != nil {
		return err
	}

	amenity, err := f.amenities.Get(ctx, amenityID)
	if err != nil {
		return err
	}
	if amenity == nil {
		return ErrAmenityNotFound
	}

	_, err = f.links.Unlink(ctx, placeID, amenityID)
	return err
}

func (f *Facade) authorizePlaceChange(ctx context.Context, actor *model.Identity, placeID string) error {
	if actor == nil {
		return ErrAuthRequired
	}
	place, err := f.places.Get(ctx, placeID)
	if err != nil {
		return err
	}
	if place == nil {
		return ErrPlaceNotFound
	}
	if !actor.CanActFor(place.OwnerID) {
		return ErrNotAuthorized
	}
	return nil
}

// ListPlaceAmenities retrieves the amenities linked to a place. A place
// with no amenities yields an empty list; an unknown place id is an error.
func (f *Facade) ListPlaceAmenities(ctx context.Context, placeID string) ([]*model.Amenity, error) {
	place, err := f.places.Get(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, ErrPlaceNotFound
	}

	ids, err := f.links.AmenityIDs(ctx, placeID)
	if err != nil {
		return nil, err
	}

	amenities := make([]*model.Amenity, 0, len(ids))
	for _, id := range ids {
		amenity, err := f.amenities.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if amenity != nil {
			amenities = append(amenities, amenity)
		}
	}
	return amenities, nil
}

// ListPlaceReviews retrieves the reviews written about a place.
func (f *Facade) ListPlaceReviews(ctx context.Context, placeID string) ([]*model.Review, error) {
	place, err := f.places.Get(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, ErrPlaceNotFound
	}

	reviews, err := f.reviews.ListByAttribute(ctx, "place_id", placeID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []*model.Review{}
	}
	return reviews, nil
}

// ListUserPlaces retrieves the places owned by a user.
func (f *Facade) ListUserPlaces(ctx context.Context, userID string) ([]*model.Place, error) {
	user, err := f.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	places, err := f.places.ListByAttribute(ctx, "owner_id", userID)
	if err != nil {
		return nil, err
	}
	if places == nil {
		places = []*model.Place{}
	}
	return places, nil
}
