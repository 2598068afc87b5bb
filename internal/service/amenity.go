package service

import (
	"context"
	"strings"

	"github.com/stayloft/api/internal/model"
)

// CreateAmenity adds an amenity to the catalog. Administrators only.
// Amenity names are unique.
func (f *Facade) CreateAmenity(ctx context.Context, actor *model.Identity, req *model.CreateAmenityRequest) (*model.Amenity, error) {
	if actor == nil {
		return nil, ErrAuthRequired
	}
	if !actor.IsAdmin {
		return nil, ErrNotAuthorized
	}
	if fields := req.Validate(); len(fields) > 0 {
		return nil, validationErr(fields)
	}

	name := strings.TrimSpace(req.Name)
	existing, err := f.amenities.GetByAttribute(ctx, "name", name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAmenityNameExists
	}

	now := f.now().UTC()
	amenity := &model.Amenity{
		ID:        f.newID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := f.amenities.Add(ctx, amenity); err != nil {
		return nil, err
	}
	return amenity, nil
}

// GetAmenity retrieves an amenity by id.
func (f *Facade) GetAmenity(ctx context.Context, id string) (*model.Amenity, error) {
	amenity, err := f.amenities.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if amenity == nil {
		return nil, ErrAmenityNotFound
	}
	return amenity, nil
}

// GetAmenityByName retrieves an amenity by its unique name.
func (f *Facade) GetAmenityByName(ctx context.Context, name string) (*model.Amenity, error) {
	amenity, err := f.amenities.GetByAttribute(ctx, "name", strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if amenity == nil {
		return nil, ErrAmenityNotFound
	}
	return amenity, nil
}

// ListAmenities retrieves the full amenity catalog.
func (f *Facade) ListAmenities(ctx context.Context) ([]*model.Amenity, error) {
	return f.amenities.GetAll(ctx)
}

// UpdateAmenity renames an amenity. Administrators only.
func (f *Facade) UpdateAmenity(ctx context.Context, actor *model.Identity, id string, req *model.UpdateAmenityRequest) (*model.Amenity, error) {
	if actor == nil {
		return nil, ErrAuthRequired
	}
	if !actor.IsAdmin {
		return nil, ErrNotAuthorized
	}
	if fields := req.Validate(); len(fields) > 0 {
		return nil, validationErr(fields)
	}

	name := strings.TrimSpace(req.Name)
	existing, err := f.amenities.GetByAttribute(ctx, "name", name)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, ErrAmenityNameExists
	}

	amenity, err := f.amenities.Update(ctx, id, func(a *model.Amenity) error {
		a.Name = name
		return nil
	})
	if err != nil {
		return nil, err
	}
	if amenity == nil {
		return nil, ErrAmenityNotFound
	}
	return amenity, nil
}

// DeleteAmenity removes an amenity from the catalog and detaches it from
// every place. Administrators only.
func (f *Facade) DeleteAmenity(ctx context.Context, actor *model.Identity, id string) error {
	if actor == nil {
		return ErrAuthRequired
	}
	if !actor.IsAdmin {
		return ErrNotAuthorized
	}

	amenity, err := f.amenities.Get(ctx, id)
	if err != nil {
		return err
	}
	if amenity == nil {
		return ErrAmenityNotFound
	}

	if err := f.links.UnlinkAmenity(ctx, id); err != nil {
		return err
	}
	return f.amenities.Delete(ctx, id)
}

// ListAmenityPlaces retrieves the places offering an amenity.
func (f *Facade) ListAmenityPlaces(ctx context.Context, amenityID string) ([]*model.Place, error) {
	amenity, err := f.amenities.Get(ctx, amenityID)
	if err != nil {
		return nil, err
	}
	if amenity == nil {
		return nil, ErrAmenityNotFound
	}

	ids, err := f.links.PlaceIDs(ctx, amenityID)
	if err != nil {
		return nil, err
	}

	places := make([]*model.Place, 0, len(ids))
	for _, id := range ids {
		place, err := f.places.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if place != nil {
			places = append(places, place)
		}
	}
	return places, nil
}
