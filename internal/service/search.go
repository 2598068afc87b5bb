package service

import (
	"context"
	"sort"
	"strings"

	"github.com/stayloft/api/internal/model"
)

// SearchPlaces filters the catalog by name fragment, minimum price, and
// amenity names. Filters combine with AND; the amenity filter matches a
// place offering any of the requested amenities. Zero-value filters do not
// constrain the result.
func (f *Facade) SearchPlaces(ctx context.Context, req *model.SearchPlacesRequest) ([]*model.PlaceSearchResult, error) {
	places, err := f.places.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	fragment := strings.ToLower(strings.TrimSpace(req.Name))
	wanted := make(map[string]bool, len(req.Amenities))
	for _, name := range req.Amenities {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			wanted[name] = true
		}
	}

	results := make([]*model.PlaceSearchResult, 0, len(places))
	for _, place := range places {
		if fragment != "" &&
			!strings.Contains(strings.ToLower(place.Title), fragment) &&
			!strings.Contains(strings.ToLower(place.Description), fragment) {
			continue
		}
		if req.MinPrice > 0 && place.Price < req.MinPrice {
			continue
		}

		names, err := f.amenityNames(ctx, place.ID)
		if err != nil {
			return nil, err
		}

		if len(wanted) > 0 {
			match := false
			for _, name := range names {
				if wanted[strings.ToLower(name)] {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}

		results = append(results, &model.PlaceSearchResult{
			Place:     place,
			Amenities: names,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Place.Title < results[j].Place.Title
	})
	return results, nil
}

func (f *Facade) amenityNames(ctx context.Context, placeID string) ([]string, error) {
	ids, err := f.links.AmenityIDs(ctx, placeID)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		amenity, err := f.amenities.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if amenity != nil {
			names = append(names, amenity.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}
