package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stayloft/api/internal/model"
)

func seedCatalog(t *testing.T, f *Facade) {
	t.Helper()
	ctx := context.Background()

	owner := mustCreateUser(t, f, "owner@example.com")
	wifi := mustCreateAmenity(t, f, "Wi-Fi")
	pool := mustCreateAmenity(t, f, "Pool")

	cozy := mustCreatePlace(t, f, owner, "Cozy Apartment")
	if err := f.AttachAmenity(ctx, actorFor(owner), cozy.ID, wifi.ID); err != nil {
		t.Fatalf("AttachAmenity: %v", err)
	}

	beach, err := f.CreatePlace(ctx, actorFor(owner), &model.CreatePlaceRequest{
		Title:       "Beach House",
		Description: "Steps from the cozy shoreline",
		Price:       400,
		Latitude:    36.6,
		Longitude:   -4.5,
	})
	if err != nil {
		t.Fatalf("CreatePlace: %v", err)
	}
	if err := f.AttachAmenity(ctx, actorFor(owner), beach.ID, pool.ID); err != nil {
		t.Fatalf("AttachAmenity: %v", err)
	}

	if _, err := f.CreatePlace(ctx, actorFor(owner), &model.CreatePlaceRequest{
		Title:       "City Loft",
		Description: "Downtown studio",
		Price:       90,
		Latitude:    40.7,
		Longitude:   -74.0,
	}); err != nil {
		t.Fatalf("CreatePlace: %v", err)
	}
}

func TestSearchPlaces_NoFiltersReturnsAll(t *testing.T) {
	t.Parallel()

	f := newFacade()
	seedCatalog(t, f)

	results, err := f.SearchPlaces(context.Background(), &model.SearchPlacesRequest{})
	if err != nil {
		t.Fatalf("SearchPlaces: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestSearchPlaces_NameMatchesTitleAndDescription(t *testing.T) {
	t.Parallel()

	f := newFacade()
	seedCatalog(t, f)

	// "cozy" appears in one title and one description.
	results, err := f.SearchPlaces(context.Background(), &model.SearchPlacesRequest{Name: "COZY"})
	if err != nil {
		t.Fatalf("SearchPlaces: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Place.Title != "Beach House" || results[1].Place.Title != "Cozy Apartment" {
		t.Errorf("unexpected ordering: %q, %q", results[0].Place.Title, results[1].Place.Title)
	}
}

func TestSearchPlaces_MinPrice(t *testing.T) {
	t.Parallel()

	f := newFacade()
	seedCatalog(t, f)

	results, err := f.SearchPlaces(context.Background(), &model.SearchPlacesRequest{MinPrice: 100})
	if err != nil {
		t.Fatalf("SearchPlaces: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results at or above 100, got %d", len(results))
	}
}

func TestSearchPlaces_AmenityAnyOf(t *testing.T) {
	t.Parallel()

	f := newFacade()
	seedCatalog(t, f)

	results, err := f.SearchPlaces(context.Background(), &model.SearchPlacesRequest{
		Amenities: []string{"wi-fi", "Pool"},
	})
	if err != nil {
		t.Fatalf("SearchPlaces: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if len(r.Amenities) == 0 {
			t.Errorf("expected amenity names on %q, got none", r.Place.Title)
		}
	}
}

func TestSearchPlaces_CombinedFilters(t *testing.T) {
	t.Parallel()

	f := newFacade()
	seedCatalog(t, f)

	results, err := f.SearchPlaces(context.Background(), &model.SearchPlacesRequest{
		Name:      "cozy",
		MinPrice:  100,
		Amenities: []string{"Wi-Fi"},
	})
	if err != nil {
		t.Fatalf("SearchPlaces: %v", err)
	}
	if len(results) != 1 || results[0].Place.Title != "Cozy Apartment" {
		t.Errorf("unexpected results: %v", results)
	}
	if len(results[0].Amenities) != 1 || results[0].Amenities[0] != "Wi-Fi" {
		t.Errorf("unexpected amenities: %v", results[0].Amenities)
	}
}

func TestSearchPlaces_NoMatches(t *testing.T) {
	t.Parallel()

	f := newFacade()
	seedCatalog(t, f)

	results, err := f.SearchPlaces(context.Background(), &model.SearchPlacesRequest{Name: "castle"})
	if err != nil {
		t.Fatalf("SearchPlaces: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %v", results)
	}
	if errors.Is(err, ErrPlaceNotFound) {
		t.Error("an empty result set is not an error")
	}
}
