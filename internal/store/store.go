// Package store provides the keyed persistence abstraction behind the
// service facade. Two backends implement it: an in-memory map for tests and
// demo runs, and a Postgres-backed table store for durable deployments. The
// facade never knows which one it holds; both expose identical behavior.
package store

import (
	"context"
	"time"

	"github.com/stayloft/api/internal/model"
)

// Entity is implemented by every stored domain record.
type Entity[T any] interface {
	// EntityID returns the storage key.
	EntityID() string
	// Clone returns an independent copy used for staged updates.
	Clone() T
	// Touch refreshes the record's updated_at timestamp.
	Touch(now time.Time)
	// Attr resolves a named attribute for GetByAttribute/ListByAttribute.
	// The second result is false for attributes the entity does not index.
	Attr(name string) (any, bool)
	// Validate reports field-invariant violations.
	Validate() []model.FieldError
}

// Store is the backend-agnostic keyed store for one entity type.
//
// Update applies the mutation to a staged copy of the record, re-validates
// the whole entity, and commits only if validation passes, so a failing
// partial update never leaves a half-mutated record behind. Get and
// GetByAttribute return the zero value (nil) without error when nothing
// matches; Update and Delete are no-ops for absent ids.
type Store[T Entity[T]] interface {
	Add(ctx context.Context, entity T) error
	Get(ctx context.Context, id string) (T, error)
	GetAll(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id string, mutate func(T) error) (T, error)
	Delete(ctx context.Context, id string) error
	GetByAttribute(ctx context.Context, name string, value any) (T, error)
	ListByAttribute(ctx context.Context, name string, value any) ([]T, error)
}

// Links is the place-amenity association store. Pairs are unordered sets:
// linking twice reports created=false the second time.
type Links interface {
	Link(ctx context.Context, placeID, amenityID string) (created bool, err error)
	Unlink(ctx context.Context, placeID, amenityID string) (removed bool, err error)
	AmenityIDs(ctx context.Context, placeID string) ([]string, error)
	PlaceIDs(ctx context.Context, amenityID string) ([]string, error)
	UnlinkPlace(ctx context.Context, placeID string) error
	UnlinkAmenity(ctx context.Context, amenityID string) error
}

// validationError wraps entity validation failures from staged updates.
func validationError(fields []model.FieldError) error {
	return &model.ValidationError{Fields: fields}
}
