package service

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/stayloft/api/internal/model"
	"github.com/stayloft/api/internal/store"
)

// DefaultHashCost is the bcrypt work factor used for password hashing.
const DefaultHashCost = 12

// Facade exposes every marketplace operation over the entity stores.
type Facade struct {
	users     store.Store[*model.User]
	places    store.Store[*model.Place]
	amenities store.Store[*model.Amenity]
	reviews   store.Store[*model.Review]
	links     store.Links

	hashCost int
	now      func() time.Time
	newID    func() string
}

// Config holds the dependencies for the facade.
type Config struct {
	Users     store.Store[*model.User]
	Places    store.Store[*model.Place]
	Amenities store.Store[*model.Amenity]
	Reviews   store.Store[*model.Review]
	Links     store.Links

	// HashCost overrides the bcrypt work factor. Zero means DefaultHashCost;
	// tests lower it to keep hashing fast.
	HashCost int
}

// New creates a facade over the given stores.
func New(cfg Config) *Facade {
	cost := cfg.HashCost
	if cost == 0 {
		cost = DefaultHashCost
	}
	return &Facade{
		users:     cfg.Users,
		places:    cfg.Places,
		amenities: cfg.Amenities,
		reviews:   cfg.Reviews,
		links:     cfg.Links,
		hashCost:  cost,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// hashPassword derives a bcrypt hash from the plaintext password.
func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// checkPassword reports whether the plaintext password matches the hash.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// validationErr wraps request field errors in the shared validation error type.
func validationErr(fields []model.FieldError) error {
	return &model.ValidationError{Fields: fields}
}
