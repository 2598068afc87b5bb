// Package service implements the business rules of the marketplace: account
// management, listings, amenities, reviews, and search. All rules live in a
// single Facade so handlers stay thin; the facade owns validation,
// authorization, uniqueness checks, and cross-entity cascades, and talks to
// storage only through the store interfaces.
package service
