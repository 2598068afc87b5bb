// Package handler provides the HTTP endpoints of the marketplace API.
//
// Each handler struct wraps the service facade for one feature area (auth,
// users, places, amenities, reviews). Handlers stay thin: they decode the
// request, hand it to the facade, and translate the result through the
// shared response helpers.
//
// # Response Format
//
//   - WriteData: single resource with optional HATEOAS links
//   - WriteCollection: list of resources
//   - WriteError: RFC 9457 Problem Details error response
//
// Service errors are translated centrally by MapServiceError, so every
// endpoint reports the same status code for the same failure.
//
// # Authentication
//
// Protected routes sit behind the auth middleware; handlers read the caller
// via middleware.GetIdentity(r.Context()) and pass it to the facade, which
// owns all authorization decisions.
package handler
