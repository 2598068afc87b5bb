// Package middleware provides the HTTP middleware stack: request IDs,
// structured request logging, panic recovery, gzip compression, bearer-token
// authentication, per-client rate limiting, and idempotent replay of
// write requests.
//
// Handlers read the authenticated caller via GetIdentity:
//
//	actor := middleware.GetIdentity(r.Context())
//
// A nil identity means the request is anonymous.
package middleware
