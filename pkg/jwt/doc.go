// Package jwt provides JSON Web Token utilities for the Stayloft API.
//
// The jwt package handles RS256 token signing, validation, and claims
// extraction for authentication.
//
// # Token Generation
//
// Sign tokens for authenticated users:
//
//	service, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "./keys/private.pem",
//	    PublicKeyPath:  "./keys/public.pem",
//	    Issuer:         "api.stayloft.dev",
//	    ExpirationMins: 60,
//	})
//
//	token, err := service.Sign(jwt.Claims{Subject: userID, UserID: userID})
//
// # Token Validation
//
// Validate and extract claims:
//
//	claims, err := service.Validate(tokenString)
//	if err != nil {
//	    // Invalid or expired token
//	}
//	userID := claims.UserID
//
// Only RS256 tokens are accepted; a token whose header names any other
// algorithm fails validation. Failures are reported with the sentinel errors
// ErrInvalidToken, ErrTokenExpired, ErrTokenNotYetValid and
// ErrInvalidSignature.
//
// # Claims
//
// Standard JWT claims plus the custom claims used for authorization:
//
//	type Claims struct {
//	    Subject string // account ID
//	    Email   string
//	    UserID  string
//	    Role    string // "user" or "admin"
//	}
package jwt
