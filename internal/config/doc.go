// Package config manages application configuration for the Stayloft API.
//
// The config package loads and validates configuration from environment variables.
// All configuration is centralized here to provide a single source of truth.
//
// # Configuration Loading
//
// Configuration is loaded from environment variables:
//
//	cfg, err := config.Load()
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: storage backend selection (memory or postgres)
//   - JWTConfig: JWT signing and validation settings
//   - SeedConfig: bootstrap administrator account
//   - RateLimitConfig: per-client request throttling
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT            - HTTP server port (default: 8080)
//	SERVER_ENV             - development, production or test
//	CORS_ALLOWED_ORIGINS   - comma-separated list of allowed origins
//	DB_DRIVER              - "memory" or "postgres" (default: memory)
//	DATABASE_URL           - PostgreSQL connection URL
//	JWT_PRIVATE_KEY_PATH   - RSA private key used for token signing
//	JWT_PUBLIC_KEY_PATH    - RSA public key used for token validation
//	JWT_EXPIRATION_MINS    - token lifetime in minutes
//	SEED_ADMIN_EMAIL       - email of the bootstrap administrator
//	SEED_ADMIN_PASSWORD    - password of the bootstrap administrator
//	RATE_LIMIT_PER_MINUTE  - sustained requests allowed per client per minute
//	RATE_LIMIT_BURST       - burst size on top of the sustained rate
//
// Sensible defaults are provided for development; Validate enforces the
// stricter rules that apply when SERVER_ENV is "production".
package config
