package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jub0bs/fcors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/stayloft/api/internal/config"
	"github.com/stayloft/api/internal/handler"
	"github.com/stayloft/api/internal/metrics"
	"github.com/stayloft/api/internal/middleware"
	"github.com/stayloft/api/internal/model"
	"github.com/stayloft/api/internal/service"
	"github.com/stayloft/api/internal/store"
	"github.com/stayloft/api/pkg/jwt"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	// Initialize the storage backend
	var (
		db        *sql.DB
		facadeCfg service.Config
	)

	switch cfg.Database.Driver {
	case "postgres":
		db, err = store.Open(ctx, cfg.Database.URL)
		if err != nil {
			slog.Error("failed to connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()

		if err := store.Migrate(cfg.Database.URL); err != nil {
			slog.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}

		slog.Info("connected to database", slog.String("driver", "postgres"))

		facadeCfg = service.Config{
			Users:     store.NewPostgres(db, store.UserTable()),
			Places:    store.NewPostgres(db, store.PlaceTable()),
			Amenities: store.NewPostgres(db, store.AmenityTable()),
			Reviews:   store.NewPostgres(db, store.ReviewTable()),
			Links:     store.NewPostgresLinks(db),
		}
	default:
		slog.Info("using in-memory storage", slog.String("driver", "memory"))

		facadeCfg = service.Config{
			Users:     store.NewMemory[*model.User](),
			Places:    store.NewMemory[*model.Place](),
			Amenities: store.NewMemory[*model.Amenity](),
			Reviews:   store.NewMemory[*model.Review](),
			Links:     store.NewMemoryLinks(),
		}
	}

	// Initialize services
	facade := service.New(facadeCfg)

	authService := service.NewAuthService(service.AuthConfig{
		Users:  facadeCfg.Users,
		Tokens: jwtService,
	})

	// Seed the bootstrap administrator
	if cfg.Seed.AdminPassword != "" {
		if _, err := facade.EnsureAdmin(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword); err != nil {
			slog.Error("failed to seed admin account", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slog.Info("admin account ready", slog.String("email", cfg.Seed.AdminEmail))
	} else {
		slog.Warn("SEED_ADMIN_PASSWORD not set, skipping admin seed")
	}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		PerMinute: cfg.RateLimit.PerMinute,
		Burst:     cfg.RateLimit.Burst,
	})
	defer rateLimiter.Stop()

	// Initialize idempotency store
	idempotencyStore := middleware.NewIdempotencyStore(middleware.IdempotencyConfig{
		TTL: 24 * time.Hour,
	})
	defer idempotencyStore.Stop()

	// Initialize metrics
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(facade)
	placeHandler := handler.NewPlaceHandler(facade)
	amenityHandler := handler.NewAmenityHandler(facade)
	reviewHandler := handler.NewReviewHandler(facade)

	var pinger handler.Pinger
	if db != nil {
		pinger = db
	}
	healthHandler := handler.NewHealthHandler(pinger)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health and metrics endpoints
	mux.HandleFunc("GET /v1/health/live", healthHandler.Live)
	mux.HandleFunc("GET /v1/health/ready", healthHandler.Ready)
	mux.Handle("GET /metrics", metrics.Handler(registry))

	// Auth endpoints
	authMiddleware := middleware.Auth(jwtService)
	mux.HandleFunc("POST /v1/auth/login", authHandler.Login)
	mux.Handle("GET /v1/auth/me", authMiddleware(http.HandlerFunc(authHandler.Me)))

	// User endpoints
	mux.Handle("POST /v1/users", authMiddleware(http.HandlerFunc(userHandler.Create)))
	mux.HandleFunc("GET /v1/users", userHandler.List)
	mux.HandleFunc("GET /v1/users/{userId}", userHandler.Get)
	mux.Handle("PATCH /v1/users/{userId}", authMiddleware(http.HandlerFunc(userHandler.Update)))
	mux.Handle("DELETE /v1/users/{userId}", authMiddleware(http.HandlerFunc(userHandler.Delete)))
	mux.HandleFunc("GET /v1/users/{userId}/places", userHandler.Places)
	mux.HandleFunc("GET /v1/users/{userId}/reviews", userHandler.Reviews)

	// Place endpoints
	mux.Handle("POST /v1/places", authMiddleware(http.HandlerFunc(placeHandler.Create)))
	mux.HandleFunc("GET /v1/places", placeHandler.List)
	mux.HandleFunc("POST /v1/places/search", placeHandler.Search)
	mux.HandleFunc("GET /v1/places/{placeId}", placeHandler.Get)
	mux.Handle("PATCH /v1/places/{placeId}", authMiddleware(http.HandlerFunc(placeHandler.Update)))
	mux.Handle("DELETE /v1/places/{placeId}", authMiddleware(http.HandlerFunc(placeHandler.Delete)))
	mux.HandleFunc("GET /v1/places/{placeId}/owner", placeHandler.Owner)
	mux.HandleFunc("GET /v1/places/{placeId}/amenities", placeHandler.Amenities)
	mux.HandleFunc("GET /v1/places/{placeId}/reviews", placeHandler.Reviews)
	mux.Handle("PUT /v1/places/{placeId}/amenities/{amenityId}", authMiddleware(http.HandlerFunc(placeHandler.AttachAmenity)))
	mux.Handle("DELETE /v1/places/{placeId}/amenities/{amenityId}", authMiddleware(http.HandlerFunc(placeHandler.DetachAmenity)))

	// Amenity endpoints
	mux.Handle("POST /v1/amenities", authMiddleware(http.HandlerFunc(amenityHandler.Create)))
	mux.HandleFunc("GET /v1/amenities", amenityHandler.List)
	mux.HandleFunc("GET /v1/amenities/{amenityId}", amenityHandler.Get)
	mux.Handle("PATCH /v1/amenities/{amenityId}", authMiddleware(http.HandlerFunc(amenityHandler.Update)))
	mux.Handle("DELETE /v1/amenities/{amenityId}", authMiddleware(http.HandlerFunc(amenityHandler.Delete)))
	mux.HandleFunc("GET /v1/amenities/{amenityId}/places", amenityHandler.Places)

	// Review endpoints
	mux.Handle("POST /v1/reviews", authMiddleware(http.HandlerFunc(reviewHandler.Create)))
	mux.HandleFunc("GET /v1/reviews", reviewHandler.List)
	mux.HandleFunc("GET /v1/reviews/{reviewId}", reviewHandler.Get)
	mux.HandleFunc("GET /v1/reviews/{reviewId}/writer", reviewHandler.Writer)
	mux.HandleFunc("GET /v1/reviews/{reviewId}/place", reviewHandler.Place)
	mux.Handle("PATCH /v1/reviews/{reviewId}", authMiddleware(http.HandlerFunc(reviewHandler.Update)))
	mux.Handle("DELETE /v1/reviews/{reviewId}", authMiddleware(http.HandlerFunc(reviewHandler.Delete)))

	// CORS
	cors, err := fcors.AllowAccess(
		fcors.FromOrigins(cfg.Server.AllowedOrigins[0], cfg.Server.AllowedOrigins[1:]...),
		fcors.WithMethods(
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		),
		fcors.WithRequestHeaders("Authorization", "Content-Type", "Idempotency-Key"),
	)
	if err != nil {
		slog.Error("invalid CORS configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		collector.Middleware,
		middleware.Middleware(cors),
		middleware.OptionalAuth(jwtService),
		middleware.RateLimit(rateLimiter),
		middleware.Idempotency(idempotencyStore),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
