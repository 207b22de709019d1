package routes

import (
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	tokens *auth.TokenService,
	authHandler *handlers.AuthHandler,
	projectHandler *handlers.ProjectHandler,
	generateHandler *handlers.GenerateHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limit per IP
	api.Use(middleware.RateLimit(cfg.RateLimitPerMinute))

	api.Get("/health", healthHandler.Check)

	// Identity is optional at this level; each handler decides on 401.
	api.Use(middleware.Authenticate(tokens))

	// Stricter limit on credential endpoints
	authGroup := api.Group("/auth", middleware.RateLimit(cfg.AuthRateLimitPerMinute))
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authHandler.Me)

	api.Get("/projects", projectHandler.List)
	api.Post("/projects", projectHandler.Create)
	api.Get("/projects/:id", projectHandler.Get)
	api.Put("/projects/:id", projectHandler.Update)

	api.Post("/generate", generateHandler.Generate)
}
