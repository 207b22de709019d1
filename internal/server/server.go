// Package server assembles the HTTP application from its dependencies.
package server

import (
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/validation"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

type Options struct {
	// AccessLog turns on the per-request log line.
	AccessLog bool
}

// New wires services, handlers and middleware around an open database handle.
func New(cfg *config.Config, db *gorm.DB, opts Options) *fiber.App {
	validator := validation.NewValidator()
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)

	authService := services.NewAuthService(db, cfg, tokens, validator)
	projectService := services.NewProjectService(db, validator)
	generateService := services.NewGenerateService(cfg.GenerateDelay, validator)

	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	generateHandler := handlers.NewGenerateHandler(authService, generateService)
	healthHandler := handlers.NewHealthHandler(db)

	app := fiber.New(fiber.Config{
		BodyLimit:             cfg.BodyLimit,
		ErrorHandler:          handlers.ErrorHandler,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	if opts.AccessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
		}))
	}
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, tokens, authHandler, projectHandler, generateHandler, healthHandler)

	return app
}
