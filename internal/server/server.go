package server

import (
	"time"

	"github.com/taskloom/taskloom/internal/auth"
	"github.com/taskloom/taskloom/internal/controllers"
	"github.com/taskloom/taskloom/internal/middlewares"
	"github.com/taskloom/taskloom/internal/version"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

type HTTPServerDependencies struct {
	SessionVerifier               auth.SessionVerifier
	WorkflowCredentialsController *controllers.WorkflowCredentialsController
}

func NewHTTPServer(deps HTTPServerDependencies) *fiber.App {
	router := fiber.New(fiber.Config{
		AppName: "taskloom-api",
	})

	router.Use(recover.New())
	router.Use(cors.New())
	router.Use(middlewares.RequestIDMiddleware())
	router.Use(logger.New())

	// Health check endpoint (no authentication required)
	router.Get("/health", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    "healthy",
			"service":   "taskloom-api",
			"version":   version.GetVersion(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := router.Group("/api/v1")
	api.Use(middlewares.SessionMiddleware(deps.SessionVerifier))

	api.Get("/workflows/:workflowID/credentials", deps.WorkflowCredentialsController.GetWorkflowCredentials)

	return router
}
