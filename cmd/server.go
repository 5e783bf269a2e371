package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/adilnv/internlink/internship/candidature/candidatureapi"
	"github.com/adilnv/internlink/internship/certificate/certificateapi"
	"github.com/adilnv/internlink/internship/criterion/criterionapi"
	"github.com/adilnv/internlink/internship/evaluation/evaluationapi"
	"github.com/adilnv/internlink/internship/mission/missionapi"
	"github.com/adilnv/internlink/internship/organization/orgapi"
	"github.com/adilnv/internlink/internship/posting/postingapi"
	"github.com/adilnv/internlink/internship/stage/stageapi"
	"github.com/adilnv/internlink/pkg/errx"
	"github.com/adilnv/internlink/pkg/iam/user/userapi"
	"github.com/adilnv/internlink/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Initialize Logger
	logx.SetLevel(logx.LevelInfo)
	logx.Info("Starting InternLink API Server...")

	if err := godotenv.Load(); err != nil {
		logx.Debugf("No .env file loaded: %v", err)
	}

	// 2. Initialize Dependency Container
	container := NewContainer()
	defer container.DB.Close()
	defer container.Redis.Close()

	// 3. Start Notification Worker
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	container.NotificationWorker.Start(workerCtx)

	// 4. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "InternLink API",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
		BodyLimit:             15 * 1024 * 1024, // CV uploads
	})

	// 5. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*", // Configure for production
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// 6. Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"db":     container.DB.Ping() == nil,
			"redis":  container.Redis.Ping(c.Context()).Err() == nil,
		})
	})

	// 7. Register Routes

	// Accounts: /api/auth, /api/users
	userapi.RegisterRoutes(app, container.UserHandlers, container.AuthMiddleware)

	// Organizations: /api/organizations
	orgapi.RegisterRoutes(app, container.OrganizationHdl, container.AuthMiddleware)

	// Postings: /api/postings
	postingapi.RegisterRoutes(app, container.PostingHandlers, container.AuthMiddleware)

	// Candidatures: /api/candidatures
	candidatureapi.RegisterRoutes(app, container.CandidatureHandlers, container.AuthMiddleware)

	// Stages: /api/stages
	stageapi.RegisterRoutes(app, container.StageHandlers, container.AuthMiddleware)

	// Missions: /api/missions
	missionapi.RegisterRoutes(app, container.MissionHandlers, container.AuthMiddleware)

	// Criteria: /api/criteria
	criterionapi.RegisterRoutes(app, container.CriterionHandlers, container.AuthMiddleware)

	// Evaluations: /api/evaluations
	evaluationapi.RegisterRoutes(app, container.EvaluationHandlers, container.AuthMiddleware)

	// Certificates: /api/certificates, public verification included
	certificateapi.RegisterRoutes(app, container.CertificateHandlers, container.AuthMiddleware)

	// 8. Start Server with Graceful Shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		logx.Infof("Server listening on port %s", port)
		if err := app.Listen(":" + port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c // Wait for signal
	logx.Info("Shutting down server...")

	stopWorker()
	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("Server exited")
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// Fiber errors (e.g., route not found)
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
			"code":  e.Code,
		})
	}

	// Registered domain errors
	if e, ok := err.(*errx.Error); ok {
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	// Default unknown error
	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
