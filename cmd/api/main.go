package main

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"pelada-hub/internal/config"
	"pelada-hub/internal/handler"
	"pelada-hub/internal/middleware"
	"pelada-hub/internal/pkg/gemini"
	"pelada-hub/internal/pkg/i18n"
	"pelada-hub/internal/pkg/logger"
	"pelada-hub/internal/repository"
	"pelada-hub/internal/service"
	authsvc "pelada-hub/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	logger.Init(os.Getenv("LOG_LEVEL"))

	if err := i18n.LoadTranslations("locales"); err != nil {
		log.Printf("Warning: failed to load translations: %v", err)
	}
	i18n.SetDefaultLocale(cfg.DefaultLocale)

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := config.RunMigrations(cfg); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v (caching and proximity search disabled)", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (image upload will not work)", err)
	}

	var geminiClient *gemini.Client
	if cfg.GeminiAPIKey != "" {
		geminiClient, err = gemini.NewClient(cfg.GeminiAPIKey)
		if err != nil {
			log.Printf("Warning: Failed to create Gemini client: %v (crest generation disabled)", err)
		} else {
			defer geminiClient.Close()
		}
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, minioClient, geminiClient, cfg)
	handlers := handler.NewHandlers(services)

	if err := services.Territory.SyncGeoIndex(context.Background()); err != nil {
		log.Printf("Warning: failed to sync court geo index: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService authsvc.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.RefreshToken)
	auth.Get("/verify-email", h.Auth.VerifyEmail)
	auth.Post("/forgot-password", h.Auth.ForgotPassword)
	auth.Post("/reset-password", h.Auth.ResetPassword)

	protected := v1.Group("", middleware.AuthRequired(authService))

	protected.Get("/me", h.Auth.Me)
	protected.Put("/me", h.Auth.UpdateMe)
	protected.Delete("/me", h.Auth.DeleteMe)

	teams := protected.Group("/teams")
	teams.Post("/", h.Team.Create)
	teams.Get("/", h.Team.List)
	teams.Get("/mine", h.Team.GetMine)
	teams.Get("/standings", h.Team.Standings)
	teams.Get("/:id", h.Team.Get)
	teams.Put("/:id", h.Team.Update)
	teams.Delete("/:id", h.Team.Delete)
	teams.Post("/:id/crest", h.Team.UploadCrest)
	teams.Post("/:id/crest/generate", h.Team.GenerateCrest)

	matches := protected.Group("/matches")
	matches.Post("/", middleware.RequireRole("owner"), h.Match.Create)
	matches.Get("/", h.Match.List)
	matches.Get("/:id", h.Match.Get)
	matches.Post("/:id/accept", middleware.RequireRole("owner"), h.Match.Accept)
	matches.Post("/:id/decline", middleware.RequireRole("owner"), h.Match.Decline)
	matches.Post("/:id/counter", middleware.RequireRole("owner"), h.Match.Counter)
	matches.Post("/:id/result", middleware.RequireRole("owner"), h.Match.RecordResult)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.UnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	courts := protected.Group("/courts")
	courts.Post("/", h.Court.Create)
	courts.Get("/", h.Court.List)
	courts.Get("/nearby", h.Court.Nearby)
	courts.Get("/:id", h.Court.Get)
	courts.Delete("/:id", middleware.RequireRole("admin"), h.Court.Delete)

	protected.Get("/territory", h.Court.TerritoryMap)

	feed := protected.Group("/feed")
	feed.Get("/", h.Feed.List)
	feed.Post("/", h.Feed.CreatePost)
	feed.Get("/:id", h.Feed.GetPost)
	feed.Delete("/:id", h.Feed.DeletePost)

	transfers := protected.Group("/transfers")
	transfers.Post("/", h.Transfer.CreateListing)
	transfers.Get("/", h.Transfer.ListListings)
	transfers.Get("/:id", h.Transfer.GetListing)
	transfers.Post("/:id/close", h.Transfer.CloseListing)
	transfers.Post("/:id/offers", middleware.RequireRole("owner"), h.Transfer.MakeOffer)
	transfers.Get("/:id/offers", h.Transfer.ListOffers)
	transfers.Post("/offers/:id/accept", h.Transfer.AcceptOffer)
	transfers.Post("/offers/:id/decline", h.Transfer.DeclineOffer)
}
