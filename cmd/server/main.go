package main

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/onboarding-portal/internal/config"
	"github.com/yukikurage/onboarding-portal/internal/constants"
	"github.com/yukikurage/onboarding-portal/internal/database"
	"github.com/yukikurage/onboarding-portal/internal/handlers"
	"github.com/yukikurage/onboarding-portal/internal/logging"
	"github.com/yukikurage/onboarding-portal/internal/remote"
	"github.com/yukikurage/onboarding-portal/internal/repository"
	"github.com/yukikurage/onboarding-portal/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.GinMode)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}
	if err := database.MigrateDatabase(database.GetDB()); err != nil {
		log.WithError(err).Fatal("Failed to run post-migration steps")
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		log.WithError(err).Fatal("Failed to create Redis store")
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Onboarding backend
	client := remote.NewClient(cfg.RemoteAPIBaseURL, cfg.RemoteAPITimeout)
	backend := services.ClientBackend(client)

	// AI task drafting is optional
	var drafts services.DraftGenerator
	if cfg.OpenAIAPIKey != "" {
		drafts = services.NewAIService(cfg.OpenAIAPIKey)
	} else {
		log.Warn("OPENAI_API_KEY is not set, task drafting is disabled")
	}

	// Initialize services
	authService := services.NewAuthService(backend)
	runs := repository.NewBulkUploadRepository(database.GetDB())

	handlers.RegisterRoutes(r, handlers.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Dashboard: handlers.NewDashboardHandler(services.NewDashboardService(backend)),
		Tasks:     handlers.NewTaskHandler(services.NewTaskService(backend, drafts)),
		Employees: handlers.NewEmployeeHandler(services.NewEmployeeService(backend, authService, runs)),
		Resources: handlers.NewResourceHandler(services.NewResourceService(backend)),
		Feedback:  handlers.NewFeedbackHandler(services.NewFeedbackService(backend)),
	})

	// Start server
	addr := ":" + cfg.Port
	log.WithFields(log.Fields{
		"addr":    addr,
		"backend": cfg.RemoteAPIBaseURL,
	}).Info("Server starting")
	if err := r.Run(addr); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}
