package router

import (
	"github.com/anonto42/nano-social/backend/internal/handlers"
	"github.com/anonto42/nano-social/backend/internal/middleware"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/rules"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	logrus.Info("Global middleware configured")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.ProfileInteraction{},
		&models.Post{},
		&models.PostInteraction{},
		&models.Notification{},
	)
	if err != nil {
		return err
	}
	logrus.Info("Auto-migrations completed for all models")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	profileRepo := repositories.NewPostgresProfileRepository(db)
	interactionRepo := repositories.NewPostgresInteractionRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	postInteractionRepo := repositories.NewPostgresPostInteractionRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	// The validation chain consulted before every interaction
	interactionValidator := rules.NewInteractionValidator(profileRepo, interactionRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, profileRepo)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())

	profileHandler := handlers.NewProfileHandler(profileRepo)
	profileHandler.RegisterProfileRoutes(api)

	followHandler := handlers.NewFollowHandler(interactionRepo, notificationRepo, interactionValidator)
	followHandler.RegisterFollowRoutes(api)

	blockHandler := handlers.NewBlockHandler(interactionRepo, interactionValidator)
	blockHandler.RegisterBlockRoutes(api)

	muteHandler := handlers.NewMuteHandler(interactionRepo, interactionValidator)
	muteHandler.RegisterMuteRoutes(api)

	postHandler := handlers.NewPostHandler(postRepo, profileRepo, notificationRepo, interactionValidator)
	postHandler.RegisterPostRoutes(api)

	likeHandler := handlers.NewLikeHandler(postInteractionRepo, postRepo, notificationRepo, interactionValidator)
	likeHandler.RegisterLikeRoutes(api)

	feedHandler := handlers.NewFeedHandler(postRepo, postHandler)
	feedHandler.RegisterFeedRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, profileRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	logrus.Info("All routes configured")
	return nil
}
