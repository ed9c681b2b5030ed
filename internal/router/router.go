package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/moviegram/backend/internal/handlers"
	"github.com/moviegram/backend/internal/middleware"
	"github.com/moviegram/backend/internal/models"
	"github.com/moviegram/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Notification{},
		&models.Media{},
		&models.UserMedia{},
		&models.Comment{},
		&models.CommentLike{},
		&models.Medal{},
		&models.UserMedal{},
		&models.Chat{},
		&models.Message{},
		&models.MessageRecipient{},
		&models.QuizAttempt{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	mediaRepo := repositories.NewPostgresMediaRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	medalRepo := repositories.NewPostgresMedalRepository(pgdb)
	messageRepo := repositories.NewPostgresMessageRepository(pgdb)
	quizRepo := repositories.NewMongoQuizRepository(mgClient.Database("moviegram"), pgdb)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo, followRepo)
	userHandler.RegisterProfileRoutes(api)
	api.GET("/users/search", userHandler.SearchUsers)
	log.Println("User profile routes configured.")

	// Follow graph routes
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notificationRepo)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// Media and watch-list routes
	mediaHandler := handlers.NewMediaHandler(mediaRepo, notificationRepo)
	mediaHandler.RegisterMediaRoutes(api)
	log.Println("Media routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, mediaRepo, notificationRepo)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Medal routes
	medalHandler := handlers.NewMedalHandler(medalRepo, notificationRepo)
	medalHandler.RegisterMedalRoutes(api)
	log.Println("Medal routes configured.")

	// Messaging routes
	messageHandler := handlers.NewMessageHandler(messageRepo, userRepo, notificationRepo)
	messageHandler.RegisterMessageRoutes(api)
	log.Println("Messaging routes configured.")

	// Quiz routes
	quizHandler := handlers.NewQuizHandler(quizRepo, medalRepo, notificationRepo)
	quizHandler.RegisterQuizRoutes(api)
	log.Println("Quiz routes configured.")

	log.Println("All routes configured.")
}
