package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/irisdash/dashboard-api/internal/config"
	"github.com/irisdash/dashboard-api/internal/constants"
	"github.com/irisdash/dashboard-api/internal/database"
	"github.com/irisdash/dashboard-api/internal/handlers"
	"github.com/irisdash/dashboard-api/internal/linkimport"
	"github.com/irisdash/dashboard-api/internal/middleware"
	"github.com/irisdash/dashboard-api/internal/repository"
	"github.com/irisdash/dashboard-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(database.GetDB()); err != nil {
			log.Fatalf("Failed to add indexes: %v", err)
		}
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
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Wire repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	chatRepo := repository.NewChatRepository(db)

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	tokenService := services.NewTokenService(tokenRepo)
	noteService := services.NewNoteService(noteRepo, linkimport.NewFetcher())
	taskService := services.NewTaskService(taskRepo, userRepo)
	chatService := services.NewChatService(chatRepo)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	tokenHandler := handlers.NewTokenHandler(tokenService)
	noteHandler := handlers.NewNoteHandler(noteService)
	taskHandler := handlers.NewTaskHandler(taskService)
	chatHandler := handlers.NewChatHandler(chatService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "IRIS Dashboard API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.RequireAuth(), authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// User management and profiles (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.GET("", middleware.RequireAdmin(), userHandler.ListUsers)
			users.GET("/online", middleware.RequireAdmin(), userHandler.ListOnlineUsers)
			users.PATCH("/:id", middleware.RequireAdmin(), userHandler.UpdateUser)
			users.DELETE("/:id", middleware.RequireAdmin(), userHandler.DeleteUser)
			users.POST("/:id/reset-password", middleware.RequireAdmin(), authHandler.ResetPassword)
			users.GET("/profiles", userHandler.ListProfiles)
			users.PATCH("/me/profile", userHandler.UpdateProfile)
		}

		// Registration tokens (admin)
		tokens := api.Group("/tokens")
		tokens.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			tokens.POST("", tokenHandler.MintToken)
			tokens.GET("", tokenHandler.ListTokens)
			tokens.DELETE("/:token", tokenHandler.DeleteToken)
		}

		// Notes (protected)
		notes := api.Group("/notes")
		notes.Use(middleware.RequireAuth())
		{
			notes.GET("", noteHandler.ListNotes)
			notes.POST("", noteHandler.CreateNote)
			notes.POST("/import", noteHandler.ImportNote)
			notes.GET("/:id", noteHandler.GetNote)
			notes.PUT("/:id", noteHandler.UpdateNote)
			notes.DELETE("/:id", noteHandler.DeleteNote)
			notes.PATCH("/:id/pin", noteHandler.TogglePin)
		}

		// Tasks (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/:id/pickup", taskHandler.PickupTask)
			tasks.POST("/:id/complete", taskHandler.CompleteTask)
			tasks.POST("/:id/drop", taskHandler.DropTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		// Chats (protected)
		chats := api.Group("/chats")
		chats.Use(middleware.RequireAuth())
		{
			chats.GET("", chatHandler.ListChats)
			chats.POST("", chatHandler.CreateChat)
			chats.GET("/:id/messages", chatHandler.ListMessages)
			chats.POST("/:id/messages", chatHandler.SendMessage)
			chats.DELETE("/:id/messages", chatHandler.PurgeMessages)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
