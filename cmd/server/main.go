package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/promanage/promanage-api/internal/config"
	"github.com/promanage/promanage-api/internal/database"
	"github.com/promanage/promanage-api/internal/handlers"
	"github.com/promanage/promanage-api/internal/middleware"
	"github.com/promanage/promanage-api/internal/repository"
	"github.com/promanage/promanage-api/internal/services"
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

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(database.GetDB())
	taskRepo := repository.NewTaskRepository(database.GetDB())
	tokenService := services.NewTokenService(cfg.TokenSecret)
	userService := services.NewUserService(userRepo, tokenService)
	taskService := services.NewTaskService(taskRepo, userRepo)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()
	r.Use(cors.Default())

	// Health check endpoints
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"success": true,
			"message": "Welcome to Pro Manage",
		})
	})
	r.GET("/api/v1", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"success": true,
			"message": "Pro Manage API is available",
		})
	})

	// API routes
	api := r.Group("/api/v1")
	{
		// User routes
		user := api.Group("/user")
		{
			user.POST("/register", userHandler.Register)
			user.POST("/login", userHandler.Login)
			user.PATCH("/update", middleware.RequireAuth(tokenService), userHandler.Update)
			user.POST("/add", middleware.RequireAuth(tokenService), userHandler.Add)
			user.GET("/get", middleware.RequireAuth(tokenService), userHandler.List)
			user.GET("/details", middleware.RequireAuth(tokenService), userHandler.Details)
		}

		// Task routes (protected)
		task := api.Group("/task")
		task.Use(middleware.RequireAuth(tokenService))
		{
			task.POST("", taskHandler.Create)
			task.GET("", taskHandler.List)
			task.GET("/analytics", taskHandler.Analytics)
			task.GET("/:taskId", taskHandler.Get)
			task.PUT("/:taskId", taskHandler.Update)
			task.PATCH("/:taskId", taskHandler.UpdateStatus)
			task.DELETE("/:taskId", taskHandler.Delete)
			task.POST("/:taskId/checklist", taskHandler.CreateChecklistItem)
			task.PUT("/:taskId/checklist/:checklistId", taskHandler.UpdateChecklistItem)
			task.DELETE("/:taskId/checklist/:checklistId", taskHandler.DeleteChecklistItem)
			task.GET("/:taskId/checklists", taskHandler.GetChecklist)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
