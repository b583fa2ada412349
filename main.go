package main

import (
	"log"
	"net/http"
	"os"

	"port-registry/config"
	"port-registry/handlers"
	"port-registry/middleware"
	"port-registry/repositories"
	"port-registry/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	db := config.InitDB()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	shipRepo := repositories.NewShipRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	shipService := services.NewShipService(shipRepo)
	reportService := services.NewReportService(shipRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	shipHandler := handlers.NewShipHandler(shipService)
	dashboardHandler := handlers.NewDashboardHandler(reportService)

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Public routes
		public := v1.Group("/public")
		{
			public.GET("/home", dashboardHandler.Home)
		}

		// Protected routes
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			// Profile
			protected.GET("/profile", authHandler.GetProfile)

			// Control panel
			protected.GET("/dashboard", dashboardHandler.Dashboard)

			// Ships
			ships := protected.Group("/ships")
			{
				ships.GET("", middleware.RequireGuardOrHigher(), shipHandler.ListShips)
				ships.GET("/:id", middleware.RequireGuardOrHigher(), shipHandler.GetShip)
				ships.POST("", middleware.RequireOperator(), shipHandler.CreateShip)
				ships.PUT("/:id", middleware.RequireOperator(), shipHandler.UpdateShip)
				ships.GET("/:id/delete", middleware.RequireAdmin(), shipHandler.ConfirmDeleteShip)
				ships.DELETE("/:id", middleware.RequireAdmin(), shipHandler.DeleteShip)
			}
		}
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
