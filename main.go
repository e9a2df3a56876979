package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ShanAhmd/HiDrawpix/config"
	"github.com/ShanAhmd/HiDrawpix/controllers"
	"github.com/ShanAhmd/HiDrawpix/middleware"
	"github.com/ShanAhmd/HiDrawpix/models"
	"github.com/ShanAhmd/HiDrawpix/services"
)

func main() {
	log.Println("Starting Hi Drawpix API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(&models.Order{}, &models.PortfolioItem{}, &models.Offer{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize record stores and their live subscription hubs
	controllers.InitStores(db)

	// Initialize S3 service for file uploads
	if _, err := services.InitS3Service(); err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}

	// Email and the AI assistant are optional integrations: the storefront
	// still takes orders without them.
	if _, err := services.InitEmailSender(); err != nil {
		log.Printf("Email sender not configured, delivery notifications disabled: %v", err)
	}
	if _, err := services.InitAssistantService(); err != nil {
		log.Printf("AI assistant not configured, chat disabled: %v", err)
	}

	// Initialize Gin router
	router := gin.Default()
	router.Use(middleware.PrometheusMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)

		// Public storefront
		v1.GET("/services", controllers.ListServices)
		v1.GET("/portfolio", controllers.ListPortfolio)
		v1.GET("/offers", controllers.ListOffers)
		v1.POST("/orders", controllers.CreateOrder)
		v1.GET("/orders/:id", controllers.GetOrderStatus)
		v1.POST("/uploads", controllers.UploadAttachment)
		v1.POST("/chat", controllers.Chat)

		// Admin authentication
		auth := v1.Group("/auth")
		{
			auth.POST("/signin", controllers.SignIn)
			auth.POST("/signup", controllers.SignUp)
			auth.POST("/signout", controllers.SignOut)
		}

		// Admin dashboard (requires a valid token)
		admin := v1.Group("/admin")
		admin.Use(middleware.EnsureValidToken(cfg))
		{
			admin.GET("/me", controllers.Me)

			admin.GET("/orders", controllers.ListOrders)
			admin.GET("/orders/stream", controllers.StreamOrders)
			admin.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)
			admin.POST("/orders/:id/deliver", controllers.DeliverOrder)
			admin.DELETE("/orders/:id", controllers.DeleteOrder)

			admin.GET("/portfolio", controllers.ListPortfolioAdmin)
			admin.GET("/portfolio/stream", controllers.StreamPortfolio)
			admin.POST("/portfolio", controllers.CreatePortfolioItem)
			admin.PATCH("/portfolio/:id/status", controllers.UpdatePortfolioStatus)
			admin.DELETE("/portfolio/:id", controllers.DeletePortfolioItem)

			admin.GET("/offers", controllers.ListOffersAdmin)
			admin.GET("/offers/stream", controllers.StreamOffers)
			admin.POST("/offers", controllers.CreateOffer)
			admin.PATCH("/offers/:id/status", controllers.UpdateOfferStatus)
			admin.DELETE("/offers/:id", controllers.DeleteOffer)

			admin.POST("/uploads", controllers.UploadAdminFile)
		}
	}

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Hi Drawpix API is running",
	})
}
