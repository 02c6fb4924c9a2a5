// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/the-exchanger/exchanger-backend/internal/config"
	"github.com/the-exchanger/exchanger-backend/internal/handlers"
	"github.com/the-exchanger/exchanger-backend/internal/middleware"
	"github.com/the-exchanger/exchanger-backend/internal/repository"
	"github.com/the-exchanger/exchanger-backend/internal/services"
	"github.com/the-exchanger/exchanger-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize stores
	listingStore := repository.NewListingStore(db)
	offerStore := repository.NewOfferStore(db)
	userStore := repository.NewUserStore(db)

	// Initialize services
	notificationService := services.NewNotificationService(userStore, cfg)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(userStore, cfg)
	userService := services.NewUserService(userStore)
	listingService := services.NewListingService(listingStore)
	offerService := services.NewOfferService(listingStore, offerStore, notificationService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	listingHandler := handlers.NewListingHandler(listingService)
	offerHandler := handlers.NewOfferHandler(offerService)
	uploadHandler := handlers.NewUploadHandler(storageService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	limits := middleware.NewRateLimiters(cfg.Server)
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(limits.General())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Authentication routes
		auth := api.Group("/auth")
		auth.Use(limits.Auth())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
			auth.DELETE("/me", middleware.AuthRequired(), authHandler.DeleteAccount)
		}

		// Listing routes
		listings := api.Group("/listings")
		{
			listings.GET("", middleware.OptionalAuth(), listingHandler.SearchListings)
			listings.GET("/my-available", middleware.AuthRequired(), listingHandler.GetMyAvailableListings)
			listings.GET("/:id", middleware.OptionalAuth(), listingHandler.GetListing)

			// Authenticated routes
			protected := listings.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", listingHandler.CreateListing)
				protected.PATCH("/:id", listingHandler.UpdateListing)
				protected.DELETE("/:id", listingHandler.DeleteListing)
			}
		}

		// Current-user routes
		users := api.Group("/users")
		users.Use(middleware.AuthRequired())
		{
			users.GET("/me/listings", listingHandler.GetMyListings)
		}

		// Trade offer routes
		offers := api.Group("/trade-offers")
		offers.Use(middleware.AuthRequired())
		{
			offers.POST("", offerHandler.CreateOffer)
			offers.GET("/mine", offerHandler.GetMyOffers)
			offers.GET("/listing/:id", offerHandler.GetOffersForListing)
			offers.GET("/:id", offerHandler.GetOffer)
			offers.PATCH("/:id/offered-items", offerHandler.UpdateOfferedItems)
			offers.POST("/:id/messages", offerHandler.PostMessage)
			offers.POST("/:id/accept", offerHandler.AcceptOffer)
			offers.POST("/:id/decline", offerHandler.DeclineOffer)
			offers.POST("/:id/mark", offerHandler.MarkOffer)
		}

		// Upload routes
		uploads := api.Group("/uploads")
		uploads.Use(middleware.AuthRequired())
		{
			uploads.POST("/listing-images", limits.Upload(), uploadHandler.UploadListingImages)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
