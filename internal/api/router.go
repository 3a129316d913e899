package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/jhosasa/Real-State/internal/api/handlers"
	"github.com/jhosasa/Real-State/internal/api/middleware"
	"github.com/jhosasa/Real-State/internal/config"
	"github.com/jhosasa/Real-State/internal/models"
	"github.com/jhosasa/Real-State/internal/services"
	"github.com/jhosasa/Real-State/internal/store"
)

// SetupRouter configures and returns the main Gin engine.
func SetupRouter(cfg *config.Config, st *store.PropertyStore, agents []models.Agent, rdb *redis.Client, taskClient handlers.IAsynqClient, recommender services.IRecommendationService) *gin.Engine {
	// Initialize services needed by API handlers
	userService := services.NewUserService(rdb)
	propertyService := services.NewPropertyService(st, cfg, recommender)
	agentService := services.NewAgentService(agents)
	chatService := services.NewChatService(propertyService)

	r := gin.Default()

	// Initialize Middleware
	rateLimiter := middleware.NewRateLimiterMiddleware(cfg)

	// Apply global middleware first (order matters)
	r.Use(middleware.CORSMiddleware())
	r.Use(rateLimiter.Limit())

	// Initialize handlers
	restPropertyHandler := handlers.NewRestPropertyHandler(propertyService, userService)
	restAgentHandler := handlers.NewRestAgentHandler(agentService)
	restUserHandler := handlers.NewRestUserHandler(cfg, userService, taskClient)
	chatHandler := handlers.NewChatHandler(chatService)

	v1 := r.Group("/v1")
	{
		// Public routes (rate limiting already applied globally)
		v1.POST("/auth/register", restUserHandler.Register)
		v1.POST("/auth/login", restUserHandler.Login)

		// Property routes - static segments before :id to avoid conflicts.
		// Optional auth lets handlers log activity for logged-in browsers
		// while the routes stay public.
		property := v1.Group("/property", middleware.OptionalAuthMiddleware(cfg.JwtSecret))
		{
			property.GET("", restPropertyHandler.ListProperties)
			property.GET("/featured", restPropertyHandler.GetFeaturedProperties)
			property.GET("/search", restPropertyHandler.SearchProperties)
			property.GET("/recommendations", restPropertyHandler.GetRecommendations)
			property.GET("/:id", restPropertyHandler.GetPropertyByID)
		}

		// Agent routes
		v1.GET("/agent", restAgentHandler.ListAgents)
		v1.GET("/agent/:id", restAgentHandler.GetAgentByID)

		// Assistant
		v1.POST("/chat", chatHandler.ProcessMessage)

		v1.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})

		// Authenticated routes
		me := v1.Group("/me")
		me.Use(middleware.AuthMiddleware(cfg.JwtSecret))
		{
			me.GET("", restUserHandler.GetProfile)
			me.PUT("/preferences", restUserHandler.UpdatePreferences)
			me.POST("/favorites/:id", restUserHandler.ToggleFavorite)
			me.POST("/searches", restUserHandler.SaveSearch)
			me.POST("/alerts", restUserHandler.CreateAlert)
			me.GET("/alerts", restUserHandler.GetAlerts)
			me.PATCH("/alerts/:id", restUserHandler.SetAlertActive)
			me.DELETE("/alerts/:id", restUserHandler.DeleteAlert)
			me.GET("/activity", restUserHandler.GetActivities)
			me.GET("/notifications", restUserHandler.GetNotifications)
			me.GET("/recommendations", restPropertyHandler.GetRecommendations)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg.JwtSecret), middleware.AdminMiddleware())
		{
			admin.PATCH("/property/:id/status", restPropertyHandler.SetPropertyStatus)
		}
	}

	return r
}
