package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"profile-api/internal/config"
	"profile-api/internal/middleware"
	"profile-api/internal/services"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	ProfileService services.ProfileService
	HealthChecker  HealthChecker
	EnableSwagger  bool
}

// NewRouter builds a gin engine with the middleware chain and every route
func NewRouter(httpConfig *config.HTTPConfig, routerConfig *RouterConfig) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	SetupMiddleware(router, httpConfig)
	SetupRoutes(router, routerConfig)

	return router
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	profileHandler := NewProfileHandler(config.ProfileService)
	healthHandler := NewHealthHandler(config.HealthChecker)

	if config.EnableSwagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.GET("/health", healthHandler.Health)

	profiles := router.Group("/api/profile")
	{
		profiles.GET("", profileHandler.ListProfiles)
		profiles.POST("", profileHandler.CreateProfile)
		profiles.PUT("", profileHandler.UpdateProfileByBody)
		profiles.GET("/:id", profileHandler.GetProfile)
		profiles.PUT("/:id", profileHandler.UpdateProfile)
		profiles.DELETE("/:id", profileHandler.DeleteProfile)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, MessageResponse{Msg: MsgRouteNotFound})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, MessageResponse{Msg: MsgMethodNotAllowed})
	})
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, cfg *config.HTTPConfig) {
	router.Use(middleware.Recovery())

	// Request ID and correlation ID
	router.Use(middleware.RequestID())
	router.Use(middleware.CorrelationID())

	router.Use(middleware.StructuredLogger())

	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	router.Use(middleware.SecurityHeaders())

	router.Use(middleware.RateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst))

	router.Use(middleware.RequestSizeLimit(cfg.MaxBodyBytes))
	router.Use(middleware.ContentTypeValidation("application/json"))

	router.Use(middleware.PerformanceMonitor(time.Second))
	router.Use(middleware.AuditLogger())
}
