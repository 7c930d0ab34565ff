package handlers

import (
	"time"

	"pickem/internal/logger"
	"pickem/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  *metrics

	// default push period of the leaderboard stream
	leaderboardInterval time.Duration
}

// NewHandler constructs a new HTTP handler with dependencies.
// A non-positive leaderboardInterval falls back to defaultInterval.
func NewHandler(services *service.Service, log *logger.Logger, leaderboardInterval time.Duration) *Handler {
	if leaderboardInterval <= 0 || leaderboardInterval > maxInterval {
		leaderboardInterval = defaultInterval
	}
	return &Handler{
		services:            services,
		log:                 log,
		metrics:             newMetrics(),
		leaderboardInterval: leaderboardInterval,
	}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID, limitBody(maxBodyBytes))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(h.metrics.handler()))

	router.GET("/health", h.health)

	h.registerUserRoutes(router)
	h.registerAuthRoutes(router)
	h.registerAuditRoutes(router)
	h.registerLeaderboardRoutes(router)

	return router
}

func (h *Handler) registerUserRoutes(r *gin.Engine) {
	users := r.Group("/users")
	{
		users.POST("/signup", h.signUp)
		users.GET("/all", h.authGuard, h.listUsers)
		users.GET("/:username", h.authGuard, h.getUser)
	}
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.login)
		auth.POST("/refresh", h.authGuard, h.refresh)
	}
}

// The stream lives outside /users so that it never shadows a username.
func (h *Handler) registerLeaderboardRoutes(r *gin.Engine) {
	r.GET("/leaderboard/ws", h.authGuard, h.wsLeaderboard)
}

func (h *Handler) registerAuditRoutes(r *gin.Engine) {
	r.GET("/audit", h.authGuard, h.listAudit)
}
