package handlers

import (
	"net/http"
	"time"

	"lostfound/internal/logger"
	"lostfound/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Config carries the HTTP-layer knobs the handlers need at render time.
type Config struct {
	AccessCookieTTL  time.Duration
	RefreshCookieTTL time.Duration
	SecureCookies    bool
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	cfg      Config
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, cfg Config) *Handler {
	if cfg.AccessCookieTTL == 0 {
		cfg.AccessCookieTTL = 15 * time.Minute
	}
	if cfg.RefreshCookieTTL == 0 {
		cfg.RefreshCookieTTL = 7 * 24 * time.Hour
	}
	return &Handler{services: services, log: log, cfg: cfg}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	h.registerUserRoutes(router)
	h.registerReportRoutes(router)

	return router
}

func (h *Handler) registerUserRoutes(r *gin.Engine) {
	users := r.Group("/users")
	{
		users.POST("/register", h.register)
		users.POST("/login", h.login)
		users.POST("/refresh-token", h.refreshToken)
	}
	me := users.Group("", h.identityMiddleware)
	{
		me.POST("/logout", h.logout)
		me.GET("/me", h.currentUser)
		me.PATCH("/me", h.updateAccount)
		me.POST("/change-password", h.changePassword)
	}
}

func (h *Handler) registerReportRoutes(r *gin.Engine) {
	report := r.Group("/report", h.identityMiddleware)
	{
		report.POST("/", h.createReport)
		report.GET("/", h.listAllReports)
		report.GET("/user/:userId", h.listUserReports)
		report.PUT("/:reportId", h.updateReport)
		report.DELETE("/:reportId", h.deleteReport)
		report.POST("/:reportId/image", h.attachReportImage)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  apiResponse
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{"status": "ok"}, "healthy")
}
