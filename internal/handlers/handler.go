package handlers

import (
	"molten_balance/internal/logger"
	"molten_balance/internal/service"

	_ "molten_balance/docs"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// live balance stream on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.operatorMiddleware)
	{
		h.registerBalanceRoutes(api)
		h.registerParameterRoutes(api)
		h.registerReportRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerBalanceRoutes(api *gin.RouterGroup) {
	balance := api.Group("/balance")
	{
		balance.GET("", h.getBalance)
		balance.POST("/recompute", h.recomputeBalance)
		balance.POST("/preview", h.previewBalance)
	}
}

func (h *Handler) registerParameterRoutes(api *gin.RouterGroup) {
	params := api.Group("/parameters")
	{
		params.GET("", h.getParameters)
		params.PUT("", h.putParameters)
	}
}

func (h *Handler) registerReportRoutes(api *gin.RouterGroup) {
	reports := api.Group("/reports")
	{
		reports.GET("", h.getReports)
		reports.GET("/export", h.exportReports)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("", h.getLogs)
	}
}
