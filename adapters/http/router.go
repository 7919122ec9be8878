package http

import (
	"github.com/gin-gonic/gin"

	"github.com/khoahotran/resume-builder/pkg/logger"
)

type Handlers struct {
	Profile   *ProfileHandler
	Template  *TemplateHandler
	Generate  *GenerateHandler
	Portfolio *PortfolioHandler
	Builder   *BuilderHandler
	Health    *HealthHandler
}

type RouterConfig struct {
	AllowedOrigins    []string
	GeneratePerMinute int
}

func NewRouter(h Handlers, cfg RouterConfig, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(log), CORS(cfg.AllowedOrigins), ErrorMiddleware(log))

	api := router.Group("/api")
	{
		api.GET("/health", h.Health.Health)

		api.GET("/profile", h.Profile.GetProfile)
		api.POST("/profile", h.Profile.SaveProfile)

		api.GET("/templates", h.Template.ListTemplates)

		api.POST("/generate-ai", RateLimitByIP(cfg.GeneratePerMinute), h.Generate.Generate)

		api.GET("/portfolio/:userId", h.Portfolio.GetPortfolio)

		if h.Builder != nil {
			api.GET("/builder/ws", h.Builder.Connect)
		}
	}

	router.GET("/p/:userId", h.Portfolio.ViewPortfolio)

	return router
}
