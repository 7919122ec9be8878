package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	portfolioUC "github.com/khoahotran/resume-builder/internal/application/usecase/portfolio"
	"github.com/khoahotran/resume-builder/internal/render"
	"github.com/khoahotran/resume-builder/pkg/apperror"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

type PortfolioHandler struct {
	getPortfolioUseCase *portfolioUC.GetPortfolioUseCase
	logger              logger.Logger
}

func NewPortfolioHandler(uc *portfolioUC.GetPortfolioUseCase, log logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{getPortfolioUseCase: uc, logger: log}
}

// GetPortfolio returns the rendered document as JSON.
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	output, err := h.getPortfolioUseCase.Execute(c.Request.Context(), portfolioUC.GetPortfolioInput{UserID: c.Param("userId")})
	if err != nil {
		c.Error(err)
		return
	}
	if output.Cached {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.JSON(http.StatusOK, output.Document)
}

// ViewPortfolio serves the shareable HTML page.
func (h *PortfolioHandler) ViewPortfolio(c *gin.Context) {
	output, err := h.getPortfolioUseCase.Execute(c.Request.Context(), portfolioUC.GetPortfolioInput{UserID: c.Param("userId")})
	if err != nil {
		c.Error(err)
		return
	}

	page, err := render.HTML(output.Document)
	if err != nil {
		h.logger.Error("Failed to render portfolio page", err, zap.String("user_id", c.Param("userId")))
		c.Error(apperror.NewInternal("failed to render portfolio page", err))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}
