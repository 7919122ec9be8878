package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/resume-builder/internal/application/usecase/assist"
	"github.com/khoahotran/resume-builder/pkg/apperror"
)

type GenerateHandler struct {
	generateUseCase *assist.GenerateUseCase
}

func NewGenerateHandler(uc *assist.GenerateUseCase) *GenerateHandler {
	return &GenerateHandler{generateUseCase: uc}
}

func (h *GenerateHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("Type and context are required", err))
		return
	}

	output, err := h.generateUseCase.Execute(c.Request.Context(), assist.GenerateInput{Kind: req.Type, Context: req.Context})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, GenerateResponse{Success: true, Text: output.Text})
}
