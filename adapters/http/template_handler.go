package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogUC "github.com/khoahotran/resume-builder/internal/application/usecase/catalog"
)

type TemplateHandler struct {
	listTemplatesUseCase *catalogUC.ListTemplatesUseCase
}

func NewTemplateHandler(uc *catalogUC.ListTemplatesUseCase) *TemplateHandler {
	return &TemplateHandler{listTemplatesUseCase: uc}
}

func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	output, err := h.listTemplatesUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ListTemplatesResponse{Success: true, Templates: output.Templates})
}
