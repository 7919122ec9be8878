package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/resume-builder/internal/application/service"
)

type HealthHandler struct {
	store  service.StoreHealth
	driver string
}

func NewHealthHandler(store service.StoreHealth, driver string) *HealthHandler {
	return &HealthHandler{store: store, driver: driver}
}

func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.store.Check(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "connected",
		Message: "Database connection successful",
		Driver:  h.driver,
	})
}
