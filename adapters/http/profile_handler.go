package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	profileUC "github.com/khoahotran/resume-builder/internal/application/usecase/profile"
	"github.com/khoahotran/resume-builder/pkg/apperror"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

type ProfileHandler struct {
	getProfileUseCase  *profileUC.GetProfileUseCase
	saveProfileUseCase *profileUC.SaveProfileUseCase
	logger             logger.Logger
}

func NewProfileHandler(getUC *profileUC.GetProfileUseCase, saveUC *profileUC.SaveProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		getProfileUseCase:  getUC,
		saveProfileUseCase: saveUC,
		logger:             log,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	input := profileUC.GetProfileInput{UserID: c.Query("userId")}
	output, err := h.getProfileUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, GetProfileResponse{Exists: output.Exists, Profile: output.Profile})
}

func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile save", err))
		return
	}

	input := profileUC.SaveProfileInput{UserID: req.UserID, Patch: req.Patch}
	output, err := h.saveProfileUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, SaveProfileResponse{Success: true, Action: output.Action})
}
