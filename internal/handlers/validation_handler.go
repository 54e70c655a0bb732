package handlers

import (
	"github.com/gin-gonic/gin"

	"hyperhive-backend/internal/models"
	"hyperhive-backend/internal/service"
	"hyperhive-backend/internal/utils"
)

type ValidationHandler struct {
	Service *service.ValidationService
}

func NewValidationHandler(s *service.ValidationService) *ValidationHandler {
	return &ValidationHandler{Service: s}
}

func (h *ValidationHandler) ValidateProfile(c *gin.Context) {
	var req models.ValidateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.Service.ValidateLearnerProfile(c.Request.Context(), req.LearnerID, req.GitHubUsername)
	if err != nil {
		utils.FromError(c, "Failed to validate profile", err)
		return
	}
	utils.SuccessResponse(c, "Profile validated", resp)
}

// ValidateProfileByPath mirrors ValidateProfile for GET requests with
// path parameters.
func (h *ValidationHandler) ValidateProfileByPath(c *gin.Context) {
	resp, err := h.Service.ValidateLearnerProfile(c.Request.Context(), c.Param("learnerId"), c.Param("githubUsername"))
	if err != nil {
		utils.FromError(c, "Failed to validate profile", err)
		return
	}
	utils.SuccessResponse(c, "Profile validated", resp)
}
