package handlers

import (
	"github.com/gin-gonic/gin"

	"hyperhive-backend/internal/models"
	"hyperhive-backend/internal/service"
	"hyperhive-backend/internal/utils"
)

type GrowthPlanHandler struct {
	Service *service.GrowthPlanService
}

func NewGrowthPlanHandler(s *service.GrowthPlanService) *GrowthPlanHandler {
	return &GrowthPlanHandler{Service: s}
}

func (h *GrowthPlanHandler) GenerateGrowthPlan(c *gin.Context) {
	var req models.GenerateGrowthPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
		return
	}

	plan, err := h.Service.GenerateGrowthPlan(c.Request.Context(), req.LearnerID)
	if err != nil {
		utils.FromError(c, "Failed to generate growth plan", err)
		return
	}
	utils.SuccessResponse(c, "Growth plan generated", plan)
}

func (h *GrowthPlanHandler) GenerateGrowthPlanByPath(c *gin.Context) {
	plan, err := h.Service.GenerateGrowthPlan(c.Request.Context(), c.Param("learnerId"))
	if err != nil {
		utils.FromError(c, "Failed to generate growth plan", err)
		return
	}
	utils.SuccessResponse(c, "Growth plan generated", plan)
}
