package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hyperhive-backend/internal/models"
	"hyperhive-backend/internal/service"
	"hyperhive-backend/internal/utils"
)

type LearnerHandler struct {
	Service *service.LearnerService
}

func NewLearnerHandler(s *service.LearnerService) *LearnerHandler {
	return &LearnerHandler{Service: s}
}

func (h *LearnerHandler) ListLearners(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	resp, err := h.Service.ListLearners(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to list learners", err)
		return
	}
	utils.SuccessResponse(c, "Learners retrieved", resp)
}

func (h *LearnerHandler) GetLearner(c *gin.Context) {
	learner, err := h.Service.GetLearner(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.FromError(c, "Failed to get learner", err)
		return
	}
	utils.SuccessResponse(c, "Learner retrieved", learner)
}

func (h *LearnerHandler) GetLearnerByEmail(c *gin.Context) {
	learner, err := h.Service.GetLearnerByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		utils.FromError(c, "Failed to get learner", err)
		return
	}
	utils.SuccessResponse(c, "Learner retrieved", learner)
}

func (h *LearnerHandler) CreateLearner(c *gin.Context) {
	var req models.CreateLearnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
		return
	}

	learner, err := h.Service.CreateLearner(c.Request.Context(), req)
	if err != nil {
		utils.FromError(c, "Failed to create learner", err)
		return
	}
	utils.CreatedResponse(c, "Learner created", learner)
}

func (h *LearnerHandler) UpdateLearner(c *gin.Context) {
	var req models.UpdateLearnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
		return
	}

	learner, err := h.Service.UpdateLearner(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.FromError(c, "Failed to update learner", err)
		return
	}
	utils.SuccessResponse(c, "Learner updated", learner)
}

func (h *LearnerHandler) DeleteLearner(c *gin.Context) {
	if err := h.Service.DeleteLearner(c.Request.Context(), c.Param("id")); err != nil {
		utils.FromError(c, "Failed to delete learner", err)
		return
	}
	c.Status(http.StatusNoContent)
}
