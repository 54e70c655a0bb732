package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hyperhive-backend/internal/models"
	"hyperhive-backend/internal/service"
	"hyperhive-backend/internal/utils"
)

type QuizHandler struct {
	Service *service.QuizService
}

func NewQuizHandler(s *service.QuizService) *QuizHandler {
	return &QuizHandler{Service: s}
}

func (h *QuizHandler) GenerateQuiz(c *gin.Context) {
	var req models.GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
		return
	}
	if req.LearnerID == "" {
		utils.BadRequestResponse(c, "learnerId is required")
		return
	}
	if req.QuizType == "" {
		utils.BadRequestResponse(c, "quizType is required")
		return
	}

	resp, err := h.Service.GenerateQuiz(c.Request.Context(), req)
	if err != nil {
		utils.FromError(c, "Failed to generate quiz", err)
		return
	}
	utils.SuccessResponse(c, "Quiz generated", resp)
}

func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	var req models.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
		return
	}
	if req.QuizID == "" || req.LearnerID == "" {
		utils.BadRequestResponse(c, "quizId and learnerId are required")
		return
	}

	resp, err := h.Service.SubmitQuiz(c.Request.Context(), req)
	if err != nil {
		utils.FromError(c, "Failed to submit quiz", err)
		return
	}
	utils.SuccessResponse(c, "Quiz submitted", resp)
}

func (h *QuizHandler) GetAttemptResults(c *gin.Context) {
	resp, err := h.Service.GetQuizAttemptResults(c.Request.Context(), c.Param("attemptId"))
	if err != nil {
		utils.FromError(c, "Failed to get attempt results", err)
		return
	}
	utils.SuccessResponse(c, "Attempt results retrieved", resp)
}

func (h *QuizHandler) GetLearnerAttempts(c *gin.Context) {
	attempts, err := h.Service.GetLearnerQuizAttempts(c.Request.Context(), c.Param("learnerId"))
	if err != nil {
		utils.FromError(c, "Failed to get attempts", err)
		return
	}
	if attempts == nil {
		attempts = []models.QuizAttemptSummary{}
	}
	utils.SuccessResponse(c, "Attempts retrieved", attempts)
}

func (h *QuizHandler) GetLearnerStatistics(c *gin.Context) {
	stats, err := h.Service.GetLearnerQuizStatistics(c.Request.Context(), c.Param("learnerId"))
	if err != nil {
		utils.FromError(c, "Failed to get statistics", err)
		return
	}
	utils.SuccessResponse(c, "Statistics retrieved", stats)
}

func (h *QuizHandler) GetLearnerQuizzes(c *gin.Context) {
	quizzes, err := h.Service.GetLearnerQuizzes(c.Request.Context(), c.Param("learnerId"))
	if err != nil {
		utils.FromError(c, "Failed to get quizzes", err)
		return
	}
	utils.SuccessResponse(c, "Quizzes retrieved", quizzes)
}

func (h *QuizHandler) GetQuizDetails(c *gin.Context) {
	details, err := h.Service.GetQuizDetails(c.Request.Context(), c.Param("quizId"))
	if err != nil {
		utils.FromError(c, "Failed to get quiz details", err)
		return
	}
	utils.SuccessResponse(c, "Quiz details retrieved", details)
}

func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	if err := h.Service.DeleteQuiz(c.Request.Context(), c.Param("quizId")); err != nil {
		utils.FromError(c, "Failed to delete quiz", err)
		return
	}
	c.Status(http.StatusNoContent)
}
