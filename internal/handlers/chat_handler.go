package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"hyperhive-backend/internal/models"
	"hyperhive-backend/internal/service"
	"hyperhive-backend/internal/utils"
)

type ChatHandler struct {
	Service *service.OpenAIService
}

func NewChatHandler(s *service.OpenAIService) *ChatHandler {
	return &ChatHandler{Service: s}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Message cannot be empty")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		utils.BadRequestResponse(c, "Message cannot be empty")
		return
	}

	reply, err := h.Service.Chat(c.Request.Context(), req.Message)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to process chat request", err)
		return
	}
	utils.SuccessResponse(c, "Chat response", models.ChatResponse{Reply: reply})
}
