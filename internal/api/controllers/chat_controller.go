package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"strings"
	"tripsure/internal/models/request_models"
	"tripsure/internal/models/response_models"
	"tripsure/internal/services"
	"tripsure/pkg/utils"
)

type ChatController struct {
	orchestrator services.OrchestratorServiceInterface
}

func NewChatController(orchestrator services.OrchestratorServiceInterface) *ChatController {
	return &ChatController{
		orchestrator: orchestrator,
	}
}

// ChatHandler accepts one user message and returns the bot's reply. A
// missing session_id starts a new conversation; the generated id is echoed
// back so the client can continue it.
func (ch *ChatController) ChatHandler(c *gin.Context) {
	var req request_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		utils.HandleServiceError(c, utils.ErrInvalidInput)
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	output := ch.orchestrator.HandleChat(c.Request.Context(), sessionID, req.Message)

	utils.RespondSuccess(c, response_models.ChatResponse{
		SessionID: sessionID,
		Output:    output,
	}, "Message processed")
}
