package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proposalops/docchat-be/middleware"
	"github.com/proposalops/docchat-be/service"
	"github.com/proposalops/docchat-be/types"
)

type ChatHandler struct {
	assistant service.ChatAssistant
}

func NewChatHandler(assistant service.ChatAssistant) *ChatHandler {
	return &ChatHandler{
		assistant: assistant,
	}
}

func (h *ChatHandler) HandleChat(c *gin.Context) {

	claims := middleware.UserFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, types.DataResponse{
			Status:  false,
			Message: "Unauthorized",
		})
		return
	}

	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	answer, err := h.assistant.AnswerQuery(c.Request.Context(), claims.ID, req.Query, req.ConversationID)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrEmptyQuery):
			status = http.StatusBadRequest
		case errors.Is(err, service.ErrConversationNotFound):
			status = http.StatusNotFound
		}
		c.JSON(status, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   answer,
	})
}
