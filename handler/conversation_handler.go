package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/proposalops/docchat-be/middleware"
	"github.com/proposalops/docchat-be/repository"
	"github.com/proposalops/docchat-be/types"
)

type ConversationHandler struct {
	conversations repository.ConversationRepo
}

func NewConversationHandler(conversations repository.ConversationRepo) *ConversationHandler {
	return &ConversationHandler{
		conversations: conversations,
	}
}

func (h *ConversationHandler) HandleListConversations(c *gin.Context) {

	claims := middleware.UserFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, types.DataResponse{
			Status:  false,
			Message: "Unauthorized",
		})
		return
	}

	conversations, err := h.conversations.ListConversations(c.Request.Context(), claims.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   conversations,
	})
}

func (h *ConversationHandler) HandleListMessages(c *gin.Context) {

	claims := middleware.UserFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, types.DataResponse{
			Status:  false,
			Message: "Unauthorized",
		})
		return
	}

	id := c.Param("id")

	// Ownership check before exposing any messages.
	if _, err := h.conversations.GetConversation(c.Request.Context(), claims.ID, id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, mongo.ErrNoDocuments) {
			status = http.StatusNotFound
		}
		c.JSON(status, types.DataResponse{
			Status:  false,
			Message: "Conversation not found",
		})
		return
	}

	messages, err := h.conversations.ListMessages(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   messages,
	})
}
