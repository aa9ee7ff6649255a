package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/proposalops/docchat-be/middleware"
	"github.com/proposalops/docchat-be/repository"
	"github.com/proposalops/docchat-be/types"
)

type DocumentHandler struct {
	docs repository.DocumentRepo
}

func NewDocumentHandler(docs repository.DocumentRepo) *DocumentHandler {
	return &DocumentHandler{
		docs: docs,
	}
}

func (h *DocumentHandler) HandleListDocuments(c *gin.Context) {

	claims := middleware.UserFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, types.DataResponse{
			Status:  false,
			Message: "Unauthorized",
		})
		return
	}

	limit := int64(50)
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.ParseInt(limitStr, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	docs, err := h.docs.ListByOwner(c.Request.Context(), claims.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}

	// Strip full content from the listing.
	for i := range docs {
		docs[i].Content = ""
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   docs,
	})
}
