package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proposalops/docchat-be/middleware"
	"github.com/proposalops/docchat-be/service"
	"github.com/proposalops/docchat-be/types"
)

// SearchHandler exposes the retrieval cascade directly, without answer
// synthesis. Useful for debugging what the assistant would ground on.
type SearchHandler struct {
	analyzer  *service.QueryAnalyzer
	retrieval *service.RetrievalService
}

func NewSearchHandler(analyzer *service.QueryAnalyzer, retrieval *service.RetrievalService) *SearchHandler {
	return &SearchHandler{
		analyzer:  analyzer,
		retrieval: retrieval,
	}
}

func (h *SearchHandler) HandleSearch(c *gin.Context) {

	claims := middleware.UserFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, types.DataResponse{
			Status:  false,
			Message: "Unauthorized",
		})
		return
	}

	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Query is required",
		})
		return
	}

	analysis := h.analyzer.Analyze(c.Request.Context(), req.Query)
	result := h.retrieval.Retrieve(c.Request.Context(), claims.ID, req.Query, analysis)

	docs := result.Documents
	if req.Limit > 0 && len(docs) > req.Limit {
		docs = docs[:req.Limit]
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.SearchResponse{
			Documents:  docs,
			Method:     result.Method,
			Confidence: result.Confidence,
		},
	})
}
