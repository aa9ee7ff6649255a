package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proposalops/docchat-be/middleware"
	"github.com/proposalops/docchat-be/service"
	"github.com/proposalops/docchat-be/types"
)

const maxUploadSize = 20 << 20

type UploadHandler struct {
	fileService *service.FileService
}

func NewUploadHandler(fileService *service.FileService) *UploadHandler {
	return &UploadHandler{
		fileService: fileService,
	}
}

func (h *UploadHandler) HandleUpload(c *gin.Context) {

	claims := middleware.UserFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, types.DataResponse{
			Status:  false,
			Message: "Unauthorized",
		})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid file",
		})
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "File too large",
		})
		return
	}

	var req types.UploadRequest
	if metadata := c.Request.FormValue("metadata"); metadata != "" {
		if err := json.Unmarshal([]byte(metadata), &req); err != nil {
			c.JSON(http.StatusBadRequest, types.DataResponse{
				Status:  false,
				Message: "Invalid metadata",
			})
			return
		}
	}

	doc, err := h.fileService.SaveUpload(c.Request.Context(), claims.ID, req, header)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrUnsupportedFileType) {
			status = http.StatusBadRequest
		}
		c.JSON(status, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.UploadResponse{
			DocumentID:   doc.ID,
			Title:        doc.Title,
			HasContent:   doc.Content != "",
			HasEmbedding: doc.HasEmbedding,
		},
	})
}

// HandleBackfill re-embeds the caller's documents that are still missing
// their vector.
func (h *UploadHandler) HandleBackfill(c *gin.Context) {

	claims := middleware.UserFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, types.DataResponse{
			Status:  false,
			Message: "Unauthorized",
		})
		return
	}

	filled := h.fileService.BackfillEmbeddings(c.Request.Context(), claims.ID)
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   map[string]int{"embedded": filled},
	})
}
