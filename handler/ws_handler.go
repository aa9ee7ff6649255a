package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proposalops/docchat-be/middleware"
	"github.com/proposalops/docchat-be/service"
	"github.com/proposalops/docchat-be/types"
	"github.com/proposalops/docchat-be/utils"
)

type WebSocketHandler struct {
	wsService *service.WebSocketService
	jwtSecret string
}

func NewWebSocketHandler(wsService *service.WebSocketService, jwtSecret string) *WebSocketHandler {
	return &WebSocketHandler{
		wsService: wsService,
		jwtSecret: jwtSecret,
	}
}

// HandleChat upgrades the connection and hands it to the websocket
// service. Browsers cannot set headers on websocket dials, so the token
// may also arrive as a query parameter.
func (h *WebSocketHandler) HandleChat(c *gin.Context) {
	claims := middleware.UserFromContext(c)
	if claims == nil {
		token := c.Query("token")
		parsed, err := utils.ParseUserToken(token, h.jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, types.DataResponse{
				Status:  false,
				Message: "Invalid token",
			})
			return
		}
		claims = parsed
	}

	h.wsService.HandleChat(c.Writer, c.Request, claims.ID)
}
