package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proposalops/docchat-be/service"
	"github.com/proposalops/docchat-be/types"
	"github.com/proposalops/docchat-be/utils"
)

type LoginHandler interface {
	HandleLogin(c *gin.Context)
}

type loginHandler struct {
	userService service.UserService
	jwtSecret   string
}

func NewLoginHandler(userService service.UserService, jwtSecret string) LoginHandler {
	return &loginHandler{
		userService: userService,
		jwtSecret:   jwtSecret,
	}
}

func (h *loginHandler) HandleLogin(c *gin.Context) {

	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	user, err := h.userService.GetUserByUsername(c, req.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, types.DataResponse{
			Status:  false,
			Message: "Invalid credentials",
		})
		return
	}
	if user.Password != req.Password {
		c.JSON(http.StatusUnauthorized, types.DataResponse{
			Status:  false,
			Message: "Invalid credentials",
		})
		return
	}
	token, err := utils.GenerateUserToken(user, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.LoginResponse{
			AccessToken: token,
		},
	})
}
