package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/proposalops/docchat-be/types"
	"github.com/proposalops/docchat-be/utils"
)

const (
	ContextUserKey = "user"
)

// AuthMiddleware validates the bearer token and stores the claims in the
// request context. The claims' user ID is the ownership scope for every
// downstream store access.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, secret)
		if !ok {
			return
		}
		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// AdminAuthMiddleware additionally requires the admin role.
func AdminAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, secret)
		if !ok {
			return
		}
		if claims.Role != types.UserRoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, types.DataResponse{
				Status:  false,
				Message: "Admin access required",
			})
			return
		}
		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// UserFromContext returns the authenticated user's claims, or nil when the
// request passed no auth middleware.
func UserFromContext(c *gin.Context) *utils.UserClaims {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*utils.UserClaims)
	return claims
}

func parseBearer(c *gin.Context, secret string) (*utils.UserClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, types.DataResponse{
			Status:  false,
			Message: "Authorization header is required",
		})
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, types.DataResponse{
			Status:  false,
			Message: "Authorization header format must be Bearer {token}",
		})
		return nil, false
	}

	claims, err := utils.ParseUserToken(parts[1], secret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, types.DataResponse{
			Status:  false,
			Message: "Invalid token",
		})
		return nil, false
	}
	return claims, true
}
