package middleware

import (
	"net/http"
	"strings"

	"github.com/JENAI-COMPANY/jenai-sub002/common"
	"github.com/JENAI-COMPANY/jenai-sub002/constant"
	"github.com/JENAI-COMPANY/jenai-sub002/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
	c.Abort()
}

// Auth validates the bearer token and loads the caller's identity into the
// request context.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, "missing authorization header")
			return
		}
		claims, err := common.ParseAuthToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}
		common.SetContextKey(c, constant.ContextKeyUserId, claims.UserId)
		common.SetContextKey(c, constant.ContextKeyUsername, claims.Username)
		common.SetContextKey(c, constant.ContextKeyUserRole, claims.Role)
		c.Next()
	}
}

// RoleRequired gates a route to the listed roles. Must run after Auth.
func RoleRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := common.GetContextKeyString(c, constant.ContextKeyUserRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "permission denied",
		})
		c.Abort()
	}
}

// AdminOnly is shorthand for the admin role gate.
func AdminOnly() gin.HandlerFunc {
	return RoleRequired(model.RoleAdmin)
}

// RequestId attaches a request id for log correlation.
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		common.SetContextKey(c, constant.ContextKeyRequestId, id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}
