package middleware

import (
	"net/http"
	"strings"

	"localgov-backend/internal/models"
	"localgov-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the Bearer token and stores the caller's
// identity in the gin context as "userID" (uint64) and "role" (string).
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.APIResponse(c, http.StatusUnauthorized, false, "Authorization token missing", nil)
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.APIResponse(c, http.StatusUnauthorized, false, "Invalid token format", nil)
			c.Abort()
			return
		}

		token, err := utils.ValidateToken(parts[1])
		if err != nil || !token.Valid {
			utils.APIResponse(c, http.StatusUnauthorized, false, "Invalid or expired token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.APIResponse(c, http.StatusUnauthorized, false, "Failed to read token claims", nil)
			c.Abort()
			return
		}

		// JWT numbers decode as float64
		var userID uint64
		if val, ok := claims["user_id"].(float64); ok {
			userID = uint64(val)
		}

		role, _ := claims["role"].(string)

		c.Set("userID", userID)
		c.Set("role", role)

		c.Next()
	}
}

func roleFromContext(c *gin.Context) string {
	role, exists := c.Get("role")
	if !exists {
		return ""
	}
	r, _ := role.(string)
	return r
}

// OfficerOnly allows officers and admins through.
func OfficerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := roleFromContext(c)
		if role != models.RoleOfficer && role != models.RoleAdmin {
			utils.APIResponse(c, http.StatusForbidden, false, "Access denied: officers only", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnly allows admins only.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if roleFromContext(c) != models.RoleAdmin {
			utils.APIResponse(c, http.StatusForbidden, false, "Access denied: admins only", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
