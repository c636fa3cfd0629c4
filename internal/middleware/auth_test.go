package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"localgov-backend/internal/models"
	"localgov-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware())
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetUint64("userID"),
			"role":    c.GetString("role"),
		})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("valid token passes identity along", func(t *testing.T) {
		token, err := utils.GenerateToken(7, models.RoleOfficer)
		assert.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		protectedRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":7`)
		assert.Contains(t, w.Body.String(), `"role":"officer"`)
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		protectedRouter().ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "token-without-bearer")
		protectedRouter().ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")
		protectedRouter().ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRoleGuards(t *testing.T) {
	guarded := func(guard gin.HandlerFunc, role string) int {
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.Use(func(c *gin.Context) { c.Set("role", role) }, guard)
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, guarded(OfficerOnly(), models.RoleOfficer))
	assert.Equal(t, http.StatusOK, guarded(OfficerOnly(), models.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, guarded(OfficerOnly(), models.RoleCitizen))

	assert.Equal(t, http.StatusOK, guarded(AdminOnly(), models.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, guarded(AdminOnly(), models.RoleOfficer))
	assert.Equal(t, http.StatusForbidden, guarded(AdminOnly(), models.RoleCitizen))
}
