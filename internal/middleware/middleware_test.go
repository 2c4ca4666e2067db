package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(DevelopmentAuthMiddleware(), TenantMiddleware())
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"tenant": GetTenantID(c),
			"user":   c.GetString("user_id"),
			"email":  c.GetString("user_email"),
		})
	})
	return r
}

func TestTenantMiddleware_RejectsMissingTenant(t *testing.T) {
	w := httptest.NewRecorder()
	setupRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TENANT_REQUIRED")
}

func TestTenantAndUserHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-Tenant-ID", "tenant-1")
	req.Header.Set("X-User-ID", "user-1")
	req.Header.Set("X-User-Email", "ops@example.com")

	w := httptest.NewRecorder()
	setupRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tenant":"tenant-1","user":"user-1","email":"ops@example.com"}`, w.Body.String())
}

func TestDevelopmentAuth_DefaultUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-Vendor-ID", "vendor-9")

	w := httptest.NewRecorder()
	setupRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tenant":"vendor-9","user":"`+DevUserID+`","email":""}`, w.Body.String())
}
