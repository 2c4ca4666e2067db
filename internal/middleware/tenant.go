package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TenantMiddleware extracts the tenant from the request.
// Requests without a tenant are rejected; there is no default tenant.
func TenantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetString("tenant_id")

		if tenantID == "" {
			tenantID = c.GetHeader("X-Tenant-ID")
		}

		// Vendor header is still sent by older admin apps
		if tenantID == "" {
			tenantID = c.GetHeader("X-Vendor-ID")
		}

		if tenantID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "TENANT_REQUIRED",
					"message": "Tenant ID is required. Include the X-Tenant-ID header.",
				},
			})
			c.Abort()
			return
		}

		c.Set("tenant_id", tenantID)
		c.Next()
	}
}

// GetTenantID retrieves the tenant ID from gin context
func GetTenantID(c *gin.Context) string {
	return c.GetString("tenant_id")
}
