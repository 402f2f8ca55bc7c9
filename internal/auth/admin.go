package auth

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminTokenHeader and AdminTokenQuery are the two places a caller may
// supply the shared admin secret. The header takes precedence.
const (
	AdminTokenHeader = "X-Admin-Token"
	AdminTokenQuery  = "admin_token"
)

// VerifyAdminToken checks the request against the configured admin token.
// An empty configured token disables protection entirely.
func VerifyAdminToken(adminToken string, c *gin.Context) bool {
	if adminToken == "" {
		return true
	}

	if token := c.GetHeader(AdminTokenHeader); token != "" && tokenEqual(token, adminToken) {
		return true
	}

	if token := c.Query(AdminTokenQuery); token != "" && tokenEqual(token, adminToken) {
		return true
	}

	return false
}

func tokenEqual(supplied, configured string) bool {
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(configured)) == 1
}

// AdminMiddleware rejects requests that fail the admin token check.
func AdminMiddleware(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !VerifyAdminToken(adminToken, c) {
			log.Printf("Admin token verification failed for %s %s", c.Request.Method, c.Request.URL.Path)
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Admin token required. Set X-Admin-Token header or admin_token query parameter.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
