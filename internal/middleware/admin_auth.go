package middleware

import (
	"net/http"

	"github.com/wolfbtcc/Zenithdefi/internal/config"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware runs after UserAuthMiddleware and admits only the
// emails listed in the config. Admin-ness is operator configuration, not a
// stored profile attribute.
func AdminAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		for _, admin := range cfg.AdminEmails {
			if email == admin {
				c.Set("is_admin", true)
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
	}
}
