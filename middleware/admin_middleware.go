package middleware

import (
	"net/http"

	"github.com/formbuilder-api/models"
	"github.com/gin-gonic/gin"
)

// AdminMiddleware ensures the actor has the ADMIN role.
// This middleware must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Authentication required",
			})
			c.Abort()
			return
		}

		if user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "Admin privileges required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
