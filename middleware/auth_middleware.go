package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/formbuilder-api/apperrors"
	"github.com/formbuilder-api/models"
	"github.com/formbuilder-api/services"
	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

// CurrentUser returns the authenticated actor set by AuthMiddleware, or nil
// on public endpoints where no token was presented.
func CurrentUser(c *gin.Context) *models.User {
	if v, exists := c.Get(userContextKey); exists {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// resolveActor validates the token and loads the live user record; the
// token alone is not trusted for role or blocked state.
func resolveActor(token string) (*models.User, int, string) {
	claims, err := services.ValidateToken(token)
	if err != nil {
		return nil, http.StatusUnauthorized, "Invalid or expired token"
	}

	user, err := services.GetUser(claims.UserID)
	if err != nil {
		return nil, http.StatusForbidden, "User not found"
	}
	if user.IsBlocked {
		return nil, http.StatusForbidden, "Account is blocked"
	}
	return user, 0, ""
}

// AuthMiddleware authenticates the bearer token, loads the actor and
// enforces the stale-session rule for mutating requests. Every
// authenticated request bumps lastActive in the background; the freshness
// check always uses the pre-request value.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Authentication required",
			})
			c.Abort()
			return
		}

		user, status, message := resolveActor(token)
		if user == nil {
			c.JSON(status, gin.H{"status": "error", "message": message})
			c.Abort()
			return
		}

		if c.Request.Method != http.MethodGet {
			if err := services.CheckFreshSession(user, time.Now()); err != nil {
				c.JSON(apperrors.StatusCode(err), gin.H{
					"status":  "error",
					"message": "Session expired, please sign in again",
				})
				c.Abort()
				return
			}
		}

		services.TouchLastActive(user.ID)

		c.Set(userContextKey, user)
		c.Set("userId", user.ID)
		c.Set("role", string(user.Role))
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the actor when a token is present but
// lets anonymous requests through. Used by explicitly public reads where
// an authenticated actor still widens visibility.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		user, _, _ := resolveActor(token)
		if user != nil {
			services.TouchLastActive(user.ID)
			c.Set(userContextKey, user)
			c.Set("userId", user.ID)
			c.Set("role", string(user.Role))
		}
		c.Next()
	}
}
