package middleware

import (
	"net/http"

	"grievancehub/internal/model"
	"grievancehub/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	userIDHeader   = "X-User-ID"
	userContextKey = "currentUser"
)

// Identity resolves the client-presented X-User-ID header to a user record
// and stores it on the request context. The header is trusted as-is: there is
// no session or token validation, so the resolved identity is unauthenticated
// input.
func Identity(users repository.IUserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(userIDHeader)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("User ID is required"))
			return
		}

		user, err := users.FindByID(c.Request.Context(), id)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Unknown user"))
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireAdmin gates a route on the role of the claimed identity. Must run
// after Identity.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, model.NewErrorResponse("Admin access required"))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity resolved by Identity, or nil.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}
