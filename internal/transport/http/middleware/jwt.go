package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dailydiet/internal/model"
	"dailydiet/internal/pkg/jwtutil"
	"dailydiet/internal/transport/http/response"
)

const ContextUserIDKey = "user_id"

// UserLoader resolves a token's user id against the credential store. A token
// whose subject no longer exists is rejected the same as a bad signature.
type UserLoader interface {
	GetUserByID(id string) (*model.User, error)
}

func AuthJWT(secret string, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, http.StatusUnauthorized, "invalid authorization scheme")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		user, err := users.GetUserByID(claims.UserID)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "resolve token user failed")
			c.Abort()
			return
		}
		if user == nil {
			response.Error(c, http.StatusUnauthorized, "token user no longer exists")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Next()
	}
}

// UserID reads the authenticated user's id placed in the context by AuthJWT.
func UserID(c *gin.Context) (string, bool) {
	raw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := raw.(string)
	return id, ok && id != ""
}
