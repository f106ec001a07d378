package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ms-horiuchi/todoapp/internal/apperr"
	"github.com/ms-horiuchi/todoapp/internal/model"
)

const currentUserKey = "currentUser"

// AuthRequired parses the Authorization header, resolves the bearer token to
// a user, and stores it on the request context. Any auth failure ends the
// request with a 401 envelope.
func AuthRequired(tokens TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, fail("authorization token required"))
			return
		}
		if len(header) < 7 || header[:7] != "Bearer " {
			c.AbortWithStatusJSON(http.StatusUnauthorized, fail("invalid token format"))
			return
		}

		user, err := tokens.ResolveCurrentUser(header[7:])
		if err != nil {
			msg := "authentication failed"
			var ae *apperr.Error
			if errors.As(err, &ae) {
				msg = ae.Message
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, fail(msg))
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *model.User {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	u, _ := v.(*model.User)
	return u
}

// CORS mirrors the frontend allowlist: a single trusted origin with
// credentials, all methods and headers.
func CORS(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
