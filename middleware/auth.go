package middleware

import (
	"net/http"

	"laundrify/gateway"
	"laundrify/services/session"

	"github.com/gin-gonic/gin"
)

// Context keys populated by the auth middlewares.
const (
	CtxSessionKey = "session"
	CtxUserIDKey  = "userID"
)

// AuthMiddleware hydrates the session for the bearer token and stores it on
// the request context. Requests without a live session are rejected.
func AuthMiddleware(sessions session.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
			return
		}

		sess, err := sessions.Hydrate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set(CtxSessionKey, sess)
		c.Set(CtxUserIDKey, sess.User.ID)
		// Downstream gateway calls forward the caller's token.
		c.Request = c.Request.WithContext(gateway.WithToken(c.Request.Context(), token))
		c.Next()
	}
}

// AdminOnly requires an authenticated session with the admin role. Must run
// after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := SessionFrom(c)
		if sess == nil || sess.User.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
