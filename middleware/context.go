package middleware

import (
	"laundrify/models"

	"github.com/gin-gonic/gin"
)

// SessionFrom returns the hydrated session for this request, or nil.
func SessionFrom(c *gin.Context) *models.Session {
	if v, ok := c.Get(CtxSessionKey); ok {
		if sess, ok := v.(*models.Session); ok {
			return sess
		}
	}
	return nil
}

// UserIDFrom returns the authenticated user's ID, or "".
func UserIDFrom(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}
