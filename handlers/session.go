package handlers

import (
	"net/http"

	"laundrify/middleware"
	"laundrify/models"
	"laundrify/services/session"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	Sessions session.Service
}

func NewSessionHandler(sessions session.Service) *SessionHandler {
	return &SessionHandler{Sessions: sessions}
}

func (h *SessionHandler) Login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	sess, err := h.Sessions.Login(c.Request.Context(), creds)
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": sess.Token,
		"user":  sess.User,
	})
}

func (h *SessionHandler) Register(c *gin.Context) {
	var reg models.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	user, err := h.Sessions.Register(c.Request.Context(), reg)
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Account returns the hydrated session's user.
func (h *SessionHandler) Account(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, sess.User)
}

// Logout tears the session down. Idempotent.
func (h *SessionHandler) Logout(c *gin.Context) {
	token := c.GetHeader("Authorization")
	if err := h.Sessions.Logout(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
