package handlers

import (
	"net/http"

	"laundrify/middleware"
	"laundrify/models"
	"laundrify/services/feedback"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	Feedback feedback.Service
}

func NewFeedbackHandler(svc feedback.Service) *FeedbackHandler {
	return &FeedbackHandler{Feedback: svc}
}

func (h *FeedbackHandler) List(c *gin.Context) {
	entries, err := h.Feedback.List(c.Request.Context())
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *FeedbackHandler) Submit(c *gin.Context) {
	var fb models.Feedback
	if err := c.ShouldBindJSON(&fb); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	fb.UserID = middleware.UserIDFrom(c)

	created, err := h.Feedback.Submit(c.Request.Context(), fb)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *FeedbackHandler) Respond(c *gin.Context) {
	var input struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Feedback.Respond(c.Request.Context(), c.Param("id"), input.Message); err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "response added"})
}

func (h *FeedbackHandler) Delete(c *gin.Context) {
	if err := h.Feedback.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "feedback deleted"})
}

func (h *FeedbackHandler) DeleteResponse(c *gin.Context) {
	if err := h.Feedback.DeleteResponse(c.Request.Context(), c.Param("id"), c.Param("responseId")); err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "response deleted"})
}
