package handlers

import (
	"net/http"

	"laundrify/middleware"
	"laundrify/services/geocode"

	"github.com/gin-gonic/gin"
)

// GeocodeHandler backs the standalone address autocomplete endpoint.
type GeocodeHandler struct {
	Resolver geocode.Resolver
}

func NewGeocodeHandler(resolver geocode.Resolver) *GeocodeHandler {
	return &GeocodeHandler{Resolver: resolver}
}

func (h *GeocodeHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"suggestions": []string{}})
		return
	}

	// Scope staleness tracking to the caller so parallel users typing at
	// the same time cannot invalidate each other's searches.
	suggestions, err := h.Resolver.Search(c.Request.Context(), middleware.UserIDFrom(c), query)
	if err != nil {
		if err == geocode.ErrStaleResponse {
			c.JSON(http.StatusOK, gin.H{"suggestions": []string{}, "stale": true})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
