package handlers

import (
	"net/http"

	"laundrify/middleware"
	"laundrify/models"
	"laundrify/services/cart"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	Carts cart.Service
}

func NewCartHandler(carts cart.Service) *CartHandler {
	return &CartHandler{Carts: carts}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	userCart, err := h.Carts.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": userCart})
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var input struct {
		UserID string `json:"userId"`
		models.CartItem
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if input.UserID == "" {
		input.UserID = middleware.UserIDFrom(c)
	}

	if err := h.Carts.Add(c.Request.Context(), input.UserID, input.CartItem); err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item added"})
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var input struct {
		UserID   string `json:"userId"`
		ItemID   string `json:"itemId"`
		Quantity int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Carts.UpdateQuantity(c.Request.Context(), input.UserID, input.ItemID, input.Quantity); err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "quantity updated"})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	var input struct {
		UserID string `json:"userId"`
		ItemID string `json:"itemId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Carts.Remove(c.Request.Context(), input.UserID, input.ItemID); err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item removed"})
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.Carts.Clear(c.Request.Context(), c.Param("userId")); err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

// Checkout gates the move from cart to order form on the minimum order
// amount.
func (h *CartHandler) Checkout(c *gin.Context) {
	userID := middleware.UserIDFrom(c)
	snapshot, err := h.Carts.Checkout(c.Request.Context(), userID)
	if err != nil {
		if below, ok := err.(*cart.BelowMinimumError); ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": below.Error()})
			return
		}
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": snapshot, "totalAmount": snapshot.Total()})
}
