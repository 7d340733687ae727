package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"laundrify/gateway"
	"laundrify/middleware"
	"laundrify/models"
	"laundrify/services/cart"
	"laundrify/services/geocode"
	"laundrify/services/order"
	"laundrify/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	draftKeyPrefix = "orderDraft:"
	draftTTL       = 30 * time.Minute
)

// OrderHandler exposes the order form workflow: a cached draft session that
// moves through address resolution, geofence validation, and field
// validation before submission.
type OrderHandler struct {
	Orders   order.Service
	Carts    cart.Service
	Resolver geocode.Resolver
	Geofence *order.GeofenceValidator
	Cache    *redis.Client
	Logger   *zap.Logger
}

func NewOrderHandler(orders order.Service, carts cart.Service, resolver geocode.Resolver, geofence *order.GeofenceValidator, cache *redis.Client, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		Orders:   orders,
		Carts:    carts,
		Resolver: resolver,
		Geofence: geofence,
		Cache:    cache,
		Logger:   logger,
	}
}

func (h *OrderHandler) builder(session *order.DraftSession) *order.DraftBuilder {
	return order.NewDraftBuilder(h.Resolver, h.Geofence, session)
}

func (h *OrderHandler) loadDraft(ctx context.Context, draftID string) (*order.DraftSession, error) {
	data, err := h.Cache.Get(ctx, draftKeyPrefix+draftID).Result()
	if err != nil {
		return nil, err
	}
	var session order.DraftSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (h *OrderHandler) saveDraft(ctx context.Context, session *order.DraftSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return h.Cache.Set(ctx, draftKeyPrefix+session.ID, data, draftTTL).Err()
}

func (h *OrderHandler) draftResponse(session *order.DraftSession) gin.H {
	return gin.H{
		"draftId":     session.ID,
		"state":       session.State,
		"form":        session.Form,
		"suggestions": session.Suggestions,
		"coordinates": session.Coordinates,
		"fieldErrors": session.FieldErrors,
		"message":     session.Message,
		"totalAmount": session.Cart.Total(),
	}
}

// StartDraft opens a draft session seeded from the user's cart, after the
// minimum-order checkout gate.
func (h *OrderHandler) StartDraft(c *gin.Context) {
	userID := middleware.UserIDFrom(c)
	ctx := c.Request.Context()

	snapshot, err := h.Carts.Checkout(ctx, userID)
	if err != nil {
		if below, ok := err.(*cart.BelowMinimumError); ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": below.Error()})
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "failed to load cart", err.Error())
		return
	}

	session := order.NewDraftSession(userID, *snapshot)
	if err := h.saveDraft(ctx, session); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to cache order draft", err.Error())
		return
	}
	c.JSON(http.StatusOK, h.draftResponse(session))
}

// UpdateAddress handles free-text address changes and returns suggestions.
func (h *OrderHandler) UpdateAddress(c *gin.Context) {
	var input struct {
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	session, err := h.loadDraft(ctx, c.Param("draftID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order draft not found or expired"})
		return
	}

	// Lookup failures are reported on the session; the draft stays editable.
	if err := h.builder(session).SetAddressInput(ctx, input.Address); err != nil {
		h.Logger.Debug("address lookup failed", zap.String("draft", session.ID), zap.Error(err))
	}

	if err := h.saveDraft(ctx, session); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to cache order draft", err.Error())
		return
	}
	c.JSON(http.StatusOK, h.draftResponse(session))
}

// SelectAddress resolves the picked suggestion and runs the geofence.
func (h *OrderHandler) SelectAddress(c *gin.Context) {
	var input struct {
		DisplayName string `json:"displayName"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.DisplayName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	ctx := c.Request.Context()
	session, err := h.loadDraft(ctx, c.Param("draftID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order draft not found or expired"})
		return
	}

	selectErr := h.builder(session).SelectSuggestion(ctx, input.DisplayName)

	if err := h.saveDraft(ctx, session); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to cache order draft", err.Error())
		return
	}
	if selectErr != nil {
		c.JSON(http.StatusUnprocessableEntity, h.draftResponse(session))
		return
	}
	c.JSON(http.StatusOK, h.draftResponse(session))
}

// UpdateDetails stores the pickup fields and revalidates.
func (h *OrderHandler) UpdateDetails(c *gin.Context) {
	var form order.PickupForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	session, err := h.loadDraft(ctx, c.Param("draftID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order draft not found or expired"})
		return
	}

	builder := h.builder(session)
	builder.SetForm(form)
	builder.Validate()

	if err := h.saveDraft(ctx, session); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to cache order draft", err.Error())
		return
	}
	c.JSON(http.StatusOK, h.draftResponse(session))
}

// SubmitDraft submits a validated draft and returns the payment redirect.
func (h *OrderHandler) SubmitDraft(c *gin.Context) {
	ctx := c.Request.Context()
	session, err := h.loadDraft(ctx, c.Param("draftID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order draft not found or expired"})
		return
	}

	// A submitted draft is final; replays get the original redirect.
	if session.State == order.StateSubmitted {
		c.JSON(http.StatusOK, gin.H{
			"orderId":      session.OrderID,
			"redirectPath": "/payment/" + session.OrderID,
		})
		return
	}

	result, submitErr := h.Orders.Submit(ctx, h.builder(session))

	if err := h.saveDraft(ctx, session); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to cache order draft", err.Error())
		return
	}

	if submitErr != nil {
		status := http.StatusUnprocessableEntity
		if _, ok := gateway.IsAPIError(submitErr); ok {
			status = http.StatusBadGateway
		}
		resp := h.draftResponse(session)
		resp["error"] = submitErr.Error()
		c.JSON(status, resp)
		return
	}

	// The cart is consumed by checkout.
	if err := h.Carts.Clear(ctx, session.UserID); err != nil {
		h.Logger.Warn("failed to clear cart after checkout",
			zap.String("user", session.UserID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"order":        result.Order,
		"redirectPath": result.RedirectPath,
	})
}

// CreateOrder is the one-shot submission endpoint: a full payload with
// pre-resolved coordinates. The geofence and field rules still apply.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var input struct {
		order.PickupForm
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	userID := middleware.UserIDFrom(c)
	ctx := c.Request.Context()

	snapshot, err := h.Carts.Checkout(ctx, userID)
	if err != nil {
		if below, ok := err.(*cart.BelowMinimumError); ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": below.Error()})
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "failed to load cart", err.Error())
		return
	}

	session := order.NewDraftSession(userID, *snapshot)
	builder := h.builder(session)
	builder.SetForm(input.PickupForm)
	session.Form.FormattedAddress = input.FormattedAddress

	if input.Latitude == nil || input.Longitude == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": order.MsgSelectValidLocation})
		return
	}
	if err := h.Geofence.Validate(*input.Latitude, *input.Longitude); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	session.Coordinates = &models.GeoPoint{Latitude: *input.Latitude, Longitude: *input.Longitude}
	session.State = order.StateGeoValidated

	if errs := builder.Validate(); len(errs) > 0 || session.State != order.StateSubmittable {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"fieldErrors": errs,
			"message":     session.Message,
		})
		return
	}

	result, submitErr := h.Orders.Submit(ctx, builder)
	if submitErr != nil {
		if apiErr, ok := gateway.IsAPIError(submitErr); ok {
			c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Message})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": submitErr.Error()})
		return
	}

	if err := h.Carts.Clear(ctx, userID); err != nil {
		h.Logger.Warn("failed to clear cart after checkout", zap.String("user", userID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"order":        result.Order,
		"redirectPath": result.RedirectPath,
	})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	ord, err := h.Orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, ord)
}

func (h *OrderHandler) OrdersByUser(c *gin.Context) {
	orders, err := h.Orders.OrdersByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.Orders.ListOrders(c.Request.Context())
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	ord, err := h.Orders.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, ord)
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	if err := h.Orders.CancelOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order cancelled"})
}

// respondGatewayError maps backend errors onto the response: structured
// messages pass through verbatim, transport failures become a 502.
func respondGatewayError(c *gin.Context, err error) {
	if apiErr, ok := gateway.IsAPIError(err); ok {
		status := apiErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"message": apiErr.Message})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"message": "upstream request failed"})
}
