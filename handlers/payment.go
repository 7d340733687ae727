package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"laundrify/gateway"
	"laundrify/models"
	"laundrify/services/payment"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	confirmKeyPrefix = "paymentConfirm:"
	confirmTTL       = 30 * time.Minute
)

// PaymentHandler drives the payment pages: card capture, intent creation,
// and the confirmation view. Confirmation flows are cached per intent so
// the once-per-intent auto-confirmation survives replayed page loads.
type PaymentHandler struct {
	Payments payment.Service
	Gateway  gateway.PaymentGateway
	Cache    *redis.Client
	Logger   *zap.Logger
}

func NewPaymentHandler(payments payment.Service, gw gateway.PaymentGateway, cache *redis.Client, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Payments: payments, Gateway: gw, Cache: cache, Logger: logger}
}

// Pay tokenizes the submitted card and creates the payment intent for the
// order in the route.
func (h *PaymentHandler) Pay(c *gin.Context) {
	orderID := c.Param("orderId")
	var card models.CardDetails
	if err := c.ShouldBindJSON(&card); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if card.HolderName == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Cardholder Name is required"})
		return
	}

	result, err := h.Payments.Pay(c.Request.Context(), card, orderID)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"paymentIntentId": result.Intent.ID,
		"payment":         gin.H{"paymentStatus": result.Intent.Status},
		"redirectPath":    result.RedirectPath,
	})
}

// CreateIntent exchanges an already-minted payment-method token for an
// intent. Mirrors the backend contract for clients that tokenize
// themselves.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var input models.CreateIntentRequest
	if err := c.ShouldBindJSON(&input); err != nil || input.PaymentMethodID == "" || input.OrderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paymentMethodId and orderId are required"})
		return
	}

	result, err := h.Payments.CreateIntent(c.Request.Context(), input.PaymentMethodID, input.OrderID)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"paymentIntentId": result.Intent.ID,
		"payment":         gin.H{"paymentStatus": result.Intent.Status},
		"redirectPath":    result.RedirectPath,
	})
}

// loadFlow restores the cached confirmation flow for the intent, or starts
// a fresh one. Without a cache every request gets a fresh flow.
func (h *PaymentHandler) loadFlow(ctx context.Context, intentID, orderID string) *payment.ConfirmationFlow {
	flow := payment.NewConfirmationFlow(h.Gateway, intentID, orderID)
	if h.Cache == nil || intentID == "" {
		return flow
	}
	data, err := h.Cache.Get(ctx, confirmKeyPrefix+intentID).Result()
	if err != nil {
		return flow
	}
	if err := json.Unmarshal([]byte(data), flow); err != nil {
		return payment.NewConfirmationFlow(h.Gateway, intentID, orderID)
	}
	flow.Gateway = h.Gateway
	return flow
}

func (h *PaymentHandler) saveFlow(ctx context.Context, flow *payment.ConfirmationFlow) {
	if h.Cache == nil || flow.PaymentIntentID == "" {
		return
	}
	data, err := json.Marshal(flow)
	if err != nil {
		return
	}
	if err := h.Cache.Set(ctx, confirmKeyPrefix+flow.PaymentIntentID, data, confirmTTL).Err(); err != nil {
		h.Logger.Warn("failed to cache confirmation flow",
			zap.String("intent", flow.PaymentIntentID), zap.Error(err))
	}
}

// Confirm backs the confirmation view. The intent ID arrives in the query
// string, the order ID in the path; missing identifiers short-circuit
// without touching the network. The first request for an intent
// auto-confirms; a settled flow replays its stored outcome, and a failed
// one confirms again on request.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	intentID := c.Query("paymentIntentId")
	orderID := c.Param("orderId")
	if intentID == "" || orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"state": payment.ConfirmFailed,
			"error": payment.ErrMissingPaymentInfo.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	flow := h.loadFlow(ctx, intentID, orderID)

	var err error
	switch {
	case !flow.AutoTriggered:
		err = flow.AutoConfirm(ctx)
	case flow.State == payment.ConfirmConfirmed:
		// Settled; replayed mounts get the stored outcome.
	default:
		err = flow.Confirm(ctx)
	}
	h.saveFlow(ctx, flow)

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"state": flow.State,
			"error": flow.Message,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"state":        flow.State,
		"redirectPath": flow.RedirectPath,
	})
}

// Retry re-attempts a failed payment via the dedicated endpoint.
func (h *PaymentHandler) Retry(c *gin.Context) {
	ctx := c.Request.Context()
	flow := h.loadFlow(ctx, c.Query("paymentIntentId"), c.Param("orderId"))

	err := flow.Retry(ctx)
	h.saveFlow(ctx, flow)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if err == payment.ErrMissingPaymentInfo {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"state": flow.State, "error": flow.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": flow.State, "redirectPath": flow.RedirectPath})
}

// Cancel abandons the pending intent.
func (h *PaymentHandler) Cancel(c *gin.Context) {
	ctx := c.Request.Context()
	flow := h.loadFlow(ctx, c.Query("paymentIntentId"), c.Param("orderId"))

	err := flow.Cancel(ctx)
	h.saveFlow(ctx, flow)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if err == payment.ErrMissingPaymentInfo {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"state": flow.State, "error": flow.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": flow.State, "redirectPath": flow.RedirectPath})
}
