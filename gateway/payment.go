package gateway

import (
	"context"
	"net/http"

	"laundrify/models"
)

// PaymentGateway covers the backend payment-intent endpoints. The backend in
// turn drives the payment processor; this gateway only observes statuses.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, req models.CreateIntentRequest) (*models.CreateIntentResponse, error)
	Confirm(ctx context.Context, req models.ConfirmPaymentRequest) (*models.ConfirmPaymentResponse, error)
	Retry(ctx context.Context, req models.ConfirmPaymentRequest) (*models.ConfirmPaymentResponse, error)
	Cancel(ctx context.Context, paymentIntentID, orderID string) (*models.ConfirmPaymentResponse, error)
}

type HTTPPaymentGateway struct {
	*Client
}

func NewHTTPPaymentGateway(c *Client) *HTTPPaymentGateway {
	return &HTTPPaymentGateway{Client: c}
}

func (g *HTTPPaymentGateway) CreateIntent(ctx context.Context, req models.CreateIntentRequest) (*models.CreateIntentResponse, error) {
	var resp models.CreateIntentResponse
	if err := g.do(ctx, http.MethodPost, "/api/payments/create-payment-intent", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *HTTPPaymentGateway) Confirm(ctx context.Context, req models.ConfirmPaymentRequest) (*models.ConfirmPaymentResponse, error) {
	var resp models.ConfirmPaymentResponse
	if err := g.do(ctx, http.MethodPost, "/api/payments/confirm-payment", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *HTTPPaymentGateway) Retry(ctx context.Context, req models.ConfirmPaymentRequest) (*models.ConfirmPaymentResponse, error) {
	var resp models.ConfirmPaymentResponse
	if err := g.do(ctx, http.MethodPost, "/api/payments/retry-payment", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *HTTPPaymentGateway) Cancel(ctx context.Context, paymentIntentID, orderID string) (*models.ConfirmPaymentResponse, error) {
	body := map[string]string{
		"paymentIntentId": paymentIntentID,
		"orderId":         orderID,
	}
	var resp models.ConfirmPaymentResponse
	if err := g.do(ctx, http.MethodPost, "/api/payments/cancel-payment", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
