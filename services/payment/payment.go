// Package payment drives the card payment flow: tokenization against the
// payment processor, intent creation through the backend, and the
// confirmation state machine.
package payment

import (
	"context"
	"errors"
	"fmt"

	"laundrify/gateway"
	"laundrify/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentmethod"
	"go.uber.org/zap"
)

// ErrPaymentFailed is the generic outcome for a rejected or unknown intent
// status. Processor validation errors are surfaced verbatim instead.
var ErrPaymentFailed = errors.New("Payment failed. Please try again.")

// OrderStatusPath is where the client lands once a payment has gone through.
const OrderStatusPath = "/user/order-status"

// Tokenizer mints a payment-method token from raw card input. The token is
// the only card-derived value that ever reaches the backend.
type Tokenizer interface {
	Tokenize(ctx context.Context, card models.CardDetails) (string, error)
}

// StripeTokenizer creates payment methods via the Stripe client library.
type StripeTokenizer struct{}

func (StripeTokenizer) Tokenize(ctx context.Context, card models.CardDetails) (string, error) {
	params := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(card.Number),
			ExpMonth: stripe.Int64(card.ExpMonth),
			ExpYear:  stripe.Int64(card.ExpYear),
			CVC:      stripe.String(card.CVC),
		},
		BillingDetails: &stripe.PaymentMethodBillingDetailsParams{
			Name: stripe.String(card.HolderName),
		},
	}
	params.Context = ctx

	pm, err := paymentmethod.New(params)
	if err != nil {
		// Card-validation errors (declines etc.) go to the user as the
		// processor reported them. Never retried automatically.
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
			return "", errors.New(stripeErr.Msg)
		}
		return "", fmt.Errorf("payment: tokenization failed: %w", err)
	}
	return pm.ID, nil
}

// Result carries the created intent and the navigation target it implies.
type Result struct {
	Intent       models.PaymentIntent `json:"intent"`
	RedirectPath string               `json:"redirectPath"`
}

// Service owns intent creation and routing decisions.
type Service interface {
	Pay(ctx context.Context, card models.CardDetails, orderID string) (*Result, error)
	CreateIntent(ctx context.Context, paymentMethodID, orderID string) (*Result, error)
}

type DefaultPaymentService struct {
	Tokenizer Tokenizer
	Gateway   gateway.PaymentGateway
	Logger    *zap.Logger
}

// Pay tokenizes the card and exchanges the token for a payment intent.
func (s *DefaultPaymentService) Pay(ctx context.Context, card models.CardDetails, orderID string) (*Result, error) {
	paymentMethodID, err := s.Tokenizer.Tokenize(ctx, card)
	if err != nil {
		return nil, err
	}
	return s.CreateIntent(ctx, paymentMethodID, orderID)
}

// CreateIntent asks the backend for a payment intent and maps its status to
// the next view: Pending goes to confirmation, Succeeded straight to order
// status, anything else fails without navigating.
func (s *DefaultPaymentService) CreateIntent(ctx context.Context, paymentMethodID, orderID string) (*Result, error) {
	resp, err := s.Gateway.CreateIntent(ctx, models.CreateIntentRequest{
		PaymentMethodID: paymentMethodID,
		OrderID:         orderID,
	})
	if err != nil {
		if apiErr, ok := gateway.IsAPIError(err); ok {
			return nil, apiErr
		}
		s.Logger.Error("create payment intent failed", zap.Error(err))
		return nil, ErrPaymentFailed
	}

	intent := models.PaymentIntent{
		ID:       resp.PaymentIntentID,
		Status:   resp.Payment.PaymentStatus,
		OrderRef: orderID,
	}

	switch intent.Status {
	case models.PaymentStatusPending:
		return &Result{
			Intent:       intent,
			RedirectPath: fmt.Sprintf("/confirmation/%s?paymentIntentId=%s", orderID, intent.ID),
		}, nil
	case models.PaymentStatusSucceeded:
		return &Result{Intent: intent, RedirectPath: OrderStatusPath}, nil
	default:
		return nil, ErrPaymentFailed
	}
}
