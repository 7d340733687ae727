package payment

import (
	"context"
	"errors"
	"strings"

	"laundrify/gateway"
	"laundrify/models"
)

// ConfirmationState tracks one confirmation attempt.
type ConfirmationState string

const (
	ConfirmIdle       ConfirmationState = "Idle"
	ConfirmInProgress ConfirmationState = "Confirming"
	ConfirmConfirmed  ConfirmationState = "Confirmed"
	ConfirmFailed     ConfirmationState = "Failed"
)

// ErrMissingPaymentInfo short-circuits confirmation when either identifier
// is absent. No network call is made.
var ErrMissingPaymentInfo = errors.New("Missing payment information. Please refresh the page and try again.")

// DefaultPaymentMethodID backs confirmation attempts that arrive without a
// stored payment method.
const DefaultPaymentMethodID = "pm_card_visa"

// Tailored messages per failure class.
const (
	msgAlreadySucceeded = "This payment has already been completed successfully."
	msgCannotCancel     = "The payment cannot be canceled as it has already been processed."
	msgNetworkIssue     = "There was a network issue. Please check your connection and try again."
	msgTimeout          = "Payment confirmation timed out. Please retry."
	msgGenericFailure   = "An unexpected error occurred. Please try again or contact support."
)

// ClassifyConfirmationError maps a raw gateway error message to the message
// shown to the user, by substring.
func ClassifyConfirmationError(raw string) string {
	switch {
	case strings.Contains(raw, "already succeeded"):
		return msgAlreadySucceeded
	case strings.Contains(raw, "cannot cancel"):
		return msgCannotCancel
	case strings.Contains(raw, "network"):
		return msgNetworkIssue
	case strings.Contains(raw, "timeout"):
		return msgTimeout
	default:
		return msgGenericFailure
	}
}

// ConfirmationFlow is the confirmation view's state machine. Confirmation
// fires automatically once when both identifiers are present, and stays
// manually re-triggerable afterwards. Whether re-confirming an already
// settled intent is safe is up to the gateway; the flow only reports what
// it is told.
//
// The flow is serializable so the handler can cache it between requests;
// AutoTriggered survives the round trip, which is what makes the
// once-per-intent auto-confirmation hold across replayed page mounts.
type ConfirmationFlow struct {
	Gateway gateway.PaymentGateway `json:"-"`

	PaymentIntentID string `json:"paymentIntentId"`
	OrderID         string `json:"orderId"`
	PaymentMethodID string `json:"paymentMethodId"`

	State         ConfirmationState `json:"state"`
	Message       string            `json:"message,omitempty"`
	RedirectPath  string            `json:"redirectPath,omitempty"`
	AutoTriggered bool              `json:"autoTriggered"`
}

func NewConfirmationFlow(gw gateway.PaymentGateway, paymentIntentID, orderID string) *ConfirmationFlow {
	return &ConfirmationFlow{
		Gateway:         gw,
		PaymentIntentID: paymentIntentID,
		OrderID:         orderID,
		PaymentMethodID: DefaultPaymentMethodID,
		State:           ConfirmIdle,
	}
}

// AutoConfirm runs the on-mount confirmation exactly once, and only when
// both identifiers are present.
func (f *ConfirmationFlow) AutoConfirm(ctx context.Context) error {
	if f.AutoTriggered || f.PaymentIntentID == "" || f.OrderID == "" {
		return nil
	}
	f.AutoTriggered = true
	return f.Confirm(ctx)
}

// Confirm attempts server-side confirmation of the intent.
func (f *ConfirmationFlow) Confirm(ctx context.Context) error {
	return f.attempt(ctx, f.Gateway.Confirm)
}

// Retry re-attempts a failed payment through the dedicated retry endpoint.
func (f *ConfirmationFlow) Retry(ctx context.Context) error {
	return f.attempt(ctx, f.Gateway.Retry)
}

func (f *ConfirmationFlow) attempt(ctx context.Context, call func(context.Context, models.ConfirmPaymentRequest) (*models.ConfirmPaymentResponse, error)) error {
	if f.PaymentIntentID == "" || f.OrderID == "" {
		f.State = ConfirmFailed
		f.Message = ErrMissingPaymentInfo.Error()
		return ErrMissingPaymentInfo
	}

	f.State = ConfirmInProgress
	f.Message = ""

	resp, err := call(ctx, models.ConfirmPaymentRequest{
		PaymentIntentID: f.PaymentIntentID,
		OrderID:         f.OrderID,
		PaymentMethodID: f.PaymentMethodID,
	})
	if err != nil {
		f.fail(err.Error())
		return errors.New(f.Message)
	}
	if !resp.Success {
		f.fail(resp.Error)
		return errors.New(f.Message)
	}

	f.State = ConfirmConfirmed
	f.RedirectPath = OrderStatusPath
	return nil
}

// Cancel abandons the intent through the cancel endpoint. On success the
// client navigates to the cancelled view.
func (f *ConfirmationFlow) Cancel(ctx context.Context) error {
	if f.PaymentIntentID == "" || f.OrderID == "" {
		f.State = ConfirmFailed
		f.Message = ErrMissingPaymentInfo.Error()
		return ErrMissingPaymentInfo
	}

	resp, err := f.Gateway.Cancel(ctx, f.PaymentIntentID, f.OrderID)
	if err != nil {
		f.fail(err.Error())
		return errors.New(f.Message)
	}
	if !resp.Success {
		f.fail(resp.Error)
		return errors.New(f.Message)
	}

	f.State = ConfirmConfirmed
	f.RedirectPath = "/cancelled"
	return nil
}

func (f *ConfirmationFlow) fail(raw string) {
	f.State = ConfirmFailed
	f.Message = ClassifyConfirmationError(raw)
}
