package models

// Payment intent statuses as reported by the backend. The gateway only
// observes these; transitions are driven by the payment processor.
const (
	PaymentStatusPending   = "Pending"
	PaymentStatusSucceeded = "Succeeded"
	PaymentStatusFailed    = "Failed"
)

// CardDetails is the raw card input used to mint a payment-method token.
// It never leaves the process except to the payment gateway itself.
type CardDetails struct {
	Number     string `json:"number"`
	ExpMonth   int64  `json:"expMonth"`
	ExpYear    int64  `json:"expYear"`
	CVC        string `json:"cvc"`
	HolderName string `json:"holderName"`
}

// PaymentIntent tracks one attempt to charge a payment method for an order.
type PaymentIntent struct {
	ID       string `json:"paymentIntentId"`
	Status   string `json:"paymentStatus"`
	OrderRef string `json:"orderId"`
}

// CreateIntentRequest is the body sent to the backend's
// create-payment-intent endpoint.
type CreateIntentRequest struct {
	PaymentMethodID string `json:"paymentMethodId"`
	OrderID         string `json:"orderId"`
}

// CreateIntentResponse mirrors the backend response shape.
type CreateIntentResponse struct {
	PaymentIntentID string `json:"paymentIntentId"`
	Payment         struct {
		PaymentStatus string `json:"paymentStatus"`
	} `json:"payment"`
}

// ConfirmPaymentRequest is shared by the confirm and retry endpoints.
type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
	OrderID         string `json:"orderId"`
	PaymentMethodID string `json:"paymentMethodId"`
}

// ConfirmPaymentResponse reports whether the gateway accepted the
// confirmation attempt.
type ConfirmPaymentResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"paymentStatus,omitempty"`
	Error   string `json:"error,omitempty"`
}
