package payment

import (
	"context"
	"errors"
	"testing"

	"laundrify/gateway"
	"laundrify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockPaymentGateway implements gateway.PaymentGateway for testing.
type MockPaymentGateway struct {
	intentResp *models.CreateIntentResponse
	intentErr  error

	confirmResp *models.ConfirmPaymentResponse
	confirmErr  error

	retryResp *models.ConfirmPaymentResponse
	retryErr  error

	cancelResp *models.ConfirmPaymentResponse
	cancelErr  error

	createCalls  int
	confirmCalls int
	retryCalls   int
	cancelCalls  int

	lastConfirm models.ConfirmPaymentRequest
}

func (m *MockPaymentGateway) CreateIntent(_ context.Context, req models.CreateIntentRequest) (*models.CreateIntentResponse, error) {
	m.createCalls++
	return m.intentResp, m.intentErr
}

func (m *MockPaymentGateway) Confirm(_ context.Context, req models.ConfirmPaymentRequest) (*models.ConfirmPaymentResponse, error) {
	m.confirmCalls++
	m.lastConfirm = req
	return m.confirmResp, m.confirmErr
}

func (m *MockPaymentGateway) Retry(_ context.Context, req models.ConfirmPaymentRequest) (*models.ConfirmPaymentResponse, error) {
	m.retryCalls++
	return m.retryResp, m.retryErr
}

func (m *MockPaymentGateway) Cancel(_ context.Context, _, _ string) (*models.ConfirmPaymentResponse, error) {
	m.cancelCalls++
	return m.cancelResp, m.cancelErr
}

// MockTokenizer returns a fixed payment-method token.
type MockTokenizer struct {
	token string
	err   error
}

func (m *MockTokenizer) Tokenize(context.Context, models.CardDetails) (string, error) {
	return m.token, m.err
}

func intentResponse(id, status string) *models.CreateIntentResponse {
	resp := &models.CreateIntentResponse{PaymentIntentID: id}
	resp.Payment.PaymentStatus = status
	return resp
}

func TestCreateIntent_PendingGoesToConfirmation(t *testing.T) {
	gw := &MockPaymentGateway{intentResp: intentResponse("pi_123", models.PaymentStatusPending)}
	svc := &DefaultPaymentService{Gateway: gw, Logger: zap.NewNop()}

	result, err := svc.CreateIntent(context.Background(), "pm_abc", "order_456")

	require.NoError(t, err)
	assert.Equal(t, "pi_123", result.Intent.ID)
	assert.Equal(t, "/confirmation/order_456?paymentIntentId=pi_123", result.RedirectPath)
}

func TestCreateIntent_SucceededGoesToOrderStatus(t *testing.T) {
	gw := &MockPaymentGateway{intentResp: intentResponse("pi_123", models.PaymentStatusSucceeded)}
	svc := &DefaultPaymentService{Gateway: gw, Logger: zap.NewNop()}

	result, err := svc.CreateIntent(context.Background(), "pm_abc", "order_456")

	require.NoError(t, err)
	assert.Equal(t, OrderStatusPath, result.RedirectPath)
}

func TestCreateIntent_FailedStatusDoesNotNavigate(t *testing.T) {
	gw := &MockPaymentGateway{intentResp: intentResponse("pi_123", models.PaymentStatusFailed)}
	svc := &DefaultPaymentService{Gateway: gw, Logger: zap.NewNop()}

	result, err := svc.CreateIntent(context.Background(), "pm_abc", "order_456")

	require.ErrorIs(t, err, ErrPaymentFailed)
	assert.Nil(t, result)
}

func TestCreateIntent_BackendErrorShownVerbatim(t *testing.T) {
	gw := &MockPaymentGateway{
		intentErr: &gateway.APIError{StatusCode: 402, Message: "Your card was declined."},
	}
	svc := &DefaultPaymentService{Gateway: gw, Logger: zap.NewNop()}

	_, err := svc.CreateIntent(context.Background(), "pm_abc", "order_456")

	require.Error(t, err)
	assert.Equal(t, "Your card was declined.", err.Error())
}

func TestCreateIntent_TransportErrorIsGeneric(t *testing.T) {
	gw := &MockPaymentGateway{intentErr: errors.New("dial tcp: connection refused")}
	svc := &DefaultPaymentService{Gateway: gw, Logger: zap.NewNop()}

	_, err := svc.CreateIntent(context.Background(), "pm_abc", "order_456")
	assert.ErrorIs(t, err, ErrPaymentFailed)
}

func TestPay_TokenizationErrorStopsBeforeBackend(t *testing.T) {
	gw := &MockPaymentGateway{}
	svc := &DefaultPaymentService{
		Tokenizer: &MockTokenizer{err: errors.New("Your card number is invalid.")},
		Gateway:   gw,
		Logger:    zap.NewNop(),
	}

	_, err := svc.Pay(context.Background(), models.CardDetails{Number: "4242"}, "order_456")

	require.Error(t, err)
	assert.Equal(t, "Your card number is invalid.", err.Error())
	assert.Zero(t, gw.createCalls)
}

func TestPay_TokenFeedsIntentCreation(t *testing.T) {
	gw := &MockPaymentGateway{intentResp: intentResponse("pi_123", models.PaymentStatusPending)}
	svc := &DefaultPaymentService{
		Tokenizer: &MockTokenizer{token: "pm_minted"},
		Gateway:   gw,
		Logger:    zap.NewNop(),
	}

	result, err := svc.Pay(context.Background(), models.CardDetails{Number: "4242424242424242"}, "order_456")

	require.NoError(t, err)
	assert.Equal(t, 1, gw.createCalls)
	assert.Equal(t, "pi_123", result.Intent.ID)
}
