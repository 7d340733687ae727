package payment

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"laundrify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyConfirmationError(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"This PaymentIntent has already succeeded", "This payment has already been completed successfully."},
		{"You cannot cancel this PaymentIntent", "The payment cannot be canceled as it has already been processed."},
		{"network error while contacting processor", "There was a network issue. Please check your connection and try again."},
		{"request timeout exceeded", "Payment confirmation timed out. Please retry."},
		{"something else entirely", "An unexpected error occurred. Please try again or contact support."},
		{"", "An unexpected error occurred. Please try again or contact support."},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyConfirmationError(tc.raw), "raw=%q", tc.raw)
	}
}

func TestConfirm_MissingInfoShortCircuits(t *testing.T) {
	gw := &MockPaymentGateway{}

	for _, f := range []*ConfirmationFlow{
		NewConfirmationFlow(gw, "", "order_456"),
		NewConfirmationFlow(gw, "pi_123", ""),
	} {
		err := f.Confirm(context.Background())
		require.ErrorIs(t, err, ErrMissingPaymentInfo)
		assert.Equal(t, ConfirmFailed, f.State)
	}
	assert.Zero(t, gw.confirmCalls, "missing identifiers must not reach the network")
}

func TestAutoConfirm_FiresExactlyOnce(t *testing.T) {
	gw := &MockPaymentGateway{
		confirmResp: &models.ConfirmPaymentResponse{Success: true, Status: models.PaymentStatusSucceeded},
	}
	f := NewConfirmationFlow(gw, "pi_123", "order_456")

	require.NoError(t, f.AutoConfirm(context.Background()))
	require.NoError(t, f.AutoConfirm(context.Background()))

	assert.Equal(t, 1, gw.confirmCalls)
	assert.Equal(t, ConfirmConfirmed, f.State)
	assert.Equal(t, OrderStatusPath, f.RedirectPath)
}

func TestAutoConfirm_SkipsWhenIdentifiersMissing(t *testing.T) {
	gw := &MockPaymentGateway{}
	f := NewConfirmationFlow(gw, "", "")

	require.NoError(t, f.AutoConfirm(context.Background()))
	assert.Equal(t, ConfirmIdle, f.State)
	assert.Zero(t, gw.confirmCalls)
}

func TestConfirmationFlow_SurvivesSerialization(t *testing.T) {
	gw := &MockPaymentGateway{
		confirmResp: &models.ConfirmPaymentResponse{Success: true, Status: models.PaymentStatusSucceeded},
	}
	f := NewConfirmationFlow(gw, "pi_123", "order_456")
	require.NoError(t, f.AutoConfirm(context.Background()))

	data, err := json.Marshal(f)
	require.NoError(t, err)

	restored := &ConfirmationFlow{}
	require.NoError(t, json.Unmarshal(data, restored))
	restored.Gateway = gw

	assert.True(t, restored.AutoTriggered)
	assert.Equal(t, ConfirmConfirmed, restored.State)
	assert.Equal(t, OrderStatusPath, restored.RedirectPath)

	// A restored flow must not auto-fire a second time.
	require.NoError(t, restored.AutoConfirm(context.Background()))
	assert.Equal(t, 1, gw.confirmCalls)
}

func TestConfirm_UsesDefaultPaymentMethod(t *testing.T) {
	gw := &MockPaymentGateway{
		confirmResp: &models.ConfirmPaymentResponse{Success: true},
	}
	f := NewConfirmationFlow(gw, "pi_123", "order_456")

	require.NoError(t, f.Confirm(context.Background()))
	assert.Equal(t, DefaultPaymentMethodID, gw.lastConfirm.PaymentMethodID)
	assert.Equal(t, "pi_123", gw.lastConfirm.PaymentIntentID)
	assert.Equal(t, "order_456", gw.lastConfirm.OrderID)
}

func TestConfirm_FailureIsClassified(t *testing.T) {
	gw := &MockPaymentGateway{
		confirmErr: errors.New("This PaymentIntent has already succeeded"),
	}
	f := NewConfirmationFlow(gw, "pi_123", "order_456")

	err := f.Confirm(context.Background())
	require.Error(t, err)
	assert.Equal(t, ConfirmFailed, f.State)
	assert.Equal(t, "This payment has already been completed successfully.", f.Message)
}

func TestConfirm_UnsuccessfulResponseIsClassified(t *testing.T) {
	gw := &MockPaymentGateway{
		confirmResp: &models.ConfirmPaymentResponse{Success: false, Error: "request timeout exceeded"},
	}
	f := NewConfirmationFlow(gw, "pi_123", "order_456")

	err := f.Confirm(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Payment confirmation timed out. Please retry.", f.Message)
}

func TestRetry_UsesRetryEndpoint(t *testing.T) {
	gw := &MockPaymentGateway{
		retryResp: &models.ConfirmPaymentResponse{Success: true},
	}
	f := NewConfirmationFlow(gw, "pi_123", "order_456")

	require.NoError(t, f.Retry(context.Background()))
	assert.Equal(t, 1, gw.retryCalls)
	assert.Zero(t, gw.confirmCalls)
	assert.Equal(t, ConfirmConfirmed, f.State)
}

func TestCancel_NavigatesToCancelledView(t *testing.T) {
	gw := &MockPaymentGateway{
		cancelResp: &models.ConfirmPaymentResponse{Success: true},
	}
	f := NewConfirmationFlow(gw, "pi_123", "order_456")

	require.NoError(t, f.Cancel(context.Background()))
	assert.Equal(t, "/cancelled", f.RedirectPath)
}

func TestCancel_AlreadyProcessed(t *testing.T) {
	gw := &MockPaymentGateway{
		cancelErr: errors.New("You cannot cancel this PaymentIntent"),
	}
	f := NewConfirmationFlow(gw, "pi_123", "order_456")

	err := f.Cancel(context.Background())
	require.Error(t, err)
	assert.Equal(t, "The payment cannot be canceled as it has already been processed.", f.Message)
}
