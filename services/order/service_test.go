package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"laundrify/gateway"
	"laundrify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockOrderGateway implements gateway.OrderGateway for testing.
type MockOrderGateway struct {
	created   *models.Order
	createErr error

	lastDraft *models.OrderDraft
}

func (m *MockOrderGateway) Create(_ context.Context, draft models.OrderDraft) (*models.Order, error) {
	m.lastDraft = &draft
	return m.created, m.createErr
}

func (m *MockOrderGateway) GetByID(context.Context, string) (*models.Order, error)  { return nil, nil }
func (m *MockOrderGateway) GetByUser(context.Context, string) ([]models.Order, error) {
	return nil, nil
}
func (m *MockOrderGateway) List(context.Context) ([]models.Order, error) { return nil, nil }
func (m *MockOrderGateway) UpdateStatus(context.Context, string, string) (*models.Order, error) {
	return nil, nil
}
func (m *MockOrderGateway) Cancel(context.Context, string) error { return nil }

// MockUserGateway implements gateway.UserGateway for testing.
type MockUserGateway struct {
	account    *models.User
	accountErr error
}

func (m *MockUserGateway) Login(context.Context, models.Credentials) (string, *models.User, error) {
	return "", nil, nil
}
func (m *MockUserGateway) Register(context.Context, models.Registration) (*models.User, error) {
	return nil, nil
}
func (m *MockUserGateway) Account(context.Context) (*models.User, error) {
	return m.account, m.accountErr
}
func (m *MockUserGateway) ListUsers(context.Context) ([]models.User, error) { return nil, nil }
func (m *MockUserGateway) DeleteUser(context.Context, string) error         { return nil }

// MockReminderScheduler records scheduled pickup reminders.
type MockReminderScheduler struct {
	scheduled []models.PickupReminder
	err       error
}

func (m *MockReminderScheduler) SchedulePickupReminder(_ context.Context, r models.PickupReminder) error {
	m.scheduled = append(m.scheduled, r)
	return m.err
}

func submittableBuilder(t *testing.T) *DraftBuilder {
	t.Helper()
	now := time.Date(2025, 1, 10, 10, 0, 0, 0, time.Local)
	resolver := &MockResolver{}
	b := testBuilder(t, resolver, now)
	selectInsideLocation(t, b, resolver)
	b.SetForm(validForm(now))
	return b
}

func TestSubmit_Success(t *testing.T) {
	gw := &MockOrderGateway{created: &models.Order{ID: "order_456", Status: "Pending"}}
	reminders := &MockReminderScheduler{}
	svc := &DefaultOrderService{Gateway: gw, Reminders: reminders, Logger: zap.NewNop()}

	b := submittableBuilder(t)
	result, err := svc.Submit(context.Background(), b)

	require.NoError(t, err)
	assert.Equal(t, "order_456", result.Order.ID)
	assert.Equal(t, "/payment/order_456", result.RedirectPath)
	assert.Equal(t, StateSubmitted, b.Session.State)
	assert.Equal(t, "order_456", b.Session.OrderID)

	require.Len(t, reminders.scheduled, 1)
	reminder := reminders.scheduled[0]
	assert.Equal(t, "order_456", reminder.OrderID)
	pickup, ok := parsePickupDate(b.Session.Form.PickupDate)
	require.True(t, ok)
	assert.Equal(t, pickup.Add(-24*time.Hour), reminder.RemindAt)
}

func TestSubmit_ReminderCarriesDeviceToken(t *testing.T) {
	gw := &MockOrderGateway{created: &models.Order{ID: "order_456"}}
	reminders := &MockReminderScheduler{}
	users := &MockUserGateway{account: &models.User{ID: "user_1", DeviceToken: "fcm_token_abc"}}
	svc := &DefaultOrderService{Gateway: gw, Users: users, Reminders: reminders, Logger: zap.NewNop()}

	b := submittableBuilder(t)
	_, err := svc.Submit(context.Background(), b)

	require.NoError(t, err)
	require.Len(t, reminders.scheduled, 1)
	assert.Equal(t, "fcm_token_abc", reminders.scheduled[0].DeviceToken)
}

func TestSubmit_AccountLookupFailureStillSchedulesReminder(t *testing.T) {
	gw := &MockOrderGateway{created: &models.Order{ID: "order_456"}}
	reminders := &MockReminderScheduler{}
	users := &MockUserGateway{accountErr: errors.New("account unavailable")}
	svc := &DefaultOrderService{Gateway: gw, Users: users, Reminders: reminders, Logger: zap.NewNop()}

	b := submittableBuilder(t)
	_, err := svc.Submit(context.Background(), b)

	require.NoError(t, err)
	require.Len(t, reminders.scheduled, 1)
	assert.Empty(t, reminders.scheduled[0].DeviceToken)
}

func TestSubmit_BackendErrorShownVerbatim(t *testing.T) {
	gw := &MockOrderGateway{
		createErr: &gateway.APIError{StatusCode: 422, Message: "Pickup slot is no longer available"},
	}
	svc := &DefaultOrderService{Gateway: gw, Logger: zap.NewNop()}

	b := submittableBuilder(t)
	result, err := svc.Submit(context.Background(), b)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, "Pickup slot is no longer available", err.Error())
	assert.Equal(t, StateFailed, b.Session.State)
	assert.Equal(t, "Pickup slot is no longer available", b.Session.Message)
}

func TestSubmit_TransportErrorIsGeneric(t *testing.T) {
	gw := &MockOrderGateway{createErr: errors.New("dial tcp: connection refused")}
	svc := &DefaultOrderService{Gateway: gw, Logger: zap.NewNop()}

	b := submittableBuilder(t)
	_, err := svc.Submit(context.Background(), b)

	require.ErrorIs(t, err, ErrSubmitFailed)
	assert.Equal(t, StateFailed, b.Session.State)
	assert.Equal(t, ErrSubmitFailed.Error(), b.Session.Message)
}

func TestSubmit_FailedDraftCanBeResubmitted(t *testing.T) {
	gw := &MockOrderGateway{createErr: errors.New("temporarily down")}
	svc := &DefaultOrderService{Gateway: gw, Logger: zap.NewNop()}

	b := submittableBuilder(t)
	_, err := svc.Submit(context.Background(), b)
	require.Error(t, err)
	require.Equal(t, StateFailed, b.Session.State)

	gw.createErr = nil
	gw.created = &models.Order{ID: "order_789"}
	result, err := svc.Submit(context.Background(), b)

	require.NoError(t, err)
	assert.Equal(t, "order_789", result.Order.ID)
	assert.Equal(t, StateSubmitted, b.Session.State)
}

func TestSubmit_ReminderFailureDoesNotFailOrder(t *testing.T) {
	gw := &MockOrderGateway{created: &models.Order{ID: "order_456"}}
	reminders := &MockReminderScheduler{err: errors.New("queue unavailable")}
	svc := &DefaultOrderService{Gateway: gw, Reminders: reminders, Logger: zap.NewNop()}

	b := submittableBuilder(t)
	result, err := svc.Submit(context.Background(), b)

	require.NoError(t, err)
	assert.Equal(t, "order_456", result.Order.ID)
}

func TestSubmit_UnsubmittableDraftNeverReachesBackend(t *testing.T) {
	gw := &MockOrderGateway{}
	svc := &DefaultOrderService{Gateway: gw, Logger: zap.NewNop()}

	now := time.Date(2025, 1, 10, 10, 0, 0, 0, time.Local)
	b := testBuilder(t, &MockResolver{}, now)

	_, err := svc.Submit(context.Background(), b)
	require.ErrorIs(t, err, ErrDraftNotSubmittable)
	assert.Nil(t, gw.lastDraft)
}
