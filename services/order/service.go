package order

import (
	"context"
	"fmt"
	"time"

	"laundrify/gateway"
	"laundrify/models"
	"laundrify/services/notification"

	"go.uber.org/zap"
)

// SubmitResult reports a successful submission and where the client goes
// next (the payment page for the new order).
type SubmitResult struct {
	Order        *models.Order `json:"order"`
	RedirectPath string        `json:"redirectPath"`
}

// Service owns order submission and tracking.
type Service interface {
	Submit(ctx context.Context, builder *DraftBuilder) (*SubmitResult, error)
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	OrdersByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error)
	CancelOrder(ctx context.Context, orderID string) error
}

type DefaultOrderService struct {
	Gateway   gateway.OrderGateway
	Users     gateway.UserGateway
	Reminders notification.ReminderScheduler
	Logger    *zap.Logger
}

// Submit validates and builds the draft, posts it to the backend, and on
// success schedules the pickup reminder. The draft session ends in
// Submitted or Failed; Failed drafts may be resubmitted after edits.
func (s *DefaultOrderService) Submit(ctx context.Context, builder *DraftBuilder) (*SubmitResult, error) {
	draft, err := builder.Build()
	if err != nil {
		return nil, err
	}

	session := builder.Session
	session.State = StateSubmitting

	created, err := s.Gateway.Create(ctx, *draft)
	if err != nil {
		session.State = StateFailed
		if apiErr, ok := gateway.IsAPIError(err); ok {
			// Backend business errors are shown verbatim.
			session.Message = apiErr.Message
			return nil, apiErr
		}
		session.Message = ErrSubmitFailed.Error()
		s.Logger.Error("order submission failed", zap.Error(err))
		return nil, ErrSubmitFailed
	}

	session.State = StateSubmitted
	session.OrderID = created.ID
	session.Message = ""

	s.schedulePickupReminder(ctx, created, draft)

	return &SubmitResult{
		Order:        created,
		RedirectPath: fmt.Sprintf("/payment/%s", created.ID),
	}, nil
}

// schedulePickupReminder enqueues a reminder a day before pickup.
// Best-effort: a scheduling failure never fails the order.
func (s *DefaultOrderService) schedulePickupReminder(ctx context.Context, created *models.Order, draft *models.OrderDraft) {
	if s.Reminders == nil {
		return
	}
	pickup, ok := parsePickupDate(draft.PickupDate)
	if !ok {
		return
	}
	reminder := models.PickupReminder{
		OrderID:    created.ID,
		UserID:     draft.UserID,
		PickupDate: draft.PickupDate,
		PickupTime: draft.PickupTime,
		Address:    draft.FormattedAddress,
		RemindAt:   pickup.Add(-24 * time.Hour),
	}
	// The push worker needs the device token; the request context still
	// carries the caller's auth token for the account lookup.
	if s.Users != nil {
		if user, err := s.Users.Account(ctx); err == nil {
			reminder.DeviceToken = user.DeviceToken
		} else {
			s.Logger.Debug("could not resolve device token for reminder",
				zap.String("order", created.ID), zap.Error(err))
		}
	}
	if err := s.Reminders.SchedulePickupReminder(ctx, reminder); err != nil {
		s.Logger.Warn("failed to schedule pickup reminder",
			zap.String("order", created.ID), zap.Error(err))
	}
}

func (s *DefaultOrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	return s.Gateway.GetByID(ctx, orderID)
}

func (s *DefaultOrderService) OrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.Gateway.GetByUser(ctx, userID)
}

func (s *DefaultOrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.Gateway.List(ctx)
}

func (s *DefaultOrderService) UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	return s.Gateway.UpdateStatus(ctx, orderID, status)
}

func (s *DefaultOrderService) CancelOrder(ctx context.Context, orderID string) error {
	return s.Gateway.Cancel(ctx, orderID)
}
