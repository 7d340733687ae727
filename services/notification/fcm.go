package notification

import (
	"context"
	"fmt"

	"laundrify/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCMNotificationService sends pickup reminders as push notifications.
type FCMNotificationService struct {
	Client *messaging.Client
	Logger *zap.Logger
}

func NewFCMNotificationService(client *messaging.Client, logger *zap.Logger) *FCMNotificationService {
	return &FCMNotificationService{Client: client, Logger: logger}
}

func (s *FCMNotificationService) SendPickupReminder(ctx context.Context, reminder models.PickupReminder) error {
	if s.Client == nil || reminder.DeviceToken == "" {
		s.Logger.Debug("skipping reminder, push channel unavailable or no device token",
			zap.String("order", reminder.OrderID))
		return nil
	}

	msg := &messaging.Message{
		Token: reminder.DeviceToken,
		Notification: &messaging.Notification{
			Title: "Laundry pickup tomorrow",
			Body: fmt.Sprintf("Your pickup is scheduled for %s at %s. We'll collect from %s.",
				reminder.PickupDate, reminder.PickupTime, reminder.Address),
		},
		Data: map[string]string{
			"orderId": reminder.OrderID,
			"type":    "pickup_reminder",
		},
	}

	if _, err := s.Client.Send(ctx, msg); err != nil {
		return fmt.Errorf("notification: failed to send pickup reminder: %w", err)
	}

	s.Logger.Info("pickup reminder sent",
		zap.String("order", reminder.OrderID), zap.String("user", reminder.UserID))
	return nil
}
