package notification

import (
	"context"

	"laundrify/models"
)

// ReminderScheduler enqueues a pickup reminder for later delivery.
type ReminderScheduler interface {
	SchedulePickupReminder(ctx context.Context, reminder models.PickupReminder) error
}

// Service delivers notifications to user devices.
type Service interface {
	SendPickupReminder(ctx context.Context, reminder models.PickupReminder) error
}
