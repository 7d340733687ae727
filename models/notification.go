package models

import "time"

// PickupReminder is the payload of a scheduled reminder task. Enqueued when
// an order is created, delivered as a push notification ahead of the pickup
// window.
type PickupReminder struct {
	OrderID     string    `json:"orderId"`
	UserID      string    `json:"userId"`
	DeviceToken string    `json:"deviceToken"`
	PickupDate  string    `json:"pickupDate"`
	PickupTime  string    `json:"pickupTime"`
	Address     string    `json:"address"`
	RemindAt    time.Time `json:"remindAt"`
}
