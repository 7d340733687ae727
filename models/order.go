package models

import "time"

// OrderServiceLine groups the items ordered under one laundry service.
type OrderServiceLine struct {
	ServiceRef string      `json:"service"`
	Items      []OrderItem `json:"items"`
}

type OrderItem struct {
	ItemName string `json:"item"`
	Quantity int    `json:"quantity"`
}

// OrderDraft is the client-held, not-yet-submitted representation of an
// order. It is assembled once from the cart and the validated pickup form
// and never mutated after submission.
type OrderDraft struct {
	UserID           string             `json:"user"`
	Services         []OrderServiceLine `json:"services"`
	TotalAmount      float64            `json:"totalAmount"`
	PickupDate       string             `json:"pickupDate"`
	PickupTime       string             `json:"pickupTime"` // 12-hour display form, converted at submission
	FormattedAddress string             `json:"formatted_address"`
	Latitude         float64            `json:"latitude"`
	Longitude        float64            `json:"longitude"`
	OrderPersonName  string             `json:"orderPersonName"`
	PhoneNumber      string             `json:"phoneNumber"`
}

// Order is the backend's view of a submitted order.
type Order struct {
	ID               string             `json:"_id"`
	UserID           string             `json:"user"`
	Services         []OrderServiceLine `json:"services"`
	TotalAmount      float64            `json:"totalAmount"`
	PickupDate       string             `json:"pickupDate"`
	PickupTime       string             `json:"pickupTime"`
	FormattedAddress string             `json:"formatted_address"`
	Latitude         float64            `json:"latitude"`
	Longitude        float64            `json:"longitude"`
	OrderPersonName  string             `json:"orderPersonName"`
	PhoneNumber      string             `json:"phoneNumber"`
	Status           string             `json:"status"` // e.g. "Pending", "Picked Up", "Delivered"
	PaymentStatus    string             `json:"paymentStatus,omitempty"`
	CreatedAt        time.Time          `json:"createdAt,omitempty"`
}
