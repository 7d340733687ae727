package models

import "time"

// Transaction is one payment record in the admin or user transaction view.
type Transaction struct {
	ID              string    `json:"_id"`
	OrderID         string    `json:"orderId"`
	UserID          string    `json:"userId"`
	Amount          float64   `json:"amount"`
	PaymentIntentID string    `json:"paymentIntentId,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}

// DashboardData is the aggregate payload behind the admin dashboard charts.
type DashboardData struct {
	TotalOrders    int                `json:"totalOrders"`
	TotalRevenue   float64            `json:"totalRevenue"`
	TotalUsers     int                `json:"totalUsers"`
	OrdersByStatus map[string]int     `json:"ordersByStatus"`
	RevenueByDay   map[string]float64 `json:"revenueByDay"`
}

// DashboardQuery narrows the dashboard aggregation window.
type DashboardQuery struct {
	Filter    string `json:"filter,omitempty"` // e.g. "week", "month"
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}
