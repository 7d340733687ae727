package models

import "time"

// FeedbackResponse is an admin reply attached to a feedback entry.
type FeedbackResponse struct {
	ID        string    `json:"_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Feedback is a user rating with optional comment, plus any admin responses.
type Feedback struct {
	ID        string             `json:"_id"`
	UserID    string             `json:"user"`
	OrderID   string             `json:"order,omitempty"`
	Rating    int                `json:"rating"` // 1..5
	Comment   string             `json:"comment,omitempty"`
	Responses []FeedbackResponse `json:"responses,omitempty"`
	CreatedAt time.Time          `json:"createdAt,omitempty"`
}
