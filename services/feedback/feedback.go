// Package feedback handles user ratings and the admin response workflow.
package feedback

import (
	"context"
	"fmt"

	"laundrify/gateway"
	"laundrify/models"
)

type Service interface {
	List(ctx context.Context) ([]models.Feedback, error)
	Submit(ctx context.Context, fb models.Feedback) (*models.Feedback, error)
	Respond(ctx context.Context, feedbackID, message string) error
	Delete(ctx context.Context, feedbackID string) error
	DeleteResponse(ctx context.Context, feedbackID, responseID string) error
}

type DefaultFeedbackService struct {
	Gateway gateway.FeedbackGateway
}

func (s *DefaultFeedbackService) List(ctx context.Context) ([]models.Feedback, error) {
	return s.Gateway.List(ctx)
}

func (s *DefaultFeedbackService) Submit(ctx context.Context, fb models.Feedback) (*models.Feedback, error) {
	if fb.Rating < 1 || fb.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}
	return s.Gateway.Submit(ctx, fb)
}

func (s *DefaultFeedbackService) Respond(ctx context.Context, feedbackID, message string) error {
	if message == "" {
		return fmt.Errorf("response message is required")
	}
	return s.Gateway.Respond(ctx, feedbackID, message)
}

func (s *DefaultFeedbackService) Delete(ctx context.Context, feedbackID string) error {
	return s.Gateway.Delete(ctx, feedbackID)
}

func (s *DefaultFeedbackService) DeleteResponse(ctx context.Context, feedbackID, responseID string) error {
	return s.Gateway.DeleteResponse(ctx, feedbackID, responseID)
}
