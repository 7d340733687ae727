package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"laundrify/models"
)

// FeedbackGateway covers the feedback and admin-response endpoints.
type FeedbackGateway interface {
	List(ctx context.Context) ([]models.Feedback, error)
	Submit(ctx context.Context, fb models.Feedback) (*models.Feedback, error)
	Respond(ctx context.Context, feedbackID, message string) error
	Delete(ctx context.Context, feedbackID string) error
	DeleteResponse(ctx context.Context, feedbackID, responseID string) error
}

type HTTPFeedbackGateway struct {
	*Client
}

func NewHTTPFeedbackGateway(c *Client) *HTTPFeedbackGateway {
	return &HTTPFeedbackGateway{Client: c}
}

func (g *HTTPFeedbackGateway) List(ctx context.Context) ([]models.Feedback, error) {
	var feedback []models.Feedback
	if err := g.do(ctx, http.MethodGet, "/api/feedback", nil, &feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (g *HTTPFeedbackGateway) Submit(ctx context.Context, fb models.Feedback) (*models.Feedback, error) {
	var created models.Feedback
	if err := g.do(ctx, http.MethodPost, "/api/feedback", fb, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *HTTPFeedbackGateway) Respond(ctx context.Context, feedbackID, message string) error {
	body := map[string]string{"message": message}
	return g.do(ctx, http.MethodPost, "/api/feedback/response/"+url.PathEscape(feedbackID), body, nil)
}

func (g *HTTPFeedbackGateway) Delete(ctx context.Context, feedbackID string) error {
	return g.do(ctx, http.MethodDelete, "/api/feedback/"+url.PathEscape(feedbackID), nil, nil)
}

func (g *HTTPFeedbackGateway) DeleteResponse(ctx context.Context, feedbackID, responseID string) error {
	path := fmt.Sprintf("/api/feedback/%s/response/%s", url.PathEscape(feedbackID), url.PathEscape(responseID))
	return g.do(ctx, http.MethodDelete, path, nil, nil)
}
