package gateway

import (
	"context"
	"net/http"
	"net/url"

	"laundrify/models"
)

// OrderGateway covers the backend order endpoints.
type OrderGateway interface {
	Create(ctx context.Context, draft models.OrderDraft) (*models.Order, error)
	GetByID(ctx context.Context, orderID string) (*models.Order, error)
	GetByUser(ctx context.Context, userID string) ([]models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error)
	Cancel(ctx context.Context, orderID string) error
}

type HTTPOrderGateway struct {
	*Client
}

func NewHTTPOrderGateway(c *Client) *HTTPOrderGateway {
	return &HTTPOrderGateway{Client: c}
}

func (g *HTTPOrderGateway) Create(ctx context.Context, draft models.OrderDraft) (*models.Order, error) {
	var resp struct {
		Order models.Order `json:"order"`
	}
	if err := g.do(ctx, http.MethodPost, "/api/orders", draft, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

func (g *HTTPOrderGateway) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := g.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(orderID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (g *HTTPOrderGateway) GetByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := g.do(ctx, http.MethodGet, "/api/orders/user/"+url.PathEscape(userID), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (g *HTTPOrderGateway) List(ctx context.Context) ([]models.Order, error) {
	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	if err := g.do(ctx, http.MethodGet, "/api/orders", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

func (g *HTTPOrderGateway) UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	body := map[string]string{"status": status}
	var order models.Order
	if err := g.do(ctx, http.MethodPut, "/api/orders/"+url.PathEscape(orderID), body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (g *HTTPOrderGateway) Cancel(ctx context.Context, orderID string) error {
	return g.do(ctx, http.MethodDelete, "/api/orders/"+url.PathEscape(orderID), nil, nil)
}
