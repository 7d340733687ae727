package gateway

import (
	"context"
	"net/http"
	"net/url"

	"laundrify/models"
)

// CartGateway covers the backend cart endpoints.
type CartGateway interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	Add(ctx context.Context, userID string, item models.CartItem) error
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error
	Remove(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error
}

type HTTPCartGateway struct {
	*Client
}

func NewHTTPCartGateway(c *Client) *HTTPCartGateway {
	return &HTTPCartGateway{Client: c}
}

func (g *HTTPCartGateway) Get(ctx context.Context, userID string) (*models.Cart, error) {
	var resp struct {
		Cart models.Cart `json:"cart"`
	}
	if err := g.do(ctx, http.MethodGet, "/api/cart/"+url.PathEscape(userID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Cart, nil
}

func (g *HTTPCartGateway) Add(ctx context.Context, userID string, item models.CartItem) error {
	body := struct {
		UserID string `json:"userId"`
		models.CartItem
	}{UserID: userID, CartItem: item}
	return g.do(ctx, http.MethodPost, "/api/cart/add", body, nil)
}

func (g *HTTPCartGateway) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	body := map[string]interface{}{
		"userId":   userID,
		"itemId":   itemID,
		"quantity": quantity,
	}
	return g.do(ctx, http.MethodPut, "/api/cart/update-quantity", body, nil)
}

func (g *HTTPCartGateway) Remove(ctx context.Context, userID, itemID string) error {
	body := map[string]string{"userId": userID, "itemId": itemID}
	return g.do(ctx, http.MethodDelete, "/api/cart/remove", body, nil)
}

func (g *HTTPCartGateway) Clear(ctx context.Context, userID string) error {
	return g.do(ctx, http.MethodDelete, "/api/cart/clear/"+url.PathEscape(userID), nil, nil)
}
