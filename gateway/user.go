package gateway

import (
	"context"
	"net/http"
	"net/url"

	"laundrify/models"
)

// UserGateway covers account and authentication endpoints. Credentials are
// verified by the backend; this module never stores passwords.
type UserGateway interface {
	Login(ctx context.Context, creds models.Credentials) (token string, user *models.User, err error)
	Register(ctx context.Context, reg models.Registration) (*models.User, error)
	Account(ctx context.Context) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

type HTTPUserGateway struct {
	*Client
}

func NewHTTPUserGateway(c *Client) *HTTPUserGateway {
	return &HTTPUserGateway{Client: c}
}

func (g *HTTPUserGateway) Login(ctx context.Context, creds models.Credentials) (string, *models.User, error) {
	var resp struct {
		Token string `json:"token"`
		models.User
	}
	if err := g.do(ctx, http.MethodPost, "/api/users/login", creds, &resp); err != nil {
		return "", nil, err
	}
	user := resp.User
	return resp.Token, &user, nil
}

func (g *HTTPUserGateway) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	var user models.User
	if err := g.do(ctx, http.MethodPost, "/api/users/register", reg, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *HTTPUserGateway) Account(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := g.do(ctx, http.MethodGet, "/api/users/account", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *HTTPUserGateway) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := g.do(ctx, http.MethodGet, "/api/users/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (g *HTTPUserGateway) DeleteUser(ctx context.Context, userID string) error {
	return g.do(ctx, http.MethodDelete, "/api/users/delete/users/"+url.PathEscape(userID), nil, nil)
}
