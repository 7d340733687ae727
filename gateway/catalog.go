package gateway

import (
	"context"
	"net/http"
	"net/url"

	"laundrify/models"
)

// CatalogGateway covers the laundry-service catalog endpoints.
type CatalogGateway interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, serviceID string) (*models.Service, error)
	CreateService(ctx context.Context, svc models.Service) (*models.Service, error)
	UpdateService(ctx context.Context, svc models.Service) (*models.Service, error)
	DeleteService(ctx context.Context, serviceID string) error
}

type HTTPCatalogGateway struct {
	*Client
}

func NewHTTPCatalogGateway(c *Client) *HTTPCatalogGateway {
	return &HTTPCatalogGateway{Client: c}
}

func (g *HTTPCatalogGateway) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := g.do(ctx, http.MethodGet, "/api/services", nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (g *HTTPCatalogGateway) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	var svc models.Service
	if err := g.do(ctx, http.MethodGet, "/api/services/"+url.PathEscape(serviceID), nil, &svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

func (g *HTTPCatalogGateway) CreateService(ctx context.Context, svc models.Service) (*models.Service, error) {
	var created models.Service
	if err := g.do(ctx, http.MethodPost, "/api/services", svc, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *HTTPCatalogGateway) UpdateService(ctx context.Context, svc models.Service) (*models.Service, error) {
	var updated models.Service
	if err := g.do(ctx, http.MethodPut, "/api/services/"+url.PathEscape(svc.ID), svc, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (g *HTTPCatalogGateway) DeleteService(ctx context.Context, serviceID string) error {
	return g.do(ctx, http.MethodDelete, "/api/services/"+url.PathEscape(serviceID), nil, nil)
}
