// Package catalog serves the laundry-service list, cached ahead of the
// backend.
package catalog

import (
	"context"
	"encoding/json"
	"time"

	"laundrify/gateway"
	"laundrify/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	servicesCacheKey = "catalog:services"
	servicesCacheTTL = 5 * time.Minute
)

// Service owns the service catalog, including the admin mutations.
type Service interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, serviceID string) (*models.Service, error)
	CreateService(ctx context.Context, svc models.Service) (*models.Service, error)
	UpdateService(ctx context.Context, svc models.Service) (*models.Service, error)
	DeleteService(ctx context.Context, serviceID string) error
	RefreshCache(ctx context.Context) error
}

type DefaultCatalogService struct {
	Gateway gateway.CatalogGateway
	Cache   *redis.Client
	Logger  *zap.Logger
}

func (s *DefaultCatalogService) ListServices(ctx context.Context) ([]models.Service, error) {
	if data, err := s.Cache.Get(ctx, servicesCacheKey).Result(); err == nil {
		var services []models.Service
		if err := json.Unmarshal([]byte(data), &services); err == nil {
			return services, nil
		}
	}

	services, err := s.Gateway.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	s.cache(ctx, services)
	return services, nil
}

func (s *DefaultCatalogService) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	return s.Gateway.GetService(ctx, serviceID)
}

func (s *DefaultCatalogService) CreateService(ctx context.Context, svc models.Service) (*models.Service, error) {
	created, err := s.Gateway.CreateService(ctx, svc)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *DefaultCatalogService) UpdateService(ctx context.Context, svc models.Service) (*models.Service, error) {
	updated, err := s.Gateway.UpdateService(ctx, svc)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *DefaultCatalogService) DeleteService(ctx context.Context, serviceID string) error {
	if err := s.Gateway.DeleteService(ctx, serviceID); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// RefreshCache repopulates the catalog cache from the backend. Run
// periodically by the background worker.
func (s *DefaultCatalogService) RefreshCache(ctx context.Context) error {
	services, err := s.Gateway.ListServices(ctx)
	if err != nil {
		return err
	}
	s.cache(ctx, services)
	return nil
}

func (s *DefaultCatalogService) cache(ctx context.Context, services []models.Service) {
	data, err := json.Marshal(services)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, servicesCacheKey, data, servicesCacheTTL).Err(); err != nil {
		s.Logger.Warn("failed to cache service catalog", zap.Error(err))
	}
}

func (s *DefaultCatalogService) invalidate(ctx context.Context) {
	if err := s.Cache.Del(ctx, servicesCacheKey).Err(); err != nil {
		s.Logger.Warn("failed to invalidate service catalog cache", zap.Error(err))
	}
}
