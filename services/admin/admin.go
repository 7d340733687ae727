// Package admin aggregates the dashboard, reporting, and user-management
// operations behind the admin views.
package admin

import (
	"context"
	"fmt"

	"laundrify/gateway"
	"laundrify/models"
)

// Report types the backend can export.
const (
	ReportOrders = "orders"
	ReportUsers  = "users"
)

type Service interface {
	Dashboard(ctx context.Context, q models.DashboardQuery) (*models.DashboardData, error)
	Report(ctx context.Context, reportType string, q models.DashboardQuery) ([]byte, error)
	AdminTransactions(ctx context.Context) ([]models.Transaction, error)
	UserTransactions(ctx context.Context, search string) ([]models.Transaction, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

type DefaultAdminService struct {
	Gateway gateway.AdminGateway
	Users   gateway.UserGateway
}

func (s *DefaultAdminService) Dashboard(ctx context.Context, q models.DashboardQuery) (*models.DashboardData, error) {
	return s.Gateway.Dashboard(ctx, q)
}

func (s *DefaultAdminService) Report(ctx context.Context, reportType string, q models.DashboardQuery) ([]byte, error) {
	if reportType != ReportOrders && reportType != ReportUsers {
		return nil, fmt.Errorf("unknown report type: %s", reportType)
	}
	return s.Gateway.Report(ctx, reportType, q)
}

func (s *DefaultAdminService) AdminTransactions(ctx context.Context) ([]models.Transaction, error) {
	return s.Gateway.AdminTransactions(ctx)
}

func (s *DefaultAdminService) UserTransactions(ctx context.Context, search string) ([]models.Transaction, error) {
	return s.Gateway.UserTransactions(ctx, search)
}

func (s *DefaultAdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Users.ListUsers(ctx)
}

func (s *DefaultAdminService) DeleteUser(ctx context.Context, userID string) error {
	return s.Users.DeleteUser(ctx, userID)
}
