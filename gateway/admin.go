package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"laundrify/models"
)

// AdminGateway covers the reporting and transaction endpoints behind the
// admin dashboard.
type AdminGateway interface {
	Dashboard(ctx context.Context, q models.DashboardQuery) (*models.DashboardData, error)
	Report(ctx context.Context, reportType string, q models.DashboardQuery) ([]byte, error)
	AdminTransactions(ctx context.Context) ([]models.Transaction, error)
	UserTransactions(ctx context.Context, search string) ([]models.Transaction, error)
}

type HTTPAdminGateway struct {
	*Client
}

func NewHTTPAdminGateway(c *Client) *HTTPAdminGateway {
	return &HTTPAdminGateway{Client: c}
}

func dashboardParams(q models.DashboardQuery) url.Values {
	params := url.Values{}
	if q.Filter != "" {
		params.Set("filter", q.Filter)
	}
	if q.StartDate != "" {
		params.Set("startDate", q.StartDate)
	}
	if q.EndDate != "" {
		params.Set("endDate", q.EndDate)
	}
	return params
}

func (g *HTTPAdminGateway) Dashboard(ctx context.Context, q models.DashboardQuery) (*models.DashboardData, error) {
	path := "/api/admin/dashboard"
	if params := dashboardParams(q); len(params) > 0 {
		path += "?" + params.Encode()
	}
	var data models.DashboardData
	if err := g.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Report fetches a CSV report (reportType "orders" or "users") as raw bytes
// for passthrough download.
func (g *HTTPAdminGateway) Report(ctx context.Context, reportType string, q models.DashboardQuery) ([]byte, error) {
	path := fmt.Sprintf("/api/admin/%s-report", url.PathEscape(reportType))
	if params := dashboardParams(q); len(params) > 0 {
		path += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("gateway: failed to build report request: %w", err)
	}
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway: report request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp)
	}
	return io.ReadAll(resp.Body)
}

func (g *HTTPAdminGateway) AdminTransactions(ctx context.Context) ([]models.Transaction, error) {
	var txns []models.Transaction
	if err := g.do(ctx, http.MethodGet, "/api/transactions/admin", nil, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

func (g *HTTPAdminGateway) UserTransactions(ctx context.Context, search string) ([]models.Transaction, error) {
	path := "/api/transactions/user"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	var txns []models.Transaction
	if err := g.do(ctx, http.MethodGet, path, nil, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}
