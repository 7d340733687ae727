package handlers

import (
	"fmt"
	"net/http"

	"laundrify/models"
	"laundrify/services/admin"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	Admin admin.Service
}

func NewAdminHandler(svc admin.Service) *AdminHandler {
	return &AdminHandler{Admin: svc}
}

func dashboardQuery(c *gin.Context) models.DashboardQuery {
	return models.DashboardQuery{
		Filter:    c.Query("filter"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	data, err := h.Admin.Dashboard(c.Request.Context(), dashboardQuery(c))
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// Report streams a CSV report ("orders" or "users") for download.
func (h *AdminHandler) Report(c *gin.Context) {
	reportType := c.Param("type")
	data, err := h.Admin.Report(c.Request.Context(), reportType, dashboardQuery(c))
	if err != nil {
		respondGatewayError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-report.csv", reportType))
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *AdminHandler) AdminTransactions(c *gin.Context) {
	txns, err := h.Admin.AdminTransactions(c.Request.Context())
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}

// UserTransactions serves the user's transaction history. The optional
// search query backs the debounced search box in the transactions view.
func (h *AdminHandler) UserTransactions(c *gin.Context) {
	txns, err := h.Admin.UserTransactions(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.Admin.ListUsers(c.Request.Context())
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.Admin.DeleteUser(c.Request.Context(), c.Param("userId")); err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
