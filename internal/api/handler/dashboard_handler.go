package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workpulse/attendance-system/internal/api/metrics"
	"github.com/workpulse/attendance-system/internal/core/ports"
)

// DashboardHandler serves the role-specific landing views.
type DashboardHandler struct {
	reports ports.ReportService
}

func NewDashboardHandler(reports ports.ReportService) *DashboardHandler {
	return &DashboardHandler{reports: reports}
}

// Employee handles GET /api/dashboard/employee.
//
// @Summary      Employee dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  employeeDashboardResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/dashboard/employee [get]
func (h *DashboardHandler) Employee(c echo.Context) error {
	employeeID, err := claimEmployeeID(c)
	if err != nil {
		return err
	}

	dashboard, err := h.reports.EmployeeDashboard(c.Request().Context(), employeeID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toEmployeeDashboardResponse(dashboard))
}

// Manager handles GET /api/dashboard/manager. Month and year default to the
// current UTC month.
//
// @Summary      Manager dashboard (organization summary)
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        month  query     int  false  "1-12, default current"
// @Param        year   query     int  false  "Default current"
// @Success      200    {object}  organizationSummaryResponse
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Router       /api/dashboard/manager [get]
func (h *DashboardHandler) Manager(c echo.Context) error {
	month, year := monthYearQuery(c)

	start := time.Now()
	summary, err := h.reports.OrganizationSummary(c.Request().Context(), month, year)
	if err != nil {
		return err
	}
	metrics.SummaryDuration.WithLabelValues("organization").Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, toOrganizationSummaryResponse(summary))
}
