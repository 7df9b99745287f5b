package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workpulse/attendance-system/internal/api/metrics"
	"github.com/workpulse/attendance-system/internal/core/ports"
)

// ManagerHandler serves the manager-only attendance views. Route access is
// restricted to role=manager by the RBAC middleware; handlers assume it ran.
type ManagerHandler struct {
	reports ports.ReportService
}

func NewManagerHandler(reports ports.ReportService) *ManagerHandler {
	return &ManagerHandler{reports: reports}
}

// All handles GET /api/manager/attendance/all.
//
// @Summary      Recent attendance for every employee
// @Tags         manager
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Rows per employee (default 100)"
// @Param        offset  query     int  false  "Employees to skip"
// @Success      200     {object}  map[string]interface{}
// @Failure      401     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Router       /api/manager/attendance/all [get]
func (h *ManagerHandler) All(c echo.Context) error {
	limit := intQuery(c, "limit", 0)
	offset := intQuery(c, "offset", 0)

	list, err := h.reports.AllAttendance(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"employees": toEmployeeAttendanceResponses(list),
		"count":     len(list),
	})
}

// Employee handles GET /api/manager/attendance/employee/:id, where :id is the
// public employee ID (EMP001), not the numeric row ID.
//
// @Summary      One employee's attendance
// @Tags         manager
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Employee ID (EMP001)"
// @Param        limit  query     int     false  "Maximum rows (default 30)"
// @Success      200    {object}  employeeAttendanceResponse
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /api/manager/attendance/employee/{id} [get]
func (h *ManagerHandler) Employee(c echo.Context) error {
	employeeID := c.Param("id")
	limit := intQuery(c, "limit", 0)

	ea, err := h.reports.EmployeeAttendance(c.Request().Context(), employeeID, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toEmployeeAttendanceResponse(ea))
}

// Summary handles GET /api/manager/attendance/summary: one monthly rollup per
// employee, including employees with no rows in the month.
//
// @Summary      Per-employee monthly rollup
// @Tags         manager
// @Produce      json
// @Security     BearerAuth
// @Param        month  query     int  false  "1-12, default current"
// @Param        year   query     int  false  "Default current"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Router       /api/manager/attendance/summary [get]
func (h *ManagerHandler) Summary(c echo.Context) error {
	month, year := monthYearQuery(c)

	start := time.Now()
	members, err := h.reports.TeamSummary(c.Request().Context(), month, year)
	if err != nil {
		return err
	}
	metrics.SummaryDuration.WithLabelValues("team").Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, map[string]interface{}{
		"month":   int(month),
		"year":    year,
		"summary": toTeamMemberSummaryResponses(members),
	})
}

// TodayStatus handles GET /api/manager/attendance/today-status: the live
// roster with each employee's current lifecycle state.
//
// @Summary      Today's roster
// @Tags         manager
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/manager/attendance/today-status [get]
func (h *ManagerHandler) TodayStatus(c echo.Context) error {
	roster, err := h.reports.TodayRoster(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"date":      fmtDate(time.Now().UTC()),
		"employees": toRosterEntryResponses(roster),
	})
}

// Export handles GET /api/manager/attendance/export: the full ledger as a CSV
// attachment, optionally bounded by startDate/endDate (YYYY-MM-DD, inclusive).
//
// @Summary      CSV attendance export
// @Tags         manager
// @Produce      text/csv
// @Security     BearerAuth
// @Param        startDate  query     string  false  "YYYY-MM-DD"
// @Param        endDate    query     string  false  "YYYY-MM-DD"
// @Success      200        {string}  string
// @Failure      400        {object}  map[string]string
// @Failure      401        {object}  map[string]string
// @Failure      403        {object}  map[string]string
// @Router       /api/manager/attendance/export [get]
func (h *ManagerHandler) Export(c echo.Context) error {
	start, err := dateQuery(c, "startDate")
	if err != nil {
		return err
	}
	end, err := dateQuery(c, "endDate")
	if err != nil {
		return err
	}

	began := time.Now()
	rows, err := h.reports.ExportRows(c.Request().Context(), start, end)
	if err != nil {
		return err
	}
	metrics.SummaryDuration.WithLabelValues("export").Observe(time.Since(began).Seconds())

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Employee ID", "Name", "Email", "Department", "Date", "Check In", "Check Out", "Status", "Total Hours"})
	for _, row := range rows {
		_ = w.Write(exportRecord(row))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	filename := fmt.Sprintf("attendance-export-%s.csv", fmtDate(time.Now().UTC()))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

// exportRecord flattens one export row; employees with no attendance in range
// leave the ledger columns empty.
func exportRecord(row ports.ExportRow) []string {
	date, checkIn, checkOut, hours := "", "", "", ""
	if row.Date != nil {
		date = fmtDate(*row.Date)
	}
	if s := fmtClock(row.CheckInTime); s != nil {
		checkIn = *s
	}
	if s := fmtClock(row.CheckOutTime); s != nil {
		checkOut = *s
	}
	if row.TotalHours != nil {
		hours = fmtHours(*row.TotalHours)
	}
	return []string{row.EmployeeID, row.Name, row.Email, row.Department, date, checkIn, checkOut, row.Status, hours}
}

func dateQuery(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be YYYY-MM-DD")
	}
	return &t, nil
}
