package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workpulse/attendance-system/internal/api/metrics"
	"github.com/workpulse/attendance-system/internal/core/domain"
	"github.com/workpulse/attendance-system/internal/core/ports"
)

// AttendanceHandler handles the daily check-in/check-out lifecycle and the
// employee's own history and summary reads.
type AttendanceHandler struct {
	attendance ports.AttendanceService
	reports    ports.ReportService
}

func NewAttendanceHandler(attendance ports.AttendanceService, reports ports.ReportService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, reports: reports}
}

// CheckIn handles POST /api/attendance/checkin.
//
// @Summary      Check in for today
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      checkInRequest  true  "Employee to check in"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/attendance/checkin [post]
func (h *AttendanceHandler) CheckIn(c echo.Context) error {
	var req checkInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	row, err := h.attendance.CheckIn(c.Request().Context(), req.EmployeeID)
	if err != nil {
		countConflict(err)
		return err
	}
	metrics.CheckInsTotal.WithLabelValues(string(row.Status)).Inc()

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":    "checked in",
		"attendance": toAttendanceResponse(row),
	})
}

// CheckOut handles POST /api/attendance/checkout.
//
// @Summary      Check out for today
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      checkOutRequest  true  "Employee to check out"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/attendance/checkout [post]
func (h *AttendanceHandler) CheckOut(c echo.Context) error {
	var req checkOutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	row, err := h.attendance.CheckOut(c.Request().Context(), req.EmployeeID)
	if err != nil {
		countConflict(err)
		return err
	}
	metrics.CheckOutsTotal.Inc()

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "checked out",
		"attendance": toAttendanceResponse(row),
	})
}

// Today handles GET /api/attendance/today. A day with no ledger row reports
// status not_checked_in with a null attendance block.
//
// @Summary      Today's lifecycle state
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        employeeId  query     string  false  "Defaults to the token's employee"
// @Success      200         {object}  map[string]interface{}
// @Failure      401         {object}  map[string]string
// @Failure      404         {object}  map[string]string
// @Router       /api/attendance/today [get]
func (h *AttendanceHandler) Today(c echo.Context) error {
	employeeID, err := employeeIDParam(c)
	if err != nil {
		return err
	}

	result, err := h.attendance.TodayStatus(c.Request().Context(), employeeID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":     string(result.State),
		"attendance": toAttendanceResponse(result.Record),
	})
}

// MyHistory handles GET /api/attendance/my-history.
//
// @Summary      Recent attendance history, most recent first
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        employeeId  query     string  false  "Defaults to the token's employee"
// @Param        limit       query     int     false  "Maximum rows (default 30)"
// @Success      200         {object}  map[string]interface{}
// @Failure      401         {object}  map[string]string
// @Failure      404         {object}  map[string]string
// @Router       /api/attendance/my-history [get]
func (h *AttendanceHandler) MyHistory(c echo.Context) error {
	employeeID, err := employeeIDParam(c)
	if err != nil {
		return err
	}
	limit := intQuery(c, "limit", 0)

	rows, err := h.attendance.History(c.Request().Context(), employeeID, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"history": toAttendanceResponses(rows),
		"count":   len(rows),
	})
}

// MySummary handles GET /api/attendance/my-summary. Month and year default to
// the current UTC month.
//
// @Summary      Monthly attendance summary
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        employeeId  query     string  false  "Defaults to the token's employee"
// @Param        month       query     int     false  "1-12, default current"
// @Param        year        query     int     false  "Default current"
// @Success      200         {object}  monthlySummaryResponse
// @Failure      401         {object}  map[string]string
// @Failure      404         {object}  map[string]string
// @Router       /api/attendance/my-summary [get]
func (h *AttendanceHandler) MySummary(c echo.Context) error {
	employeeID, err := employeeIDParam(c)
	if err != nil {
		return err
	}
	month, year := monthYearQuery(c)

	start := time.Now()
	summary, err := h.reports.MonthlySummary(c.Request().Context(), employeeID, month, year)
	if err != nil {
		return err
	}
	metrics.SummaryDuration.WithLabelValues("monthly").Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, toMonthlySummaryResponse(summary))
}

// countConflict feeds the lifecycle conflict counter; anything that is not a
// known ordering violation is left to the error handler alone.
func countConflict(err error) {
	switch {
	case errors.Is(err, domain.ErrAlreadyCheckedIn):
		metrics.LifecycleConflictsTotal.WithLabelValues("already_checked_in").Inc()
	case errors.Is(err, domain.ErrNotCheckedIn):
		metrics.LifecycleConflictsTotal.WithLabelValues("not_checked_in").Inc()
	case errors.Is(err, domain.ErrAlreadyCheckedOut):
		metrics.LifecycleConflictsTotal.WithLabelValues("already_checked_out").Inc()
	}
}

func intQuery(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// monthYearQuery parses the month/year query pair, defaulting each missing or
// malformed half to the current UTC month.
func monthYearQuery(c echo.Context) (time.Month, int) {
	now := time.Now().UTC()
	month := intQuery(c, "month", int(now.Month()))
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	year := intQuery(c, "year", now.Year())
	if year == 0 {
		year = now.Year()
	}
	return time.Month(month), year
}
