package handler

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workpulse/attendance-system/internal/core/domain"
	"github.com/workpulse/attendance-system/internal/core/ports"
)

func TestManagerHandler_Employee_PassesPathParam(t *testing.T) {
	e := echo.New()
	reports := &stubReportService{
		employeeAttendanceFn: func(_ context.Context, employeeID string, limit int) (*ports.EmployeeAttendance, error) {
			if employeeID != "EMP003" {
				t.Fatalf("employeeID = %s", employeeID)
			}
			return &ports.EmployeeAttendance{
				UserInfo:   ports.UserInfo{EmployeeID: "EMP003", Name: "Carol"},
				Attendance: []ports.AttendanceRow{*sampleRow()},
			}, nil
		},
	}
	handler := NewManagerHandler(reports)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("EMP003")

	if err := handler.Employee(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user := resp["user"].(map[string]any)
	if user["employeeId"] != "EMP003" {
		t.Fatalf("user = %+v", user)
	}
}

func TestManagerHandler_Employee_NotFound(t *testing.T) {
	e := echo.New()
	reports := &stubReportService{
		employeeAttendanceFn: func(context.Context, string, int) (*ports.EmployeeAttendance, error) {
			return nil, domain.ErrEmployeeNotFound
		},
	}
	handler := NewManagerHandler(reports)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("EMP999")

	err := handler.Employee(c)
	if !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("err = %v, want ErrEmployeeNotFound", err)
	}
}

func TestManagerHandler_TodayStatus(t *testing.T) {
	e := echo.New()
	in := time.Date(2025, 11, 24, 9, 5, 0, 0, time.UTC)
	reports := &stubReportService{
		todayRosterFn: func(context.Context) ([]ports.RosterEntry, error) {
			return []ports.RosterEntry{
				{EmployeeID: "EMP001", Name: "Alice", CurrentStatus: "checked_in", CheckInTime: &in},
				{EmployeeID: "EMP002", Name: "Bob", CurrentStatus: "not_checked_in"},
			}, nil
		},
	}
	handler := NewManagerHandler(reports)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := handler.TodayStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	employees := resp["employees"].([]any)
	if len(employees) != 2 {
		t.Fatalf("employees = %d", len(employees))
	}
	first := employees[0].(map[string]any)
	if first["currentStatus"] != "checked_in" || first["checkInTime"] != "09:05:00" {
		t.Fatalf("first = %+v", first)
	}
	second := employees[1].(map[string]any)
	if second["checkInTime"] != nil {
		t.Fatalf("second checkInTime = %v, want null", second["checkInTime"])
	}
}

func TestManagerHandler_Summary_DefaultsToCurrentMonth(t *testing.T) {
	e := echo.New()
	now := time.Now().UTC()
	reports := &stubReportService{
		teamSummaryFn: func(_ context.Context, month time.Month, year int) ([]ports.TeamMemberSummary, error) {
			if month != now.Month() || year != now.Year() {
				t.Fatalf("month/year = %v/%d", month, year)
			}
			return []ports.TeamMemberSummary{
				{EmployeeID: "EMP001", Name: "Alice", MonthlySummary: ports.MonthlySummary{PresentDays: 3, AverageWorkingHours: 8}},
			}, nil
		},
	}
	handler := NewManagerHandler(reports)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := handler.Summary(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	rows := resp["summary"].([]any)
	row := rows[0].(map[string]any)
	if row["averageWorkingHours"] != "8.00" {
		t.Fatalf("averageWorkingHours = %v", row["averageWorkingHours"])
	}
}

func TestManagerHandler_Export_WritesCSV(t *testing.T) {
	e := echo.New()
	date := time.Date(2025, 11, 24, 0, 0, 0, 0, time.UTC)
	in := time.Date(2025, 11, 24, 9, 0, 0, 0, time.UTC)
	out := time.Date(2025, 11, 24, 17, 30, 0, 0, time.UTC)
	hours := 8.5
	reports := &stubReportService{
		exportRowsFn: func(_ context.Context, start, end *time.Time) ([]ports.ExportRow, error) {
			if start == nil || start.Format("2006-01-02") != "2025-11-01" {
				t.Fatalf("start = %v", start)
			}
			if end != nil {
				t.Fatalf("end = %v, want nil", end)
			}
			return []ports.ExportRow{
				{EmployeeID: "EMP001", Name: "Alice", Email: "a@company.com", Department: "Eng",
					Date: &date, CheckInTime: &in, CheckOutTime: &out, Status: "present", TotalHours: &hours},
				{EmployeeID: "EMP002", Name: "Bob", Email: "b@company.com", Department: "Ops"},
			}, nil
		},
	}
	handler := NewManagerHandler(reports)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?startDate=2025-11-01", nil), rec)

	if err := handler.Export(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get(echo.HeaderContentDisposition), "attachment") {
		t.Fatalf("missing attachment disposition")
	}

	records, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(records))
	}
	if records[0][0] != "Employee ID" {
		t.Fatalf("header = %v", records[0])
	}
	alice := records[1]
	if alice[4] != "2025-11-24" || alice[5] != "09:00:00" || alice[6] != "17:30:00" || alice[8] != "8.50" {
		t.Fatalf("alice = %v", alice)
	}
	bob := records[2]
	if bob[4] != "" || bob[8] != "" {
		t.Fatalf("bob = %v, want empty ledger columns", bob)
	}
}

func TestManagerHandler_Export_BadDate(t *testing.T) {
	e := echo.New()
	handler := NewManagerHandler(&stubReportService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?startDate=24-11-2025", nil), rec)

	err := handler.Export(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}
