package handler

import (
	"context"
	"time"

	"github.com/workpulse/attendance-system/internal/core/ports"
)

// stubReportService lets each test plug in only the calls it expects; an
// unexpected call panics on the nil function.
type stubReportService struct {
	monthlySummaryFn      func(ctx context.Context, employeeID string, month time.Month, year int) (*ports.MonthlySummary, error)
	weeklySummaryFn       func(ctx context.Context, employeeID string) (*ports.WeeklySummary, error)
	employeeDashboardFn   func(ctx context.Context, employeeID string) (*ports.EmployeeDashboard, error)
	organizationSummaryFn func(ctx context.Context, month time.Month, year int) (*ports.OrganizationSummary, error)
	teamSummaryFn         func(ctx context.Context, month time.Month, year int) ([]ports.TeamMemberSummary, error)
	todayRosterFn         func(ctx context.Context) ([]ports.RosterEntry, error)
	allAttendanceFn       func(ctx context.Context, limit, offset int) ([]ports.EmployeeAttendance, error)
	employeeAttendanceFn  func(ctx context.Context, employeeID string, limit int) (*ports.EmployeeAttendance, error)
	exportRowsFn          func(ctx context.Context, start, end *time.Time) ([]ports.ExportRow, error)
}

func (s *stubReportService) MonthlySummary(ctx context.Context, employeeID string, month time.Month, year int) (*ports.MonthlySummary, error) {
	return s.monthlySummaryFn(ctx, employeeID, month, year)
}

func (s *stubReportService) WeeklySummary(ctx context.Context, employeeID string) (*ports.WeeklySummary, error) {
	return s.weeklySummaryFn(ctx, employeeID)
}

func (s *stubReportService) EmployeeDashboard(ctx context.Context, employeeID string) (*ports.EmployeeDashboard, error) {
	return s.employeeDashboardFn(ctx, employeeID)
}

func (s *stubReportService) OrganizationSummary(ctx context.Context, month time.Month, year int) (*ports.OrganizationSummary, error) {
	return s.organizationSummaryFn(ctx, month, year)
}

func (s *stubReportService) TeamSummary(ctx context.Context, month time.Month, year int) ([]ports.TeamMemberSummary, error) {
	return s.teamSummaryFn(ctx, month, year)
}

func (s *stubReportService) TodayRoster(ctx context.Context) ([]ports.RosterEntry, error) {
	return s.todayRosterFn(ctx)
}

func (s *stubReportService) AllAttendance(ctx context.Context, limit, offset int) ([]ports.EmployeeAttendance, error) {
	return s.allAttendanceFn(ctx, limit, offset)
}

func (s *stubReportService) EmployeeAttendance(ctx context.Context, employeeID string, limit int) (*ports.EmployeeAttendance, error) {
	return s.employeeAttendanceFn(ctx, employeeID, limit)
}

func (s *stubReportService) ExportRows(ctx context.Context, start, end *time.Time) ([]ports.ExportRow, error) {
	return s.exportRowsFn(ctx, start, end)
}
