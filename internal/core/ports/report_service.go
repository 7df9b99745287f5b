package ports

import (
	"context"
	"time"
)

// MonthlySummary rolls one user's ledger rows for a calendar month.
// TotalDays counts rows (days with any record), not calendar days.
type MonthlySummary struct {
	TotalDays           int
	PresentDays         int
	AbsentDays          int
	LateDays            int
	HalfDays            int
	TotalWorkingHours   float64
	AverageWorkingHours float64 // TotalWorkingHours / PresentDays, 0 when PresentDays is 0
}

// WeeklySummary covers the trailing 7-day window ending today, inclusive.
type WeeklySummary struct {
	TotalDays         int
	PresentDays       int
	TotalWorkingHours float64
}

// TodaySnapshot is the employee dashboard's view of the current day.
type TodaySnapshot struct {
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	Status       string
	TotalHours   float64
	IsCheckedIn  bool // checked in and not yet out
	IsCheckedOut bool
}

// EmployeeDashboard combines identity, today, month, and week blocks.
type EmployeeDashboard struct {
	User          UserInfo
	Today         TodaySnapshot
	ThisMonth     MonthlySummary
	LastSevenDays WeeklySummary
}

// UserInfo is the identity block embedded in dashboard responses.
type UserInfo struct {
	ID         int64
	Name       string
	Email      string
	Role       string
	EmployeeID string
	Department string
}

// OrganizationSummary is the manager dashboard: today's headcount state, the
// month's rollup, and per-department buckets. TodayAbsent is derived as
// TotalEmployees − TodayCheckedIn and is not defended against inconsistent data.
type OrganizationSummary struct {
	Summary struct {
		TotalEmployees  int
		TodayCheckedIn  int
		TodayCheckedOut int
		TodayAbsent     int
	}
	ThisMonth struct {
		TotalEmployees      int
		EmployeesPresent    int
		PresentRecords      int
		AbsentRecords       int
		TotalWorkingHours   float64
		AverageWorkingHours float64
	}
	Departments []DepartmentSummary
}

// DepartmentSummary groups employees by the literal department string.
type DepartmentSummary struct {
	Name         string
	EmployeeCount int
	PresentToday int
}

// TeamMemberSummary is one per-employee row of the team summary. Employees
// with no ledger rows in range still appear with zero counters.
type TeamMemberSummary struct {
	UserID     int64
	EmployeeID string
	Name       string
	Department string
	MonthlySummary
}

// RosterEntry is one employee's current-day state for the manager roster.
type RosterEntry struct {
	UserID        int64
	EmployeeID    string
	Name          string
	Email         string
	Department    string
	CurrentStatus string // not_checked_in | checked_in | checked_out
	CheckInTime   *time.Time
	CheckOutTime  *time.Time
	TotalHours    float64
}

// EmployeeAttendance is one employee together with their recent ledger rows.
type EmployeeAttendance struct {
	UserInfo
	Attendance []AttendanceRow
}

// ExportRow is one line of the CSV attendance export. Attendance fields are
// empty for employees with no rows in range (left-join semantics).
type ExportRow struct {
	EmployeeID   string
	Name         string
	Email        string
	Department   string
	Date         *time.Time
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	Status       string
	TotalHours   *float64
}

// ReportService produces read-only rollups of the attendance ledger. Every
// summary is recomputed from row scans on each call; nothing is cached.
type ReportService interface {
	MonthlySummary(ctx context.Context, employeeID string, month time.Month, year int) (*MonthlySummary, error)
	WeeklySummary(ctx context.Context, employeeID string) (*WeeklySummary, error)
	EmployeeDashboard(ctx context.Context, employeeID string) (*EmployeeDashboard, error)
	OrganizationSummary(ctx context.Context, month time.Month, year int) (*OrganizationSummary, error)
	TeamSummary(ctx context.Context, month time.Month, year int) ([]TeamMemberSummary, error)
	TodayRoster(ctx context.Context) ([]RosterEntry, error)
	AllAttendance(ctx context.Context, limit, offset int) ([]EmployeeAttendance, error)
	EmployeeAttendance(ctx context.Context, employeeID string, limit int) (*EmployeeAttendance, error)
	ExportRows(ctx context.Context, start, end *time.Time) ([]ExportRow, error)
}
