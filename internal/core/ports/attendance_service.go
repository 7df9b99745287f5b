package ports

import (
	"context"
	"time"

	"github.com/workpulse/attendance-system/internal/core/domain"
)

// AttendanceRow is the flat per-day view returned to callers. Check-in and
// check-out remain nullable; TotalHours is 0 until check-out.
type AttendanceRow struct {
	ID           int64
	EmployeeID   string
	Date         time.Time
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	Status       domain.AttendanceStatus
	TotalHours   float64
	Late         bool
}

// TodayStatusResult reports the day's lifecycle state. Record is nil when the
// user has no row for today, which is a valid state, not an error.
type TodayStatusResult struct {
	State  domain.DayState
	Record *AttendanceRow
}

// AttendanceService is the daily check-in/check-out lifecycle:
// NOT_CHECKED_IN → CHECKED_IN → CHECKED_OUT, at most one transition of each
// kind per user per UTC calendar day.
type AttendanceService interface {
	CheckIn(ctx context.Context, employeeID string) (*AttendanceRow, error)
	CheckOut(ctx context.Context, employeeID string) (*AttendanceRow, error)
	TodayStatus(ctx context.Context, employeeID string) (*TodayStatusResult, error)
	History(ctx context.Context, employeeID string, limit int) ([]AttendanceRow, error)
}
