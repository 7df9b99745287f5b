package ports

import (
	"context"
	"time"

	"github.com/workpulse/attendance-system/internal/core/domain"
)

// AttendanceRepository defines persistence operations for the attendance
// ledger. Every operation is a single-row write or a small bounded range
// scan; no cross-table transactions are required.
type AttendanceRepository interface {
	// Insert creates a new row for (rec.UserID, rec.Date). A uniqueness
	// violation on that pair is returned as domain.ErrDuplicateAttendance so
	// concurrent check-ins resolve to a Conflict, never a crash.
	Insert(ctx context.Context, rec *domain.AttendanceRecord) (*domain.AttendanceRecord, error)
	// PromoteCheckIn sets the check-in timestamp and status on a placeholder
	// row that was created without one (an "absent" marker).
	PromoteCheckIn(ctx context.Context, id int64, checkIn time.Time, status domain.AttendanceStatus) error
	// UpdateCheckout sets the check-out timestamp and the derived total hours.
	// The row is immutable afterwards.
	UpdateCheckout(ctx context.Context, id int64, checkOut time.Time, totalHours float64) error
	// FindForDate returns the single row for (userID, date) or
	// domain.ErrAttendanceNotFound.
	FindForDate(ctx context.Context, userID int64, date time.Time) (*domain.AttendanceRecord, error)
	// ListRecent returns up to limit rows for the user, most recent date first.
	ListRecent(ctx context.Context, userID int64, limit int) ([]*domain.AttendanceRecord, error)
	// ListInRange returns the user's rows with start <= date <= end.
	ListInRange(ctx context.Context, userID int64, start, end time.Time) ([]*domain.AttendanceRecord, error)
	// ListForAllInRange returns every user's rows in the closed interval.
	// Zero start/end values leave that bound open.
	ListForAllInRange(ctx context.Context, start, end time.Time) ([]*domain.AttendanceRecord, error)
}
