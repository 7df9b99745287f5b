package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/workpulse/attendance-system/internal/core/domain"
	"github.com/workpulse/attendance-system/internal/core/ports"
)

// AttendanceService enforces the daily check-in/check-out state machine.
type AttendanceService struct {
	users  ports.UserRepository
	ledger ports.AttendanceRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewAttendanceService(users ports.UserRepository, ledger ports.AttendanceRepository, logger zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		users:  users,
		ledger: ledger,
		logger: logger,
		now:    time.Now,
	}
}

// CheckIn opens the user's attendance record for today. The status written is
// always "present"; lateness is judged by the presentation layer only.
func (s *AttendanceService) CheckIn(ctx context.Context, employeeID string) (*ports.AttendanceRow, error) {
	user, err := s.users.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	today := domain.DateOf(now)

	existing, err := s.ledger.FindForDate(ctx, user.ID, today)
	switch {
	case err == nil:
		if existing.CheckInTime != nil {
			return nil, domain.ErrAlreadyCheckedIn
		}
		// Placeholder "absent" row without a check-in: promote it.
		if err := s.ledger.PromoteCheckIn(ctx, existing.ID, now, domain.StatusPresent); err != nil {
			return nil, err
		}
		existing.CheckInTime = &now
		existing.Status = domain.StatusPresent
		s.logger.Info().Str("employee_id", employeeID).Time("check_in", now).Msg("checked in (promoted placeholder)")
		return toRow(existing, employeeID), nil

	case errors.Is(err, domain.ErrAttendanceNotFound):
		rec := &domain.AttendanceRecord{
			UserID:      user.ID,
			Date:        today,
			CheckInTime: &now,
			Status:      domain.StatusPresent,
		}
		created, err := s.ledger.Insert(ctx, rec)
		if err != nil {
			// A concurrent check-in won the (userId, date) uniqueness race;
			// report the same conflict a sequential double check-in would get.
			if errors.Is(err, domain.ErrDuplicateAttendance) {
				return nil, domain.ErrAlreadyCheckedIn
			}
			s.logger.Error().Err(err).Str("employee_id", employeeID).Msg("check-in insert failed")
			return nil, err
		}
		s.logger.Info().Str("employee_id", employeeID).Time("check_in", now).Msg("checked in")
		return toRow(created, employeeID), nil

	default:
		return nil, err
	}
}

// CheckOut closes today's record, computing the derived total hours. After a
// successful check-out the record is immutable for the day.
func (s *AttendanceService) CheckOut(ctx context.Context, employeeID string) (*ports.AttendanceRow, error) {
	user, err := s.users.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	today := domain.DateOf(now)

	rec, err := s.ledger.FindForDate(ctx, user.ID, today)
	if err != nil {
		if errors.Is(err, domain.ErrAttendanceNotFound) {
			return nil, domain.ErrNotCheckedIn
		}
		return nil, err
	}

	switch rec.State() {
	case domain.DayNotCheckedIn:
		return nil, domain.ErrNotCheckedIn
	case domain.DayCheckedOut:
		return nil, domain.ErrAlreadyCheckedOut
	}

	hours := domain.TotalHoursBetween(*rec.CheckInTime, now)
	if err := s.ledger.UpdateCheckout(ctx, rec.ID, now, hours); err != nil {
		s.logger.Error().Err(err).Str("employee_id", employeeID).Msg("check-out update failed")
		return nil, err
	}

	rec.CheckOutTime = &now
	rec.TotalHours = hours
	s.logger.Info().Str("employee_id", employeeID).Float64("total_hours", hours).Msg("checked out")
	return toRow(rec, employeeID), nil
}

// TodayStatus reports the day's lifecycle state. A missing row is the valid
// "not yet checked in" state, not a failure.
func (s *AttendanceService) TodayStatus(ctx context.Context, employeeID string) (*ports.TodayStatusResult, error) {
	user, err := s.users.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	today := domain.DateOf(s.now())
	rec, err := s.ledger.FindForDate(ctx, user.ID, today)
	if err != nil {
		if errors.Is(err, domain.ErrAttendanceNotFound) {
			return &ports.TodayStatusResult{State: domain.DayNotCheckedIn}, nil
		}
		return nil, err
	}

	return &ports.TodayStatusResult{
		State:  rec.State(),
		Record: toRow(rec, employeeID),
	}, nil
}

// History returns the user's attendance rows, most recent date first.
func (s *AttendanceService) History(ctx context.Context, employeeID string, limit int) ([]ports.AttendanceRow, error) {
	user, err := s.users.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	recs, err := s.ledger.ListRecent(ctx, user.ID, limit)
	if err != nil {
		return nil, err
	}

	rows := make([]ports.AttendanceRow, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, *toRow(rec, employeeID))
	}
	return rows, nil
}

const defaultHistoryLimit = 30

func toRow(rec *domain.AttendanceRecord, employeeID string) *ports.AttendanceRow {
	return &ports.AttendanceRow{
		ID:           rec.ID,
		EmployeeID:   employeeID,
		Date:         rec.Date,
		CheckInTime:  rec.CheckInTime,
		CheckOutTime: rec.CheckOutTime,
		Status:       rec.Status,
		TotalHours:   rec.TotalHours,
		Late:         rec.IsLate(),
	}
}
