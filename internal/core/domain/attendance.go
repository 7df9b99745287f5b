package domain

import (
	"math"
	"time"
)

// AttendanceStatus is the categorical label attached to a day's attendance row.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusLate    AttendanceStatus = "late"
	StatusHalfDay AttendanceStatus = "half-day"
)

// DayState is the per-(user, date) check-in lifecycle state, derived from the
// two nullable timestamps. CHECKED_OUT is terminal; no state regresses.
type DayState string

const (
	DayNotCheckedIn DayState = "not_checked_in"
	DayCheckedIn    DayState = "checked_in"
	DayCheckedOut   DayState = "checked_out"
)

// Late check-in is display metadata only. The lifecycle always writes
// "present" on check-in; presentation layers judge lateness against the
// scheduled 09:00 start with a 15-minute grace period.
const (
	WorkdayStartHour  = 9
	LateGraceMinutes  = 15
	WorkingHoursPerDay = 8
)

// AttendanceRecord is one row of the ledger: a single (user, calendar date)
// pair, unique per day.
type AttendanceRecord struct {
	ID           int64
	UserID       int64
	Date         time.Time // UTC midnight of the calendar day
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	Status       AttendanceStatus
	TotalHours   float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// State derives the lifecycle state from the nullable timestamps. A row with
// a check-out but no check-in is corrupt; it is reported as NOT_CHECKED_IN so
// the lifecycle service rejects further transitions on it.
func (r *AttendanceRecord) State() DayState {
	if r == nil || r.CheckInTime == nil {
		return DayNotCheckedIn
	}
	if r.CheckOutTime == nil {
		return DayCheckedIn
	}
	return DayCheckedOut
}

// IsLate reports whether the check-in happened after the scheduled start plus
// the grace period, on the record's own calendar day.
func (r *AttendanceRecord) IsLate() bool {
	if r == nil || r.CheckInTime == nil {
		return false
	}
	in := r.CheckInTime.UTC()
	cutoff := time.Date(in.Year(), in.Month(), in.Day(), WorkdayStartHour, LateGraceMinutes, 0, 0, time.UTC)
	return in.After(cutoff)
}

// TotalHoursBetween computes the wall-clock duration between check-in and
// check-out in hours, rounded to two decimals. Negative durations clamp to 0.
func TotalHoursBetween(checkIn, checkOut time.Time) float64 {
	h := checkOut.Sub(checkIn).Hours()
	if h < 0 {
		return 0
	}
	return RoundHours(h)
}

// RoundHours rounds an hour value to two decimal places.
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

// DateOf truncates t to its UTC calendar day. All date boundaries in the
// system are UTC at the moment of the action.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
