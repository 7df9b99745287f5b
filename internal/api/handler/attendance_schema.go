package handler

import (
	"fmt"
	"time"

	"github.com/workpulse/attendance-system/internal/core/ports"
)

// --- Request types ---

type checkInRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
}

type checkOutRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
}

// --- Response types ---

// attendanceResponse is the wire shape of one ledger row. Dates render as
// "2006-01-02", clock times as "15:04:05"; both check fields stay null until
// the matching transition happens.
type attendanceResponse struct {
	ID           int64   `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	Date         string  `json:"date"`
	CheckInTime  *string `json:"checkInTime"`
	CheckOutTime *string `json:"checkOutTime"`
	Status       string  `json:"status"`
	TotalHours   float64 `json:"totalHours"`
	IsLate       bool    `json:"isLate"`
}

type monthlySummaryResponse struct {
	TotalDays           int     `json:"totalDays"`
	PresentDays         int     `json:"presentDays"`
	AbsentDays          int     `json:"absentDays"`
	LateDays            int     `json:"lateDays"`
	HalfDays            int     `json:"halfDays"`
	TotalWorkingHours   float64 `json:"totalWorkingHours"`
	AverageWorkingHours string  `json:"averageWorkingHours"`
}

type weeklySummaryResponse struct {
	TotalDays         int     `json:"totalDays"`
	PresentDays       int     `json:"presentDays"`
	TotalWorkingHours float64 `json:"totalWorkingHours"`
}

func toAttendanceResponse(row *ports.AttendanceRow) *attendanceResponse {
	if row == nil {
		return nil
	}
	return &attendanceResponse{
		ID:           row.ID,
		EmployeeID:   row.EmployeeID,
		Date:         fmtDate(row.Date),
		CheckInTime:  fmtClock(row.CheckInTime),
		CheckOutTime: fmtClock(row.CheckOutTime),
		Status:       string(row.Status),
		TotalHours:   row.TotalHours,
		IsLate:       row.Late,
	}
}

func toAttendanceResponses(rows []ports.AttendanceRow) []attendanceResponse {
	out := make([]attendanceResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *toAttendanceResponse(&rows[i]))
	}
	return out
}

func toMonthlySummaryResponse(s *ports.MonthlySummary) monthlySummaryResponse {
	return monthlySummaryResponse{
		TotalDays:           s.TotalDays,
		PresentDays:         s.PresentDays,
		AbsentDays:          s.AbsentDays,
		LateDays:            s.LateDays,
		HalfDays:            s.HalfDays,
		TotalWorkingHours:   s.TotalWorkingHours,
		AverageWorkingHours: fmtHours(s.AverageWorkingHours),
	}
}

func toWeeklySummaryResponse(s *ports.WeeklySummary) weeklySummaryResponse {
	return weeklySummaryResponse{
		TotalDays:         s.TotalDays,
		PresentDays:       s.PresentDays,
		TotalWorkingHours: s.TotalWorkingHours,
	}
}

func fmtDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func fmtClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format("15:04:05")
	return &s
}

func fmtHours(h float64) string {
	return fmt.Sprintf("%.2f", h)
}
