package handler

import (
	"github.com/workpulse/attendance-system/internal/core/ports"
)

type userInfoResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	EmployeeID string `json:"employeeId"`
	Department string `json:"department"`
}

type todaySnapshotResponse struct {
	CheckInTime  *string `json:"checkInTime"`
	CheckOutTime *string `json:"checkOutTime"`
	Status       string  `json:"status"`
	TotalHours   float64 `json:"totalHours"`
	IsCheckedIn  bool    `json:"isCheckedIn"`
	IsCheckedOut bool    `json:"isCheckedOut"`
}

type employeeDashboardResponse struct {
	User          userInfoResponse       `json:"user"`
	Today         todaySnapshotResponse  `json:"today"`
	ThisMonth     monthlySummaryResponse `json:"thisMonth"`
	LastSevenDays weeklySummaryResponse  `json:"lastSevenDays"`
}

type organizationSummaryResponse struct {
	Summary struct {
		TotalEmployees  int `json:"totalEmployees"`
		TodayCheckedIn  int `json:"todayCheckedIn"`
		TodayCheckedOut int `json:"todayCheckedOut"`
		TodayAbsent     int `json:"todayAbsent"`
	} `json:"summary"`
	ThisMonth struct {
		TotalEmployees      int     `json:"totalEmployees"`
		EmployeesPresent    int     `json:"employeesPresent"`
		PresentRecords      int     `json:"presentRecords"`
		AbsentRecords       int     `json:"absentRecords"`
		TotalWorkingHours   float64 `json:"totalWorkingHours"`
		AverageWorkingHours string  `json:"averageWorkingHours"`
	} `json:"thisMonth"`
	Departments []departmentSummaryResponse `json:"departments"`
}

type departmentSummaryResponse struct {
	Name          string `json:"name"`
	EmployeeCount int    `json:"employeeCount"`
	PresentToday  int    `json:"presentToday"`
}

type teamMemberSummaryResponse struct {
	UserID     int64  `json:"userId"`
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Department string `json:"department"`
	monthlySummaryResponse
}

type rosterEntryResponse struct {
	UserID        int64   `json:"userId"`
	EmployeeID    string  `json:"employeeId"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Department    string  `json:"department"`
	CurrentStatus string  `json:"currentStatus"`
	CheckInTime   *string `json:"checkInTime"`
	CheckOutTime  *string `json:"checkOutTime"`
	TotalHours    float64 `json:"totalHours"`
}

type employeeAttendanceResponse struct {
	User       userInfoResponse     `json:"user"`
	Attendance []attendanceResponse `json:"attendance"`
}

func toUserInfoResponse(u ports.UserInfo) userInfoResponse {
	return userInfoResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		EmployeeID: u.EmployeeID,
		Department: u.Department,
	}
}

func toEmployeeDashboardResponse(d *ports.EmployeeDashboard) employeeDashboardResponse {
	return employeeDashboardResponse{
		User: toUserInfoResponse(d.User),
		Today: todaySnapshotResponse{
			CheckInTime:  fmtClock(d.Today.CheckInTime),
			CheckOutTime: fmtClock(d.Today.CheckOutTime),
			Status:       d.Today.Status,
			TotalHours:   d.Today.TotalHours,
			IsCheckedIn:  d.Today.IsCheckedIn,
			IsCheckedOut: d.Today.IsCheckedOut,
		},
		ThisMonth:     toMonthlySummaryResponse(&d.ThisMonth),
		LastSevenDays: toWeeklySummaryResponse(&d.LastSevenDays),
	}
}

func toOrganizationSummaryResponse(s *ports.OrganizationSummary) organizationSummaryResponse {
	var resp organizationSummaryResponse
	resp.Summary.TotalEmployees = s.Summary.TotalEmployees
	resp.Summary.TodayCheckedIn = s.Summary.TodayCheckedIn
	resp.Summary.TodayCheckedOut = s.Summary.TodayCheckedOut
	resp.Summary.TodayAbsent = s.Summary.TodayAbsent
	resp.ThisMonth.TotalEmployees = s.ThisMonth.TotalEmployees
	resp.ThisMonth.EmployeesPresent = s.ThisMonth.EmployeesPresent
	resp.ThisMonth.PresentRecords = s.ThisMonth.PresentRecords
	resp.ThisMonth.AbsentRecords = s.ThisMonth.AbsentRecords
	resp.ThisMonth.TotalWorkingHours = s.ThisMonth.TotalWorkingHours
	resp.ThisMonth.AverageWorkingHours = fmtHours(s.ThisMonth.AverageWorkingHours)
	resp.Departments = make([]departmentSummaryResponse, 0, len(s.Departments))
	for _, d := range s.Departments {
		resp.Departments = append(resp.Departments, departmentSummaryResponse{
			Name:          d.Name,
			EmployeeCount: d.EmployeeCount,
			PresentToday:  d.PresentToday,
		})
	}
	return resp
}

func toTeamMemberSummaryResponses(members []ports.TeamMemberSummary) []teamMemberSummaryResponse {
	out := make([]teamMemberSummaryResponse, 0, len(members))
	for _, m := range members {
		out = append(out, teamMemberSummaryResponse{
			UserID:                 m.UserID,
			EmployeeID:             m.EmployeeID,
			Name:                   m.Name,
			Department:             m.Department,
			monthlySummaryResponse: toMonthlySummaryResponse(&m.MonthlySummary),
		})
	}
	return out
}

func toRosterEntryResponses(entries []ports.RosterEntry) []rosterEntryResponse {
	out := make([]rosterEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, rosterEntryResponse{
			UserID:        e.UserID,
			EmployeeID:    e.EmployeeID,
			Name:          e.Name,
			Email:         e.Email,
			Department:    e.Department,
			CurrentStatus: e.CurrentStatus,
			CheckInTime:   fmtClock(e.CheckInTime),
			CheckOutTime:  fmtClock(e.CheckOutTime),
			TotalHours:    e.TotalHours,
		})
	}
	return out
}

func toEmployeeAttendanceResponse(ea *ports.EmployeeAttendance) employeeAttendanceResponse {
	return employeeAttendanceResponse{
		User:       toUserInfoResponse(ea.UserInfo),
		Attendance: toAttendanceResponses(ea.Attendance),
	}
}

func toEmployeeAttendanceResponses(list []ports.EmployeeAttendance) []employeeAttendanceResponse {
	out := make([]employeeAttendanceResponse, 0, len(list))
	for i := range list {
		out = append(out, toEmployeeAttendanceResponse(&list[i]))
	}
	return out
}
