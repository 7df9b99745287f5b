package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/workpulse/attendance-system/internal/core/domain"
	"github.com/workpulse/attendance-system/internal/core/ports"
)

// ReportService computes read-only rollups of the attendance ledger. Every
// summary is recomputed from row scans per call; nothing is cached.
type ReportService struct {
	users  ports.UserRepository
	ledger ports.AttendanceRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewReportService(users ports.UserRepository, ledger ports.AttendanceRepository, logger zerolog.Logger) *ReportService {
	return &ReportService{
		users:  users,
		ledger: ledger,
		logger: logger,
		now:    time.Now,
	}
}

// MonthlySummary rolls the user's rows for the closed interval
// [first, last day of month].
func (s *ReportService) MonthlySummary(ctx context.Context, employeeID string, month time.Month, year int) (*ports.MonthlySummary, error) {
	user, err := s.users.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	start, end := monthBounds(month, year)
	rows, err := s.ledger.ListInRange(ctx, user.ID, start, end)
	if err != nil {
		return nil, err
	}

	sum := rollup(rows)
	return &sum, nil
}

// WeeklySummary covers the trailing 7-day window ending today, inclusive.
func (s *ReportService) WeeklySummary(ctx context.Context, employeeID string) (*ports.WeeklySummary, error) {
	user, err := s.users.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	today := domain.DateOf(s.now())
	rows, err := s.ledger.ListInRange(ctx, user.ID, today.AddDate(0, 0, -6), today)
	if err != nil {
		return nil, err
	}

	week := ports.WeeklySummary{TotalDays: len(rows)}
	for _, r := range rows {
		if r.Status == domain.StatusPresent {
			week.PresentDays++
		}
		week.TotalWorkingHours += r.TotalHours
	}
	week.TotalWorkingHours = domain.RoundHours(week.TotalWorkingHours)
	return &week, nil
}

// EmployeeDashboard combines the identity, today, month, and week blocks in
// one read.
func (s *ReportService) EmployeeDashboard(ctx context.Context, employeeID string) (*ports.EmployeeDashboard, error) {
	user, err := s.users.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	today := domain.DateOf(now)

	dash := &ports.EmployeeDashboard{
		User: userInfo(user),
		Today: ports.TodaySnapshot{
			Status: string(domain.StatusAbsent),
		},
	}

	rec, err := s.ledger.FindForDate(ctx, user.ID, today)
	if err == nil {
		dash.Today = ports.TodaySnapshot{
			CheckInTime:  rec.CheckInTime,
			CheckOutTime: rec.CheckOutTime,
			Status:       string(rec.Status),
			TotalHours:   rec.TotalHours,
			IsCheckedIn:  rec.State() == domain.DayCheckedIn,
			IsCheckedOut: rec.State() == domain.DayCheckedOut,
		}
	} else if !errors.Is(err, domain.ErrAttendanceNotFound) {
		return nil, err
	}

	start, end := monthBounds(now.Month(), now.Year())
	monthRows, err := s.ledger.ListInRange(ctx, user.ID, start, end)
	if err != nil {
		return nil, err
	}
	dash.ThisMonth = rollup(monthRows)

	weekRows, err := s.ledger.ListInRange(ctx, user.ID, today.AddDate(0, 0, -6), today)
	if err != nil {
		return nil, err
	}
	dash.LastSevenDays.TotalDays = len(weekRows)
	for _, r := range weekRows {
		if r.Status == domain.StatusPresent {
			dash.LastSevenDays.PresentDays++
		}
		dash.LastSevenDays.TotalWorkingHours += r.TotalHours
	}
	dash.LastSevenDays.TotalWorkingHours = domain.RoundHours(dash.LastSevenDays.TotalWorkingHours)

	return dash, nil
}

// OrganizationSummary is the manager dashboard. Only role=employee users are
// counted; TodayAbsent = TotalEmployees − TodayCheckedIn.
func (s *ReportService) OrganizationSummary(ctx context.Context, month time.Month, year int) (*ports.OrganizationSummary, error) {
	employees, err := s.users.ListByRole(ctx, domain.RoleEmployee)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*domain.User, len(employees))
	for _, u := range employees {
		byID[u.ID] = u
	}

	today := domain.DateOf(s.now())
	todayRows, err := s.ledger.ListForAllInRange(ctx, today, today)
	if err != nil {
		return nil, err
	}

	org := &ports.OrganizationSummary{}
	org.Summary.TotalEmployees = len(employees)

	presentTodayByDept := make(map[string]int)
	for _, r := range todayRows {
		u, ok := byID[r.UserID]
		if !ok {
			continue
		}
		if r.CheckInTime != nil {
			org.Summary.TodayCheckedIn++
		}
		if r.CheckOutTime != nil {
			org.Summary.TodayCheckedOut++
		}
		if r.Status == domain.StatusPresent {
			presentTodayByDept[u.Department]++
		}
	}
	org.Summary.TodayAbsent = org.Summary.TotalEmployees - org.Summary.TodayCheckedIn

	start, end := monthBounds(month, year)
	monthRows, err := s.ledger.ListForAllInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	presentUsers := make(map[int64]struct{})
	recordCount := 0
	for _, r := range monthRows {
		if _, ok := byID[r.UserID]; !ok {
			continue
		}
		recordCount++
		switch r.Status {
		case domain.StatusPresent:
			org.ThisMonth.PresentRecords++
			presentUsers[r.UserID] = struct{}{}
		case domain.StatusAbsent:
			org.ThisMonth.AbsentRecords++
		}
		org.ThisMonth.TotalWorkingHours += r.TotalHours
	}
	org.ThisMonth.TotalEmployees = len(employees)
	org.ThisMonth.EmployeesPresent = len(presentUsers)
	org.ThisMonth.TotalWorkingHours = domain.RoundHours(org.ThisMonth.TotalWorkingHours)
	if recordCount > 0 {
		org.ThisMonth.AverageWorkingHours = domain.RoundHours(org.ThisMonth.TotalWorkingHours / float64(recordCount))
	}

	// Department buckets group by the literal department string on the user.
	deptCounts := make(map[string]int)
	for _, u := range employees {
		deptCounts[u.Department]++
	}
	names := make([]string, 0, len(deptCounts))
	for name := range deptCounts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		org.Departments = append(org.Departments, ports.DepartmentSummary{
			Name:          name,
			EmployeeCount: deptCounts[name],
			PresentToday:  presentTodayByDept[name],
		})
	}

	return org, nil
}

// TeamSummary computes a MonthlySummary-shaped row for every employee in one
// pass. Employees with zero ledger rows in range appear with zero counters.
func (s *ReportService) TeamSummary(ctx context.Context, month time.Month, year int) ([]ports.TeamMemberSummary, error) {
	employees, err := s.users.ListByRole(ctx, domain.RoleEmployee)
	if err != nil {
		return nil, err
	}

	start, end := monthBounds(month, year)
	rows, err := s.ledger.ListForAllInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	byUser := make(map[int64][]*domain.AttendanceRecord)
	for _, r := range rows {
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}

	team := make([]ports.TeamMemberSummary, 0, len(employees))
	for _, u := range employees {
		team = append(team, ports.TeamMemberSummary{
			UserID:         u.ID,
			EmployeeID:     u.EmployeeID,
			Name:           u.Name,
			Department:     u.Department,
			MonthlySummary: rollup(byUser[u.ID]),
		})
	}
	sort.Slice(team, func(i, j int) bool { return team[i].EmployeeID < team[j].EmployeeID })
	return team, nil
}

// TodayRoster lists every employee with their current-day lifecycle state.
func (s *ReportService) TodayRoster(ctx context.Context) ([]ports.RosterEntry, error) {
	employees, err := s.users.ListByRole(ctx, domain.RoleEmployee)
	if err != nil {
		return nil, err
	}

	today := domain.DateOf(s.now())
	rows, err := s.ledger.ListForAllInRange(ctx, today, today)
	if err != nil {
		return nil, err
	}
	byUser := make(map[int64]*domain.AttendanceRecord, len(rows))
	for _, r := range rows {
		byUser[r.UserID] = r
	}

	roster := make([]ports.RosterEntry, 0, len(employees))
	for _, u := range employees {
		entry := ports.RosterEntry{
			UserID:        u.ID,
			EmployeeID:    u.EmployeeID,
			Name:          u.Name,
			Email:         u.Email,
			Department:    u.Department,
			CurrentStatus: string(domain.DayNotCheckedIn),
		}
		if rec := byUser[u.ID]; rec != nil {
			entry.CurrentStatus = string(rec.State())
			entry.CheckInTime = rec.CheckInTime
			entry.CheckOutTime = rec.CheckOutTime
			entry.TotalHours = rec.TotalHours
		}
		roster = append(roster, entry)
	}
	sort.Slice(roster, func(i, j int) bool { return roster[i].EmployeeID < roster[j].EmployeeID })
	return roster, nil
}

// AllAttendance pages through employees (ordered by employee ID) with their
// recent ledger rows attached.
func (s *ReportService) AllAttendance(ctx context.Context, limit, offset int) ([]ports.EmployeeAttendance, error) {
	employees, err := s.users.ListByRole(ctx, domain.RoleEmployee)
	if err != nil {
		return nil, err
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].EmployeeID < employees[j].EmployeeID })

	if limit <= 0 {
		limit = defaultAllAttendanceLimit
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(employees) {
		return []ports.EmployeeAttendance{}, nil
	}
	end := offset + limit
	if end > len(employees) {
		end = len(employees)
	}

	out := make([]ports.EmployeeAttendance, 0, end-offset)
	for _, u := range employees[offset:end] {
		recs, err := s.ledger.ListRecent(ctx, u.ID, defaultHistoryLimit)
		if err != nil {
			return nil, err
		}
		out = append(out, ports.EmployeeAttendance{
			UserInfo:   userInfo(u),
			Attendance: toRows(recs, u.EmployeeID),
		})
	}
	return out, nil
}

// EmployeeAttendance returns one employee with their recent ledger rows.
func (s *ReportService) EmployeeAttendance(ctx context.Context, employeeID string, limit int) (*ports.EmployeeAttendance, error) {
	user, err := s.users.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleEmployee {
		return nil, domain.ErrEmployeeNotFound
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	recs, err := s.ledger.ListRecent(ctx, user.ID, limit)
	if err != nil {
		return nil, err
	}

	return &ports.EmployeeAttendance{
		UserInfo:   userInfo(user),
		Attendance: toRows(recs, user.EmployeeID),
	}, nil
}

// ExportRows flattens employees and their ledger rows for the CSV export.
// Employees with no rows in range still yield one line with empty attendance
// fields.
func (s *ReportService) ExportRows(ctx context.Context, start, end *time.Time) ([]ports.ExportRow, error) {
	employees, err := s.users.ListByRole(ctx, domain.RoleEmployee)
	if err != nil {
		return nil, err
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].EmployeeID < employees[j].EmployeeID })

	var from, to time.Time
	if start != nil {
		from = domain.DateOf(*start)
	}
	if end != nil {
		to = domain.DateOf(*end)
	}
	rows, err := s.ledger.ListForAllInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	byUser := make(map[int64][]*domain.AttendanceRecord)
	for _, r := range rows {
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}

	var out []ports.ExportRow
	for _, u := range employees {
		recs := byUser[u.ID]
		if len(recs) == 0 {
			out = append(out, ports.ExportRow{
				EmployeeID: u.EmployeeID,
				Name:       u.Name,
				Email:      u.Email,
				Department: u.Department,
			})
			continue
		}
		sort.Slice(recs, func(i, j int) bool { return recs[i].Date.After(recs[j].Date) })
		for _, rec := range recs {
			date := rec.Date
			hours := rec.TotalHours
			out = append(out, ports.ExportRow{
				EmployeeID:   u.EmployeeID,
				Name:         u.Name,
				Email:        u.Email,
				Department:   u.Department,
				Date:         &date,
				CheckInTime:  rec.CheckInTime,
				CheckOutTime: rec.CheckOutTime,
				Status:       string(rec.Status),
				TotalHours:   &hours,
			})
		}
	}
	return out, nil
}

const defaultAllAttendanceLimit = 100

// rollup folds ledger rows into the monthly summary shape. The average
// divides by present days and short-circuits to 0 when there are none.
func rollup(rows []*domain.AttendanceRecord) ports.MonthlySummary {
	sum := ports.MonthlySummary{TotalDays: len(rows)}
	for _, r := range rows {
		switch r.Status {
		case domain.StatusPresent:
			sum.PresentDays++
		case domain.StatusAbsent:
			sum.AbsentDays++
		case domain.StatusLate:
			sum.LateDays++
		case domain.StatusHalfDay:
			sum.HalfDays++
		}
		sum.TotalWorkingHours += r.TotalHours
	}
	sum.TotalWorkingHours = domain.RoundHours(sum.TotalWorkingHours)
	if sum.PresentDays > 0 {
		sum.AverageWorkingHours = domain.RoundHours(sum.TotalWorkingHours / float64(sum.PresentDays))
	}
	return sum
}

// monthBounds returns the closed [first, last] day interval of a month.
func monthBounds(month time.Month, year int) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

func userInfo(u *domain.User) ports.UserInfo {
	return ports.UserInfo{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		EmployeeID: u.EmployeeID,
		Department: u.Department,
	}
}

func toRows(recs []*domain.AttendanceRecord, employeeID string) []ports.AttendanceRow {
	rows := make([]ports.AttendanceRow, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, *toRow(rec, employeeID))
	}
	return rows
}
