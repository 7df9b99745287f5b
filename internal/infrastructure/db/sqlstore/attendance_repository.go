package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/workpulse/attendance-system/internal/core/domain"
)

// AttendanceRepository persists the attendance ledger. Per-day serialization
// is owned by the unique (user_id, date) index; Insert surfaces its violation
// as domain.ErrDuplicateAttendance.
type AttendanceRepository struct {
	db *sqlx.DB
}

func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

type attendanceRow struct {
	ID           int64        `db:"id"`
	UserID       int64        `db:"user_id"`
	Date         time.Time    `db:"date"`
	CheckInTime  sql.NullTime `db:"check_in_time"`
	CheckOutTime sql.NullTime `db:"check_out_time"`
	Status       string       `db:"status"`
	TotalHours   float64      `db:"total_hours"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

func (r attendanceRow) toDomain() *domain.AttendanceRecord {
	rec := &domain.AttendanceRecord{
		ID:         r.ID,
		UserID:     r.UserID,
		Date:       domain.DateOf(r.Date),
		Status:     domain.AttendanceStatus(r.Status),
		TotalHours: r.TotalHours,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.CheckInTime.Valid {
		t := r.CheckInTime.Time.UTC()
		rec.CheckInTime = &t
	}
	if r.CheckOutTime.Valid {
		t := r.CheckOutTime.Time.UTC()
		rec.CheckOutTime = &t
	}
	return rec
}

const attendanceColumns = `id, user_id, date, check_in_time, check_out_time, status, total_hours, created_at, updated_at`

func (r *AttendanceRepository) Insert(ctx context.Context, rec *domain.AttendanceRecord) (*domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var checkIn any
	if rec.CheckInTime != nil {
		checkIn = rec.CheckInTime.UTC()
	}
	args := []any{rec.UserID, dateArg(rec.Date), checkIn, string(rec.Status), rec.TotalHours}

	var id int64
	if r.db.DriverName() == DriverPostgres {
		q := r.db.Rebind(`INSERT INTO attendance (user_id, date, check_in_time, status, total_hours)
			VALUES (?, ?, ?, ?, ?) RETURNING id`)
		if err := r.db.QueryRowxContext(ctx, q, args...).Scan(&id); err != nil {
			return nil, translateInsertErr(err)
		}
	} else {
		q := `INSERT INTO attendance (user_id, date, check_in_time, status, total_hours)
			VALUES (?, ?, ?, ?, ?)`
		res, err := r.db.ExecContext(ctx, q, args...)
		if err != nil {
			return nil, translateInsertErr(err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return nil, storeErr(err)
		}
	}

	return r.findByID(ctx, id)
}

func (r *AttendanceRepository) PromoteCheckIn(ctx context.Context, id int64, checkIn time.Time, status domain.AttendanceStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := r.db.Rebind(`UPDATE attendance
		SET check_in_time = ?, status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND check_in_time IS NULL`)
	res, err := r.db.ExecContext(ctx, q, checkIn.UTC(), string(status), id)
	if err != nil {
		return storeErr(err)
	}
	return requireRow(res)
}

func (r *AttendanceRepository) UpdateCheckout(ctx context.Context, id int64, checkOut time.Time, totalHours float64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// The check_out_time IS NULL guard makes the row immutable after the
	// first successful check-out even under concurrent requests.
	q := r.db.Rebind(`UPDATE attendance
		SET check_out_time = ?, total_hours = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND check_in_time IS NOT NULL AND check_out_time IS NULL`)
	res, err := r.db.ExecContext(ctx, q, checkOut.UTC(), totalHours, id)
	if err != nil {
		return storeErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr(err)
	}
	if n == 0 {
		return domain.ErrAlreadyCheckedOut
	}
	return nil
}

func (r *AttendanceRepository) FindForDate(ctx context.Context, userID int64, date time.Time) (*domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var row attendanceRow
	q := r.db.Rebind(`SELECT ` + attendanceColumns + ` FROM attendance WHERE user_id = ? AND date = ? LIMIT 1`)
	if err := r.db.GetContext(ctx, &row, q, userID, dateArg(date)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAttendanceNotFound
		}
		return nil, storeErr(err)
	}
	return row.toDomain(), nil
}

func (r *AttendanceRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]*domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []attendanceRow
	q := r.db.Rebind(`SELECT ` + attendanceColumns + ` FROM attendance
		WHERE user_id = ? ORDER BY date DESC LIMIT ?`)
	if err := r.db.SelectContext(ctx, &rows, q, userID, limit); err != nil {
		return nil, storeErr(err)
	}
	return toDomainRecords(rows), nil
}

func (r *AttendanceRepository) ListInRange(ctx context.Context, userID int64, start, end time.Time) ([]*domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []attendanceRow
	q := r.db.Rebind(`SELECT ` + attendanceColumns + ` FROM attendance
		WHERE user_id = ? AND date BETWEEN ? AND ? ORDER BY date`)
	if err := r.db.SelectContext(ctx, &rows, q, userID, dateArg(start), dateArg(end)); err != nil {
		return nil, storeErr(err)
	}
	return toDomainRecords(rows), nil
}

func (r *AttendanceRepository) ListForAllInRange(ctx context.Context, start, end time.Time) ([]*domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := `SELECT ` + attendanceColumns + ` FROM attendance`
	var args []any
	switch {
	case !start.IsZero() && !end.IsZero():
		q += ` WHERE date BETWEEN ? AND ?`
		args = append(args, dateArg(start), dateArg(end))
	case !start.IsZero():
		q += ` WHERE date >= ?`
		args = append(args, dateArg(start))
	case !end.IsZero():
		q += ` WHERE date <= ?`
		args = append(args, dateArg(end))
	}
	q += ` ORDER BY user_id, date DESC`

	var rows []attendanceRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(q), args...); err != nil {
		return nil, storeErr(err)
	}
	return toDomainRecords(rows), nil
}

func (r *AttendanceRepository) findByID(ctx context.Context, id int64) (*domain.AttendanceRecord, error) {
	var row attendanceRow
	q := r.db.Rebind(`SELECT ` + attendanceColumns + ` FROM attendance WHERE id = ? LIMIT 1`)
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAttendanceNotFound
		}
		return nil, storeErr(err)
	}
	return row.toDomain(), nil
}

func translateInsertErr(err error) error {
	if isUniqueViolation(err) {
		return domain.ErrDuplicateAttendance
	}
	return storeErr(err)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr(err)
	}
	if n == 0 {
		return domain.ErrAttendanceNotFound
	}
	return nil
}

func toDomainRecords(rows []attendanceRow) []*domain.AttendanceRecord {
	recs := make([]*domain.AttendanceRecord, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, row.toDomain())
	}
	return recs
}
