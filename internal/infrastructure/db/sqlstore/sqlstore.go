// Package sqlstore implements the persistence ports on a relational store.
// The backing driver — MySQL or Postgres — is selected once at startup via
// configuration; call sites only ever see the repository interfaces.
package sqlstore

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/workpulse/attendance-system/internal/core/domain"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

const defaultTimeout = 5 * time.Second

// Config captures the settings required to open the relational store.
type Config struct {
	Driver       string // mysql | postgres
	DSN          string
	MaxOpenConns int
	Timeout      time.Duration
}

// Connect opens the configured driver, verifies connectivity with a ping, and
// applies pool limits. MySQL DSNs must include parseTime=true so DATE and
// DATETIME columns scan into time.Time.
func Connect(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	if cfg.Driver != DriverMySQL && cfg.Driver != DriverPostgres {
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", cfg.Driver)
	}

	db, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlstore open: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlstore ping: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns / 2)
	}
	db.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// EnsureSchema creates the users and attendance tables when absent, with the
// unique and foreign-key constraints the services rely on.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	stmts := schemaMySQL
	if db.DriverName() == DriverPostgres {
		stmts = schemaPostgres
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlstore schema: %w", err)
		}
	}
	return nil
}

var schemaMySQL = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		role ENUM('employee','manager') NOT NULL DEFAULT 'employee',
		employee_id VARCHAR(20) NOT NULL,
		department VARCHAR(100) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email),
		UNIQUE KEY uq_users_employee_id (employee_id),
		KEY idx_users_role (role),
		KEY idx_users_department (department)
	)`,
	`CREATE TABLE IF NOT EXISTS attendance (
		id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NOT NULL,
		date DATE NOT NULL,
		check_in_time DATETIME NULL,
		check_out_time DATETIME NULL,
		status ENUM('present','absent','late','half-day') NOT NULL DEFAULT 'absent',
		total_hours DECIMAL(4,2) NOT NULL DEFAULT 0.00,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_attendance_user_date (user_id, date),
		KEY idx_attendance_date (date),
		CONSTRAINT fk_attendance_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
}

var schemaPostgres = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'employee' CHECK (role IN ('employee','manager')),
		employee_id VARCHAR(20) NOT NULL,
		department VARCHAR(100) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT uq_users_email UNIQUE (email),
		CONSTRAINT uq_users_employee_id UNIQUE (employee_id)
	)`,
	`CREATE TABLE IF NOT EXISTS attendance (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date DATE NOT NULL,
		check_in_time TIMESTAMPTZ NULL,
		check_out_time TIMESTAMPTZ NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'absent' CHECK (status IN ('present','absent','late','half-day')),
		total_hours NUMERIC(4,2) NOT NULL DEFAULT 0.00,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT uq_attendance_user_date UNIQUE (user_id, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance(date)`,
}

// isUniqueViolation reports whether err is a uniqueness-constraint violation
// from either driver.
func isUniqueViolation(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	var pe *pq.Error
	if errors.As(err, &pe) {
		return pe.Code == "23505"
	}
	return false
}

// violatedConstraint extracts whatever constraint identification the driver
// offers, for disambiguating which unique key fired.
func violatedConstraint(err error) string {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Message
	}
	var pe *pq.Error
	if errors.As(err, &pe) {
		return pe.Constraint
	}
	return ""
}

// storeErr translates transient connectivity failures into the retryable
// domain error; anything else passes through untouched.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %s", domain.ErrStoreUnavailable, err)
	}
	return err
}

// dateArg normalises a calendar-day parameter for both drivers.
func dateArg(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
