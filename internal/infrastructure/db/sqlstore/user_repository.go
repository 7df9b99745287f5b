package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/workpulse/attendance-system/internal/core/domain"
)

// UserRepository persists the user directory.
type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userRow struct {
	ID         int64     `db:"id"`
	Name       string    `db:"name"`
	Email      string    `db:"email"`
	Password   string    `db:"password"`
	Role       string    `db:"role"`
	EmployeeID string    `db:"employee_id"`
	Department string    `db:"department"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.Password,
		Role:         r.Role,
		EmployeeID:   r.EmployeeID,
		Department:   r.Department,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

const userColumns = `id, name, email, password, role, employee_id, department, created_at, updated_at`

// Create inserts a new user, translating unique-key violations into the
// email/employee-ID conflict errors.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	args := []any{user.Name, user.Email, user.PasswordHash, user.Role, user.EmployeeID, user.Department}

	var id int64
	if r.db.DriverName() == DriverPostgres {
		q := r.db.Rebind(`INSERT INTO users (name, email, password, role, employee_id, department)
			VALUES (?, ?, ?, ?, ?, ?) RETURNING id`)
		if err := r.db.QueryRowxContext(ctx, q, args...).Scan(&id); err != nil {
			return nil, r.translateUniqueErr(err)
		}
	} else {
		q := `INSERT INTO users (name, email, password, role, employee_id, department)
			VALUES (?, ?, ?, ?, ?, ?)`
		res, err := r.db.ExecContext(ctx, q, args...)
		if err != nil {
			return nil, r.translateUniqueErr(err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return nil, storeErr(err)
		}
	}

	return r.FindByID(ctx, id)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, `WHERE id = ?`, domain.ErrUserNotFound, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `WHERE email = ?`, domain.ErrUserNotFound, email)
}

func (r *UserRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*domain.User, error) {
	return r.findOne(ctx, `WHERE employee_id = ?`, domain.ErrEmployeeNotFound, employeeID)
}

// LastEmployeeIDWithPrefix returns the highest allocated ID for a prefix, or
// "" when none exists. Lexicographic order is numeric order because the
// numeric part is fixed-width.
func (r *UserRepository) LastEmployeeIDWithPrefix(ctx context.Context, prefix string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var id string
	q := r.db.Rebind(`SELECT employee_id FROM users WHERE employee_id LIKE ? ORDER BY employee_id DESC LIMIT 1`)
	err := r.db.GetContext(ctx, &id, q, prefix+"%")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", storeErr(err)
	}
	return id, nil
}

func (r *UserRepository) ListByRole(ctx context.Context, role string) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []userRow
	q := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE role = ? ORDER BY employee_id`)
	if err := r.db.SelectContext(ctx, &rows, q, role); err != nil {
		return nil, storeErr(err)
	}

	users := make([]*domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toDomain())
	}
	return users, nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var n int
	q := r.db.Rebind(`SELECT COUNT(*) FROM users WHERE role = ?`)
	if err := r.db.GetContext(ctx, &n, q, role); err != nil {
		return 0, storeErr(err)
	}
	return n, nil
}

func (r *UserRepository) findOne(ctx context.Context, where string, notFound error, arg any) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var row userRow
	q := r.db.Rebind(`SELECT ` + userColumns + ` FROM users ` + where + ` LIMIT 1`)
	if err := r.db.GetContext(ctx, &row, q, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound
		}
		return nil, storeErr(err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) translateUniqueErr(err error) error {
	if !isUniqueViolation(err) {
		return storeErr(err)
	}
	if strings.Contains(violatedConstraint(err), "email") {
		return domain.ErrEmailTaken
	}
	return domain.ErrEmployeeIDTaken
}
