package ports

import (
	"context"

	"github.com/workpulse/attendance-system/internal/core/domain"
)

// UserRepository defines persistence operations for the user directory.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByEmployeeID(ctx context.Context, employeeID string) (*domain.User, error)
	// LastEmployeeIDWithPrefix returns the highest employee ID starting with
	// prefix ("EMP" or "MGR"), or "" when none exists. Used to allocate the
	// next sequential ID at registration.
	LastEmployeeIDWithPrefix(ctx context.Context, prefix string) (string, error)
	ListByRole(ctx context.Context, role string) ([]*domain.User, error)
	CountByRole(ctx context.Context, role string) (int, error)
}
