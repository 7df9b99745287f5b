package ports

import (
	"context"
	"time"

	"github.com/workpulse/attendance-system/internal/core/domain"
)

// RegisterInput carries the registration form. EmployeeID may be empty, in
// which case the next sequential ID for the role's prefix is allocated.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Role       string
	EmployeeID string
	Department string
}

// AuthService implements registration, login, and profile lookup.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login returns a signed token and the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Me resolves the user behind a token's identity claim.
	Me(ctx context.Context, userID int64) (*domain.User, error)
	// Logout revokes a token for its remaining lifetime.
	Logout(ctx context.Context, token string) error
}

// TokenStore records revoked tokens until their natural expiry.
type TokenStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
