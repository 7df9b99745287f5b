package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/workpulse/attendance-system/internal/core/domain"
	"github.com/workpulse/attendance-system/internal/core/ports"
)

const minPasswordLength = 4

// AuthService implements registration, login, and profile lookup.
type AuthService struct {
	users     ports.UserRepository
	tokens    ports.TokenStore
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenStore, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		tokens:    tokens,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register validates the form and creates the user. When EmployeeID is empty
// the next sequential ID for the role's prefix is allocated. This is the one
// code path that enforces prefix/role agreement; the data layer does not.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.EmployeeID = strings.TrimSpace(strings.ToUpper(input.EmployeeID))
	input.Department = strings.TrimSpace(input.Department)
	if input.Role == "" {
		input.Role = domain.RoleEmployee
	}

	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	if input.EmployeeID == "" {
		id, err := s.nextEmployeeID(ctx, domain.PrefixForRole(input.Role))
		if err != nil {
			return nil, err
		}
		input.EmployeeID = id
	} else if !strings.HasPrefix(input.EmployeeID, domain.PrefixForRole(input.Role)) {
		return nil, fmt.Errorf("%w: employee ID prefix does not match role %s", domain.ErrValidation, input.Role)
	}

	if existing, err := s.users.FindByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing, err := s.users.FindByEmployeeID(ctx, input.EmployeeID); err == nil && existing != nil {
		return nil, domain.ErrEmployeeIDTaken
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) && !errors.Is(err, domain.ErrEmployeeNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		EmployeeID:   input.EmployeeID,
		Department:   input.Department,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("employee_id", created.EmployeeID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues a signed HS256 token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("employee_id", user.EmployeeID).Msg("login")
	return token, user, nil
}

// Me resolves the user behind a token's identity claim.
func (s *AuthService) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// Logout revokes the token for its remaining lifetime. An already-expired
// token is a no-op rather than an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return domain.ErrInvalidCredentials
	}

	ttl := s.tokenTTL
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		ttl = time.Until(exp.Time)
		if ttl <= 0 {
			return nil
		}
	}
	return s.tokens.Revoke(ctx, token, ttl)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":         user.ID,
		"email":      user.Email,
		"role":       user.Role,
		"employeeId": user.EmployeeID,
		"department": user.Department,
		"exp":        time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// nextEmployeeID allocates the next sequential ID for a prefix: EMP001 when
// none exists, otherwise last+1.
func (s *AuthService) nextEmployeeID(ctx context.Context, prefix string) (string, error) {
	last, err := s.users.LastEmployeeIDWithPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}
	if last == "" {
		return prefix + "001", nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(last, prefix))
	if err != nil {
		return "", fmt.Errorf("malformed employee ID %q: %w", last, err)
	}
	return fmt.Sprintf("%s%03d", prefix, n+1), nil
}

func validateRegistration(in ports.RegisterInput) error {
	switch {
	case len(in.Name) < 2:
		return fmt.Errorf("%w: name must be at least 2 characters", domain.ErrValidation)
	case in.Email == "":
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	case len(in.Password) < minPasswordLength:
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	case !domain.ValidRole(in.Role):
		return fmt.Errorf("%w: role must be either employee or manager", domain.ErrValidation)
	case len(in.Department) < 2:
		return fmt.Errorf("%w: department must be at least 2 characters", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}
	if in.EmployeeID != "" && !domain.ValidEmployeeID(in.EmployeeID) {
		return fmt.Errorf("%w: invalid employee ID format, use EMP001 for employees or MGR001 for managers", domain.ErrValidation)
	}
	return nil
}
