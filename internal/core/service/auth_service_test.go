package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/workpulse/attendance-system/internal/core/domain"
	"github.com/workpulse/attendance-system/internal/core/ports"
)

type stubTokenStore struct {
	revoked map[string]time.Duration
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{revoked: make(map[string]time.Duration)}
}

func (s *stubTokenStore) Revoke(_ context.Context, token string, ttl time.Duration) error {
	s.revoked[token] = ttl
	return nil
}

func (s *stubTokenStore) IsRevoked(_ context.Context, token string) (bool, error) {
	_, ok := s.revoked[token]
	return ok, nil
}

func registerInput() ports.RegisterInput {
	return ports.RegisterInput{
		Name:       "John Doe",
		Email:      "john.doe@company.com",
		Password:   "secret",
		Role:       domain.RoleEmployee,
		EmployeeID: "EMP001",
		Department: "Engineering",
	}
}

func newAuthService(users *stubUserRepo) (*AuthService, *stubTokenStore) {
	tokens := newStubTokenStore()
	return NewAuthService(users, tokens, "test-secret", time.Hour, nopLogger), tokens
}

func TestRegister_Success(t *testing.T) {
	svc, _ := newAuthService(newStubUserRepo())

	user, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("user ID not assigned")
	}
	if user.EmployeeID != "EMP001" || user.Role != domain.RoleEmployee {
		t.Fatalf("user = %+v", user)
	}
	if user.PasswordHash == "secret" || user.PasswordHash == "" {
		t.Fatal("password stored unhashed")
	}
}

func TestRegister_ValidationFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ports.RegisterInput)
	}{
		{"short name", func(in *ports.RegisterInput) { in.Name = "J" }},
		{"bad email", func(in *ports.RegisterInput) { in.Email = "not-an-email" }},
		{"short password", func(in *ports.RegisterInput) { in.Password = "abc" }},
		{"bad role", func(in *ports.RegisterInput) { in.Role = "admin" }},
		{"bad employee ID", func(in *ports.RegisterInput) { in.EmployeeID = "E-1" }},
		{"short department", func(in *ports.RegisterInput) { in.Department = "X" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newAuthService(newStubUserRepo())
			in := registerInput()
			tc.mutate(&in)
			_, err := svc.Register(context.Background(), in)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestRegister_PrefixMustMatchRole(t *testing.T) {
	svc, _ := newAuthService(newStubUserRepo())
	in := registerInput()
	in.Role = domain.RoleManager
	in.EmployeeID = "EMP001"

	_, err := svc.Register(context.Background(), in)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestRegister_GeneratesNextEmployeeID(t *testing.T) {
	existing := testEmployee("EMP007")
	svc, _ := newAuthService(newStubUserRepo(existing))

	in := registerInput()
	in.Email = "new.hire@company.com"
	in.EmployeeID = ""
	user, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.EmployeeID != "EMP008" {
		t.Fatalf("employee ID = %s, want EMP008", user.EmployeeID)
	}
}

func TestRegister_FirstGeneratedIDIs001(t *testing.T) {
	svc, _ := newAuthService(newStubUserRepo())

	in := registerInput()
	in.Role = domain.RoleManager
	in.EmployeeID = ""
	user, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.EmployeeID != "MGR001" {
		t.Fatalf("employee ID = %s, want MGR001", user.EmployeeID)
	}
}

func TestRegister_DuplicateEmailAndEmployeeID(t *testing.T) {
	svc, _ := newAuthService(newStubUserRepo())
	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	in := registerInput()
	in.EmployeeID = "EMP002"
	_, err := svc.Register(context.Background(), in)
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}

	in = registerInput()
	in.Email = "other@company.com"
	_, err = svc.Register(context.Background(), in)
	if !errors.Is(err, domain.ErrEmployeeIDTaken) {
		t.Fatalf("err = %v, want ErrEmployeeIDTaken", err)
	}
}

func TestLogin_SuccessIssuesToken(t *testing.T) {
	users := newStubUserRepo()
	svc, _ := newAuthService(users)
	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "john.doe@company.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.EmployeeID != "EMP001" {
		t.Fatalf("user = %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["employeeId"] != "EMP001" || claims["role"] != domain.RoleEmployee {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newAuthService(newStubUserRepo())
	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "john.doe@company.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_UnknownEmailHidesExistence(t *testing.T) {
	svc, _ := newAuthService(newStubUserRepo())

	_, _, err := svc.Login(context.Background(), "ghost@company.com", "secret")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogout_RevokesForRemainingLifetime(t *testing.T) {
	svc, tokens := newAuthService(newStubUserRepo())
	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, _, err := svc.Login(context.Background(), "john.doe@company.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	revoked, err := tokens.IsRevoked(context.Background(), token)
	if err != nil || !revoked {
		t.Fatalf("token not revoked (revoked=%v err=%v)", revoked, err)
	}
	if ttl := tokens.revoked[token]; ttl <= 0 || ttl > time.Hour {
		t.Fatalf("revocation ttl = %v", ttl)
	}
}

func TestLogout_GarbageToken(t *testing.T) {
	svc, _ := newAuthService(newStubUserRepo())

	err := svc.Logout(context.Background(), strings.Repeat("x", 32))
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}
