package domain

import (
	"regexp"
	"time"
)

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

// Employee IDs follow the EMP001 / MGR001 convention. The prefix must agree
// with the role at registration time; the storage layer does not re-check it.
const (
	PrefixEmployee = "EMP"
	PrefixManager  = "MGR"
)

var employeeIDPattern = regexp.MustCompile(`^(EMP|MGR)\d{3}$`)

// ValidEmployeeID reports whether id matches the EMP###/MGR### convention.
func ValidEmployeeID(id string) bool {
	return employeeIDPattern.MatchString(id)
}

// PrefixForRole returns the employee-ID prefix that corresponds to a role.
func PrefixForRole(role string) string {
	if role == RoleManager {
		return PrefixManager
	}
	return PrefixEmployee
}

// ValidRole reports whether role is one of the two known roles.
func ValidRole(role string) bool {
	return role == RoleEmployee || role == RoleManager
}

// User models a person in the directory: an employee or a manager.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	EmployeeID   string    `json:"employeeId"`
	Department   string    `json:"department"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
