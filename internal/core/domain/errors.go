package domain

import "errors"

// Validation failures (HTTP 400).
var ErrValidation = errors.New("validation failed")

// Lookup failures (HTTP 404).
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

// Lifecycle conflicts (HTTP 409). The daily state machine permits exactly one
// check-in and one check-out per user per UTC calendar day.
var (
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrNotCheckedIn      = errors.New("not checked in today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	// ErrDuplicateAttendance is the store-level uniqueness violation on
	// (userId, date); the lifecycle service surfaces it as a check-in conflict.
	ErrDuplicateAttendance = errors.New("attendance record already exists for this date")
)

// Registration conflicts (HTTP 409).
var (
	ErrEmailTaken      = errors.New("user already exists with this email")
	ErrEmployeeIDTaken = errors.New("user already exists with this employee ID")
)

// Auth failures (HTTP 401).
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

// ErrStoreUnavailable marks transient persistence failures (timeouts,
// connectivity). Callers may retry after re-checking current state; the
// services never retry internally.
var ErrStoreUnavailable = errors.New("storage temporarily unavailable")
