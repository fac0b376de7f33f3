package auth

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// emailPattern is a pragmatic email shape check: something@something.something.
// Full RFC 5322 validation is not attempted; the unique index on the email
// column is the real guard against junk duplicates.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// maxEmailLength is the maximum allowed email length.
const maxEmailLength = 254

// DefaultCareer is the career recorded for students who do not state one.
const DefaultCareer = "No especificada"

// NormalizeEmail lowercases and trims an email for storage and lookup.
// Two registrations differing only in case resolve to the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail checks if an email meets format requirements.
func IsValidEmail(email string) bool {
	return len(email) <= maxEmailLength && emailPattern.MatchString(email)
}

// Role represents an authorisation tier in the system.
type Role string

const (
	// RoleStudent is a campus member: can authenticate, browse spaces,
	// and manage their own profile. The default for new registrations.
	RoleStudent Role = "estudiante"

	// RoleAdmin manages the space catalogue and user accounts.
	RoleAdmin Role = "admin"
)

// ValidRoles is the set of valid account roles.
var ValidRoles = []Role{RoleStudent, RoleAdmin}

// IsValidRole returns true if the role is a valid role for an account.
func IsValidRole(r Role) bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Status represents an account's lifecycle state.
type Status string

const (
	// StatusActive accounts can log in and use the API.
	StatusActive Status = "activo"

	// StatusInactive accounts are dormant but not blocked from login.
	StatusInactive Status = "inactivo"

	// StatusSuspended accounts are refused at login even with correct
	// credentials.
	StatusSuspended Status = "suspendido"
)

// ValidStatuses is the set of valid account statuses.
var ValidStatuses = []Status{StatusActive, StatusInactive, StatusSuspended}

// IsValidStatus returns true if the status is a valid account status.
func IsValidStatus(s Status) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// User represents an authenticated account.
//
// JSON field names follow the wire contract shared with the clients,
// hence the Spanish tags.
type User struct {
	ID              string    `json:"idUsuario"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"` // never serialised
	Role            Role      `json:"rol"`
	Status          Status    `json:"estado"`
	StudentCode     string    `json:"codigoAlumno,omitempty"`
	FullName        string    `json:"nombreCompleto,omitempty"`
	Career          string    `json:"carrera,omitempty"`
	LocationSharing bool      `json:"ubicacionCompartida"`
	CreatedAt       time.Time `json:"fechaCreacion"`
}

// IsStudent reports whether the account holds the student role.
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// Sentinel errors for auth operations.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserSuspended      = errors.New("user account is suspended")
	ErrEmailExists        = errors.New("email already registered")
	ErrTokenInvalid       = errors.New("invalid token")
)
