package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidEmail   = errors.New("email must be a valid address")
	ErrEmptyPassword  = errors.New("password is required")
	ErrWeakPassword   = errors.New("password must be at least 8 characters")
	ErrEmptyFirstName = errors.New("first name is required")
	ErrEmptyLastName  = errors.New("last name is required")
	ErrInvalidRole    = errors.New("invalid role")
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// Role is the access level granted to a user.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "MANAGER"
	RoleAccountant Role = "ACCOUNTANT"
	RoleSales      Role = "SALES"
	RoleUser       Role = "USER"
)

// ParseRole accepts a role name in any case.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(raw)))
	switch role {
	case RoleAdmin, RoleManager, RoleAccountant, RoleSales, RoleUser:
		return role, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, raw)
}

// User is an account able to sign in to the ERP.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	Avatar       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser builds a user ensuring required invariants. The password hash is set separately.
func NewUser(id, email, firstName, lastName string, role Role) (*User, error) {
	u := &User{
		ID:        id,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Role:      role,
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Can reports whether the user's role grants permission.
func (u *User) Can(permission Permission) bool {
	return HasPermission(u.Role, permission)
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if u.FirstName == "" {
		return ErrEmptyFirstName
	}
	if u.LastName == "" {
		return ErrEmptyLastName
	}
	if _, err := ParseRole(string(u.Role)); err != nil {
		return err
	}
	return nil
}

// ValidateEmail performs the light-weight address check used across the ERP.
func ValidateEmail(email string) error {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return ErrInvalidEmail
	}
	if !strings.Contains(email[at+1:], ".") {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword checks the registration password policy.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
