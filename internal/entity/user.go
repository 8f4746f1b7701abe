package entity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	Delete(ctx context.Context, id string) error
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Unit   string `json:"unit,omitempty"`
}

func (p Principal) IsSuperAdmin() bool {
	return p.Role == RoleSuperAdmin
}

// UnitScope returns the unit a caller is limited to, or "" for unrestricted access.
func (p Principal) UnitScope() string {
	if p.IsSuperAdmin() {
		return ""
	}
	return p.Unit
}

// CanAccessUnit reports whether the caller may see data of the given unit.
func (p Principal) CanAccessUnit(unit string) bool {
	return p.IsSuperAdmin() || (p.Unit != "" && p.Unit == unit)
}
