package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	RoleSuperAdmin  = "super_admin"
	RoleBranchAdmin = "branch_admin"
)

var ErrBranchAdminNotFound = errors.New("branch admin not found")

// BranchAdmin links a login account to a role and, for branch admins, to one unit.
type BranchAdmin struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Unit      string    `json:"unit"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBranchAdmin(userID, name, email, unit, role string) (*BranchAdmin, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}
	if !IsRole(role) {
		return nil, errors.New("role must be super_admin or branch_admin")
	}
	if role == RoleBranchAdmin && unit == "" {
		return nil, errors.New("unit is required for branch_admin")
	}

	return &BranchAdmin{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Email:     email,
		Unit:      unit,
		Role:      role,
		CreatedAt: time.Now(),
	}, nil
}

func IsRole(role string) bool {
	return role == RoleSuperAdmin || role == RoleBranchAdmin
}

type BranchAdminRepositoryInterface interface {
	Create(ctx context.Context, a *BranchAdmin) error
	FindByUserID(ctx context.Context, userID string) (*BranchAdmin, error)
	ListByUnit(ctx context.Context, unit string) ([]*BranchAdmin, error)
	List(ctx context.Context) ([]*BranchAdmin, error)
}
