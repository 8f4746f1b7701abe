package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/pkwt-tracker/internal/entity"
)

const branchAdminColumns = `id, user_id, name, email, COALESCE(unit, ''), role, created_at`

type BranchAdminRepository struct {
	DB *sql.DB
}

func NewBranchAdminRepository(db *sql.DB) *BranchAdminRepository {
	return &BranchAdminRepository{DB: db}
}

func (r *BranchAdminRepository) Create(ctx context.Context, a *entity.BranchAdmin) error {
	query := `
		INSERT INTO branch_admins (id, user_id, name, email, unit, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query, a.ID, a.UserID, a.Name, a.Email, nullString(a.Unit), a.Role, a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to insert branch admin: %w", err)
	}
	return nil
}

func (r *BranchAdminRepository) FindByUserID(ctx context.Context, userID string) (*entity.BranchAdmin, error) {
	query := `SELECT ` + branchAdminColumns + ` FROM branch_admins WHERE user_id = $1`

	a, err := scanBranchAdmin(r.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entity.ErrBranchAdminNotFound
		}
		return nil, fmt.Errorf("failed to load branch admin: %w", err)
	}
	return a, nil
}

// ListByUnit returns the branch admins responsible for one unit.
func (r *BranchAdminRepository) ListByUnit(ctx context.Context, unit string) ([]*entity.BranchAdmin, error) {
	query := `SELECT ` + branchAdminColumns + ` FROM branch_admins WHERE unit = $1 AND role = $2 ORDER BY name`
	return r.query(ctx, query, unit, entity.RoleBranchAdmin)
}

func (r *BranchAdminRepository) List(ctx context.Context) ([]*entity.BranchAdmin, error) {
	query := `SELECT ` + branchAdminColumns + ` FROM branch_admins ORDER BY unit NULLS FIRST, name`
	return r.query(ctx, query)
}

func (r *BranchAdminRepository) query(ctx context.Context, query string, args ...interface{}) ([]*entity.BranchAdmin, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list branch admins: %w", err)
	}
	defer rows.Close()

	var admins []*entity.BranchAdmin
	for rows.Next() {
		a, err := scanBranchAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan branch admin: %w", err)
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

func scanBranchAdmin(s scanner) (*entity.BranchAdmin, error) {
	a := &entity.BranchAdmin{}
	if err := s.Scan(&a.ID, &a.UserID, &a.Name, &a.Email, &a.Unit, &a.Role, &a.CreatedAt); err != nil {
		return nil, err
	}
	return a, nil
}
