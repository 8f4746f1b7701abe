package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/pkwt-tracker/internal/entity"
)

const applicantColumns = `id, name, email, COALESCE(phone, ''), position, unit, stage, COALESCE(notes, ''), created_at, updated_at`

type ApplicantRepository struct {
	DB *sql.DB
}

func NewApplicantRepository(db *sql.DB) *ApplicantRepository {
	return &ApplicantRepository{DB: db}
}

func (r *ApplicantRepository) Create(ctx context.Context, a *entity.Applicant) error {
	query := `
		INSERT INTO applicants (id, name, email, phone, position, unit, stage, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.DB.ExecContext(ctx, query,
		a.ID, a.Name, a.Email, nullString(a.Phone), a.Position, a.Unit, a.Stage, nullString(a.Notes), a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert applicant: %w", err)
	}
	return nil
}

func (r *ApplicantRepository) Update(ctx context.Context, a *entity.Applicant) error {
	query := `
		UPDATE applicants
		SET name = $2, email = $3, phone = $4, position = $5, unit = $6, stage = $7, notes = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		a.ID, a.Name, a.Email, nullString(a.Phone), a.Position, a.Unit, a.Stage, nullString(a.Notes), a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update applicant: %w", err)
	}
	return expectOne(res, entity.ErrApplicantNotFound)
}

func (r *ApplicantRepository) FindByID(ctx context.Context, id string) (*entity.Applicant, error) {
	query := `SELECT ` + applicantColumns + ` FROM applicants WHERE id = $1`

	a, err := scanApplicant(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entity.ErrApplicantNotFound
		}
		return nil, fmt.Errorf("failed to load applicant: %w", err)
	}
	return a, nil
}

func (r *ApplicantRepository) List(ctx context.Context, stage string) ([]*entity.Applicant, error) {
	query := `SELECT ` + applicantColumns + ` FROM applicants`
	var args []interface{}
	if stage != "" {
		query += ` WHERE stage = $1`
		args = append(args, stage)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	defer rows.Close()

	var list []*entity.Applicant
	for rows.Next() {
		a, err := scanApplicant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan applicant: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *ApplicantRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM applicants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete applicant: %w", err)
	}
	return expectOne(res, entity.ErrApplicantNotFound)
}

func scanApplicant(s scanner) (*entity.Applicant, error) {
	a := &entity.Applicant{}
	err := s.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.Position, &a.Unit, &a.Stage, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}
