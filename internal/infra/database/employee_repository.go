package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/xavierca1/pkwt-tracker/internal/entity"
)

const employeeColumns = `id, nip, name, COALESCE(email, ''), unit, COALESCE(position, ''),
	contract_start, contract_end, status, created_at, updated_at`

type EmployeeRepository struct {
	DB *sql.DB
}

func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{DB: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *entity.Employee) error {
	query := `
		INSERT INTO employees (id, nip, name, email, unit, position, contract_start, contract_end, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.DB.ExecContext(ctx, query,
		e.ID,
		e.NIP,
		e.Name,
		nullString(e.Email),
		e.Unit,
		nullString(e.Position),
		nullTime(e.ContractStart),
		e.ContractEnd,
		e.Status,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrEmployeeDuplicate
		}
		return fmt.Errorf("failed to insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *entity.Employee) error {
	query := `
		UPDATE employees
		SET nip = $2, name = $3, email = $4, unit = $5, position = $6,
			contract_start = $7, contract_end = $8, status = $9, updated_at = $10
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		e.ID,
		e.NIP,
		e.Name,
		nullString(e.Email),
		e.Unit,
		nullString(e.Position),
		nullTime(e.ContractStart),
		e.ContractEnd,
		e.Status,
		e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrEmployeeDuplicate
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	return expectOne(res, entity.ErrEmployeeNotFound)
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entity.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to load employee: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepository) List(ctx context.Context, filter entity.EmployeeFilter) ([]*entity.Employee, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Unit != "" {
		args = append(args, filter.Unit)
		where = append(where, fmt.Sprintf("unit = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+s+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR nip ILIKE $%d)", len(args), len(args)))
	}

	query := `SELECT ` + employeeColumns + ` FROM employees`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY contract_end ASC, name ASC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *EmployeeRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE employees SET status = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update employee status: %w", err)
	}
	return expectOne(res, entity.ErrEmployeeNotFound)
}

// ExpireContracts flips active employees whose contract ended before the given date to
// expired and returns their ids.
func (r *EmployeeRepository) ExpireContracts(ctx context.Context, before time.Time) ([]string, error) {
	query := `
		UPDATE employees
		SET
			status = 'expired',
			updated_at = NOW()
		WHERE
			status = 'active'
			AND contract_end < $1
		RETURNING id
	`

	rows, err := r.DB.QueryContext(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("failed to expire contracts: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan expired employee: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return expectOne(res, entity.ErrEmployeeNotFound)
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEmployee(s scanner) (*entity.Employee, error) {
	e := &entity.Employee{}
	var start sql.NullTime
	err := s.Scan(
		&e.ID,
		&e.NIP,
		&e.Name,
		&e.Email,
		&e.Unit,
		&e.Position,
		&start,
		&e.ContractEnd,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if start.Valid {
		e.ContractStart = start.Time
	}
	return e, nil
}

func expectOne(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
