package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/pkwt-tracker/internal/entity"
)

const reminderColumns = `id, employee_id, employee_name, unit, contract_end, days_remaining, reminder_type,
	status, priority, email_count, last_email_sent_at, created_at, updated_at`

type ReminderRepository struct {
	DB *sql.DB
}

func NewReminderRepository(db *sql.DB) *ReminderRepository {
	return &ReminderRepository{DB: db}
}

// Upsert keeps one row per employee. The derived fields are overwritten; status and the
// email counters survive, except that a resolved reminder reopens as pending.
func (r *ReminderRepository) Upsert(ctx context.Context, rem *entity.Reminder) error {
	if rem.ID == "" {
		rem.ID = uuid.New().String()
	}

	query := `
		INSERT INTO reminders (id, employee_id, employee_name, unit, contract_end, days_remaining,
			reminder_type, status, priority, email_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, NOW(), NOW())
		ON CONFLICT (employee_id)
		DO UPDATE SET
			employee_name = EXCLUDED.employee_name,
			unit = EXCLUDED.unit,
			contract_end = EXCLUDED.contract_end,
			days_remaining = EXCLUDED.days_remaining,
			reminder_type = EXCLUDED.reminder_type,
			priority = EXCLUDED.priority,
			status = CASE WHEN reminders.status = 'resolved' THEN 'pending' ELSE reminders.status END,
			updated_at = NOW()
		RETURNING id, status, email_count, last_email_sent_at, created_at, updated_at
	`

	var last sql.NullTime
	err := r.DB.QueryRowContext(ctx, query,
		rem.ID,
		rem.EmployeeID,
		rem.EmployeeName,
		rem.Unit,
		rem.ContractEnd,
		rem.DaysRemaining,
		rem.ReminderType,
		rem.Status,
		rem.Priority,
	).Scan(
		&rem.ID,
		&rem.Status,
		&rem.EmailCount,
		&last,
		&rem.CreatedAt,
		&rem.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert reminder: %w", err)
	}
	rem.LastEmailSentAt = timePtr(last)
	return nil
}

func (r *ReminderRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*entity.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE employee_id = $1`

	rem, err := scanReminder(r.DB.QueryRowContext(ctx, query, employeeID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entity.ErrReminderNotFound
		}
		return nil, fmt.Errorf("failed to load reminder: %w", err)
	}
	return rem, nil
}

func (r *ReminderRepository) List(ctx context.Context, filter entity.ReminderFilter) ([]*entity.Reminder, error) {
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
	if filter.ActiveOnly {
		where = append(where, "status IN ('pending', 'notified')")
	}

	query := `SELECT ` + reminderColumns + ` FROM reminders`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY days_remaining ASC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []*entity.Reminder
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

// Resolve closes the employee's reminder. It reports false when there was nothing open.
func (r *ReminderRepository) Resolve(ctx context.Context, employeeID string) (bool, error) {
	query := `UPDATE reminders SET status = 'resolved', updated_at = NOW() WHERE employee_id = $1 AND status <> 'resolved'`
	res, err := r.DB.ExecContext(ctx, query, employeeID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve reminder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ReminderRepository) MarkNotified(ctx context.Context, employeeID string, sentAt time.Time) error {
	query := `
		UPDATE reminders
		SET status = 'notified', email_count = email_count + 1, last_email_sent_at = $2, updated_at = NOW()
		WHERE employee_id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, employeeID, sentAt)
	if err != nil {
		return fmt.Errorf("failed to mark reminder notified: %w", err)
	}
	return expectOne(res, entity.ErrReminderNotFound)
}

func (r *ReminderRepository) DeleteByEmployeeID(ctx context.Context, employeeID string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM reminders WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return nil
}

func scanReminder(s scanner) (*entity.Reminder, error) {
	rem := &entity.Reminder{}
	var last sql.NullTime
	err := s.Scan(
		&rem.ID,
		&rem.EmployeeID,
		&rem.EmployeeName,
		&rem.Unit,
		&rem.ContractEnd,
		&rem.DaysRemaining,
		&rem.ReminderType,
		&rem.Status,
		&rem.Priority,
		&rem.EmailCount,
		&last,
		&rem.CreatedAt,
		&rem.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rem.LastEmailSentAt = timePtr(last)
	return rem, nil
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
