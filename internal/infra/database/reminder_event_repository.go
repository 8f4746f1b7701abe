package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/xavierca1/pkwt-tracker/internal/entity"
)

type ReminderEventRepository struct {
	DB *sql.DB
}

func NewReminderEventRepository(db *sql.DB) *ReminderEventRepository {
	return &ReminderEventRepository{DB: db}
}

// Create is idempotent on the event id so redelivered queue messages are harmless.
func (r *ReminderEventRepository) Create(ctx context.Context, ev *entity.ReminderEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}

	query := `
		INSERT INTO reminder_events (id, employee_id, type, detail, recipients, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query,
		ev.ID, ev.EmployeeID, ev.Type, nullString(ev.Detail), pq.Array(ev.Recipients), ev.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reminder event: %w", err)
	}
	return nil
}

// PublishReminderEvent writes the event straight to the audit table. It is used when no
// message broker is configured.
func (r *ReminderEventRepository) PublishReminderEvent(ctx context.Context, ev entity.ReminderEvent) error {
	return r.Create(ctx, &ev)
}

func (r *ReminderEventRepository) ListByEmployeeID(ctx context.Context, employeeID string) ([]*entity.ReminderEvent, error) {
	query := `
		SELECT id, employee_id, type, COALESCE(detail, ''), recipients, occurred_at
		FROM reminder_events
		WHERE employee_id = $1
		ORDER BY occurred_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminder events: %w", err)
	}
	defer rows.Close()

	var events []*entity.ReminderEvent
	for rows.Next() {
		ev := &entity.ReminderEvent{}
		if err := rows.Scan(&ev.ID, &ev.EmployeeID, &ev.Type, &ev.Detail, pq.Array(&ev.Recipients), &ev.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan reminder event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
