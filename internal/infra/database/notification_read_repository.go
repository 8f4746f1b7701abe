package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type NotificationReadRepository struct {
	DB *sql.DB
}

func NewNotificationReadRepository(db *sql.DB) *NotificationReadRepository {
	return &NotificationReadRepository{DB: db}
}

func (r *NotificationReadRepository) MarkRead(ctx context.Context, userID, reminderID string, at time.Time) error {
	query := `
		INSERT INTO notification_reads (user_id, reminder_id, read_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, reminder_id) DO NOTHING
	`
	if _, err := r.DB.ExecContext(ctx, query, userID, reminderID, at); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (r *NotificationReadRepository) ReadSet(ctx context.Context, userID string) (map[string]bool, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT reminder_id FROM notification_reads WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load read marks: %w", err)
	}
	defer rows.Close()

	read := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		read[id] = true
	}
	return read, rows.Err()
}
