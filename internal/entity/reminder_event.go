package entity

import (
	"context"
	"time"
)

const (
	EventReminderNotified = "reminder.notified"
	EventReminderResolved = "reminder.resolved"
	EventEmailFailed      = "reminder.email_failed"
)

// ReminderEvent is an audit record of what happened to a reminder.
type ReminderEvent struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Type       string    `json:"type"`
	Detail     string    `json:"detail,omitempty"`
	Recipients []string  `json:"recipients,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ReminderEventRepositoryInterface interface {
	Create(ctx context.Context, ev *ReminderEvent) error
	ListByEmployeeID(ctx context.Context, employeeID string) ([]*ReminderEvent, error)
}

// Notification is one entry of a user's server-held notification feed.
type Notification struct {
	ReminderID    string `json:"reminder_id"`
	EmployeeID    string `json:"employee_id"`
	Title         string `json:"title"`
	Message       string `json:"message"`
	Priority      string `json:"priority"`
	DaysRemaining int    `json:"days_remaining"`
	Read          bool   `json:"read"`
}

type NotificationReadRepositoryInterface interface {
	MarkRead(ctx context.Context, userID, reminderID string, at time.Time) error
	ReadSet(ctx context.Context, userID string) (map[string]bool, error)
}
