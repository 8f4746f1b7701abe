package entity

import (
	"context"
	"errors"
	"math"
	"time"
)

const (
	ReminderTypeUpcoming = "upcoming"
	ReminderTypeOverdue  = "overdue"

	ReminderStatusPending  = "pending"
	ReminderStatusNotified = "notified"
	ReminderStatusResolved = "resolved"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Business rules for contract expiry. They are fixed for every deployment.
const (
	ReminderWindowDays = 30
	EmailCooldown      = 24 * time.Hour
)

var ErrReminderNotFound = errors.New("reminder not found")

// Reminder is a denormalized projection of one employee's contract expiry.
// It is derived by the sync routine and never edited by hand.
type Reminder struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	EmployeeName    string     `json:"employee_name"`
	Unit            string     `json:"unit"`
	ContractEnd     time.Time  `json:"contract_end"`
	DaysRemaining   int        `json:"days_remaining"`
	ReminderType    string     `json:"reminder_type"`
	Status          string     `json:"status"`
	Priority        string     `json:"priority"`
	EmailCount      int        `json:"email_count"`
	LastEmailSentAt *time.Time `json:"last_email_sent_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (r *Reminder) IsActive() bool {
	return r.Status == ReminderStatusPending || r.Status == ReminderStatusNotified
}

type ReminderFilter struct {
	Unit       string
	Status     string
	ActiveOnly bool
}

// DaysRemaining returns ceil((contractEnd - now) / 24h). The contract end is a calendar
// date read in its own zone (DATE columns arrive as UTC midnight) and placed at midnight
// in loc, so the value equals the calendar-day difference.
func DaysRemaining(contractEnd, now time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := contractEnd.Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, loc)

	days := math.Ceil(end.Sub(now).Hours() / 24)
	if days == 0 {
		return 0 // avoid -0
	}
	return int(days)
}

// PriorityFor buckets a signed days-remaining value.
func PriorityFor(daysRemaining int) string {
	if daysRemaining < 0 {
		overdue := -daysRemaining
		switch {
		case overdue >= 30:
			return PriorityUrgent
		case overdue >= 14:
			return PriorityHigh
		default:
			return PriorityMedium
		}
	}

	switch {
	case daysRemaining <= 7:
		return PriorityHigh
	case daysRemaining <= 14:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func ReminderTypeFor(daysRemaining int) string {
	if daysRemaining < 0 {
		return ReminderTypeOverdue
	}
	return ReminderTypeUpcoming
}

// NeedsReminder reports whether a non-evaluated employee belongs in the reminder collection.
func NeedsReminder(e *Employee, daysRemaining int) bool {
	if e.Status == EmployeeStatusEvaluated {
		return false
	}
	return daysRemaining <= ReminderWindowDays || e.Status == EmployeeStatusExpired
}

// ShouldSendEmail is the 24h cooldown gate.
func ShouldSendEmail(lastSent *time.Time, now time.Time) bool {
	if lastSent == nil || lastSent.IsZero() {
		return true
	}
	return now.Sub(*lastSent) >= EmailCooldown
}

type ReminderRepositoryInterface interface {
	Upsert(ctx context.Context, r *Reminder) error
	FindByEmployeeID(ctx context.Context, employeeID string) (*Reminder, error)
	List(ctx context.Context, filter ReminderFilter) ([]*Reminder, error)
	Resolve(ctx context.Context, employeeID string) (bool, error)
	MarkNotified(ctx context.Context, employeeID string, sentAt time.Time) error
	DeleteByEmployeeID(ctx context.Context, employeeID string) error
}
