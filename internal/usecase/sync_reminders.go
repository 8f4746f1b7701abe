package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/xavierca1/pkwt-tracker/internal/entity"
)

type SyncResult struct {
	Processed int      `json:"processed"`
	Upserted  int      `json:"upserted"`
	Resolved  int      `json:"resolved"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// SyncRemindersUseCase projects employee contract dates into the reminders collection.
type SyncRemindersUseCase struct {
	Employees entity.EmployeeRepositoryInterface
	Reminders entity.ReminderRepositoryInterface
	Cache     FeedCache
	Metrics   MetricsRecorder
	Location  *time.Location
	Now       func() time.Time
}

func NewSyncRemindersUseCase(
	employees entity.EmployeeRepositoryInterface,
	reminders entity.ReminderRepositoryInterface,
	loc *time.Location,
) *SyncRemindersUseCase {
	return &SyncRemindersUseCase{
		Employees: employees,
		Reminders: reminders,
		Location:  loc,
		Now:       time.Now,
	}
}

// Execute runs the projection over every employee. Each upsert stands alone: a failure is
// recorded and the loop moves on, and the joined errors are returned with the partial result.
func (uc *SyncRemindersUseCase) Execute(ctx context.Context) (*SyncResult, error) {
	employees, err := uc.Employees.List(ctx, entity.EmployeeFilter{})
	if err != nil {
		return nil, dbError("failed to list employees", err)
	}

	now := uc.now()
	result := &SyncResult{}
	var errs []error

	for _, e := range employees {
		result.Processed++

		if err := uc.syncOne(ctx, e, now, result); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", e.ID, err))
			errs = append(errs, fmt.Errorf("employee %s: %w", e.ID, err))
		}
	}

	if uc.Cache != nil {
		uc.Cache.Clear()
	}
	if uc.Metrics != nil {
		uc.Metrics.RecordSync(result.Upserted, result.Resolved)
	}

	log.Printf("[sync] processed=%d upserted=%d resolved=%d skipped=%d failed=%d",
		result.Processed, result.Upserted, result.Resolved, result.Skipped, result.Failed)

	if len(errs) > 0 {
		return result, dbError("reminder sync finished with errors", errors.Join(errs...))
	}
	return result, nil
}

func (uc *SyncRemindersUseCase) syncOne(ctx context.Context, e *entity.Employee, now time.Time, result *SyncResult) error {
	days := entity.DaysRemaining(e.ContractEnd, now, uc.Location)

	if !entity.NeedsReminder(e, days) {
		// evaluated employees and extended contracts close whatever reminder is still open
		resolved, err := uc.Reminders.Resolve(ctx, e.ID)
		if err != nil {
			return err
		}
		if resolved {
			result.Resolved++
		} else {
			result.Skipped++
		}
		return nil
	}

	r := &entity.Reminder{
		EmployeeID:    e.ID,
		EmployeeName:  e.Name,
		Unit:          e.Unit,
		ContractEnd:   e.ContractEnd,
		DaysRemaining: days,
		ReminderType:  entity.ReminderTypeFor(days),
		Status:        entity.ReminderStatusPending,
		Priority:      entity.PriorityFor(days),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.Reminders.Upsert(ctx, r); err != nil {
		return err
	}
	result.Upserted++
	return nil
}

func (uc *SyncRemindersUseCase) now() time.Time {
	if uc.Now == nil {
		return time.Now()
	}
	return uc.Now()
}

// SyncEmployee refreshes the reminder of a single employee after it was created or edited.
func (uc *SyncRemindersUseCase) SyncEmployee(ctx context.Context, e *entity.Employee) error {
	var result SyncResult
	if err := uc.syncOne(ctx, e, uc.now(), &result); err != nil {
		return dbError("failed to sync reminder", err)
	}
	if uc.Cache != nil {
		uc.Cache.Clear()
	}
	return nil
}
