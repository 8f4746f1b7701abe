package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/pkwt-tracker/internal/entity"
)

// EvaluateEmployeeUseCase records the end-of-contract evaluation and closes the reminder.
type EvaluateEmployeeUseCase struct {
	Employees   entity.EmployeeRepositoryInterface
	Evaluations entity.EvaluationRepositoryInterface
	Reminders   entity.ReminderRepositoryInterface
	Events      EventPublisher
	Cache       FeedCache
}

func NewEvaluateEmployeeUseCase(
	employees entity.EmployeeRepositoryInterface,
	evaluations entity.EvaluationRepositoryInterface,
	reminders entity.ReminderRepositoryInterface,
	events EventPublisher,
	cache FeedCache,
) *EvaluateEmployeeUseCase {
	return &EvaluateEmployeeUseCase{
		Employees:   employees,
		Evaluations: evaluations,
		Reminders:   reminders,
		Events:      events,
		Cache:       cache,
	}
}

func (uc *EvaluateEmployeeUseCase) Execute(ctx context.Context, p entity.Principal, input EvaluateEmployeeInput) (*entity.PerformanceEvaluation, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	employee, err := uc.Employees.FindByID(ctx, input.EmployeeID)
	if err != nil {
		if errors.Is(err, entity.ErrEmployeeNotFound) {
			return nil, notFound(err.Error())
		}
		return nil, dbError("failed to load employee", err)
	}
	if !p.CanAccessUnit(employee.Unit) {
		return nil, forbidden("employee belongs to another unit")
	}

	ev, err := entity.NewPerformanceEvaluation(
		employee.ID, p.UserID, p.Name, input.Period, input.Scores, input.Recommendation, input.Notes,
	)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}

	var resolved bool
	previousStatus := employee.Status

	txn := NewTransaction()
	txn.AddStep("create_evaluation",
		func(ctx context.Context) error { return uc.Evaluations.Create(ctx, ev) },
		func(ctx context.Context) error { return uc.Evaluations.Delete(ctx, ev.ID) },
	)
	txn.AddStep("mark_evaluated",
		func(ctx context.Context) error {
			return uc.Employees.UpdateStatus(ctx, employee.ID, entity.EmployeeStatusEvaluated)
		},
		func(ctx context.Context) error { return uc.Employees.UpdateStatus(ctx, employee.ID, previousStatus) },
	)
	txn.AddStep("resolve_reminder",
		func(ctx context.Context) (err error) {
			resolved, err = uc.Reminders.Resolve(ctx, employee.ID)
			return err
		},
		nil,
	)

	if err := txn.Execute(ctx); err != nil {
		return nil, dbError("failed to record evaluation", err)
	}

	if uc.Cache != nil {
		uc.Cache.Clear()
	}

	if resolved && uc.Events != nil {
		event := entity.ReminderEvent{
			ID:         uuid.New().String(),
			EmployeeID: employee.ID,
			Type:       entity.EventReminderResolved,
			Detail:     fmt.Sprintf("evaluated by %s: %s", p.Email, ev.Recommendation),
			OccurredAt: time.Now(),
		}
		if err := uc.Events.PublishReminderEvent(ctx, event); err != nil {
			log.Printf("[evaluate] failed to publish resolve event for %s: %v", employee.ID, err)
		}
	}

	return ev, nil
}

// ListEvaluations returns every evaluation, or those of one employee when employeeID is set.
func (uc *EvaluateEmployeeUseCase) ListEvaluations(ctx context.Context, employeeID string) ([]*entity.PerformanceEvaluation, error) {
	var (
		list []*entity.PerformanceEvaluation
		err  error
	)
	if employeeID != "" {
		list, err = uc.Evaluations.ListByEmployeeID(ctx, employeeID)
	} else {
		list, err = uc.Evaluations.List(ctx)
	}
	if err != nil {
		return nil, dbError("failed to list evaluations", err)
	}
	return list, nil
}
