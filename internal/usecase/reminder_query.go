package usecase

import (
	"context"

	"github.com/xavierca1/pkwt-tracker/internal/entity"
)

// ReminderQueryUseCase backs the read side of the reminders screens and the dashboard.
type ReminderQueryUseCase struct {
	Sync      *SyncRemindersUseCase
	Employees entity.EmployeeRepositoryInterface
	Reminders entity.ReminderRepositoryInterface
	Events    entity.ReminderEventRepositoryInterface
}

func NewReminderQueryUseCase(
	sync *SyncRemindersUseCase,
	employees entity.EmployeeRepositoryInterface,
	reminders entity.ReminderRepositoryInterface,
	events entity.ReminderEventRepositoryInterface,
) *ReminderQueryUseCase {
	return &ReminderQueryUseCase{Sync: sync, Employees: employees, Reminders: reminders, Events: events}
}

func (uc *ReminderQueryUseCase) List(ctx context.Context, p entity.Principal, filter entity.ReminderFilter) ([]*entity.Reminder, error) {
	if scope := p.UnitScope(); scope != "" {
		filter.Unit = scope
	}
	list, err := uc.Reminders.List(ctx, filter)
	if err != nil {
		return nil, dbError("failed to list reminders", err)
	}
	return list, nil
}

func (uc *ReminderQueryUseCase) EventsFor(ctx context.Context, p entity.Principal, employeeID string) ([]*entity.ReminderEvent, error) {
	if !p.IsSuperAdmin() {
		r, err := uc.Reminders.FindByEmployeeID(ctx, employeeID)
		if err != nil {
			return nil, notFound(entity.ErrReminderNotFound.Error())
		}
		if !p.CanAccessUnit(r.Unit) {
			return nil, forbidden("reminder belongs to another unit")
		}
	}

	events, err := uc.Events.ListByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, dbError("failed to list reminder events", err)
	}
	return events, nil
}

// Dashboard refreshes reminders and summarizes them for the landing page.
func (uc *ReminderQueryUseCase) Dashboard(ctx context.Context, p entity.Principal) (*DashboardOutput, error) {
	out := &DashboardOutput{
		ByStatus:   make(map[string]int),
		ByPriority: make(map[string]int),
		Upcoming:   []*entity.Reminder{},
		Overdue:    []*entity.Reminder{},
	}

	res, err := uc.Sync.Execute(ctx)
	if err != nil {
		return nil, err
	}
	out.Sync = res

	employees, err := uc.Employees.List(ctx, entity.EmployeeFilter{Unit: p.UnitScope()})
	if err != nil {
		return nil, dbError("failed to list employees", err)
	}
	out.TotalEmployees = len(employees)
	for _, e := range employees {
		out.ByStatus[e.Status]++
	}

	reminders, err := uc.Reminders.List(ctx, entity.ReminderFilter{Unit: p.UnitScope(), ActiveOnly: true})
	if err != nil {
		return nil, dbError("failed to list reminders", err)
	}
	out.ActiveReminders = len(reminders)
	for _, r := range reminders {
		out.ByPriority[r.Priority]++
		if r.ReminderType == entity.ReminderTypeOverdue {
			out.Overdue = append(out.Overdue, r)
		} else {
			out.Upcoming = append(out.Upcoming, r)
		}
	}
	return out, nil
}
