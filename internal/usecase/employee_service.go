package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/xavierca1/pkwt-tracker/internal/entity"
)

// EmployeeService covers the employee CRUD screens.
type EmployeeService struct {
	Repo      entity.EmployeeRepositoryInterface
	Reminders entity.ReminderRepositoryInterface
	Sync      *SyncRemindersUseCase
}

func NewEmployeeService(
	repo entity.EmployeeRepositoryInterface,
	reminders entity.ReminderRepositoryInterface,
	sync *SyncRemindersUseCase,
) *EmployeeService {
	return &EmployeeService{Repo: repo, Reminders: reminders, Sync: sync}
}

func (s *EmployeeService) Create(ctx context.Context, input EmployeeInput) (*entity.Employee, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	start, _ := parseDate(input.ContractStart)
	end, _ := parseDate(input.ContractEnd)

	e, err := entity.NewEmployee(input.NIP, input.Name, input.Email, input.Unit, input.Position, start, end)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}
	if input.Status != "" {
		e.Status = input.Status
	}

	if err := s.Repo.Create(ctx, e); err != nil {
		if errors.Is(err, entity.ErrEmployeeDuplicate) {
			return nil, &DomainError{Code: CodeConflict, Message: err.Error()}
		}
		return nil, dbError("failed to create employee", err)
	}

	s.resync(ctx, e)
	return e, nil
}

func (s *EmployeeService) Update(ctx context.Context, id string, input EmployeeInput) (*entity.Employee, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	e, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	start, _ := parseDate(input.ContractStart)
	end, _ := parseDate(input.ContractEnd)

	e.NIP = input.NIP
	e.Name = input.Name
	e.Email = input.Email
	e.Unit = input.Unit
	e.Position = input.Position
	e.ContractStart = start
	e.ContractEnd = end
	if input.Status != "" {
		e.Status = input.Status
	}
	e.UpdatedAt = time.Now()

	if err := e.Validate(); err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}

	if err := s.Repo.Update(ctx, e); err != nil {
		if errors.Is(err, entity.ErrEmployeeDuplicate) {
			return nil, &DomainError{Code: CodeConflict, Message: err.Error()}
		}
		if errors.Is(err, entity.ErrEmployeeNotFound) {
			return nil, notFound(err.Error())
		}
		return nil, dbError("failed to update employee", err)
	}

	s.resync(ctx, e)
	return e, nil
}

func (s *EmployeeService) Get(ctx context.Context, p entity.Principal, id string) (*entity.Employee, error) {
	e, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.CanAccessUnit(e.Unit) {
		return nil, forbidden("employee belongs to another unit")
	}
	return e, nil
}

func (s *EmployeeService) List(ctx context.Context, p entity.Principal, filter entity.EmployeeFilter) ([]*entity.Employee, error) {
	if scope := p.UnitScope(); scope != "" {
		filter.Unit = scope
	}
	if filter.Status != "" && !entity.IsEmployeeStatus(filter.Status) {
		return nil, &DomainError{Code: CodeValidation, Message: "status must be active, expired or evaluated"}
	}

	list, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, dbError("failed to list employees", err)
	}
	return list, nil
}

// Delete removes the employee together with its reminder.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}

	if err := s.Reminders.DeleteByEmployeeID(ctx, id); err != nil {
		return dbError("failed to delete reminder", err)
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrEmployeeNotFound) {
			return notFound(err.Error())
		}
		return dbError("failed to delete employee", err)
	}

	if s.Sync != nil && s.Sync.Cache != nil {
		s.Sync.Cache.Clear()
	}
	return nil
}

func (s *EmployeeService) find(ctx context.Context, id string) (*entity.Employee, error) {
	e, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrEmployeeNotFound) {
			return nil, notFound(err.Error())
		}
		return nil, dbError("failed to load employee", err)
	}
	return e, nil
}

func (s *EmployeeService) resync(ctx context.Context, e *entity.Employee) {
	if s.Sync == nil {
		return
	}
	if err := s.Sync.SyncEmployee(ctx, e); err != nil {
		// the scheduled sync will catch up
		log.Printf("[employees] reminder refresh for %s failed: %v", e.ID, err)
	}
}
