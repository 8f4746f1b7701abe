package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	EmployeeStatusActive    = "active"
	EmployeeStatusExpired   = "expired"
	EmployeeStatusEvaluated = "evaluated"
)

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrEmployeeDuplicate = errors.New("employee with this nip already exists")
)

// Employee is a PKWT (fixed-term contract) worker placed in one unit of the branch network.
type Employee struct {
	ID            string    `json:"id"`
	NIP           string    `json:"nip"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Unit          string    `json:"unit"`
	Position      string    `json:"position"`
	ContractStart time.Time `json:"contract_start"`
	ContractEnd   time.Time `json:"contract_end"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type EmployeeFilter struct {
	Unit   string
	Status string
	Search string
}

func NewEmployee(nip, name, email, unit, position string, start, end time.Time) (*Employee, error) {
	now := time.Now()
	e := &Employee{
		ID:            uuid.New().String(),
		NIP:           strings.TrimSpace(nip),
		Name:          strings.TrimSpace(name),
		Email:         strings.TrimSpace(email),
		Unit:          strings.TrimSpace(unit),
		Position:      strings.TrimSpace(position),
		ContractStart: start,
		ContractEnd:   end,
		Status:        EmployeeStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Employee) Validate() error {
	if e.NIP == "" {
		return errors.New("nip is required")
	}
	if e.Name == "" {
		return errors.New("name is required")
	}
	if e.Unit == "" {
		return errors.New("unit is required")
	}
	if e.ContractEnd.IsZero() {
		return errors.New("contract end date is required")
	}
	if !e.ContractStart.IsZero() && e.ContractEnd.Before(e.ContractStart) {
		return errors.New("contract end must not be before contract start")
	}
	if !IsEmployeeStatus(e.Status) {
		return errors.New("status must be active, expired or evaluated")
	}
	return nil
}

func IsEmployeeStatus(s string) bool {
	switch s {
	case EmployeeStatusActive, EmployeeStatusExpired, EmployeeStatusEvaluated:
		return true
	}
	return false
}

type EmployeeRepositoryInterface interface {
	Create(ctx context.Context, e *Employee) error
	Update(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]*Employee, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}
