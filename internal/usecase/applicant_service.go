package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/pkwt-tracker/internal/entity"
)

// ApplicantService tracks candidates through the hiring pipeline.
type ApplicantService struct {
	Repo entity.ApplicantRepositoryInterface
}

func NewApplicantService(repo entity.ApplicantRepositoryInterface) *ApplicantService {
	return &ApplicantService{Repo: repo}
}

func (s *ApplicantService) Create(ctx context.Context, input ApplicantInput) (*entity.Applicant, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	a := &entity.Applicant{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:     strings.TrimSpace(input.Phone),
		Position:  strings.TrimSpace(input.Position),
		Unit:      strings.TrimSpace(input.Unit),
		Stage:     entity.StageApplied,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, dbError("failed to create applicant", err)
	}
	return a, nil
}

func (s *ApplicantService) Update(ctx context.Context, id string, input ApplicantInput) (*entity.Applicant, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Name = strings.TrimSpace(input.Name)
	a.Email = strings.ToLower(strings.TrimSpace(input.Email))
	a.Phone = strings.TrimSpace(input.Phone)
	a.Position = strings.TrimSpace(input.Position)
	a.Unit = strings.TrimSpace(input.Unit)
	a.Notes = input.Notes
	a.UpdatedAt = time.Now()

	if err := s.Repo.Update(ctx, a); err != nil {
		return nil, dbError("failed to update applicant", err)
	}
	return a, nil
}

func (s *ApplicantService) MoveStage(ctx context.Context, id string, input MoveStageInput) (*entity.Applicant, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.CanMoveTo(input.Stage) {
		return nil, &DomainError{
			Code:    CodeValidation,
			Message: entity.ErrInvalidStageChange.Error() + ": " + a.Stage + " -> " + input.Stage,
		}
	}

	a.Stage = input.Stage
	if input.Notes != "" {
		a.Notes = input.Notes
	}
	a.UpdatedAt = time.Now()

	if err := s.Repo.Update(ctx, a); err != nil {
		return nil, dbError("failed to update applicant", err)
	}
	return a, nil
}

func (s *ApplicantService) Get(ctx context.Context, id string) (*entity.Applicant, error) {
	a, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrApplicantNotFound) {
			return nil, notFound(err.Error())
		}
		return nil, dbError("failed to load applicant", err)
	}
	return a, nil
}

func (s *ApplicantService) List(ctx context.Context, stage string) ([]*entity.Applicant, error) {
	if stage != "" && !entity.IsStage(stage) {
		return nil, &DomainError{Code: CodeValidation, Message: "unknown stage " + stage}
	}
	list, err := s.Repo.List(ctx, stage)
	if err != nil {
		return nil, dbError("failed to list applicants", err)
	}
	return list, nil
}

func (s *ApplicantService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrApplicantNotFound) {
			return notFound(err.Error())
		}
		return dbError("failed to delete applicant", err)
	}
	return nil
}
