package entity

import (
	"context"
	"errors"
	"time"
)

const (
	StageApplied   = "applied"
	StageScreening = "screening"
	StageInterview = "interview"
	StageOffered   = "offered"
	StageHired     = "hired"
	StageRejected  = "rejected"
)

var (
	ErrApplicantNotFound  = errors.New("applicant not found")
	ErrInvalidStageChange = errors.New("invalid applicant stage change")
)

var stageOrder = map[string]int{
	StageApplied:   0,
	StageScreening: 1,
	StageInterview: 2,
	StageOffered:   3,
	StageHired:     4,
}

type Applicant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Position  string    `json:"position"`
	Unit      string    `json:"unit"`
	Stage     string    `json:"stage"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanMoveTo allows forward moves through the pipeline and rejection from any open stage.
// Hired and rejected are terminal.
func (a *Applicant) CanMoveTo(stage string) bool {
	if a.Stage == StageHired || a.Stage == StageRejected {
		return false
	}
	if stage == StageRejected {
		return true
	}
	from, ok := stageOrder[a.Stage]
	if !ok {
		return false
	}
	to, ok := stageOrder[stage]
	if !ok {
		return false
	}
	return to > from
}

func IsStage(s string) bool {
	if s == StageRejected {
		return true
	}
	_, ok := stageOrder[s]
	return ok
}

type ApplicantRepositoryInterface interface {
	Create(ctx context.Context, a *Applicant) error
	Update(ctx context.Context, a *Applicant) error
	FindByID(ctx context.Context, id string) (*Applicant, error)
	List(ctx context.Context, stage string) ([]*Applicant, error)
	Delete(ctx context.Context, id string) error
}
