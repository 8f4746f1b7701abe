package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	RecommendationExtend    = "extend"
	RecommendationPermanent = "permanent"
	RecommendationTerminate = "terminate"
)

// PerformanceEvaluation is the end-of-contract assessment. Saving one closes the
// employee's reminder.
type PerformanceEvaluation struct {
	ID             string         `json:"id"`
	EmployeeID     string         `json:"employee_id"`
	EvaluatorID    string         `json:"evaluator_id"`
	EvaluatorName  string         `json:"evaluator_name"`
	Period         string         `json:"period"`
	Scores         map[string]int `json:"scores"`
	TotalScore     float64        `json:"total_score"`
	Recommendation string         `json:"recommendation"`
	Notes          string         `json:"notes,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

func NewPerformanceEvaluation(employeeID, evaluatorID, evaluatorName, period string, scores map[string]int, recommendation, notes string) (*PerformanceEvaluation, error) {
	if employeeID == "" {
		return nil, errors.New("employee_id is required")
	}
	if len(scores) == 0 {
		return nil, errors.New("at least one score is required")
	}
	for criterion, s := range scores {
		if s < 1 || s > 5 {
			return nil, errors.New("score for " + criterion + " must be between 1 and 5")
		}
	}
	switch recommendation {
	case RecommendationExtend, RecommendationPermanent, RecommendationTerminate:
	default:
		return nil, errors.New("recommendation must be extend, permanent or terminate")
	}

	return &PerformanceEvaluation{
		ID:             uuid.New().String(),
		EmployeeID:     employeeID,
		EvaluatorID:    evaluatorID,
		EvaluatorName:  evaluatorName,
		Period:         period,
		Scores:         scores,
		TotalScore:     AverageScore(scores),
		Recommendation: recommendation,
		Notes:          notes,
		CreatedAt:      time.Now(),
	}, nil
}

// AverageScore returns the mean of the criterion scores rounded to two decimals.
func AverageScore(scores map[string]int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	avg := float64(sum) / float64(len(scores))
	return float64(int(avg*100+0.5)) / 100
}

type EvaluationRepositoryInterface interface {
	Create(ctx context.Context, ev *PerformanceEvaluation) error
	ListByEmployeeID(ctx context.Context, employeeID string) ([]*PerformanceEvaluation, error)
	List(ctx context.Context) ([]*PerformanceEvaluation, error)
	Delete(ctx context.Context, id string) error
}
