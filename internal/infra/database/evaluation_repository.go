package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/xavierca1/pkwt-tracker/internal/entity"
)

const evaluationColumns = `id, employee_id, evaluator_id, COALESCE(evaluator_name, ''), COALESCE(period, ''),
	scores, total_score, recommendation, COALESCE(notes, ''), created_at`

type EvaluationRepository struct {
	DB *sql.DB
}

func NewEvaluationRepository(db *sql.DB) *EvaluationRepository {
	return &EvaluationRepository{DB: db}
}

func (r *EvaluationRepository) Create(ctx context.Context, ev *entity.PerformanceEvaluation) error {
	scores, err := json.Marshal(ev.Scores)
	if err != nil {
		return fmt.Errorf("failed to encode scores: %w", err)
	}

	query := `
		INSERT INTO performance_evaluations (id, employee_id, evaluator_id, evaluator_name, period,
			scores, total_score, recommendation, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = r.DB.ExecContext(ctx, query,
		ev.ID,
		ev.EmployeeID,
		ev.EvaluatorID,
		nullString(ev.EvaluatorName),
		nullString(ev.Period),
		scores,
		ev.TotalScore,
		ev.Recommendation,
		nullString(ev.Notes),
		ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert evaluation: %w", err)
	}
	return nil
}

// Delete removes an evaluation; it only runs as compensation for a failed evaluate flow.
func (r *EvaluationRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM performance_evaluations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete evaluation: %w", err)
	}
	return nil
}

func (r *EvaluationRepository) ListByEmployeeID(ctx context.Context, employeeID string) ([]*entity.PerformanceEvaluation, error) {
	query := `SELECT ` + evaluationColumns + ` FROM performance_evaluations WHERE employee_id = $1 ORDER BY created_at DESC`
	return r.query(ctx, query, employeeID)
}

func (r *EvaluationRepository) List(ctx context.Context) ([]*entity.PerformanceEvaluation, error) {
	query := `SELECT ` + evaluationColumns + ` FROM performance_evaluations ORDER BY created_at DESC`
	return r.query(ctx, query)
}

func (r *EvaluationRepository) query(ctx context.Context, query string, args ...interface{}) ([]*entity.PerformanceEvaluation, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer rows.Close()

	var list []*entity.PerformanceEvaluation
	for rows.Next() {
		ev := &entity.PerformanceEvaluation{}
		var scores []byte
		err := rows.Scan(
			&ev.ID,
			&ev.EmployeeID,
			&ev.EvaluatorID,
			&ev.EvaluatorName,
			&ev.Period,
			&scores,
			&ev.TotalScore,
			&ev.Recommendation,
			&ev.Notes,
			&ev.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		if err := json.Unmarshal(scores, &ev.Scores); err != nil {
			return nil, fmt.Errorf("failed to decode scores of %s: %w", ev.ID, err)
		}
		list = append(list, ev)
	}
	return list, rows.Err()
}
