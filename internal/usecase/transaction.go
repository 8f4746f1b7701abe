package usecase

import (
	"context"
	"fmt"
	"log"
)

// Transaction runs steps in order and, when one fails, undoes the completed ones in
// reverse. It stands in for a database transaction across stores that cannot share one.
type Transaction struct {
	steps []step
}

type step struct {
	name string
	do   func(context.Context) error
	undo func(context.Context) error
}

func NewTransaction() *Transaction {
	return &Transaction{}
}

// AddStep registers an operation and its compensation. undo may be nil.
func (t *Transaction) AddStep(name string, do, undo func(context.Context) error) {
	t.steps = append(t.steps, step{name: name, do: do, undo: undo})
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, s := range t.steps {
		if err := s.do(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("operation '%s' failed: %w (rolled back %d operations)", s.name, err, i)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAt int) {
	for i := failedAt - 1; i >= 0; i-- {
		s := t.steps[i]
		if s.undo == nil {
			continue
		}
		if err := s.undo(ctx); err != nil {
			log.Printf("WARNING: compensation '%s' failed: %v (inconsistency risk)", s.name, err)
		}
	}
}
