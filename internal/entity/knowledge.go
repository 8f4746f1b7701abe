package entity

import (
	"context"
	"errors"
	"time"
)

var ErrKnowledgeEntryNotFound = errors.New("knowledge entry not found")

// KnowledgeEntry is an HR policy or how-to article.
type KnowledgeEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type KnowledgeRepositoryInterface interface {
	Create(ctx context.Context, k *KnowledgeEntry) error
	Update(ctx context.Context, k *KnowledgeEntry) error
	FindByID(ctx context.Context, id string) (*KnowledgeEntry, error)
	List(ctx context.Context, category string) ([]*KnowledgeEntry, error)
	Delete(ctx context.Context, id string) error
}
