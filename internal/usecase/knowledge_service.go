package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/pkwt-tracker/internal/entity"
)

type KnowledgeService struct {
	Repo entity.KnowledgeRepositoryInterface
}

func NewKnowledgeService(repo entity.KnowledgeRepositoryInterface) *KnowledgeService {
	return &KnowledgeService{Repo: repo}
}

func (s *KnowledgeService) Create(ctx context.Context, p entity.Principal, input KnowledgeInput) (*entity.KnowledgeEntry, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	k := &entity.KnowledgeEntry{
		ID:        uuid.New().String(),
		Title:     strings.TrimSpace(input.Title),
		Category:  strings.TrimSpace(input.Category),
		Content:   input.Content,
		Tags:      cleanTags(input.Tags),
		Author:    p.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, k); err != nil {
		return nil, dbError("failed to create knowledge entry", err)
	}
	return k, nil
}

func (s *KnowledgeService) Update(ctx context.Context, id string, input KnowledgeInput) (*entity.KnowledgeEntry, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	k, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	k.Title = strings.TrimSpace(input.Title)
	k.Category = strings.TrimSpace(input.Category)
	k.Content = input.Content
	k.Tags = cleanTags(input.Tags)
	k.UpdatedAt = time.Now()

	if err := s.Repo.Update(ctx, k); err != nil {
		return nil, dbError("failed to update knowledge entry", err)
	}
	return k, nil
}

func (s *KnowledgeService) Get(ctx context.Context, id string) (*entity.KnowledgeEntry, error) {
	k, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrKnowledgeEntryNotFound) {
			return nil, notFound(err.Error())
		}
		return nil, dbError("failed to load knowledge entry", err)
	}
	return k, nil
}

func (s *KnowledgeService) List(ctx context.Context, category string) ([]*entity.KnowledgeEntry, error) {
	list, err := s.Repo.List(ctx, category)
	if err != nil {
		return nil, dbError("failed to list knowledge entries", err)
	}
	return list, nil
}

func (s *KnowledgeService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrKnowledgeEntryNotFound) {
			return notFound(err.Error())
		}
		return dbError("failed to delete knowledge entry", err)
	}
	return nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool)
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
