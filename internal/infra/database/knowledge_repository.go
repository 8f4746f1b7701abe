package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/xavierca1/pkwt-tracker/internal/entity"
)

const knowledgeColumns = `id, title, category, content, tags, COALESCE(author, ''), created_at, updated_at`

type KnowledgeRepository struct {
	DB *sql.DB
}

func NewKnowledgeRepository(db *sql.DB) *KnowledgeRepository {
	return &KnowledgeRepository{DB: db}
}

func (r *KnowledgeRepository) Create(ctx context.Context, k *entity.KnowledgeEntry) error {
	query := `
		INSERT INTO knowledge_entries (id, title, category, content, tags, author, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.ExecContext(ctx, query,
		k.ID, k.Title, k.Category, k.Content, pq.Array(k.Tags), nullString(k.Author), k.CreatedAt, k.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert knowledge entry: %w", err)
	}
	return nil
}

func (r *KnowledgeRepository) Update(ctx context.Context, k *entity.KnowledgeEntry) error {
	query := `
		UPDATE knowledge_entries
		SET title = $2, category = $3, content = $4, tags = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, k.ID, k.Title, k.Category, k.Content, pq.Array(k.Tags), k.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update knowledge entry: %w", err)
	}
	return expectOne(res, entity.ErrKnowledgeEntryNotFound)
}

func (r *KnowledgeRepository) FindByID(ctx context.Context, id string) (*entity.KnowledgeEntry, error) {
	query := `SELECT ` + knowledgeColumns + ` FROM knowledge_entries WHERE id = $1`

	k, err := scanKnowledge(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entity.ErrKnowledgeEntryNotFound
		}
		return nil, fmt.Errorf("failed to load knowledge entry: %w", err)
	}
	return k, nil
}

func (r *KnowledgeRepository) List(ctx context.Context, category string) ([]*entity.KnowledgeEntry, error) {
	query := `SELECT ` + knowledgeColumns + ` FROM knowledge_entries`
	var args []interface{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list knowledge entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.KnowledgeEntry
	for rows.Next() {
		k, err := scanKnowledge(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan knowledge entry: %w", err)
		}
		list = append(list, k)
	}
	return list, rows.Err()
}

func (r *KnowledgeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM knowledge_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete knowledge entry: %w", err)
	}
	return expectOne(res, entity.ErrKnowledgeEntryNotFound)
}

func scanKnowledge(s scanner) (*entity.KnowledgeEntry, error) {
	k := &entity.KnowledgeEntry{}
	err := s.Scan(&k.ID, &k.Title, &k.Category, &k.Content, pq.Array(&k.Tags), &k.Author, &k.CreatedAt, &k.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return k, nil
}
