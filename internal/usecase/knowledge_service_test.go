package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/pkwt-tracker/internal/entity"
	"github.com/xavierca1/pkwt-tracker/internal/usecase"
)

type MockKnowledgeRepository struct {
	mock.Mock
}

func (m *MockKnowledgeRepository) Create(ctx context.Context, k *entity.KnowledgeEntry) error {
	return m.Called(ctx, k).Error(0)
}

func (m *MockKnowledgeRepository) Update(ctx context.Context, k *entity.KnowledgeEntry) error {
	return m.Called(ctx, k).Error(0)
}

func (m *MockKnowledgeRepository) FindByID(ctx context.Context, id string) (*entity.KnowledgeEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.KnowledgeEntry), args.Error(1)
}

func (m *MockKnowledgeRepository) List(ctx context.Context, category string) ([]*entity.KnowledgeEntry, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.KnowledgeEntry), args.Error(1)
}

func (m *MockKnowledgeRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func TestKnowledgeCreateNormalizesTags(t *testing.T) {
	repo := new(MockKnowledgeRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.KnowledgeEntry")).Return(nil)

	svc := usecase.NewKnowledgeService(repo)
	k, err := svc.Create(context.Background(), entity.Principal{Name: "HR Pusat"}, usecase.KnowledgeInput{
		Title:    "  Perpanjangan PKWT ",
		Category: "kebijakan",
		Content:  "Evaluasi wajib sebelum kontrak berakhir.",
		Tags:     []string{"PKWT", " pkwt ", "", "Kontrak"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Perpanjangan PKWT", k.Title)
	assert.Equal(t, []string{"pkwt", "kontrak"}, k.Tags)
	assert.Equal(t, "HR Pusat", k.Author)
	repo.AssertExpectations(t)
}

func TestKnowledgeValidationAndNotFound(t *testing.T) {
	repo := new(MockKnowledgeRepository)
	svc := usecase.NewKnowledgeService(repo)

	_, err := svc.Create(context.Background(), entity.Principal{}, usecase.KnowledgeInput{Title: "x"})
	require.Error(t, err)
	assert.Equal(t, usecase.CodeValidation, usecase.ErrorCode(err))

	repo.On("Delete", mock.Anything, "missing").Return(entity.ErrKnowledgeEntryNotFound)
	err = svc.Delete(context.Background(), "missing")
	assert.Equal(t, usecase.CodeNotFound, usecase.ErrorCode(err))
}
