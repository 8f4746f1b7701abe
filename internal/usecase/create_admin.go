package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/pkwt-tracker/internal/entity"
)

// CreateAdminUseCase creates a login account and its admin-role record.
type CreateAdminUseCase struct {
	Users  entity.UserRepositoryInterface
	Admins entity.BranchAdminRepositoryInterface
	Hasher PasswordHasher
}

func NewCreateAdminUseCase(users entity.UserRepositoryInterface, admins entity.BranchAdminRepositoryInterface, hasher PasswordHasher) *CreateAdminUseCase {
	return &CreateAdminUseCase{Users: users, Admins: admins, Hasher: hasher}
}

func (uc *CreateAdminUseCase) Execute(ctx context.Context, input CreateAdminInput) (*CreateAdminOutput, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)
	input.Unit = strings.TrimSpace(input.Unit)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	hash, err := uc.Hasher.Hash(input.Password)
	if err != nil {
		return nil, &TechnicalError{Code: CodeUnknown, Message: "failed to hash password", Err: err}
	}

	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		CreatedAt:    time.Now(),
	}

	admin, err := entity.NewBranchAdmin(user.ID, input.Name, input.Email, input.Unit, input.Role)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}

	txn := NewTransaction()
	txn.AddStep("create_user",
		func(ctx context.Context) error { return uc.Users.Create(ctx, user) },
		func(ctx context.Context) error { return uc.Users.Delete(ctx, user.ID) },
	)
	txn.AddStep("create_branch_admin",
		func(ctx context.Context) error { return uc.Admins.Create(ctx, admin) },
		nil,
	)

	if err := txn.Execute(ctx); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, &DomainError{Code: CodeConflict, Message: entity.ErrEmailAlreadyExists.Error()}
		}
		return nil, dbError("failed to persist admin", err)
	}

	return &CreateAdminOutput{
		UserID:  user.ID,
		AdminID: admin.ID,
		Email:   input.Email,
		Role:    admin.Role,
	}, nil
}
