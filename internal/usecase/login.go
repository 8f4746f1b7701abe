package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/xavierca1/pkwt-tracker/internal/entity"
)

var errBadCredentials = &DomainError{Code: CodeUnauth, Message: "invalid email or password"}

type LoginUseCase struct {
	Users  entity.UserRepositoryInterface
	Admins entity.BranchAdminRepositoryInterface
	Hasher PasswordHasher
	Tokens TokenIssuer
}

func NewLoginUseCase(users entity.UserRepositoryInterface, admins entity.BranchAdminRepositoryInterface, hasher PasswordHasher, tokens TokenIssuer) *LoginUseCase {
	return &LoginUseCase{Users: users, Admins: admins, Hasher: hasher, Tokens: tokens}
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := validateInput(input); err != nil {
		return nil, err
	}

	user, err := uc.Users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, errBadCredentials
		}
		return nil, dbError("failed to load user", err)
	}
	if err := uc.Hasher.Compare(user.PasswordHash, input.Password); err != nil {
		return nil, errBadCredentials
	}

	admin, err := uc.Admins.FindByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, entity.ErrBranchAdminNotFound) {
			return nil, forbidden("account has no admin role")
		}
		return nil, dbError("failed to load admin role", err)
	}

	p := entity.Principal{
		UserID: user.ID,
		Email:  user.Email,
		Name:   admin.Name,
		Role:   admin.Role,
		Unit:   admin.Unit,
	}
	token, exp, err := uc.Tokens.Issue(p)
	if err != nil {
		return nil, &TechnicalError{Code: CodeUnknown, Message: "failed to issue token", Err: err}
	}

	return &LoginOutput{Token: token, ExpiresAt: exp, User: p}, nil
}
