package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/pkwt-tracker/internal/usecase"
)

func TestSendTestEmailFallsBackToHR(t *testing.T) {
	ctx := context.Background()
	email := new(MockEmailService)
	email.On("SendReminder", ctx, mock.MatchedBy(func(m usecase.ReminderEmail) bool {
		return len(m.To) == 1 && m.To[0] == "hr@bank.co.id" && m.DaysRemaining == 7
	})).Return(nil)

	out, err := usecase.NewSendTestEmailUseCase(email, []string{"hr@bank.co.id"}, "https://hr.bank.co.id").Execute(ctx, "", "")

	require.NoError(t, err)
	assert.Equal(t, usecase.TestEmailReminder, out.Kind)
	email.AssertExpectations(t)
}

func TestSendTestEmailPlainToExplicitRecipients(t *testing.T) {
	ctx := context.Background()
	email := new(MockEmailService)
	email.On("SendPlain", ctx, []string{"a@bank.co.id", "b@bank.co.id"}, mock.Anything, mock.Anything).Return(nil)

	out, err := usecase.NewSendTestEmailUseCase(email, nil, "").Execute(ctx, "a@bank.co.id, b@bank.co.id", usecase.TestEmailPlain)

	require.NoError(t, err)
	assert.Len(t, out.Recipients, 2)
}

func TestSendTestEmailRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewSendTestEmailUseCase(new(MockEmailService), nil, "")

	_, err := uc.Execute(ctx, "not an address", "")
	assert.Equal(t, usecase.CodeValidation, usecase.ErrorCode(err))

	_, err = uc.Execute(ctx, "", "")
	assert.Equal(t, usecase.CodeValidation, usecase.ErrorCode(err))

	_, err = uc.Execute(ctx, "a@bank.co.id", "sms")
	assert.Equal(t, usecase.CodeValidation, usecase.ErrorCode(err))
}

func TestSendTestEmailProviderFailure(t *testing.T) {
	ctx := context.Background()
	email := new(MockEmailService)
	email.On("SendReminder", ctx, mock.Anything).Return(&usecase.ProviderError{Provider: "smtp", Err: errors.New("535 auth failed")})

	_, err := usecase.NewSendTestEmailUseCase(email, []string{"hr@bank.co.id"}, "").Execute(ctx, "", "")

	assert.Equal(t, usecase.CodeProvider, usecase.ErrorCode(err))
}
