package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/pkwt-tracker/internal/entity"
	"github.com/xavierca1/pkwt-tracker/internal/usecase"
)

type sendFixture struct {
	reminders *memReminders
	admins    *MockBranchAdminRepository
	email     *MockEmailService
	events    *MockEventPublisher
	uc        *usecase.SendRemindersUseCase
}

func newSendFixture(t *testing.T, list []*entity.Employee) *sendFixture {
	t.Helper()

	employees := new(MockEmployeeRepository)
	employees.On("List", mock.Anything, entity.EmployeeFilter{}).Return(list, nil)

	f := &sendFixture{
		reminders: newMemReminders(),
		admins:    new(MockBranchAdminRepository),
		email:     new(MockEmailService),
		events:    new(MockEventPublisher),
	}
	sync := newSync(employees, f.reminders)
	f.uc = usecase.NewSendRemindersUseCase(sync, f.reminders, f.admins, f.email, f.events,
		[]string{"hr@bank.co.id"}, "https://hr.bank.co.id/dashboard")
	f.uc.Now = func() time.Time { return fixedNow }
	return f
}

func TestSendRemindersSendsAndMarksNotified(t *testing.T) {
	ctx := context.Background()
	f := newSendFixture(t, []*entity.Employee{
		employee("e1", entity.EmployeeStatusActive, 7),
		employee("e2", entity.EmployeeStatusActive, 90),
	})

	f.email.On("SendReminder", ctx, mock.MatchedBy(func(m usecase.ReminderEmail) bool {
		return m.EmployeeName == "Employee e1" &&
			m.DaysRemaining == 7 &&
			m.Priority == entity.PriorityHigh &&
			m.ContractEnd == "24 October 2026" &&
			m.DashboardURL == "https://hr.bank.co.id/dashboard" &&
			assert.ObjectsAreEqual([]string{"hr@bank.co.id"}, m.To)
	})).Return(nil).Once()
	f.events.On("PublishReminderEvent", ctx, mock.MatchedBy(func(ev entity.ReminderEvent) bool {
		return ev.EmployeeID == "e1" && ev.Type == entity.EventReminderNotified
	})).Return(nil).Once()

	out, err := f.uc.Execute(ctx, usecase.SendRemindersInput{})

	require.NoError(t, err)
	assert.Equal(t, usecase.SendModeHR, out.Mode)
	assert.Equal(t, 1, out.Total)
	assert.Equal(t, 1, out.Sent)
	assert.Equal(t, 0, out.Skipped)
	assert.Equal(t, 0, out.Failed)

	r, _ := f.reminders.FindByEmployeeID(ctx, "e1")
	assert.Equal(t, entity.ReminderStatusNotified, r.Status)
	assert.Equal(t, 1, r.EmailCount)
	assert.Equal(t, fixedNow, *r.LastEmailSentAt)

	f.email.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func TestSendRemindersRespectsCooldown(t *testing.T) {
	ctx := context.Background()
	f := newSendFixture(t, []*entity.Employee{
		employee("e1", entity.EmployeeStatusActive, 7),
	})
	f.email.On("SendReminder", ctx, mock.Anything).Return(nil)
	f.events.On("PublishReminderEvent", ctx, mock.Anything).Return(nil)

	_, err := f.uc.Execute(ctx, usecase.SendRemindersInput{})
	require.NoError(t, err)

	// 23h later: still inside the cooldown
	f.uc.Now = func() time.Time { return fixedNow.Add(23 * time.Hour) }
	out, err := f.uc.Execute(ctx, usecase.SendRemindersInput{})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Sent)
	assert.Equal(t, 1, out.Skipped)

	// 25h later: cooldown elapsed
	f.uc.Now = func() time.Time { return fixedNow.Add(25 * time.Hour) }
	out, err = f.uc.Execute(ctx, usecase.SendRemindersInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Sent)

	f.email.AssertNumberOfCalls(t, "SendReminder", 2)
}

func TestSendRemindersForceIgnoresCooldown(t *testing.T) {
	ctx := context.Background()
	f := newSendFixture(t, []*entity.Employee{
		employee("e1", entity.EmployeeStatusActive, 7),
	})
	f.email.On("SendReminder", ctx, mock.Anything).Return(nil)
	f.events.On("PublishReminderEvent", ctx, mock.Anything).Return(nil)

	_, err := f.uc.Execute(ctx, usecase.SendRemindersInput{})
	require.NoError(t, err)
	out, err := f.uc.Execute(ctx, usecase.SendRemindersInput{Force: true})
	require.NoError(t, err)

	assert.True(t, out.Forced)
	assert.Equal(t, 1, out.Sent)
	r, _ := f.reminders.FindByEmployeeID(ctx, "e1")
	assert.Equal(t, 2, r.EmailCount)
}

func TestSendRemindersTalliesFailuresWithoutAborting(t *testing.T) {
	ctx := context.Background()
	f := newSendFixture(t, []*entity.Employee{
		employee("e1", entity.EmployeeStatusActive, 3),
		employee("e2", entity.EmployeeStatusActive, 4),
	})

	f.email.On("SendReminder", ctx, mock.MatchedBy(func(m usecase.ReminderEmail) bool {
		return m.EmployeeName == "Employee e1"
	})).Return(&usecase.ProviderError{Provider: "smtp", Err: errors.New("421 try later")})
	f.email.On("SendReminder", ctx, mock.MatchedBy(func(m usecase.ReminderEmail) bool {
		return m.EmployeeName == "Employee e2"
	})).Return(nil)
	f.events.On("PublishReminderEvent", ctx, mock.Anything).Return(nil)

	out, err := f.uc.Execute(ctx, usecase.SendRemindersInput{})

	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, 1, out.Sent)
	assert.Equal(t, 1, out.Failed)
	require.Len(t, out.Failures, 1)
	assert.Equal(t, "e1", out.Failures[0].EmployeeID)

	r1, _ := f.reminders.FindByEmployeeID(ctx, "e1")
	assert.Equal(t, entity.ReminderStatusPending, r1.Status)
	assert.Equal(t, 0, r1.EmailCount)

	f.events.AssertCalled(t, "PublishReminderEvent", ctx, mock.MatchedBy(func(ev entity.ReminderEvent) bool {
		return ev.EmployeeID == "e1" && ev.Type == entity.EventEmailFailed
	}))
}

func TestSendRemindersUnitModeRoutesToBranchAdmins(t *testing.T) {
	ctx := context.Background()
	f := newSendFixture(t, []*entity.Employee{
		employee("e1", entity.EmployeeStatusActive, 7),
	})

	f.admins.On("ListByUnit", ctx, "KC Medan").Return([]*entity.BranchAdmin{
		{Email: "Admin.Medan@bank.co.id"},
		{Email: "hr@bank.co.id"},
	}, nil)
	f.email.On("SendReminder", ctx, mock.MatchedBy(func(m usecase.ReminderEmail) bool {
		return assert.ObjectsAreEqual([]string{"admin.medan@bank.co.id", "hr@bank.co.id"}, m.To)
	})).Return(nil)
	f.events.On("PublishReminderEvent", ctx, mock.Anything).Return(nil)

	out, err := f.uc.Execute(ctx, usecase.SendRemindersInput{Mode: usecase.SendModeUnit})

	require.NoError(t, err)
	assert.Equal(t, 1, out.Sent)
	f.email.AssertExpectations(t)
}

func TestSendRemindersRejectsUnknownMode(t *testing.T) {
	f := newSendFixture(t, nil)

	_, err := f.uc.Execute(context.Background(), usecase.SendRemindersInput{Mode: "sms"})

	assert.True(t, usecase.IsDomainError(err))
	f.email.AssertNotCalled(t, "SendReminder", mock.Anything, mock.Anything)
}

func TestSendRemindersSkipsWhenNoRecipients(t *testing.T) {
	ctx := context.Background()
	f := newSendFixture(t, []*entity.Employee{
		employee("e1", entity.EmployeeStatusActive, 7),
	})
	f.uc.HRRecipients = nil

	out, err := f.uc.Execute(ctx, usecase.SendRemindersInput{})

	require.NoError(t, err)
	assert.Equal(t, 1, out.Skipped)
	f.email.AssertNotCalled(t, "SendReminder", mock.Anything, mock.Anything)
}
