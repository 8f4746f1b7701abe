package usecase_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/pkwt-tracker/internal/entity"
	"github.com/xavierca1/pkwt-tracker/internal/usecase"
)

// MockEmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) Create(ctx context.Context, e *entity.Employee) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Update(ctx context.Context, e *entity.Employee) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id string) (*entity.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) List(ctx context.Context, filter entity.EmployeeFilter) ([]*entity.Employee, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReminderRepository
type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) Upsert(ctx context.Context, r *entity.Reminder) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReminderRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*entity.Reminder, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Reminder), args.Error(1)
}

func (m *MockReminderRepository) List(ctx context.Context, filter entity.ReminderFilter) ([]*entity.Reminder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Reminder), args.Error(1)
}

func (m *MockReminderRepository) Resolve(ctx context.Context, employeeID string) (bool, error) {
	args := m.Called(ctx, employeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReminderRepository) MarkNotified(ctx context.Context, employeeID string, sentAt time.Time) error {
	args := m.Called(ctx, employeeID, sentAt)
	return args.Error(0)
}

func (m *MockReminderRepository) DeleteByEmployeeID(ctx context.Context, employeeID string) error {
	args := m.Called(ctx, employeeID)
	return args.Error(0)
}

// MockBranchAdminRepository
type MockBranchAdminRepository struct {
	mock.Mock
}

func (m *MockBranchAdminRepository) Create(ctx context.Context, a *entity.BranchAdmin) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockBranchAdminRepository) FindByUserID(ctx context.Context, userID string) (*entity.BranchAdmin, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BranchAdmin), args.Error(1)
}

func (m *MockBranchAdminRepository) ListByUnit(ctx context.Context, unit string) ([]*entity.BranchAdmin, error) {
	args := m.Called(ctx, unit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.BranchAdmin), args.Error(1)
}

func (m *MockBranchAdminRepository) List(ctx context.Context) ([]*entity.BranchAdmin, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.BranchAdmin), args.Error(1)
}

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEvaluationRepository
type MockEvaluationRepository struct {
	mock.Mock
}

func (m *MockEvaluationRepository) Create(ctx context.Context, ev *entity.PerformanceEvaluation) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockEvaluationRepository) ListByEmployeeID(ctx context.Context, employeeID string) ([]*entity.PerformanceEvaluation, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.PerformanceEvaluation), args.Error(1)
}

func (m *MockEvaluationRepository) List(ctx context.Context) ([]*entity.PerformanceEvaluation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.PerformanceEvaluation), args.Error(1)
}

func (m *MockEvaluationRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendReminder(ctx context.Context, email usecase.ReminderEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockEmailService) SendPlain(ctx context.Context, to []string, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

// MockEventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishReminderEvent(ctx context.Context, ev entity.ReminderEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

// MockHasher
type MockHasher struct {
	mock.Mock
}

func (m *MockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockHasher) Compare(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}

// MockTokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(p entity.Principal) (string, time.Time, error) {
	args := m.Called(p)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// memReminders mirrors the SQL upsert semantics of the reminders table in memory.
type memReminders struct {
	mu   sync.Mutex
	rows map[string]*entity.Reminder
	seq  int
}

func newMemReminders() *memReminders {
	return &memReminders{rows: make(map[string]*entity.Reminder)}
}

func (m *memReminders) Upsert(_ context.Context, r *entity.Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.rows[r.EmployeeID]
	if !ok {
		m.seq++
		cp := *r
		cp.ID = "rem-" + r.EmployeeID
		m.rows[r.EmployeeID] = &cp
		*r = cp
		return nil
	}

	status := existing.Status
	if status == entity.ReminderStatusResolved {
		status = entity.ReminderStatusPending
	}
	existing.EmployeeName = r.EmployeeName
	existing.Unit = r.Unit
	existing.ContractEnd = r.ContractEnd
	existing.DaysRemaining = r.DaysRemaining
	existing.ReminderType = r.ReminderType
	existing.Priority = r.Priority
	existing.Status = status
	existing.UpdatedAt = r.UpdatedAt
	*r = *existing
	return nil
}

func (m *memReminders) FindByEmployeeID(_ context.Context, employeeID string) (*entity.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[employeeID]
	if !ok {
		return nil, entity.ErrReminderNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memReminders) List(_ context.Context, filter entity.ReminderFilter) ([]*entity.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Reminder
	for _, r := range m.rows {
		if filter.Unit != "" && r.Unit != filter.Unit {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.ActiveOnly && !r.IsActive() {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

func (m *memReminders) Resolve(_ context.Context, employeeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[employeeID]
	if !ok || r.Status == entity.ReminderStatusResolved {
		return false, nil
	}
	r.Status = entity.ReminderStatusResolved
	return true, nil
}

func (m *memReminders) MarkNotified(_ context.Context, employeeID string, sentAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[employeeID]
	if !ok {
		return entity.ErrReminderNotFound
	}
	r.Status = entity.ReminderStatusNotified
	r.EmailCount++
	t := sentAt
	r.LastEmailSentAt = &t
	return nil
}

func (m *memReminders) DeleteByEmployeeID(_ context.Context, employeeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, employeeID)
	return nil
}

func (m *memReminders) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}
