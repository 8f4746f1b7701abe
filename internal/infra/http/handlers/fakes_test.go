package handlers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xavierca1/pkwt-tracker/internal/entity"
	"github.com/xavierca1/pkwt-tracker/internal/usecase"
)

type memEmployees struct {
	mu   sync.Mutex
	rows map[string]*entity.Employee
}

func newMemEmployees(list ...*entity.Employee) *memEmployees {
	m := &memEmployees{rows: make(map[string]*entity.Employee)}
	for _, e := range list {
		m.rows[e.ID] = e
	}
	return m
}

func (m *memEmployees) Create(_ context.Context, e *entity.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.rows {
		if other.NIP == e.NIP {
			return entity.ErrEmployeeDuplicate
		}
	}
	m.rows[e.ID] = e
	return nil
}

func (m *memEmployees) Update(_ context.Context, e *entity.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[e.ID]; !ok {
		return entity.ErrEmployeeNotFound
	}
	m.rows[e.ID] = e
	return nil
}

func (m *memEmployees) FindByID(_ context.Context, id string) (*entity.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok {
		return nil, entity.ErrEmployeeNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memEmployees) List(_ context.Context, f entity.EmployeeFilter) ([]*entity.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Employee
	for _, e := range m.rows {
		if f.Unit != "" && e.Unit != f.Unit {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memEmployees) UpdateStatus(_ context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok {
		return entity.ErrEmployeeNotFound
	}
	e.Status = status
	return nil
}

func (m *memEmployees) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return entity.ErrEmployeeNotFound
	}
	delete(m.rows, id)
	return nil
}

type memReminders struct {
	mu   sync.Mutex
	rows map[string]*entity.Reminder
}

func newMemReminders() *memReminders {
	return &memReminders{rows: make(map[string]*entity.Reminder)}
}

func (m *memReminders) Upsert(_ context.Context, r *entity.Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.rows[r.EmployeeID]; ok {
		r.ID = existing.ID
		r.EmailCount = existing.EmailCount
		r.LastEmailSentAt = existing.LastEmailSentAt
		if existing.Status != entity.ReminderStatusResolved {
			r.Status = existing.Status
		}
	} else {
		r.ID = "rem-" + r.EmployeeID
	}
	cp := *r
	m.rows[r.EmployeeID] = &cp
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

func (m *memReminders) List(_ context.Context, f entity.ReminderFilter) ([]*entity.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Reminder
	for _, r := range m.rows {
		if f.Unit != "" && r.Unit != f.Unit {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.ActiveOnly && !r.IsActive() {
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
	r.LastEmailSentAt = &sentAt
	return nil
}

func (m *memReminders) DeleteByEmployeeID(_ context.Context, employeeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, employeeID)
	return nil
}

type memAdmins struct {
	rows []*entity.BranchAdmin
}

func (m *memAdmins) Create(_ context.Context, a *entity.BranchAdmin) error {
	m.rows = append(m.rows, a)
	return nil
}

func (m *memAdmins) FindByUserID(_ context.Context, userID string) (*entity.BranchAdmin, error) {
	for _, a := range m.rows {
		if a.UserID == userID {
			return a, nil
		}
	}
	return nil, entity.ErrBranchAdminNotFound
}

func (m *memAdmins) ListByUnit(_ context.Context, unit string) ([]*entity.BranchAdmin, error) {
	var out []*entity.BranchAdmin
	for _, a := range m.rows {
		if a.Role == entity.RoleBranchAdmin && a.Unit == unit {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAdmins) List(_ context.Context) ([]*entity.BranchAdmin, error) {
	return m.rows, nil
}

type memReads struct {
	mu    sync.Mutex
	marks map[string]map[string]bool
}

func (m *memReads) MarkRead(_ context.Context, userID, reminderID string, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.marks == nil {
		m.marks = make(map[string]map[string]bool)
	}
	if m.marks[userID] == nil {
		m.marks[userID] = make(map[string]bool)
	}
	m.marks[userID][reminderID] = true
	return nil
}

func (m *memReads) ReadSet(_ context.Context, userID string) (map[string]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]bool)
	for k, v := range m.marks[userID] {
		out[k] = v
	}
	return out, nil
}

type memEvents struct {
	mu   sync.Mutex
	rows []*entity.ReminderEvent
}

func (m *memEvents) Create(_ context.Context, ev *entity.ReminderEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, ev)
	return nil
}

func (m *memEvents) ListByEmployeeID(_ context.Context, employeeID string) ([]*entity.ReminderEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.ReminderEvent
	for _, ev := range m.rows {
		if ev.EmployeeID == employeeID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *memEvents) PublishReminderEvent(ctx context.Context, ev entity.ReminderEvent) error {
	return m.Create(ctx, &ev)
}

type fakeMailer struct {
	mu       sync.Mutex
	sent     []usecase.ReminderEmail
	plain    [][]string
	failWith error
}

func (f *fakeMailer) SendReminder(_ context.Context, email usecase.ReminderEmail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.sent = append(f.sent, email)
	return nil
}

func (f *fakeMailer) SendPlain(_ context.Context, to []string, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.plain = append(f.plain, to)
	return nil
}

type noCache struct{}

func (noCache) Get(string) ([]entity.Notification, bool) { return nil, false }
func (noCache) Set(string, []entity.Notification)        {}
func (noCache) Clear()                                   {}

type fakeTokens map[string]entity.Principal

func (f fakeTokens) Parse(token string) (entity.Principal, error) {
	p, ok := f[token]
	if !ok {
		return entity.Principal{}, errInvalidToken
	}
	return p, nil
}

type memUsers struct {
	rows map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	if m.rows == nil {
		m.rows = make(map[string]*entity.User)
	}
	if _, ok := m.rows[u.Email]; ok {
		return entity.ErrEmailAlreadyExists
	}
	m.rows[u.Email] = u
	return nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := m.rows[email]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	return u, nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	for email, u := range m.rows {
		if u.ID == id {
			delete(m.rows, email)
		}
	}
	return nil
}

// plainHasher stores passwords with a marker prefix so tests stay fast.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errInvalidToken
	}
	return nil
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(p entity.Principal) (string, time.Time, error) {
	return "token-" + p.UserID, time.Date(2026, 10, 17, 21, 0, 0, 0, time.UTC), nil
}

type memEvaluations struct {
	rows []*entity.PerformanceEvaluation
}

func (m *memEvaluations) Create(_ context.Context, ev *entity.PerformanceEvaluation) error {
	m.rows = append(m.rows, ev)
	return nil
}

func (m *memEvaluations) ListByEmployeeID(_ context.Context, employeeID string) ([]*entity.PerformanceEvaluation, error) {
	var out []*entity.PerformanceEvaluation
	for _, ev := range m.rows {
		if ev.EmployeeID == employeeID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *memEvaluations) List(_ context.Context) ([]*entity.PerformanceEvaluation, error) {
	return m.rows, nil
}

func (m *memEvaluations) Delete(_ context.Context, id string) error {
	for i, ev := range m.rows {
		if ev.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

type memKnowledge struct {
	rows map[string]*entity.KnowledgeEntry
}

func (m *memKnowledge) Create(_ context.Context, k *entity.KnowledgeEntry) error {
	if m.rows == nil {
		m.rows = make(map[string]*entity.KnowledgeEntry)
	}
	m.rows[k.ID] = k
	return nil
}

func (m *memKnowledge) Update(_ context.Context, k *entity.KnowledgeEntry) error {
	if _, ok := m.rows[k.ID]; !ok {
		return entity.ErrKnowledgeEntryNotFound
	}
	m.rows[k.ID] = k
	return nil
}

func (m *memKnowledge) FindByID(_ context.Context, id string) (*entity.KnowledgeEntry, error) {
	k, ok := m.rows[id]
	if !ok {
		return nil, entity.ErrKnowledgeEntryNotFound
	}
	return k, nil
}

func (m *memKnowledge) List(_ context.Context, category string) ([]*entity.KnowledgeEntry, error) {
	var out []*entity.KnowledgeEntry
	for _, k := range m.rows {
		if category == "" || k.Category == category {
			out = append(out, k)
		}
	}
	return out, nil
}

func (m *memKnowledge) Delete(_ context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return entity.ErrKnowledgeEntryNotFound
	}
	delete(m.rows, id)
	return nil
}

type memApplicants struct {
	rows map[string]*entity.Applicant
}

func (m *memApplicants) Create(_ context.Context, a *entity.Applicant) error {
	if m.rows == nil {
		m.rows = make(map[string]*entity.Applicant)
	}
	m.rows[a.ID] = a
	return nil
}

func (m *memApplicants) Update(_ context.Context, a *entity.Applicant) error {
	if _, ok := m.rows[a.ID]; !ok {
		return entity.ErrApplicantNotFound
	}
	m.rows[a.ID] = a
	return nil
}

func (m *memApplicants) FindByID(_ context.Context, id string) (*entity.Applicant, error) {
	a, ok := m.rows[id]
	if !ok {
		return nil, entity.ErrApplicantNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memApplicants) List(_ context.Context, stage string) ([]*entity.Applicant, error) {
	var out []*entity.Applicant
	for _, a := range m.rows {
		if stage == "" || a.Stage == stage {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memApplicants) Delete(_ context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return entity.ErrApplicantNotFound
	}
	delete(m.rows, id)
	return nil
}
