package usecase

import (
	"time"

	"github.com/xavierca1/pkwt-tracker/internal/entity"
)

type EmployeeInput struct {
	NIP           string `json:"nip" validate:"required,max=30"`
	Name          string `json:"name" validate:"required,min=3,max=200"`
	Email         string `json:"email" validate:"omitempty,email"`
	Unit          string `json:"unit" validate:"required,max=120"`
	Position      string `json:"position" validate:"max=120"`
	ContractStart string `json:"contract_start" validate:"omitempty,datetime=2006-01-02"`
	ContractEnd   string `json:"contract_end" validate:"required,datetime=2006-01-02"`
	Status        string `json:"status" validate:"omitempty,oneof=active expired evaluated"`
}

type EvaluateEmployeeInput struct {
	EmployeeID     string         `json:"-"`
	Period         string         `json:"period" validate:"max=40"`
	Scores         map[string]int `json:"scores" validate:"required,min=1"`
	Recommendation string         `json:"recommendation" validate:"required,oneof=extend permanent terminate"`
	Notes          string         `json:"notes" validate:"max=2000"`
}

type CreateAdminInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Unit     string `json:"unit"`
	Role     string `json:"role" validate:"required,oneof=super_admin branch_admin"`
}

type CreateAdminOutput struct {
	UserID  string `json:"user_id"`
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginOutput struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      entity.Principal `json:"user"`
}

type KnowledgeInput struct {
	Title    string   `json:"title" validate:"required,max=200"`
	Category string   `json:"category" validate:"required,max=80"`
	Content  string   `json:"content" validate:"required"`
	Tags     []string `json:"tags"`
}

type ApplicantInput struct {
	Name     string `json:"name" validate:"required,min=3,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"max=30"`
	Position string `json:"position" validate:"required"`
	Unit     string `json:"unit" validate:"required"`
	Notes    string `json:"notes" validate:"max=2000"`
}

type MoveStageInput struct {
	Stage string `json:"stage" validate:"required,oneof=applied screening interview offered hired rejected"`
	Notes string `json:"notes" validate:"max=2000"`
}

type DashboardOutput struct {
	Sync            *SyncResult        `json:"sync,omitempty"`
	TotalEmployees  int                `json:"total_employees"`
	ByStatus        map[string]int     `json:"by_status"`
	ByPriority      map[string]int     `json:"by_priority"`
	ActiveReminders int                `json:"active_reminders"`
	Upcoming        []*entity.Reminder `json:"upcoming"`
	Overdue         []*entity.Reminder `json:"overdue"`
}
