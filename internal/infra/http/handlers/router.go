package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xavierca1/pkwt-tracker/internal/entity"
	"github.com/xavierca1/pkwt-tracker/internal/infra/http/middleware"
)

type RouterConfig struct {
	AllowedOrigins []string
	CronSecret     string
	EnforceCron    bool
	Tokens         middleware.TokenParser
	LoginLimiter   *middleware.RateLimiter

	Health        *HealthHandler
	Auth          *AuthHandler
	Admins        *AdminHandler
	Employees     *EmployeeHandler
	Reminders     *ReminderHandler
	Cron          *CronHandler
	Knowledge     *KnowledgeHandler
	Applicants    *ApplicantHandler
	Notifications *NotificationHandler
	TestEmail     *TestEmailHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", cfg.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.Limit(cfg.LoginLimiter)).Post("/auth/login", cfg.Auth.HandleLogin)

		// scheduled job and diagnostics: cron secret in production
		r.Group(func(r chi.Router) {
			r.Use(middleware.CronAuth(cfg.CronSecret, cfg.EnforceCron))
			r.Get("/cron/send-reminders", cfg.Cron.SendReminders)
			r.Get("/cron/send-reminders-v2", cfg.Cron.SendRemindersV2)
			r.Get("/cron/force-send-reminders", cfg.Cron.ForceSend)
			r.Get("/test-email", cfg.TestEmail.Reminder)
			r.Get("/test-email/plain", cfg.TestEmail.Plain)
		})

		r.With(middleware.SecretOrRole(cfg.CronSecret, cfg.Tokens, entity.RoleSuperAdmin)).
			Post("/create-admin", cfg.Admins.Create)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(cfg.Tokens))

			r.Get("/auth/me", cfg.Auth.Me)
			r.Get("/dashboard", cfg.Reminders.Dashboard)

			r.Get("/reminders", cfg.Reminders.List)
			r.Get("/reminders/sync", cfg.Reminders.HandleSync)
			r.Get("/reminders/{employeeId}/events", cfg.Reminders.Events)

			r.Get("/notifications", cfg.Notifications.List)
			r.Post("/notifications/{id}/read", cfg.Notifications.MarkRead)

			r.Get("/employees", cfg.Employees.List)
			r.Get("/employees/{id}", cfg.Employees.Get)
			r.Post("/employees/{id}/evaluations", cfg.Employees.CreateEvaluation)
			r.Get("/evaluations", cfg.Employees.ListEvaluations)

			r.Get("/knowledge", cfg.Knowledge.List)
			r.Get("/knowledge/{id}", cfg.Knowledge.Get)

			r.Get("/applicants", cfg.Applicants.List)
			r.Get("/applicants/{id}", cfg.Applicants.Get)

			// writes are super admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(entity.RoleSuperAdmin))

				r.Post("/employees", cfg.Employees.Create)
				r.Put("/employees/{id}", cfg.Employees.Update)
				r.Delete("/employees/{id}", cfg.Employees.Delete)

				r.Post("/knowledge", cfg.Knowledge.Create)
				r.Put("/knowledge/{id}", cfg.Knowledge.Update)
				r.Delete("/knowledge/{id}", cfg.Knowledge.Delete)

				r.Post("/applicants", cfg.Applicants.Create)
				r.Put("/applicants/{id}", cfg.Applicants.Update)
				r.Patch("/applicants/{id}/stage", cfg.Applicants.MoveStage)
				r.Delete("/applicants/{id}", cfg.Applicants.Delete)

				r.Get("/branch-admins", cfg.Admins.ListBranchAdmins)
			})
		})
	})

	return r
}
