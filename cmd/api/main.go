package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/xavierca1/pkwt-tracker/internal/config"
	"github.com/xavierca1/pkwt-tracker/internal/infra/auth"
	"github.com/xavierca1/pkwt-tracker/internal/infra/cache"
	"github.com/xavierca1/pkwt-tracker/internal/infra/database"
	"github.com/xavierca1/pkwt-tracker/internal/infra/errreport"
	"github.com/xavierca1/pkwt-tracker/internal/infra/http/handlers"
	"github.com/xavierca1/pkwt-tracker/internal/infra/http/middleware"
	"github.com/xavierca1/pkwt-tracker/internal/infra/mail"
	"github.com/xavierca1/pkwt-tracker/internal/infra/queue"
	"github.com/xavierca1/pkwt-tracker/internal/infra/worker"
	"github.com/xavierca1/pkwt-tracker/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	loc := cfg.Location()

	hostname, _ := os.Hostname()
	reporter := errreport.NewRollbarReporter(cfg.Rollbar.Token, cfg.Env, hostname)
	defer reporter.Close()
	handlers.SetErrorReporter(reporter)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDBConnection(cfg.Database.URL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// 1. Repositories
	employeeRepo := database.NewEmployeeRepository(db)
	reminderRepo := database.NewReminderRepository(db)
	userRepo := database.NewUserRepository(db)
	adminRepo := database.NewBranchAdminRepository(db)
	evaluationRepo := database.NewEvaluationRepository(db)
	knowledgeRepo := database.NewKnowledgeRepository(db)
	applicantRepo := database.NewApplicantRepository(db)
	eventRepo := database.NewReminderEventRepository(db)
	readRepo := database.NewNotificationReadRepository(db)

	// 2. Adapters
	var mailer usecase.EmailService
	switch cfg.Mail.Provider {
	case "sendgrid":
		mailer = mail.NewSendGridSender(cfg.SendGrid.APIKey, cfg.Mail.FromName, cfg.Mail.From)
	default:
		mailer = mail.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.Mail.From)
	}

	// events go straight to the audit table unless RabbitMQ is configured
	var events usecase.EventPublisher = eventRepo
	var broker handlers.BrokerStatus
	if cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.URL)
		if err != nil {
			log.Printf("[queue] RabbitMQ unavailable, publishing events directly: %v", err)
		} else {
			defer rabbitMQ.Close()
			broker = rabbitMQ.Conn
			events = queue.NewProducer(rabbitMQ.Ch, eventRepo)

			consumer := queue.NewWorker(rabbitMQ.Ch, eventRepo)
			go func() {
				if err := consumer.Start(ctx, queue.QueueName); err != nil {
					log.Printf("[queue] worker stopped: %v", err)
				}
			}()
		}
	}

	feedCache, err := cache.NewFeedCache(cfg.Cache.FeedTTL)
	if err != nil {
		log.Fatalf("cache: %v", err)
	}
	defer feedCache.Close()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	hasher := auth.NewBcryptHasher()
	metrics := middleware.ReminderMetrics{}

	// 3. UseCases
	syncUC := usecase.NewSyncRemindersUseCase(employeeRepo, reminderRepo, loc)
	syncUC.Cache = feedCache
	syncUC.Metrics = metrics

	sendUC := usecase.NewSendRemindersUseCase(
		syncUC, reminderRepo, adminRepo, mailer, events,
		cfg.HRRecipients(), cfg.App.DashboardURL,
	)
	sendUC.Metrics = metrics

	employeeSvc := usecase.NewEmployeeService(employeeRepo, reminderRepo, syncUC)
	evaluateUC := usecase.NewEvaluateEmployeeUseCase(employeeRepo, evaluationRepo, reminderRepo, events, feedCache)
	queryUC := usecase.NewReminderQueryUseCase(syncUC, employeeRepo, reminderRepo, eventRepo)
	feedUC := usecase.NewNotificationFeedUseCase(reminderRepo, readRepo, feedCache)
	createAdminUC := usecase.NewCreateAdminUseCase(userRepo, adminRepo, hasher)
	loginUC := usecase.NewLoginUseCase(userRepo, adminRepo, hasher, tokens)
	testEmailUC := usecase.NewSendTestEmailUseCase(mailer, cfg.HRRecipients(), cfg.App.DashboardURL)

	// 4. Scheduler
	if cfg.Scheduler.Enabled {
		scheduler := worker.NewReminderScheduler(sendUC, employeeRepo, cfg.Scheduler.Mode, cfg.Scheduler.Interval, loc)
		go scheduler.Start(ctx)
	}

	// 5. Router
	loginLimiter := middleware.NewRateLimiter(cfg.Auth.LoginLimit, cfg.Auth.LoginWindow)
	defer loginLimiter.Stop()

	router := handlers.NewRouter(handlers.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins(),
		CronSecret:     cfg.Cron.Secret,
		EnforceCron:    cfg.IsProduction(),
		Tokens:         tokens,
		LoginLimiter:   loginLimiter,

		Health:        handlers.NewHealthHandler(db, broker, cfg.Mail.Provider),
		Auth:          handlers.NewAuthHandler(loginUC),
		Admins:        handlers.NewAdminHandler(createAdminUC, adminRepo),
		Employees:     handlers.NewEmployeeHandler(employeeSvc, evaluateUC),
		Reminders:     handlers.NewReminderHandler(queryUC, syncUC),
		Cron:          handlers.NewCronHandler(sendUC),
		Knowledge:     handlers.NewKnowledgeHandler(usecase.NewKnowledgeService(knowledgeRepo)),
		Applicants:    handlers.NewApplicantHandler(usecase.NewApplicantService(applicantRepo)),
		Notifications: handlers.NewNotificationHandler(feedUC),
		TestEmail:     handlers.NewTestEmailHandler(testEmailUC),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("PKWT tracker listening on %s (env=%s, mail=%s)", srv.Addr, cfg.Env, cfg.Mail.Provider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
}
