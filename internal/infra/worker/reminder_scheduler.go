package worker

import (
	"context"
	"log"
	"time"

	"github.com/xavierca1/pkwt-tracker/internal/usecase"
)

type ReminderPipeline interface {
	Execute(ctx context.Context, input usecase.SendRemindersInput) (*usecase.SendRemindersOutput, error)
}

type ContractExpirer interface {
	ExpireContracts(ctx context.Context, before time.Time) ([]string, error)
}

// ReminderScheduler is the in-process replacement for the external cron trigger: on every
// tick it marks ended contracts as expired and runs the reminder pipeline.
type ReminderScheduler struct {
	pipeline     ReminderPipeline
	expirer      ContractExpirer
	mode         string
	tickInterval time.Duration
	location     *time.Location
	now          func() time.Time
}

func NewReminderScheduler(pipeline ReminderPipeline, expirer ContractExpirer, mode string, interval time.Duration, loc *time.Location) *ReminderScheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderScheduler{
		pipeline:     pipeline,
		expirer:      expirer,
		mode:         mode,
		tickInterval: interval,
		location:     loc,
		now:          time.Now,
	}
}

func (s *ReminderScheduler) Start(ctx context.Context) {
	log.Printf("[scheduler] reminder scheduler started (every %s, mode=%s)", s.tickInterval, s.mode)

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("[scheduler] reminder scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *ReminderScheduler) runOnce(ctx context.Context) {
	if s.expirer != nil {
		y, m, d := s.now().In(s.location).Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, s.location)

		ids, err := s.expirer.ExpireContracts(ctx, today)
		if err != nil {
			log.Printf("[scheduler] failed to expire contracts: %v", err)
		} else if len(ids) > 0 {
			log.Printf("[scheduler] %d contract(s) marked expired", len(ids))
		}
	}

	out, err := s.pipeline.Execute(ctx, usecase.SendRemindersInput{Mode: s.mode})
	if err != nil {
		log.Printf("[scheduler] reminder run failed: %v", err)
		return
	}
	log.Printf("[scheduler] reminder run: total=%d sent=%d skipped=%d failed=%d",
		out.Total, out.Sent, out.Skipped, out.Failed)
}
