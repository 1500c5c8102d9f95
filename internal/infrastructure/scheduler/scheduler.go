package scheduler

import (
	"context"
	"time"

	appnotification "github.com/pawnbook/backend/internal/application/notification"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the daily reminder job on a cron schedule. Job failures
// are logged and never fatal; the next run simply tries again.
type Scheduler struct {
	cron      *cron.Cron
	reminders *appnotification.ReminderService
	schedule  string
	logger    *zap.Logger
}

// New creates a scheduler for the reminder job
func New(reminders *appnotification.ReminderService, schedule string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		reminders: reminders,
		schedule:  schedule,
		logger:    logger,
	}
}

// Start registers the job and starts the cron loop
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		created, err := s.reminders.GenerateDaily(ctx, time.Now())
		if err != nil {
			s.logger.Error("daily reminder job failed", zap.Error(err))
			return
		}
		s.logger.Info("daily reminder job completed", zap.Int("created", created))
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("schedule", s.schedule))
	return nil
}

// Stop stops the cron loop and waits for a running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
