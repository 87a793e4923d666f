// Package scheduler runs the payment reminder job on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/card-tracker/internal/config"
	"github.com/Dan9191/card-tracker/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const jobTimeout = time.Minute

// ReminderSource lists the cards that need a reminder at a date
type ReminderSource interface {
	DueReminders(ctx context.Context, ref time.Time) ([]models.Reminder, error)
}

// Notifier delivers a reminder digest
type Notifier interface {
	SendPaymentReminder(to, username string, reminders []models.Reminder) error
}

// Scheduler manages the cron jobs
type Scheduler struct {
	cron     *cron.Cron
	source   ReminderSource
	notifier Notifier
	log      *logrus.Logger
	config   *config.Config
	now      func() time.Time
}

// NewScheduler creates a new scheduler instance
func NewScheduler(source ReminderSource, notifier Notifier, log *logrus.Logger, cfg *config.Config) *Scheduler {
	cronLogger := cron.PrintfLogger(log)
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))

	return &Scheduler{
		cron:     c,
		source:   source,
		notifier: notifier,
		log:      log,
		config:   cfg,
		now:      time.Now,
	}
}

// Start registers the reminder job and starts the cron scheduler
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.config.ReminderSchedule, s.runReminders); err != nil {
		return fmt.Errorf("failed to schedule reminder job: %w", err)
	}
	s.log.Infof("Scheduled reminder job: %s", s.config.ReminderSchedule)

	s.cron.Start()
	return nil
}

// Stop stops the scheduler; the returned context is done once running jobs finish
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) runReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.SendReminders(ctx); err != nil {
		s.log.Errorf("Reminder job failed: %v", err)
	}
}

// SendReminders emails the digest of cards due at the current date. Nothing is
// sent when no card needs attention.
func (s *Scheduler) SendReminders(ctx context.Context) error {
	reminders, err := s.source.DueReminders(ctx, s.now())
	if err != nil {
		return fmt.Errorf("failed to list reminders: %w", err)
	}
	if len(reminders) == 0 {
		s.log.Debug("No cards need a payment reminder")
		return nil
	}

	if err := s.notifier.SendPaymentReminder(s.config.ReminderEmail, s.config.ReminderName, reminders); err != nil {
		return err
	}
	s.log.Infof("Sent payment reminder for %d cards", len(reminders))
	return nil
}
