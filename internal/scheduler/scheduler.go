package scheduler

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/vocabsrs/internal/spaced_repetition"
	"github.com/example/vocabsrs/internal/store"
	"github.com/go-co-op/gocron"
)

// Notification window defaults, overridable via NOTIFICATION_START_HOUR and
// NOTIFICATION_END_HOUR.
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 22
)

// Notifier interface for sending due-item reminders
type Notifier interface {
	SendDueReminder(count int) error
}

// Scheduler manages background tasks: the hourly due-item reminder and a
// periodic flush of the in-memory collection.
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     *store.Store
	notifier  Notifier
}

// New creates a new scheduler instance
func New(st *store.Store, notifier Notifier) *Scheduler {
	s := gocron.NewScheduler(time.Local)
	return &Scheduler{
		scheduler: s,
		store:     st,
		notifier:  notifier,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminder)
	s.scheduler.Every(10).Minute().Do(s.flush)

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminder counts due items and pushes a reminder if the current
// hour is inside the notification window
func (s *Scheduler) checkAndSendReminder() {
	now := time.Now()
	currentHour := now.Hour()

	startHour := hourFromEnv("NOTIFICATION_START_HOUR", DefaultNotificationStartHour)
	endHour := hourFromEnv("NOTIFICATION_END_HOUR", DefaultNotificationEndHour)

	if currentHour < startHour || currentHour > endHour {
		log.Printf("Current hour %d is outside notification hours (%d-%d), skipping reminder",
			currentHour, startHour, endHour)
		return
	}

	due := spaced_repetition.GetItemsDueForReview(s.store.All(), now)
	if len(due) == 0 {
		return
	}

	if err := s.notifier.SendDueReminder(len(due)); err != nil {
		log.Printf("Error sending due reminder: %v", err)
	}
}

// flush writes the working set through so a crash loses at most a few
// minutes of scheduling updates
func (s *Scheduler) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.store.Flush(ctx); err != nil {
		log.Printf("Error flushing review items: %v", err)
	}
}

// RunManualCheck forces a reminder check regardless of the notification window
func (s *Scheduler) RunManualCheck() error {
	due := spaced_repetition.GetItemsDueForReview(s.store.All(), time.Now())
	if len(due) > 0 {
		return s.notifier.SendDueReminder(len(due))
	}
	return nil
}

func hourFromEnv(name string, fallback int) int {
	if value := os.Getenv(name); value != "" {
		if h, err := strconv.Atoi(value); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}
