package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/harusato/meeting-decisions-api/internal/models"
	"github.com/harusato/meeting-decisions-api/internal/repository"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReminderLeadTime is how far ahead of the due date the early reminder fires.
const ReminderLeadTime = 24 * time.Hour

// reminderRegistration holds the armed timers for one action item. The
// pointer identity distinguishes a registration from any replacement armed
// later for the same item.
type reminderRegistration struct {
	timers []Timer
}

// ReminderService owns the reminder timer registry and the daily overdue
// sweep. At most one registration exists per action item; scheduling again
// replaces it. Timer callbacks re-read the item and silently drop reminders
// for items that were completed or removed in the meantime. Failures inside
// callbacks are logged and never reach the caller that triggered scheduling.
type ReminderService struct {
	itemRepo         repository.ActionItemRepository
	notificationRepo repository.NotificationRepository
	clock            Clock
	logger           *zap.SugaredLogger
	cron             *cron.Cron

	mu            sync.Mutex
	registrations map[uint64]*reminderRegistration
}

// NewReminderService creates a new ReminderService. The cron scheduler is not
// started until Initialize.
func NewReminderService(
	itemRepo repository.ActionItemRepository,
	notificationRepo repository.NotificationRepository,
	clock Clock,
	logger *zap.SugaredLogger,
) *ReminderService {
	return &ReminderService{
		itemRepo:         itemRepo,
		notificationRepo: notificationRepo,
		clock:            clock,
		logger:           logger,
		cron:             cron.New(cron.WithSeconds()),
		registrations:    make(map[uint64]*reminderRegistration),
	}
}

// Schedule arms reminders for an action item: one a day before the due date
// and one at the due date itself. Any existing registration for the item is
// cancelled first. Fire times already in the past are skipped, so an item due
// within 24 hours only gets the due-date reminder, and an already-due item
// gets none.
func (s *ReminderService) Schedule(itemID uint64, dueDate time.Time) {
	s.Cancel(itemID)

	now := s.clock.Now()
	if !dueDate.After(now) {
		return
	}

	// Register before arming so a timer firing immediately on its own
	// goroutine still finds the registration in the map.
	reg := &reminderRegistration{}
	s.mu.Lock()
	s.registrations[itemID] = reg
	if delay := dueDate.Add(-ReminderLeadTime).Sub(now); delay > 0 {
		reg.timers = append(reg.timers, s.clock.AfterFunc(delay, func() {
			s.fire(itemID, reg, true)
		}))
	}
	reg.timers = append(reg.timers, s.clock.AfterFunc(dueDate.Sub(now), func() {
		s.fire(itemID, reg, false)
	}))
	s.mu.Unlock()
}

// Cancel stops all armed timers for an action item and removes its
// registration. Calling it when nothing is registered is a no-op.
func (s *ReminderService) Cancel(itemID uint64) {
	s.mu.Lock()
	reg, ok := s.registrations[itemID]
	if ok {
		delete(s.registrations, itemID)
	}
	s.mu.Unlock()

	if !ok {
		return
	}
	for _, t := range reg.timers {
		t.Stop()
	}
}

// fire runs when a reminder timer elapses. It re-reads the item so a reminder
// for a completed or vanished item is dropped rather than delivered stale.
func (s *ReminderService) fire(itemID uint64, reg *reminderRegistration, dayBefore bool) {
	// The due-date timer is the last one in a registration; once it has
	// fired the registration is spent. Only remove it if it has not already
	// been replaced by a newer Schedule call.
	if !dayBefore {
		s.mu.Lock()
		if s.registrations[itemID] == reg {
			delete(s.registrations, itemID)
		}
		s.mu.Unlock()
	}

	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return
		}
		s.logger.Errorw("reminder fire: failed to load action item", "action_item_id", itemID, "error", err)
		return
	}
	if item.Completed {
		return
	}

	message := fmt.Sprintf("Reminder: %q is due today", item.Title)
	if dayBefore {
		message = fmt.Sprintf("Reminder: %q is due tomorrow", item.Title)
	}

	notification := &models.Notification{
		Type:         models.NotificationActionReminder,
		ActionItemID: &item.ID,
		Message:      message,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		s.logger.Errorw("reminder fire: failed to create notification", "action_item_id", itemID, "error", err)
	}
}

// RunOverdueSweep creates one overdue_reminder notification per currently
// overdue action item. There is deliberately no de-duplication against earlier
// sweeps: an item overdue across several days gets a notification each day.
// A failure on one item never stops the rest of the sweep.
func (s *ReminderService) RunOverdueSweep() {
	now := s.clock.Now()
	items, err := s.itemRepo.ListOverdue(now)
	if err != nil {
		s.logger.Errorw("overdue sweep: failed to list overdue items", "error", err)
		return
	}

	for i := range items {
		item := &items[i]
		notification := &models.Notification{
			Type:         models.NotificationOverdueReminder,
			ActionItemID: &item.ID,
			Message:      fmt.Sprintf("Overdue: %q was due %s", item.Title, item.DueDate.Format("2006-01-02")),
		}
		if err := s.notificationRepo.Create(notification); err != nil {
			s.logger.Errorw("overdue sweep: failed to create notification", "action_item_id", item.ID, "error", err)
			continue
		}
	}

	if len(items) > 0 {
		s.logger.Infow("overdue sweep completed", "overdue_items", len(items))
	}
}

// Initialize registers the daily overdue sweep at the given HH:MM time,
// re-arms reminders for every incomplete item whose due date is still ahead,
// and starts the cron scheduler. Reminders whose due date passed while the
// process was down are not backfilled.
func (s *ReminderService) Initialize(sweepTime string) error {
	spec, err := buildDailySpec(sweepTime)
	if err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(spec, s.RunOverdueSweep); err != nil {
		return fmt.Errorf("failed to register overdue sweep: %w", err)
	}

	incomplete := false
	items, err := s.itemRepo.List(repository.ActionItemFilter{Completed: &incomplete})
	if err != nil {
		return fmt.Errorf("failed to load incomplete action items: %w", err)
	}

	now := s.clock.Now()
	rearmed := 0
	for _, item := range items {
		if !item.DueDate.After(now) {
			continue
		}
		s.Schedule(item.ID, item.DueDate)
		rearmed++
	}

	s.cron.Start()
	s.logger.Infow("reminder scheduler initialized", "rearmed", rearmed, "sweep_time", sweepTime)
	return nil
}

// Shutdown stops the cron scheduler, waits for a running sweep to finish, and
// cancels every armed reminder timer.
func (s *ReminderService) Shutdown() {
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.mu.Lock()
	regs := s.registrations
	s.registrations = make(map[uint64]*reminderRegistration)
	s.mu.Unlock()

	for _, reg := range regs {
		for _, t := range reg.timers {
			t.Stop()
		}
	}
}

// buildDailySpec converts an HH:MM time string into a six-field cron spec.
func buildDailySpec(timeStr string) (string, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", timeStr)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", timeStr)
	}
	return fmt.Sprintf("0 %d %d * * *", minute, hour), nil
}
