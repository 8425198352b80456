package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/harusato/meeting-decisions-api/internal/models"
	"github.com/harusato/meeting-decisions-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrActionItemNotFound = errors.New("action item not found")
	ErrItemTitleRequired  = errors.New("title is required")
	ErrItemTitleEmpty     = errors.New("title cannot be empty")
	ErrDueDateRequired    = errors.New("due date is required")
)

// ActionItemService handles action item business logic. Mutations that change
// completion state or due date keep the reminder registry in step: creating
// or reopening an item schedules reminders, completing one cancels them.
// Notification and chat side effects are informational; their failures are
// logged and never fail the triggering operation.
type ActionItemService struct {
	itemRepo         repository.ActionItemRepository
	notificationRepo repository.NotificationRepository
	reminders        *ReminderService
	chat             *ChatService
	clock            Clock
	logger           *zap.SugaredLogger
}

// NewActionItemService creates a new ActionItemService. chat may be nil when
// no team chat is configured.
func NewActionItemService(
	itemRepo repository.ActionItemRepository,
	notificationRepo repository.NotificationRepository,
	reminders *ReminderService,
	chat *ChatService,
	clock Clock,
	logger *zap.SugaredLogger,
) *ActionItemService {
	return &ActionItemService{
		itemRepo:         itemRepo,
		notificationRepo: notificationRepo,
		reminders:        reminders,
		chat:             chat,
		clock:            clock,
		logger:           logger,
	}
}

// CreateActionItemInput represents input for creating an action item
type CreateActionItemInput struct {
	Title      string
	Assignee   string
	DueDate    time.Time
	Priority   string
	DecisionID *uint64
}

// UpdateActionItemInput represents a partial update to an action item
type UpdateActionItemInput struct {
	Title    *string
	Assignee *string
	Priority *string
	DueDate  *time.Time
}

// Create stores a new action item, records a new_assignment notification,
// arms its reminders and forwards it to the team chat when configured.
func (s *ActionItemService) Create(input CreateActionItemInput) (*models.ActionItem, error) {
	if input.Title == "" {
		return nil, ErrItemTitleRequired
	}
	if input.DueDate.IsZero() {
		return nil, ErrDueDateRequired
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}

	item := &models.ActionItem{
		Title:      input.Title,
		Assignee:   input.Assignee,
		DueDate:    input.DueDate,
		Priority:   input.Priority,
		DecisionID: input.DecisionID,
	}

	if err := s.itemRepo.Create(item); err != nil {
		return nil, fmt.Errorf("failed to create action item: %w", err)
	}

	s.notify(&models.Notification{
		Type:         models.NotificationNewAssignment,
		ActionItemID: &item.ID,
		Message:      assignmentMessage(item),
	})

	s.reminders.Schedule(item.ID, item.DueDate)

	if s.chat != nil {
		s.chat.ForwardActionItem(item)
	}

	return item, nil
}

// Get returns an action item by ID
func (s *ActionItemService) Get(id uint64) (*models.ActionItem, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActionItemNotFound
		}
		return nil, fmt.Errorf("failed to find action item: %w", err)
	}
	return item, nil
}

// List returns action items matching the filter, ascending by due date
func (s *ActionItemService) List(filter repository.ActionItemFilter) ([]models.ActionItem, error) {
	items, err := s.itemRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list action items: %w", err)
	}
	return items, nil
}

// ListOverdue returns incomplete items whose due date has passed
func (s *ActionItemService) ListOverdue() ([]models.ActionItem, error) {
	items, err := s.itemRepo.ListOverdue(s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue action items: %w", err)
	}
	return items, nil
}

// Update applies a partial update. A due-date change on an incomplete item
// replaces its reminder registration.
func (s *ActionItemService) Update(id uint64, input UpdateActionItemInput) (*models.ActionItem, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActionItemNotFound
		}
		return nil, fmt.Errorf("failed to find action item: %w", err)
	}

	dueDateChanged := false
	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrItemTitleEmpty
		}
		item.Title = *input.Title
	}
	if input.Assignee != nil {
		item.Assignee = *input.Assignee
	}
	if input.Priority != nil && *input.Priority != "" {
		item.Priority = *input.Priority
	}
	if input.DueDate != nil && !input.DueDate.Equal(item.DueDate) {
		item.DueDate = *input.DueDate
		dueDateChanged = true
	}

	if err := s.itemRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update action item: %w", err)
	}

	if dueDateChanged && !item.Completed {
		s.reminders.Schedule(item.ID, item.DueDate)
	}

	return item, nil
}

// Complete marks an action item done, stamps CompletedAt, records an
// item_completed notification and cancels any armed reminders. Calling it on
// an already-completed item restamps CompletedAt with the current time.
func (s *ActionItemService) Complete(id uint64) (*models.ActionItem, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActionItemNotFound
		}
		return nil, fmt.Errorf("failed to find action item: %w", err)
	}

	now := s.clock.Now()
	item.Completed = true
	item.CompletedAt = &now

	if err := s.itemRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to complete action item: %w", err)
	}

	s.notify(&models.Notification{
		Type:         models.NotificationItemCompleted,
		ActionItemID: &item.ID,
		Message:      fmt.Sprintf("Action item completed: %s", item.Title),
	})

	s.reminders.Cancel(item.ID)

	return item, nil
}

// Reopen reverts a completed action item to pending, clearing CompletedAt,
// and re-arms reminders if the due date is still ahead.
func (s *ActionItemService) Reopen(id uint64) (*models.ActionItem, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActionItemNotFound
		}
		return nil, fmt.Errorf("failed to find action item: %w", err)
	}

	item.Completed = false
	item.CompletedAt = nil

	if err := s.itemRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to reopen action item: %w", err)
	}

	if item.DueDate.After(s.clock.Now()) {
		s.reminders.Schedule(item.ID, item.DueDate)
	}

	return item, nil
}

// notify records an informational notification, logging instead of failing.
func (s *ActionItemService) notify(notification *models.Notification) {
	if err := s.notificationRepo.Create(notification); err != nil {
		s.logger.Errorw("failed to create notification",
			"type", notification.Type, "action_item_id", notification.ActionItemID, "error", err)
	}
}

func assignmentMessage(item *models.ActionItem) string {
	if item.Assignee == "" {
		return fmt.Sprintf("New action item: %s", item.Title)
	}
	return fmt.Sprintf("New action item assigned to %s: %s", item.Assignee, item.Title)
}
