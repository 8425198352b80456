package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harusato/meeting-decisions-api/internal/constants"
	"github.com/harusato/meeting-decisions-api/internal/models"
	"github.com/harusato/meeting-decisions-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrDecisionNotFound        = errors.New("decision not found")
	ErrExtractionNotConfigured = errors.New("extraction service is not configured")
	ErrMeetingTextRequired     = errors.New("meeting text is required")
	ErrNoDecisionExtracted     = errors.New("no decision could be extracted from the text")
	ErrTooManyActionItems      = errors.New("extraction produced too many action items")
)

// Extractor turns meeting text into a structured decision with action items.
type Extractor interface {
	ExtractFromText(ctx context.Context, text string) (*ExtractionResult, error)
}

// defaultDueOffset is applied when extraction yields an action item without a
// deadline.
const defaultDueOffset = 7 * 24 * time.Hour

// DecisionService drives the extraction flow: one meeting text becomes one
// decision plus zero or more action items, each with its notification and
// reminder side effects handled by ActionItemService.
type DecisionService struct {
	decisionRepo repository.DecisionRepository
	actionItems  *ActionItemService
	extractor    Extractor
	clock        Clock
	logger       *zap.SugaredLogger
}

// NewDecisionService creates a new DecisionService. extractor may be nil when
// no API key is configured; extraction then fails with
// ErrExtractionNotConfigured.
func NewDecisionService(
	decisionRepo repository.DecisionRepository,
	actionItems *ActionItemService,
	extractor Extractor,
	clock Clock,
	logger *zap.SugaredLogger,
) *DecisionService {
	return &DecisionService{
		decisionRepo: decisionRepo,
		actionItems:  actionItems,
		extractor:    extractor,
		clock:        clock,
		logger:       logger,
	}
}

// ExtractFromMeetingInput represents input for the extraction flow
type ExtractFromMeetingInput struct {
	Text   string
	Source string
	Team   *string
}

// ExtractFromMeeting sends meeting text through the AI extractor and stores
// the resulting decision and action items. Action items with blank titles are
// skipped; items without a deadline, or with one already in the past, get a
// one-week default.
func (s *DecisionService) ExtractFromMeeting(ctx context.Context, input ExtractFromMeetingInput) (*models.Decision, []models.ActionItem, error) {
	if s.extractor == nil {
		return nil, nil, ErrExtractionNotConfigured
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, nil, ErrMeetingTextRequired
	}

	result, err := s.extractor.ExtractFromText(ctx, input.Text)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to extract decision: %w", err)
	}

	if strings.TrimSpace(result.Decision.Title) == "" {
		return nil, nil, ErrNoDecisionExtracted
	}
	if len(result.ActionItems) > constants.MaxExtractedActionItems {
		return nil, nil, ErrTooManyActionItems
	}

	source := input.Source
	if source == "" {
		source = "meeting"
	}

	decision := &models.Decision{
		Title:       result.Decision.Title,
		Description: result.Decision.Description,
		Source:      source,
		Team:        input.Team,
	}
	if err := s.decisionRepo.Create(decision); err != nil {
		return nil, nil, fmt.Errorf("failed to create decision: %w", err)
	}

	items := make([]models.ActionItem, 0, len(result.ActionItems))
	for _, extracted := range result.ActionItems {
		if strings.TrimSpace(extracted.Title) == "" {
			continue
		}

		// A deadline the extractor hallucinated into the past would make
		// the item overdue on arrival; treat it like a missing one.
		now := s.clock.Now()
		dueDate := now.Add(defaultDueOffset)
		if extracted.DueDate != nil && extracted.DueDate.After(now) {
			dueDate = *extracted.DueDate
		}

		item, err := s.actionItems.Create(CreateActionItemInput{
			Title:      extracted.Title,
			Assignee:   extracted.Assignee,
			DueDate:    dueDate,
			Priority:   extracted.Priority,
			DecisionID: &decision.ID,
		})
		if err != nil {
			s.logger.Errorw("failed to create extracted action item",
				"decision_id", decision.ID, "title", extracted.Title, "error", err)
			continue
		}
		items = append(items, *item)
	}

	return decision, items, nil
}

// Get returns a decision by ID
func (s *DecisionService) Get(id uint64) (*models.Decision, error) {
	decision, err := s.decisionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDecisionNotFound
		}
		return nil, fmt.Errorf("failed to find decision: %w", err)
	}
	return decision, nil
}

// List returns decisions, newest first
func (s *DecisionService) List(limit int) ([]models.Decision, error) {
	decisions, err := s.decisionRepo.List(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list decisions: %w", err)
	}
	return decisions, nil
}
