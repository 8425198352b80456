package services

import (
	"fmt"

	"github.com/harusato/meeting-decisions-api/internal/repository"
)

// Stats is the dashboard summary, recomputed from the store on every call.
type Stats struct {
	PendingCount   int64 `json:"pending_count"`
	CompletedCount int64 `json:"completed_count"`
	DecisionsCount int64 `json:"decisions_count"`
	OverdueCount   int64 `json:"overdue_count"`
}

// StatsService produces derived metrics over the store. It is stateless and
// has no side effects.
type StatsService struct {
	itemRepo     repository.ActionItemRepository
	decisionRepo repository.DecisionRepository
	clock        Clock
}

// NewStatsService creates a new StatsService
func NewStatsService(itemRepo repository.ActionItemRepository, decisionRepo repository.DecisionRepository, clock Clock) *StatsService {
	return &StatsService{
		itemRepo:     itemRepo,
		decisionRepo: decisionRepo,
		clock:        clock,
	}
}

// Stats computes the current dashboard counts
func (s *StatsService) Stats() (*Stats, error) {
	pending, err := s.itemRepo.CountByCompletion(false)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending items: %w", err)
	}

	completed, err := s.itemRepo.CountByCompletion(true)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed items: %w", err)
	}

	decisions, err := s.decisionRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count decisions: %w", err)
	}

	overdue, err := s.itemRepo.ListOverdue(s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue items: %w", err)
	}

	return &Stats{
		PendingCount:   pending,
		CompletedCount: completed,
		DecisionsCount: decisions,
		OverdueCount:   int64(len(overdue)),
	}, nil
}
