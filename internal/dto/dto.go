package dto

import (
	"time"

	"github.com/harusato/meeting-decisions-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// DecisionDTO represents a decision in API responses
type DecisionDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	Team        *string   `json:"team"`
	CreatedAt   time.Time `json:"created_at"`
}

// ActionItemDTO represents an action item in API responses
type ActionItemDTO struct {
	ID          uint64     `json:"id"`
	Title       string     `json:"title"`
	DecisionID  *uint64    `json:"decision_id"`
	Assignee    string     `json:"assignee"`
	DueDate     time.Time  `json:"due_date"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	Priority    string     `json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ExtractionResponse is the result of the meeting extraction endpoint
type ExtractionResponse struct {
	Decision    DecisionDTO     `json:"decision"`
	ActionItems []ActionItemDTO `json:"action_items"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}

// ToDecisionDTO converts a Decision model to DecisionDTO
func ToDecisionDTO(decision models.Decision) DecisionDTO {
	return DecisionDTO{
		ID:          decision.ID,
		Title:       decision.Title,
		Description: decision.Description,
		Source:      decision.Source,
		Team:        decision.Team,
		CreatedAt:   decision.CreatedAt,
	}
}

// ToActionItemDTO converts an ActionItem model to ActionItemDTO
func ToActionItemDTO(item models.ActionItem) ActionItemDTO {
	return ActionItemDTO{
		ID:          item.ID,
		Title:       item.Title,
		DecisionID:  item.DecisionID,
		Assignee:    item.Assignee,
		DueDate:     item.DueDate,
		Completed:   item.Completed,
		CompletedAt: item.CompletedAt,
		Priority:    item.Priority,
		CreatedAt:   item.CreatedAt,
	}
}

// ToExtractionResponse converts an extraction result to its response shape
func ToExtractionResponse(decision models.Decision, items []models.ActionItem) ExtractionResponse {
	itemDTOs := make([]ActionItemDTO, len(items))
	for i, item := range items {
		itemDTOs[i] = ToActionItemDTO(item)
	}
	return ExtractionResponse{
		Decision:    ToDecisionDTO(decision),
		ActionItems: itemDTOs,
	}
}
