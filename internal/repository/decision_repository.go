package repository

import (
	"github.com/harusato/meeting-decisions-api/internal/models"
	"gorm.io/gorm"
)

// GormDecisionRepository is a GORM implementation of DecisionRepository
type GormDecisionRepository struct {
	db *gorm.DB
}

// NewDecisionRepository creates a new DecisionRepository
func NewDecisionRepository(db *gorm.DB) DecisionRepository {
	return &GormDecisionRepository{db: db}
}

// Create creates a new decision
func (r *GormDecisionRepository) Create(decision *models.Decision) error {
	return r.db.Create(decision).Error
}

// FindByID finds a decision by ID
func (r *GormDecisionRepository) FindByID(id uint64) (*models.Decision, error) {
	var decision models.Decision
	if err := r.db.First(&decision, id).Error; err != nil {
		return nil, err
	}
	return &decision, nil
}

// List retrieves decisions, newest first
func (r *GormDecisionRepository) List(limit int) ([]models.Decision, error) {
	var decisions []models.Decision
	query := r.db.Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&decisions).Error; err != nil {
		return nil, err
	}
	return decisions, nil
}

// Count returns the total number of decisions
func (r *GormDecisionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Decision{}).Count(&count).Error
	return count, err
}
