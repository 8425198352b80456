package repository

import (
	"time"

	"github.com/harusato/meeting-decisions-api/internal/models"
	"gorm.io/gorm"
)

// GormActionItemRepository is a GORM implementation of ActionItemRepository
type GormActionItemRepository struct {
	db *gorm.DB
}

// NewActionItemRepository creates a new ActionItemRepository
func NewActionItemRepository(db *gorm.DB) ActionItemRepository {
	return &GormActionItemRepository{db: db}
}

// Create creates a new action item
func (r *GormActionItemRepository) Create(item *models.ActionItem) error {
	return r.db.Create(item).Error
}

// FindByID finds an action item by ID
func (r *GormActionItemRepository) FindByID(id uint64) (*models.ActionItem, error) {
	var item models.ActionItem
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List retrieves action items matching the filter in ascending due-date order
func (r *GormActionItemRepository) List(filter ActionItemFilter) ([]models.ActionItem, error) {
	var items []models.ActionItem

	query := r.db.Model(&models.ActionItem{})
	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}
	if filter.DecisionID != nil {
		query = query.Where("decision_id = ?", *filter.DecisionID)
	}

	query = query.Order("due_date ASC, id ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update persists changes to an action item
func (r *GormActionItemRepository) Update(item *models.ActionItem) error {
	return r.db.Save(item).Error
}

// ListOverdue returns incomplete items due strictly before now. An item due
// exactly now is not overdue.
func (r *GormActionItemRepository) ListOverdue(now time.Time) ([]models.ActionItem, error) {
	var items []models.ActionItem
	err := r.db.
		Where("completed = ? AND due_date < ?", false, now).
		Order("due_date ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// CountByCompletion counts items by completion state
func (r *GormActionItemRepository) CountByCompletion(completed bool) (int64, error) {
	var count int64
	err := r.db.Model(&models.ActionItem{}).
		Where("completed = ?", completed).
		Count(&count).Error
	return count, err
}
