package repository

import (
	"github.com/harusato/meeting-decisions-api/internal/models"
	"gorm.io/gorm"
)

// GormRecordingRepository is a GORM implementation of RecordingRepository
type GormRecordingRepository struct {
	db *gorm.DB
}

// NewRecordingRepository creates a new RecordingRepository
func NewRecordingRepository(db *gorm.DB) RecordingRepository {
	return &GormRecordingRepository{db: db}
}

// Create stores a new recording
func (r *GormRecordingRepository) Create(recording *models.Recording) error {
	return r.db.Create(recording).Error
}

// FindByID finds a recording by its external ID
func (r *GormRecordingRepository) FindByID(id string) (*models.Recording, error) {
	var recording models.Recording
	if err := r.db.Where("id = ?", id).First(&recording).Error; err != nil {
		return nil, err
	}
	return &recording, nil
}

// List retrieves recordings, newest first. Rows without a creation time sort
// as oldest.
func (r *GormRecordingRepository) List(limit int) ([]models.Recording, error) {
	var recordings []models.Recording
	query := r.db.
		Order("CASE WHEN created_at IS NULL THEN 1 ELSE 0 END, created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&recordings).Error; err != nil {
		return nil, err
	}
	return recordings, nil
}

// Update persists changes to a recording
func (r *GormRecordingRepository) Update(recording *models.Recording) error {
	return r.db.Save(recording).Error
}
