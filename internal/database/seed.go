package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/harusato/meeting-decisions-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedDefaultUser creates the demo dashboard user when it does not exist.
// Idempotent: a second start against the same database is a no-op.
func SeedDefaultUser(db *gorm.DB, username, password string) error {
	var existing models.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check seed user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashed),
	}
	if err := db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create seed user: %w", err)
	}

	log.Printf("Seeded default user %q", username)
	return nil
}
