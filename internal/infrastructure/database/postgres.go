package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Davie-07/KTVC-FINAL-sub001/internal/infrastructure/repositories"
)

// Open creates a new database connection with production-ready settings.
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	return gorm.Open(postgres.Open(dsn), config)
}

// AutoMigrate creates the gate-verification tables. Student and fee tables
// are owned by the directory and finance collaborators; they are migrated
// here too so a standalone deployment is runnable.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&repositories.DBStudent{},
		&repositories.DBFeeRecord{},
		&repositories.DBAttemptEntry{},
		&repositories.DBChallengeCode{},
		&repositories.DBNotification{},
	); err != nil {
		return fmt.Errorf("failed to migrate gate tables: %w", err)
	}
	return nil
}
