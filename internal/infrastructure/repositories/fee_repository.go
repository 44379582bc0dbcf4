package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Davie-07/KTVC-FINAL-sub001/domain"
)

// FeeRepositoryImpl implements domain.FeeLedger using GORM. The fees table
// is owned by the finance collaborator; this repository only reads from it.
type FeeRepositoryImpl struct {
	db *gorm.DB
}

// DBFeeRecord represents the database model for a fee record.
type DBFeeRecord struct {
	ID             uint       `gorm:"primaryKey"`
	StudentID      uint       `gorm:"index"`
	Balance        float64
	GatepassExpiry *time.Time `gorm:"column:gatepass_expiry_date"`
	CreatedAt      time.Time  `gorm:"index"`
}

func (DBFeeRecord) TableName() string {
	return "fees"
}

// NewFeeRepository creates a new fee ledger repository.
func NewFeeRepository(db *gorm.DB) domain.FeeLedger {
	return &FeeRepositoryImpl{db: db}
}

// LatestForStudent implements domain.FeeLedger. The most recently created
// record is authoritative.
func (r *FeeRepositoryImpl) LatestForStudent(ctx context.Context, studentID uint) (*domain.FeeRecord, error) {
	var dbRecord DBFeeRecord
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		First(&dbRecord).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNoFeeRecords
		}
		return nil, err
	}
	return &domain.FeeRecord{
		ID:             dbRecord.ID,
		StudentID:      dbRecord.StudentID,
		Balance:        dbRecord.Balance,
		GatepassExpiry: dbRecord.GatepassExpiry,
		CreatedAt:      dbRecord.CreatedAt,
	}, nil
}
