package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Davie-07/KTVC-FINAL-sub001/domain"
)

// AttemptRepositoryImpl implements domain.AttemptRepository using GORM.
// Attempt rows are append-only; there is deliberately no update or delete.
type AttemptRepositoryImpl struct {
	db *gorm.DB
}

// DBAttemptEntry represents the database model for a verification attempt.
// The admission number is denormalized so the daily-count query needs no
// join against the users table.
type DBAttemptEntry struct {
	ID              uint   `gorm:"primaryKey"`
	StudentID       uint   `gorm:"index"`
	AdmissionNumber string `gorm:"index;size:64"`
	VerifiedAt      time.Time `gorm:"index"`
	VerifiedTime    string    `gorm:"size:8"`
	Outcome         string    `gorm:"size:16"`
	ExpirySnapshot  *time.Time
	AgentID         uint
	ReceiptID       string    `gorm:"uniqueIndex;size:36"`
	CreatedAt       time.Time `gorm:"index"`
}

func (DBAttemptEntry) TableName() string {
	return "gate_attempts"
}

// NewAttemptRepository creates a new attempt repository.
func NewAttemptRepository(db *gorm.DB) domain.AttemptRepository {
	return &AttemptRepositoryImpl{db: db}
}

// Create implements domain.AttemptRepository.
func (r *AttemptRepositoryImpl) Create(ctx context.Context, entry *domain.AttemptEntry) error {
	dbEntry := r.domainToDB(entry)
	if err := r.db.WithContext(ctx).Create(dbEntry).Error; err != nil {
		return err
	}
	entry.ID = dbEntry.ID
	entry.CreatedAt = dbEntry.CreatedAt
	return nil
}

// CountInWindow implements domain.AttemptRepository. Bounds are inclusive.
func (r *AttemptRepositoryImpl) CountInWindow(ctx context.Context, admissionNumber string, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBAttemptEntry{}).
		Where("admission_number = ? AND verified_at BETWEEN ? AND ?", admissionNumber, from, to).
		Count(&count).Error
	return count, err
}

// LastInWindow implements domain.AttemptRepository. Timestamp ties are broken
// by creation order, earliest first.
func (r *AttemptRepositoryImpl) LastInWindow(ctx context.Context, admissionNumber string, from, to time.Time) (*domain.AttemptEntry, error) {
	var dbEntry DBAttemptEntry
	err := r.db.WithContext(ctx).
		Where("admission_number = ? AND verified_at BETWEEN ? AND ?", admissionNumber, from, to).
		Order("verified_at DESC, id ASC").
		First(&dbEntry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.dbToDomain(&dbEntry), nil
}

// ListByAdmissionNumber implements domain.AttemptRepository, most recent
// first, for history and audit views.
func (r *AttemptRepositoryImpl) ListByAdmissionNumber(ctx context.Context, admissionNumber string, limit int) ([]domain.AttemptEntry, error) {
	var dbEntries []DBAttemptEntry
	err := r.db.WithContext(ctx).
		Where("admission_number = ?", admissionNumber).
		Order("verified_at DESC").
		Limit(limit).
		Find(&dbEntries).Error
	if err != nil {
		return nil, err
	}

	entries := make([]domain.AttemptEntry, 0, len(dbEntries))
	for i := range dbEntries {
		entries = append(entries, *r.dbToDomain(&dbEntries[i]))
	}
	return entries, nil
}

func (r *AttemptRepositoryImpl) domainToDB(entry *domain.AttemptEntry) *DBAttemptEntry {
	return &DBAttemptEntry{
		StudentID:       entry.StudentID,
		AdmissionNumber: entry.AdmissionNumber,
		VerifiedAt:      entry.VerifiedAt,
		VerifiedTime:    entry.VerifiedTime,
		Outcome:         string(entry.Outcome),
		ExpirySnapshot:  entry.ExpirySnapshot,
		AgentID:         entry.AgentID,
		ReceiptID:       entry.ReceiptID,
	}
}

func (r *AttemptRepositoryImpl) dbToDomain(dbEntry *DBAttemptEntry) *domain.AttemptEntry {
	return &domain.AttemptEntry{
		ID:              dbEntry.ID,
		StudentID:       dbEntry.StudentID,
		AdmissionNumber: dbEntry.AdmissionNumber,
		VerifiedAt:      dbEntry.VerifiedAt,
		VerifiedTime:    dbEntry.VerifiedTime,
		Outcome:         domain.AttemptOutcome(dbEntry.Outcome),
		ExpirySnapshot:  dbEntry.ExpirySnapshot,
		AgentID:         dbEntry.AgentID,
		ReceiptID:       dbEntry.ReceiptID,
		CreatedAt:       dbEntry.CreatedAt,
	}
}
