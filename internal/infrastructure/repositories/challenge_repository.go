package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Davie-07/KTVC-FINAL-sub001/domain"
)

// ChallengeRepositoryImpl implements domain.ChallengeCodeRepository using
// GORM. Used and expired codes are kept for audit, never deleted.
type ChallengeRepositoryImpl struct {
	db *gorm.DB
}

// DBChallengeCode represents the database model for a step-up code.
type DBChallengeCode struct {
	ID              uint      `gorm:"primaryKey"`
	StudentID       uint      `gorm:"index"`
	AdmissionNumber string    `gorm:"index;size:64"`
	Code            string    `gorm:"size:6"`
	IssuedAt        time.Time
	ExpiresAt       time.Time `gorm:"index"`
	Used            bool      `gorm:"index"`
	UsedAt          *time.Time
	CreatedAt       time.Time
}

func (DBChallengeCode) TableName() string {
	return "gate_challenge_codes"
}

// NewChallengeRepository creates a new challenge code repository.
func NewChallengeRepository(db *gorm.DB) domain.ChallengeCodeRepository {
	return &ChallengeRepositoryImpl{db: db}
}

// Create implements domain.ChallengeCodeRepository.
func (r *ChallengeRepositoryImpl) Create(ctx context.Context, code *domain.ChallengeCode) error {
	dbCode := r.domainToDB(code)
	if err := r.db.WithContext(ctx).Create(dbCode).Error; err != nil {
		return err
	}
	code.ID = dbCode.ID
	return nil
}

// FindPending implements domain.ChallengeCodeRepository.
func (r *ChallengeRepositoryImpl) FindPending(ctx context.Context, studentID uint, now time.Time) (*domain.ChallengeCode, error) {
	var dbCode DBChallengeCode
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND used = ? AND expires_at > ?", studentID, false, now).
		Order("created_at DESC").
		First(&dbCode).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrChallengeNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbCode), nil
}

// Consume implements domain.ChallengeCodeRepository. The conditional update
// on used=false is the compare-and-swap that makes consumption happen at
// most once even when the same code is presented concurrently.
func (r *ChallengeRepositoryImpl) Consume(ctx context.Context, studentID uint, code string, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&DBChallengeCode{}).
		Where("student_id = ? AND code = ? AND used = ? AND expires_at > ?", studentID, code, false, now).
		Updates(map[string]interface{}{"used": true, "used_at": now})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ChallengeRepositoryImpl) domainToDB(code *domain.ChallengeCode) *DBChallengeCode {
	return &DBChallengeCode{
		StudentID:       code.StudentID,
		AdmissionNumber: code.AdmissionNumber,
		Code:            code.Code,
		IssuedAt:        code.IssuedAt,
		ExpiresAt:       code.ExpiresAt,
		Used:            code.Used,
		UsedAt:          code.UsedAt,
	}
}

func (r *ChallengeRepositoryImpl) dbToDomain(dbCode *DBChallengeCode) *domain.ChallengeCode {
	return &domain.ChallengeCode{
		ID:              dbCode.ID,
		StudentID:       dbCode.StudentID,
		AdmissionNumber: dbCode.AdmissionNumber,
		Code:            dbCode.Code,
		IssuedAt:        dbCode.IssuedAt,
		ExpiresAt:       dbCode.ExpiresAt,
		Used:            dbCode.Used,
		UsedAt:          dbCode.UsedAt,
	}
}
