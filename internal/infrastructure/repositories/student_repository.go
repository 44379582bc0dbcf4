package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Davie-07/KTVC-FINAL-sub001/domain"
)

// StudentRepositoryImpl implements domain.StudentDirectory using GORM. The
// users table is owned by the campus user directory; this repository only
// reads from it.
type StudentRepositoryImpl struct {
	db *gorm.DB
}

// DBStudent represents the database model for the user directory projection.
type DBStudent struct {
	ID              uint      `gorm:"primaryKey"`
	AdmissionNumber string    `gorm:"uniqueIndex;size:64"`
	FirstName       string    `gorm:"size:128"`
	LastName        string    `gorm:"size:128"`
	Phone           string    `gorm:"size:32"`
	Role            string    `gorm:"index;size:32"`
	Course          string    `gorm:"size:255"`
	CourseCode      string    `gorm:"size:64"`
	IsActive        bool      `gorm:"index"`
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

func (DBStudent) TableName() string {
	return "users"
}

// NewStudentRepository creates a new student directory repository.
func NewStudentRepository(db *gorm.DB) domain.StudentDirectory {
	return &StudentRepositoryImpl{db: db}
}

// FindByAdmissionNumber implements domain.StudentDirectory. The role
// constraint keeps staff accounts from resolving at the gate.
func (r *StudentRepositoryImpl) FindByAdmissionNumber(ctx context.Context, admissionNumber string) (*domain.Student, error) {
	var dbStudent DBStudent
	err := r.db.WithContext(ctx).
		Where("admission_number = ? AND role = ?", admissionNumber, "student").
		First(&dbStudent).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbStudent), nil
}

// FindByID implements domain.StudentDirectory.
func (r *StudentRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Student, error) {
	var dbStudent DBStudent
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbStudent).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbStudent), nil
}

func (r *StudentRepositoryImpl) dbToDomain(dbStudent *DBStudent) *domain.Student {
	return &domain.Student{
		ID:              dbStudent.ID,
		AdmissionNumber: dbStudent.AdmissionNumber,
		FirstName:       dbStudent.FirstName,
		LastName:        dbStudent.LastName,
		Phone:           dbStudent.Phone,
		Role:            dbStudent.Role,
		Course:          dbStudent.Course,
		CourseCode:      dbStudent.CourseCode,
		IsActive:        dbStudent.IsActive,
	}
}
