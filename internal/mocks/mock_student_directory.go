package mocks

import (
	"context"

	"github.com/Davie-07/KTVC-FINAL-sub001/domain"
)

// MockStudentDirectory implements domain.StudentDirectory for testing
type MockStudentDirectory struct {
	FindByAdmissionNumberFunc func(ctx context.Context, admissionNumber string) (*domain.Student, error)
	FindByIDFunc              func(ctx context.Context, id uint) (*domain.Student, error)
}

// NewMockStudentDirectory creates a new MockStudentDirectory with default behaviors
func NewMockStudentDirectory() *MockStudentDirectory {
	return &MockStudentDirectory{}
}

// FindByAdmissionNumber resolves a student by admission number
func (m *MockStudentDirectory) FindByAdmissionNumber(ctx context.Context, admissionNumber string) (*domain.Student, error) {
	if m.FindByAdmissionNumberFunc != nil {
		return m.FindByAdmissionNumberFunc(ctx, admissionNumber)
	}
	// Default behavior: not found
	return nil, domain.ErrStudentNotFound
}

// FindByID resolves any account by internal id
func (m *MockStudentDirectory) FindByID(ctx context.Context, id uint) (*domain.Student, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrStudentNotFound
}

// Compile-time interface compliance verification
var _ domain.StudentDirectory = (*MockStudentDirectory)(nil)
