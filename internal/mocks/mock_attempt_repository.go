package mocks

import (
	"context"
	"time"

	"github.com/Davie-07/KTVC-FINAL-sub001/domain"
)

// MockAttemptRepository implements domain.AttemptRepository for testing
type MockAttemptRepository struct {
	CreateFunc                func(ctx context.Context, entry *domain.AttemptEntry) error
	CountInWindowFunc         func(ctx context.Context, admissionNumber string, from, to time.Time) (int64, error)
	LastInWindowFunc          func(ctx context.Context, admissionNumber string, from, to time.Time) (*domain.AttemptEntry, error)
	ListByAdmissionNumberFunc func(ctx context.Context, admissionNumber string, limit int) ([]domain.AttemptEntry, error)
}

// NewMockAttemptRepository creates a new MockAttemptRepository with default behaviors
func NewMockAttemptRepository() *MockAttemptRepository {
	return &MockAttemptRepository{}
}

// Create appends a new attempt entry
func (m *MockAttemptRepository) Create(ctx context.Context, entry *domain.AttemptEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	// Default behavior: success
	return nil
}

// CountInWindow counts attempts in the window
func (m *MockAttemptRepository) CountInWindow(ctx context.Context, admissionNumber string, from, to time.Time) (int64, error) {
	if m.CountInWindowFunc != nil {
		return m.CountInWindowFunc(ctx, admissionNumber, from, to)
	}
	// Default behavior: no attempts
	return 0, nil
}

// LastInWindow returns the most recent attempt in the window
func (m *MockAttemptRepository) LastInWindow(ctx context.Context, admissionNumber string, from, to time.Time) (*domain.AttemptEntry, error) {
	if m.LastInWindowFunc != nil {
		return m.LastInWindowFunc(ctx, admissionNumber, from, to)
	}
	// Default behavior: none
	return nil, nil
}

// ListByAdmissionNumber lists attempts for audit views
func (m *MockAttemptRepository) ListByAdmissionNumber(ctx context.Context, admissionNumber string, limit int) ([]domain.AttemptEntry, error) {
	if m.ListByAdmissionNumberFunc != nil {
		return m.ListByAdmissionNumberFunc(ctx, admissionNumber, limit)
	}
	// Default behavior: empty
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.AttemptRepository = (*MockAttemptRepository)(nil)
