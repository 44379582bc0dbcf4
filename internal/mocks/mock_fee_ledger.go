package mocks

import (
	"context"

	"github.com/Davie-07/KTVC-FINAL-sub001/domain"
)

// MockFeeLedger implements domain.FeeLedger for testing
type MockFeeLedger struct {
	LatestForStudentFunc func(ctx context.Context, studentID uint) (*domain.FeeRecord, error)
}

// NewMockFeeLedger creates a new MockFeeLedger with default behaviors
func NewMockFeeLedger() *MockFeeLedger {
	return &MockFeeLedger{}
}

// LatestForStudent returns the most recently created fee record
func (m *MockFeeLedger) LatestForStudent(ctx context.Context, studentID uint) (*domain.FeeRecord, error) {
	if m.LatestForStudentFunc != nil {
		return m.LatestForStudentFunc(ctx, studentID)
	}
	// Default behavior: no records
	return nil, domain.ErrNoFeeRecords
}

// Compile-time interface compliance verification
var _ domain.FeeLedger = (*MockFeeLedger)(nil)
