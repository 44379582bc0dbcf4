package mocks

import (
	"context"
	"time"

	"github.com/Davie-07/KTVC-FINAL-sub001/domain"
)

// MockChallengeRepository implements domain.ChallengeCodeRepository for testing
type MockChallengeRepository struct {
	CreateFunc      func(ctx context.Context, code *domain.ChallengeCode) error
	FindPendingFunc func(ctx context.Context, studentID uint, now time.Time) (*domain.ChallengeCode, error)
	ConsumeFunc     func(ctx context.Context, studentID uint, code string, now time.Time) (bool, error)
}

// NewMockChallengeRepository creates a new MockChallengeRepository with default behaviors
func NewMockChallengeRepository() *MockChallengeRepository {
	return &MockChallengeRepository{}
}

// Create stores a new challenge code
func (m *MockChallengeRepository) Create(ctx context.Context, code *domain.ChallengeCode) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, code)
	}
	// Default behavior: success
	return nil
}

// FindPending returns the unused, unexpired code for a student
func (m *MockChallengeRepository) FindPending(ctx context.Context, studentID uint, now time.Time) (*domain.ChallengeCode, error) {
	if m.FindPendingFunc != nil {
		return m.FindPendingFunc(ctx, studentID, now)
	}
	// Default behavior: none pending
	return nil, domain.ErrChallengeNotFound
}

// Consume marks the matching pending code used
func (m *MockChallengeRepository) Consume(ctx context.Context, studentID uint, code string, now time.Time) (bool, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, studentID, code, now)
	}
	// Default behavior: nothing consumed
	return false, nil
}

// Compile-time interface compliance verification
var _ domain.ChallengeCodeRepository = (*MockChallengeRepository)(nil)
