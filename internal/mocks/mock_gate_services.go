package mocks

import (
	"context"
	"time"

	"github.com/Davie-07/KTVC-FINAL-sub001/domain"
)

// MockAttemptLedger implements domain.AttemptLedger for testing
type MockAttemptLedger struct {
	CountTodayFunc      func(ctx context.Context, admissionNumber string) (int, error)
	MostRecentTodayFunc func(ctx context.Context, admissionNumber string) (*domain.AttemptEntry, error)
	RecordFunc          func(ctx context.Context, student *domain.Student, outcome domain.AttemptOutcome, expirySnapshot *time.Time, agentID uint) (*domain.AttemptEntry, error)
	HistoryFunc         func(ctx context.Context, admissionNumber string, limit int) ([]domain.AttemptEntry, error)

	Recorded []domain.AttemptOutcome
}

// NewMockAttemptLedger creates a new MockAttemptLedger with default behaviors
func NewMockAttemptLedger() *MockAttemptLedger {
	return &MockAttemptLedger{}
}

// CountToday counts attempts today
func (m *MockAttemptLedger) CountToday(ctx context.Context, admissionNumber string) (int, error) {
	if m.CountTodayFunc != nil {
		return m.CountTodayFunc(ctx, admissionNumber)
	}
	// Default behavior: zero attempts
	return 0, nil
}

// MostRecentToday returns today's latest attempt
func (m *MockAttemptLedger) MostRecentToday(ctx context.Context, admissionNumber string) (*domain.AttemptEntry, error) {
	if m.MostRecentTodayFunc != nil {
		return m.MostRecentTodayFunc(ctx, admissionNumber)
	}
	// Default behavior: none
	return nil, nil
}

// Record appends an attempt entry
func (m *MockAttemptLedger) Record(ctx context.Context, student *domain.Student, outcome domain.AttemptOutcome, expirySnapshot *time.Time, agentID uint) (*domain.AttemptEntry, error) {
	m.Recorded = append(m.Recorded, outcome)
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, student, outcome, expirySnapshot, agentID)
	}
	// Default behavior: echo an entry back
	return &domain.AttemptEntry{
		StudentID:       student.ID,
		AdmissionNumber: student.AdmissionNumber,
		Outcome:         outcome,
		ExpirySnapshot:  expirySnapshot,
		AgentID:         agentID,
		VerifiedTime:    "10:00",
	}, nil
}

// History lists attempts for audit views
func (m *MockAttemptLedger) History(ctx context.Context, admissionNumber string, limit int) ([]domain.AttemptEntry, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, admissionNumber, limit)
	}
	// Default behavior: empty
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.AttemptLedger = (*MockAttemptLedger)(nil)

// MockChallengeIssuer implements domain.ChallengeIssuer for testing
type MockChallengeIssuer struct {
	GetOrIssuePendingCodeFunc func(ctx context.Context, student *domain.Student) (*domain.ChallengeCode, bool, error)
	ValidateAndConsumeFunc    func(ctx context.Context, student *domain.Student, presented string) (bool, error)

	IssueCalls   int
	ConsumeCalls int
}

// NewMockChallengeIssuer creates a new MockChallengeIssuer with default behaviors
func NewMockChallengeIssuer() *MockChallengeIssuer {
	return &MockChallengeIssuer{}
}

// GetOrIssuePendingCode mints or reuses a pending code
func (m *MockChallengeIssuer) GetOrIssuePendingCode(ctx context.Context, student *domain.Student) (*domain.ChallengeCode, bool, error) {
	m.IssueCalls++
	if m.GetOrIssuePendingCodeFunc != nil {
		return m.GetOrIssuePendingCodeFunc(ctx, student)
	}
	// Default behavior: freshly issued fixed code
	return &domain.ChallengeCode{StudentID: student.ID, Code: "123456"}, true, nil
}

// ValidateAndConsume consumes a pending code once
func (m *MockChallengeIssuer) ValidateAndConsume(ctx context.Context, student *domain.Student, presented string) (bool, error) {
	m.ConsumeCalls++
	if m.ValidateAndConsumeFunc != nil {
		return m.ValidateAndConsumeFunc(ctx, student, presented)
	}
	// Default behavior: rejected
	return false, nil
}

// Compile-time interface compliance verification
var _ domain.ChallengeIssuer = (*MockChallengeIssuer)(nil)

// MockVerificationService implements domain.VerificationService for testing
type MockVerificationService struct {
	VerifyFunc  func(ctx context.Context, req domain.VerificationRequest) (*domain.VerificationResult, error)
	HistoryFunc func(ctx context.Context, admissionNumber string, limit int) ([]domain.AttemptEntry, error)
}

// NewMockVerificationService creates a new MockVerificationService with default behaviors
func NewMockVerificationService() *MockVerificationService {
	return &MockVerificationService{}
}

// Verify runs one gate verification attempt
func (m *MockVerificationService) Verify(ctx context.Context, req domain.VerificationRequest) (*domain.VerificationResult, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, req)
	}
	// Default behavior: student not found
	return nil, domain.ErrStudentNotFound
}

// History lists attempts for audit views
func (m *MockVerificationService) History(ctx context.Context, admissionNumber string, limit int) ([]domain.AttemptEntry, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, admissionNumber, limit)
	}
	// Default behavior: empty
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.VerificationService = (*MockVerificationService)(nil)

// MockClock implements domain.Clock for testing
type MockClock struct {
	NowFunc func() time.Time
}

// NewMockClock creates a clock frozen at the given instant
func NewMockClock(at time.Time) *MockClock {
	return &MockClock{NowFunc: func() time.Time { return at }}
}

// Now returns the configured instant
func (m *MockClock) Now() time.Time {
	if m.NowFunc != nil {
		return m.NowFunc()
	}
	return time.Time{}
}

// Compile-time interface compliance verification
var _ domain.Clock = (*MockClock)(nil)

// MockKeyedLocker implements domain.KeyedLocker for testing
type MockKeyedLocker struct {
	AcquireFunc  func(ctx context.Context, key string) (func(), error)
	AcquireCalls []string
	Releases     int
}

// NewMockKeyedLocker creates a new MockKeyedLocker with default behaviors
func NewMockKeyedLocker() *MockKeyedLocker {
	return &MockKeyedLocker{}
}

// Acquire takes the per-key lock
func (m *MockKeyedLocker) Acquire(ctx context.Context, key string) (func(), error) {
	m.AcquireCalls = append(m.AcquireCalls, key)
	if m.AcquireFunc != nil {
		return m.AcquireFunc(ctx, key)
	}
	// Default behavior: lock granted immediately
	return func() { m.Releases++ }, nil
}

// Compile-time interface compliance verification
var _ domain.KeyedLocker = (*MockKeyedLocker)(nil)
