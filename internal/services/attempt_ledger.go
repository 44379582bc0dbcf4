package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Davie-07/KTVC-FINAL-sub001/domain"
)

// AttemptLedgerImpl implements domain.AttemptLedger over the attempt
// repository. It is append-only: nothing here mutates existing entries.
type AttemptLedgerImpl struct {
	repo  domain.AttemptRepository
	clock domain.Clock
}

// NewAttemptLedger creates a new attempt ledger.
func NewAttemptLedger(repo domain.AttemptRepository, clock domain.Clock) domain.AttemptLedger {
	return &AttemptLedgerImpl{repo: repo, clock: clock}
}

// CountToday implements domain.AttemptLedger. The day boundary is captured
// from the clock at call time; a request straddling midnight keeps the
// boundary it started with.
func (l *AttemptLedgerImpl) CountToday(ctx context.Context, admissionNumber string) (int, error) {
	from, to := DayBounds(l.clock.Now())
	count, err := l.repo.CountInWindow(ctx, admissionNumber, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to count attempts: %w", err)
	}
	return int(count), nil
}

// MostRecentToday implements domain.AttemptLedger. Returns nil when the
// student has no attempt today.
func (l *AttemptLedgerImpl) MostRecentToday(ctx context.Context, admissionNumber string) (*domain.AttemptEntry, error) {
	from, to := DayBounds(l.clock.Now())
	return l.repo.LastInWindow(ctx, admissionNumber, from, to)
}

// Record implements domain.AttemptLedger, appending one immutable entry.
func (l *AttemptLedgerImpl) Record(ctx context.Context, student *domain.Student, outcome domain.AttemptOutcome, expirySnapshot *time.Time, agentID uint) (*domain.AttemptEntry, error) {
	now := l.clock.Now()
	entry := &domain.AttemptEntry{
		StudentID:       student.ID,
		AdmissionNumber: student.AdmissionNumber,
		VerifiedAt:      now,
		VerifiedTime:    now.Format("15:04"),
		Outcome:         outcome,
		ExpirySnapshot:  expirySnapshot,
		AgentID:         agentID,
		ReceiptID:       uuid.NewString(),
	}
	if err := l.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}
	return entry, nil
}

// History implements domain.AttemptLedger for audit views.
func (l *AttemptLedgerImpl) History(ctx context.Context, admissionNumber string, limit int) ([]domain.AttemptEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	return l.repo.ListByAdmissionNumber(ctx, admissionNumber, limit)
}
