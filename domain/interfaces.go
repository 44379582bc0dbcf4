package domain

import (
	"context"
	"time"
)

// StudentDirectory exposes the external user directory, read-only.
type StudentDirectory interface {
	// FindByAdmissionNumber resolves a student-role account by admission
	// number. Returns ErrStudentNotFound for missing or non-student accounts.
	FindByAdmissionNumber(ctx context.Context, admissionNumber string) (*Student, error)
	// FindByID resolves any account by internal id (verifying agents,
	// notification recipients).
	FindByID(ctx context.Context, id uint) (*Student, error)
}

// FeeLedger exposes the external fee ledger, read-only.
type FeeLedger interface {
	// LatestForStudent returns the most recently created fee record, or
	// ErrNoFeeRecords when the student has none.
	LatestForStudent(ctx context.Context, studentID uint) (*FeeRecord, error)
}

// AttemptRepository persists verification attempts.
type AttemptRepository interface {
	Create(ctx context.Context, entry *AttemptEntry) error
	CountInWindow(ctx context.Context, admissionNumber string, from, to time.Time) (int64, error)
	LastInWindow(ctx context.Context, admissionNumber string, from, to time.Time) (*AttemptEntry, error)
	ListByAdmissionNumber(ctx context.Context, admissionNumber string, limit int) ([]AttemptEntry, error)
}

// ChallengeCodeRepository persists step-up challenge codes.
type ChallengeCodeRepository interface {
	Create(ctx context.Context, code *ChallengeCode) error
	// FindPending returns the unused, unexpired code for a student, or
	// ErrChallengeNotFound.
	FindPending(ctx context.Context, studentID uint, now time.Time) (*ChallengeCode, error)
	// Consume marks the matching unused, unexpired code used. Returns false
	// without mutation when no such code exists; a consumed code can never
	// be consumed again.
	Consume(ctx context.Context, studentID uint, code string, now time.Time) (bool, error)
}

// NotificationRepository persists in-app notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
}

// AttemptLedger records and counts verification attempts per student per
// calendar day.
type AttemptLedger interface {
	CountToday(ctx context.Context, admissionNumber string) (int, error)
	MostRecentToday(ctx context.Context, admissionNumber string) (*AttemptEntry, error)
	Record(ctx context.Context, student *Student, outcome AttemptOutcome, expirySnapshot *time.Time, agentID uint) (*AttemptEntry, error)
	History(ctx context.Context, admissionNumber string, limit int) ([]AttemptEntry, error)
}

// ChallengeIssuer mints and consumes single-use step-up codes.
type ChallengeIssuer interface {
	// GetOrIssuePendingCode reuses the student's pending code when one
	// exists, otherwise mints, persists and dispatches a new one. The bool
	// reports whether a fresh code was issued.
	GetOrIssuePendingCode(ctx context.Context, student *Student) (*ChallengeCode, bool, error)
	// ValidateAndConsume consumes a matching pending code exactly once.
	ValidateAndConsume(ctx context.Context, student *Student, presented string) (bool, error)
}

// VerificationService orchestrates one gate-verification attempt.
type VerificationService interface {
	Verify(ctx context.Context, req VerificationRequest) (*VerificationResult, error)
	History(ctx context.Context, admissionNumber string, limit int) ([]AttemptEntry, error)
}

// NotificationService delivers a message to a recipient's notification feed
// and, when a phone number is known, over SMS.
type NotificationService interface {
	Deliver(ctx context.Context, n *Notification) error
}

// SMSGateway sends a raw SMS message.
type SMSGateway interface {
	SendSMS(to, message string) error
}

// TokenService defines agent token operations.
type TokenService interface {
	GenerateAccessToken(userID uint, role string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// Clock supplies the current time. Injected so "today" is deterministic in
// tests; the day boundary is captured once per request at request start.
type Clock interface {
	Now() time.Time
}

// KeyedLocker scopes mutual exclusion to a single key. Verification holds a
// per-admission-number lock across its threshold check, code issuance and
// attempt write so concurrent attempts cannot both pass as "the second".
type KeyedLocker interface {
	// Acquire blocks until the key lock is held or ctx is done. The returned
	// release function is safe to call once.
	Acquire(ctx context.Context, key string) (release func(), err error)
}
