package domain

import (
	"strings"
	"time"
)

// Student is a read-only projection of the user directory. The gate core
// never creates or mutates students.
type Student struct {
	ID              uint
	AdmissionNumber string
	FirstName       string
	LastName        string
	Phone           string
	Role            string
	Course          string
	CourseCode      string
	IsActive        bool
}

// FullName returns the student's display name.
func (s *Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// MatchesCourse reports whether the asserted course matches the student's
// enrolled course name or code, case-insensitively.
func (s *Student) MatchesCourse(course string) bool {
	course = strings.TrimSpace(course)
	return strings.EqualFold(course, s.Course) || strings.EqualFold(course, s.CourseCode)
}

// FeeRecord is a read-only projection of the fee ledger. The most recently
// created record for a student is authoritative.
type FeeRecord struct {
	ID             uint
	StudentID      uint
	Balance        float64
	GatepassExpiry *time.Time
	CreatedAt      time.Time
}

// AttemptOutcome classifies a completed verification attempt.
type AttemptOutcome string

const (
	OutcomeValid   AttemptOutcome = "Valid"
	OutcomeExpired AttemptOutcome = "Expired"
	// OutcomeDenied is reserved for blocked/revoked accounts. No code path
	// assigns it yet; adopting systems define the trigger.
	OutcomeDenied AttemptOutcome = "Denied"
)

// AttemptEntry is one completed gate-verification decision. Entries are
// append-only: created exactly once, never mutated or deleted. The admission
// number is denormalized so the hot daily-count query needs no join.
type AttemptEntry struct {
	ID              uint
	StudentID       uint
	AdmissionNumber string
	VerifiedAt      time.Time
	VerifiedTime    string // "HH:MM", shown in "previously verified at" warnings
	Outcome         AttemptOutcome
	ExpirySnapshot  *time.Time
	AgentID         uint
	ReceiptID       string
	CreatedAt       time.Time
}

// ChallengeCode is a single-use step-up secret tied to a student and a day.
// At most one unused, unexpired code may exist per student; expired codes are
// inert but retained for audit.
type ChallengeCode struct {
	ID              uint
	StudentID       uint
	AdmissionNumber string
	Code            string
	IssuedAt        time.Time
	ExpiresAt       time.Time
	Used            bool
	UsedAt          *time.Time
}

// Pending reports whether the code is still consumable at the given instant.
func (c *ChallengeCode) Pending(now time.Time) bool {
	return !c.Used && now.Before(c.ExpiresAt)
}

// Notification is a persisted in-app message, optionally mirrored over SMS.
// Delivery is fire-and-forget: a failed dispatch never blocks verification.
type Notification struct {
	ID          uint
	RecipientID uint
	SenderID    uint
	Type        string
	Title       string
	Message     string
	Priority    string
	Read        bool
	CreatedAt   time.Time
}

// VerificationRequest carries one gate-verification attempt.
type VerificationRequest struct {
	AdmissionNumber string
	Course          string
	Code            string
	AgentID         uint
}

// VerificationResult is the outcome of a verification attempt. When
// RequiresCode is set the attempt was intercepted by the step-up challenge
// and only CodeSent and Message are meaningful alongside it.
type VerificationResult struct {
	RequiresCode bool
	CodeSent     bool

	Success            bool
	IsExpired          bool
	Student            *Student
	ExpiryDate         *time.Time
	VerificationTime   string
	Status             AttemptOutcome
	Balance            float64
	VerificationsToday int
	PreviousTime       string
	Warning            string
	Message            string
}

// TokenClaims represents verified JWT claims for a gate agent.
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
