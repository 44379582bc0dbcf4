package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"

	"github.com/Davie-07/KTVC-FINAL-sub001/domain"
	"github.com/Davie-07/KTVC-FINAL-sub001/internal/metrics"
)

// ChallengeServiceImpl implements domain.ChallengeIssuer. Codes live in the
// challenge table rather than a TTL cache because expired and consumed codes
// are retained for audit.
type ChallengeServiceImpl struct {
	repo            domain.ChallengeCodeRepository
	notificationSvc domain.NotificationService
	clock           domain.Clock
}

// NewChallengeService creates a new challenge code issuer.
func NewChallengeService(repo domain.ChallengeCodeRepository, notificationSvc domain.NotificationService, clock domain.Clock) domain.ChallengeIssuer {
	return &ChallengeServiceImpl{
		repo:            repo,
		notificationSvc: notificationSvc,
		clock:           clock,
	}
}

// GetOrIssuePendingCode implements domain.ChallengeIssuer. A pending code is
// returned unchanged so repeated threshold-triggered attempts on the same day
// never spam the student with new codes; only a fresh mint is dispatched.
func (s *ChallengeServiceImpl) GetOrIssuePendingCode(ctx context.Context, student *domain.Student) (*domain.ChallengeCode, bool, error) {
	now := s.clock.Now()

	existing, err := s.repo.FindPending(ctx, student.ID, now)
	if err == nil {
		return existing, false, nil
	}
	if err != domain.ErrChallengeNotFound {
		return nil, false, fmt.Errorf("failed to look up pending code: %w", err)
	}

	code, err := s.generateCode()
	if err != nil {
		return nil, false, fmt.Errorf("failed to generate challenge code: %w", err)
	}

	challenge := &domain.ChallengeCode{
		StudentID:       student.ID,
		AdmissionNumber: student.AdmissionNumber,
		Code:            code,
		IssuedAt:        now,
		ExpiresAt:       EndOfDay(now),
	}
	if err := s.repo.Create(ctx, challenge); err != nil {
		return nil, false, fmt.Errorf("failed to store challenge code: %w", err)
	}
	metrics.ChallengeCodesIssued.Inc()

	s.dispatch(ctx, student, challenge)

	return challenge, true, nil
}

// ValidateAndConsume implements domain.ChallengeIssuer. This is the only
// path that marks a code used; failure leaves all state untouched.
func (s *ChallengeServiceImpl) ValidateAndConsume(ctx context.Context, student *domain.Student, presented string) (bool, error) {
	consumed, err := s.repo.Consume(ctx, student.ID, presented, s.clock.Now())
	if err != nil {
		return false, fmt.Errorf("failed to consume challenge code: %w", err)
	}
	if consumed {
		metrics.ChallengeCodesConsumed.Inc()
	}
	return consumed, nil
}

// dispatch sends the security alert carrying the code to the student, not to
// the verifying agent. Delivery is fire-and-forget.
func (s *ChallengeServiceImpl) dispatch(ctx context.Context, student *domain.Student, challenge *domain.ChallengeCode) {
	n := &domain.Notification{
		RecipientID: student.ID,
		Type:        "security",
		Title:       "Gate Pass Verification Code",
		Message: fmt.Sprintf(
			"Security alert: your gate pass has reached its daily verification limit. "+
				"Share code %s with gate security to authorize this check. The code is valid today only.",
			challenge.Code),
		Priority: "high",
	}
	if err := s.notificationSvc.Deliver(ctx, n); err != nil {
		log.Printf("challenge code notification failed for %s: %v", student.AdmissionNumber, err)
	}
}

// generateCode returns a uniformly random 6-digit code in [100000, 999999];
// the leading digit is non-zero by construction.
func (s *ChallengeServiceImpl) generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
