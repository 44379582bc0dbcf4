package services

import (
	"context"
	"fmt"

	"github.com/Davie-07/KTVC-FINAL-sub001/domain"
	"github.com/Davie-07/KTVC-FINAL-sub001/internal/metrics"
)

// thresholdDecision is the outcome of the pure step-up decision, separated
// from the store calls so the sequence is testable without I/O.
type thresholdDecision int

const (
	decisionProceed thresholdDecision = iota
	decisionRequireCode
	decisionValidateCode
)

// decideThreshold maps (attempts so far today, code presented) to the next
// step of the verification sequence.
func decideThreshold(attemptsToday, threshold int, codePresented bool) thresholdDecision {
	if attemptsToday < threshold {
		// Below the threshold a supplied code is simply ignored.
		return decisionProceed
	}
	if !codePresented {
		return decisionRequireCode
	}
	return decisionValidateCode
}

// VerificationServiceImpl implements domain.VerificationService. One call is
// one pass through the gate sequence: resolve, course check, threshold,
// optional code validation, fee-expiry evaluation, record.
type VerificationServiceImpl struct {
	directory domain.StudentDirectory
	fees      domain.FeeLedger
	ledger    domain.AttemptLedger
	issuer    domain.ChallengeIssuer
	locker    domain.KeyedLocker
	clock     domain.Clock
	threshold int
}

// NewVerificationService creates a new verification gate.
func NewVerificationService(
	directory domain.StudentDirectory,
	fees domain.FeeLedger,
	ledger domain.AttemptLedger,
	issuer domain.ChallengeIssuer,
	locker domain.KeyedLocker,
	clock domain.Clock,
	threshold int,
) domain.VerificationService {
	return &VerificationServiceImpl{
		directory: directory,
		fees:      fees,
		ledger:    ledger,
		issuer:    issuer,
		locker:    locker,
		clock:     clock,
		threshold: threshold,
	}
}

// Verify implements domain.VerificationService. Terminal failures surface as
// sentinel errors and never write ledger or challenge state; the explicit
// issuance and consumption points are the only mutations besides the final
// attempt record.
func (s *VerificationServiceImpl) Verify(ctx context.Context, req domain.VerificationRequest) (*domain.VerificationResult, error) {
	student, err := s.directory.FindByAdmissionNumber(ctx, req.AdmissionNumber)
	if err != nil {
		return nil, err
	}

	if !student.MatchesCourse(req.Course) {
		return nil, domain.ErrCourseMismatch
	}

	// The threshold read, code issuance and attempt write run under a
	// per-student lock so two concurrent attempts cannot both count as
	// "the second" or mint duplicate pending codes.
	release, err := s.locker.Acquire(ctx, student.AdmissionNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire verification lock: %w", err)
	}
	defer release()

	attemptsToday, err := s.ledger.CountToday(ctx, student.AdmissionNumber)
	if err != nil {
		return nil, err
	}

	switch decideThreshold(attemptsToday, s.threshold, req.Code != "") {
	case decisionRequireCode:
		_, issued, err := s.issuer.GetOrIssuePendingCode(ctx, student)
		if err != nil {
			return nil, err
		}
		// A code-required response is not an attempt; nothing is recorded.
		return &domain.VerificationResult{
			RequiresCode: true,
			CodeSent:     issued,
			Message:      "Daily verification limit reached. A verification code has been sent to the student.",
		}, nil
	case decisionValidateCode:
		ok, err := s.issuer.ValidateAndConsume(ctx, student, req.Code)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrCodeInvalid
		}
	}

	fee, err := s.fees.LatestForStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	if fee.GatepassExpiry == nil {
		return nil, domain.ErrNoExpiryConfigured
	}

	now := s.clock.Now()
	outcome := domain.OutcomeValid
	if now.After(*fee.GatepassExpiry) {
		outcome = domain.OutcomeExpired
	}

	// Fetched before recording so the warning names the prior attempt, not
	// the one being written now.
	var previous *domain.AttemptEntry
	if attemptsToday == 1 {
		previous, err = s.ledger.MostRecentToday(ctx, student.AdmissionNumber)
		if err != nil {
			return nil, err
		}
	}

	entry, err := s.ledger.Record(ctx, student, outcome, fee.GatepassExpiry, req.AgentID)
	if err != nil {
		return nil, err
	}
	metrics.VerificationAttempts.WithLabelValues(string(outcome)).Inc()

	result := &domain.VerificationResult{
		Success:            outcome == domain.OutcomeValid,
		IsExpired:          outcome == domain.OutcomeExpired,
		Student:            student,
		ExpiryDate:         fee.GatepassExpiry,
		VerificationTime:   entry.VerifiedTime,
		Status:             outcome,
		Balance:            fee.Balance,
		VerificationsToday: attemptsToday + 1,
	}
	if outcome == domain.OutcomeValid {
		result.Message = "Gate pass is valid."
	} else {
		result.Message = fmt.Sprintf("Gate pass expired on %s.", fee.GatepassExpiry.Format("02 Jan 2006"))
	}
	if previous != nil {
		result.PreviousTime = previous.VerifiedTime
		result.Warning = fmt.Sprintf(
			"Student was previously verified today at %s. The next attempt will require a verification code.",
			previous.VerifiedTime)
	}

	return result, nil
}

// History implements domain.VerificationService for the audit view.
func (s *VerificationServiceImpl) History(ctx context.Context, admissionNumber string, limit int) ([]domain.AttemptEntry, error) {
	return s.ledger.History(ctx, admissionNumber, limit)
}
