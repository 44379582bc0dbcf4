package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VerificationAttempts counts recorded gate-verification attempts by
	// outcome (Valid, Expired, Denied).
	VerificationAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gate_verification_attempts_total",
		Help: "Recorded gate verification attempts by outcome.",
	}, []string{"outcome"})

	// ChallengeCodesIssued counts freshly minted step-up codes. Reused
	// pending codes are not counted.
	ChallengeCodesIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gate_challenge_codes_issued_total",
		Help: "Step-up challenge codes minted and dispatched.",
	})

	// ChallengeCodesConsumed counts successful single-use consumptions.
	ChallengeCodesConsumed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gate_challenge_codes_consumed_total",
		Help: "Step-up challenge codes consumed.",
	})
)
