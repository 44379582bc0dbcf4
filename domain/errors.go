package domain

import "errors"

// Verification errors
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrCourseMismatch     = errors.New("course does not match student enrollment")
	ErrCodeInvalid        = errors.New("invalid or expired verification code")
	ErrNoFeeRecords       = errors.New("no fee records found for student")
	ErrNoExpiryConfigured = errors.New("no gate pass expiry date configured, contact finance")
)

// Challenge errors
var (
	ErrChallengeNotFound = errors.New("challenge code not found")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Authorization errors
var (
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrInsufficientRole = errors.New("insufficient role permissions")
)
