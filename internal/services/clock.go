package services

import (
	"time"

	"github.com/Davie-07/KTVC-FINAL-sub001/domain"
)

// systemClock implements domain.Clock with the wall clock.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NewSystemClock returns the wall-clock domain.Clock.
func NewSystemClock() domain.Clock { return systemClock{} }

// DayBounds returns the server-local midnight-to-midnight window containing
// t. Both the attempt ledger and the challenge issuer derive "today" from
// this single function so their notions of the day cannot diverge.
func DayBounds(t time.Time) (start, end time.Time) {
	year, month, day := t.Date()
	start = time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	end = time.Date(year, month, day, 23, 59, 59, 999000000, t.Location())
	return start, end
}

// EndOfDay returns the 23:59:59.999 instant of t's day, the expiry assigned
// to every challenge code.
func EndOfDay(t time.Time) time.Time {
	_, end := DayBounds(t)
	return end
}
