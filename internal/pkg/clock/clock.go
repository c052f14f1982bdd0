// Package clock provides time utilities for the application
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/tomekeeper/importer/internal/pkg/clock Clock

// Clock provides time functionality. Fetch timestamps and cache TTL
// decisions go through it so tests can pin the current time.
type Clock interface {
	Now() time.Time
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}

// Fixed implements Clock with a pinned instant, for tests
type Fixed struct {
	Instant time.Time
}

// Now returns the pinned instant
func (c *Fixed) Now() time.Time {
	return c.Instant
}

// NewFixed returns a clock pinned to the given instant
func NewFixed(instant time.Time) Clock {
	return &Fixed{Instant: instant}
}
