// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock supplies the current time so now-relative computations can be pinned in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns the current time in UTC.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.At
}
