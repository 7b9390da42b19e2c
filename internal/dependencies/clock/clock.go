// Package clock abstracts time so room and game timestamps can be pinned in
// tests.
package clock

import "time"

// Clock is the time source injected into the services. Both authorities stamp
// CreatedAt/UpdatedAt through it rather than calling time.Now directly.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}
