package service

import "time"

// Clock provides time operations for measuring runs.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system time.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// StepClock implements Clock for tests. Every call to Now advances the
// returned time by Step, starting at Start.
type StepClock struct {
	Start time.Time
	Step  time.Duration

	calls int
}

// Now returns Start plus Step times the number of earlier calls.
func (c *StepClock) Now() time.Time {
	t := c.Start.Add(time.Duration(c.calls) * c.Step)
	c.calls++
	return t
}
