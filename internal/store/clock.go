package store

import "time"

// Clock supplies the timestamps stamped onto created and retired rows.
// Injecting it keeps retirement history deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock returns a predetermined instant, advancing by Step on every
// call so that successive retirements remain distinguishable.
type FixedClock struct {
	Start time.Time
	Step  time.Duration

	calls int
}

// Now returns Start advanced by calls*Step.
func (c *FixedClock) Now() time.Time {
	t := c.Start.Add(time.Duration(c.calls) * c.Step)
	c.calls++
	return t
}
