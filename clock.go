package blobmc

import "time"

// Clock tracks wall-clock progress of a run; sweeps are this engine's
// unit of progress.
type Clock struct {
	Start      time.Time
	Last       time.Time
	SweepCount uint64
}

func NewClock() *Clock {
	now := time.Now()
	return &Clock{Start: now, Last: now}
}

// Tick records that one sweep has completed and returns the wall time
// elapsed since the previous tick.
func (c *Clock) Tick() time.Duration {
	now := time.Now()
	dt := now.Sub(c.Last)
	c.Last = now
	c.SweepCount++
	return dt
}

// Elapsed returns the wall time since the clock was created.
func (c *Clock) Elapsed() time.Duration {
	return time.Since(c.Start)
}
