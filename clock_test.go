package blobmc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockTickIncrementsSweepCount(t *testing.T) {
	c := NewClock()
	assert.Equal(t, uint64(0), c.SweepCount)
	c.Tick()
	c.Tick()
	assert.Equal(t, uint64(2), c.SweepCount)
}

func TestClockTickReturnsNonNegativeDuration(t *testing.T) {
	c := NewClock()
	time.Sleep(time.Millisecond)
	dt := c.Tick()
	assert.GreaterOrEqual(t, dt, time.Duration(0))
}

func TestClockElapsedGrowsOverTime(t *testing.T) {
	c := NewClock()
	first := c.Elapsed()
	time.Sleep(time.Millisecond)
	second := c.Elapsed()
	assert.GreaterOrEqual(t, second, first)
}
