// Package player stands in for the video player: it tracks the playback
// position the transcript follows.
package player

import "time"

// DefaultPollInterval is how often the UI samples the playback position.
const DefaultPollInterval = 200 * time.Millisecond

// Clock is a pausable playback position bounded by a duration.
type Clock struct {
	now      func() time.Time
	duration time.Duration
	offset   time.Duration // position when last paused or seeked
	started  time.Time     // wall time playback resumed; zero when paused
}

// NewClock returns a paused clock at position zero. A nil now uses time.Now.
func NewClock(duration time.Duration, now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, duration: duration}
}

// Playing reports whether the clock is advancing.
func (c *Clock) Playing() bool { return !c.started.IsZero() }

// Play resumes playback. Playing at the end restarts from zero.
func (c *Clock) Play() {
	if c.Playing() {
		return
	}
	if c.duration > 0 && c.offset >= c.duration {
		c.offset = 0
	}
	c.started = c.now()
}

// Pause stops playback at the current position.
func (c *Clock) Pause() {
	if !c.Playing() {
		return
	}
	c.offset = c.position()
	c.started = time.Time{}
}

// Toggle switches between playing and paused.
func (c *Clock) Toggle() {
	if c.Playing() {
		c.Pause()
		return
	}
	c.Play()
}

// Seek moves to d, clamped to [0, duration].
func (c *Clock) Seek(d time.Duration) {
	c.offset = c.clamp(d)
	if c.Playing() {
		c.started = c.now()
	}
}

// Position returns the current playback position. Playback stops by
// itself when it reaches the end.
func (c *Clock) Position() time.Duration {
	p := c.position()
	if c.Playing() && c.duration > 0 && p >= c.duration {
		c.offset = c.duration
		c.started = time.Time{}
	}
	return p
}

// Seconds returns Position in fractional seconds.
func (c *Clock) Seconds() float64 { return c.Position().Seconds() }

// Duration returns the clip length.
func (c *Clock) Duration() time.Duration { return c.duration }

func (c *Clock) position() time.Duration {
	p := c.offset
	if c.Playing() {
		p += c.now().Sub(c.started)
	}
	return c.clamp(p)
}

func (c *Clock) clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if c.duration > 0 && d > c.duration {
		return c.duration
	}
	return d
}
