package game

import "time"

// maxFrameTime caps accumulated wall-clock time per frame so a stalled
// host cannot trigger a tick-backlog death spiral.
const maxFrameTime = 0.25

// Loop converts wall-clock frames into zero or more fixed simulation
// ticks and exposes the fractional remainder for render interpolation.
type Loop struct {
	dt          float64
	accumulator float64
	last        time.Time
	started     bool
}

func NewLoop(tickRate float64) *Loop {
	return &Loop{dt: 1.0 / tickRate}
}

// Advance accounts the wall-clock time up to now and returns how many
// fixed ticks the simulation should run.
func (l *Loop) Advance(now time.Time) int {
	if !l.started {
		l.last = now
		l.started = true
		return 0
	}
	frame := now.Sub(l.last).Seconds()
	l.last = now
	if frame > maxFrameTime {
		frame = maxFrameTime
	}
	l.accumulator += frame

	ticks := 0
	for l.accumulator >= l.dt {
		l.accumulator -= l.dt
		ticks++
	}
	return ticks
}

// Alpha is the interpolation factor in [0,1) between the last completed
// tick and the next.
func (l *Loop) Alpha() float64 {
	return l.accumulator / l.dt
}

// DT is the fixed tick duration in seconds.
func (l *Loop) DT() float64 { return l.dt }
