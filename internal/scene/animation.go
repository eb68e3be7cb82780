package scene

import (
	"math"
	"time"
)

// Pulse parameters.
const (
	PulseSpeed  = 1.5
	PulseAmount = 0.15
)

// PulseScale is the animated scale factor for a star at time t.
func PulseScale(t, phase float64) float64 {
	return 1 + math.Sin(t*PulseSpeed+phase)*PulseAmount
}

// FrameLimiter drops frames that arrive sooner than the target interval.
// A skipped frame is simply dropped; nothing is queued.
type FrameLimiter struct {
	interval time.Duration
	last     time.Duration
	primed   bool

	rendered int
	skipped  int
}

// NewFrameLimiter creates a limiter for the given minimum interval.
func NewFrameLimiter(interval time.Duration) *FrameLimiter {
	return &FrameLimiter{interval: interval}
}

// Allow reports whether a frame at elapsed should render.
func (l *FrameLimiter) Allow(elapsed time.Duration) bool {
	if l.primed && elapsed-l.last < l.interval {
		l.skipped++
		return false
	}
	l.primed = true
	l.last = elapsed
	l.rendered++
	return true
}

// Counts returns rendered and skipped frame totals.
func (l *FrameLimiter) Counts() (rendered, skipped int) {
	return l.rendered, l.skipped
}

// Animator is the single externally driven per-frame entry point. The host
// calls OnFrame from its render loop; nothing reschedules itself.
type Animator struct {
	vis     *Visualization
	limiter *FrameLimiter
	stopped bool
}

// NewAnimator creates an animator throttled to the visualisation's profile.
func NewAnimator(v *Visualization) *Animator {
	return &Animator{
		vis:     v,
		limiter: NewFrameLimiter(v.Profile().FrameInterval()),
	}
}

// OnFrame advances animation to elapsed and reports whether the host
// should render this frame.
func (a *Animator) OnFrame(elapsed time.Duration) bool {
	if a.stopped || !a.limiter.Allow(elapsed) {
		return false
	}
	a.vis.UpdateAnimation(elapsed.Seconds())
	return true
}

// Stop makes every later OnFrame a no-op.
func (a *Animator) Stop() {
	a.stopped = true
}

// Limiter exposes the frame limiter counters.
func (a *Animator) Limiter() *FrameLimiter {
	return a.limiter
}
