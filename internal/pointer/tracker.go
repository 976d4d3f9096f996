// Package pointer converts raw fingertip samples into debounced dwell-click events.
package pointer

import (
	"image"
	"math"
	"time"
)

// Dwell detection defaults.
const (
	// DefaultStabilityRadius is how far the fingertip may drift (in pixels)
	// while still counting as holding in place.
	DefaultStabilityRadius = 25.0
	// DefaultHoldThreshold is how long the fingertip must hold before a
	// click fires.
	DefaultHoldThreshold = 1500 * time.Millisecond
)

// Tracker turns a per-frame stream of fingertip positions into dwell clicks.
// A click fires once the fingertip has stayed within the stability radius of
// its anchor for the hold threshold; the timer then re-arms, so a continuous
// hold fires repeatedly at the threshold interval rather than once.
type Tracker struct {
	stabilityRadius float64
	holdThreshold   time.Duration

	anchor     *image.Point
	anchorTime time.Time

	now func() time.Time
}

// NewTracker creates a Tracker with the default dwell tuning.
func NewTracker() *Tracker {
	return &Tracker{
		stabilityRadius: DefaultStabilityRadius,
		holdThreshold:   DefaultHoldThreshold,
		now:             time.Now,
	}
}

// Update feeds one frame's fingertip sample to the tracker. A nil sample
// means no finger was tracked this frame; it clears the dwell state so the
// next sighting starts from zero. The returned position echoes the sample,
// and clicked reports whether a dwell click fired on this frame.
func (t *Tracker) Update(sample *image.Point) (*image.Point, bool) {
	if sample == nil {
		t.Reset()
		return nil, false
	}

	now := t.now()

	if t.anchor == nil {
		p := *sample
		t.anchor = &p
		t.anchorTime = now
		return sample, false
	}

	if distance(*sample, *t.anchor) <= t.stabilityRadius {
		if now.Sub(t.anchorTime) >= t.holdThreshold {
			// Re-arm so holding keeps clicking at the threshold interval.
			t.anchorTime = now
			return sample, true
		}
		return sample, false
	}

	// Movement beyond the radius cancels the dwell in progress.
	p := *sample
	t.anchor = &p
	t.anchorTime = now
	return sample, false
}

// Progress reports the fraction of the hold threshold elapsed, clamped to
// [0, 1]. Advisory only, for drawing the countdown ring; never mutates state.
func (t *Tracker) Progress() float64 {
	if t.anchor == nil {
		return 0
	}
	frac := float64(t.now().Sub(t.anchorTime)) / float64(t.holdThreshold)
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}

// Holding reports whether a dwell anchor is currently set.
func (t *Tracker) Holding() bool {
	return t.anchor != nil
}

// Reset clears the dwell anchor and timer.
func (t *Tracker) Reset() {
	t.anchor = nil
	t.anchorTime = time.Time{}
}

// SetHoldThreshold overrides the hold duration.
// Values less than or equal to 0 are ignored.
func (t *Tracker) SetHoldThreshold(d time.Duration) {
	if d <= 0 {
		return
	}
	t.holdThreshold = d
}

// SetStabilityRadius overrides the stability radius in pixels.
// Values less than or equal to 0 are ignored.
func (t *Tracker) SetStabilityRadius(r float64) {
	if r <= 0 {
		return
	}
	t.stabilityRadius = r
}

func distance(a, b image.Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
