// Package kick contains the kick analysis core: debounced event detection,
// signature-based type classification, technique scoring, and trajectory
// speed estimation.
package kick

import (
	"github.com/dojometrics/strikeform/internal/kinematics"
)

// Detection tuning.
const (
	// DefaultTriggerHeight is the kick height (percent of body height) at
	// which a frame qualifies as a kick.
	DefaultTriggerHeight = 25.0
	// DefaultCooldownFrames is the debounce window after an event fires.
	// One sustained high kick must register as a single event.
	DefaultCooldownFrames = 10
)

// Event is a detected kick: the triggering frame's metrics snapshot plus a
// sequential kick number. Events are immutable.
type Event struct {
	KickNumber int `json:"kick_number"`
	kinematics.FrameMetrics
}

// EventDetector promotes qualifying frames to discrete kick events. It is a
// two-state machine: armed while the cooldown is zero, cooling otherwise.
// Detectors hold per-stream state and must see frames in capture order.
type EventDetector struct {
	triggerHeight  float64
	cooldownFrames int

	cooldown int
	count    int
}

// NewEventDetector returns a detector with the default trigger height and
// cooldown.
func NewEventDetector() *EventDetector {
	return NewEventDetectorWith(DefaultTriggerHeight, DefaultCooldownFrames)
}

// NewEventDetectorWith returns a detector with explicit tuning. Non-positive
// arguments fall back to the defaults.
func NewEventDetectorWith(triggerHeight float64, cooldownFrames int) *EventDetector {
	if triggerHeight <= 0 {
		triggerHeight = DefaultTriggerHeight
	}
	if cooldownFrames <= 0 {
		cooldownFrames = DefaultCooldownFrames
	}
	return &EventDetector{triggerHeight: triggerHeight, cooldownFrames: cooldownFrames}
}

// Observe feeds one metrics sample to the detector. It returns the emitted
// event and true when the sample fires. A qualifying sample refreshes the
// cooldown, so one sustained high kick emits a single event no matter how
// long the leg stays up; the cooldown only runs down across frames below
// the trigger.
func (d *EventDetector) Observe(m kinematics.FrameMetrics) (Event, bool) {
	if m.KickHeight >= d.triggerHeight {
		fired := d.cooldown == 0
		d.cooldown = d.cooldownFrames
		if !fired {
			return Event{}, false
		}
		d.count++
		return Event{KickNumber: d.count, FrameMetrics: m}, true
	}

	if d.cooldown > 0 {
		d.cooldown--
	}
	return Event{}, false
}

// Count returns how many events have fired so far.
func (d *EventDetector) Count() int {
	return d.count
}

// Reset re-arms the detector and clears the event counter.
func (d *EventDetector) Reset() {
	d.cooldown = 0
	d.count = 0
}
