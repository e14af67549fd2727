package kick

import (
	"testing"

	"github.com/dojometrics/strikeform/internal/kinematics"
)

func metricsAt(frame int, height float64) kinematics.FrameMetrics {
	return kinematics.FrameMetrics{
		FrameIndex: frame,
		FrameTime:  float64(frame) / 30,
		KickHeight: height,
	}
}

func TestSustainedSpikeFiresOnce(t *testing.T) {
	d := NewEventDetector()

	fired := 0
	for i := 0; i < 15; i++ {
		if _, ok := d.Observe(metricsAt(i, 80)); ok {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("sustained 15-frame spike fired %d events, want 1", fired)
	}
}

func TestEventsNeverCloserThanCooldown(t *testing.T) {
	d := NewEventDetector()

	// Short kicks separated by cold stretches long enough to re-arm.
	var firedFrames []int
	for i := 0; i < 100; i++ {
		height := 0.0
		if i%12 < 2 {
			height = 50
		}
		if ev, ok := d.Observe(metricsAt(i, height)); ok {
			firedFrames = append(firedFrames, ev.FrameIndex)
		}
	}
	if len(firedFrames) < 2 {
		t.Fatalf("expected multiple events over 100 hot frames, got %d", len(firedFrames))
	}
	for i := 1; i < len(firedFrames); i++ {
		if gap := firedFrames[i] - firedFrames[i-1]; gap < DefaultCooldownFrames {
			t.Errorf("events at frames %d and %d are %d apart, want >= %d",
				firedFrames[i-1], firedFrames[i], gap, DefaultCooldownFrames)
		}
	}
}

func TestBelowTriggerNeverFires(t *testing.T) {
	d := NewEventDetector()
	for i := 0; i < 50; i++ {
		if _, ok := d.Observe(metricsAt(i, 24.9)); ok {
			t.Fatalf("fired at height 24.9 on frame %d", i)
		}
	}
}

func TestTriggerBoundaryFires(t *testing.T) {
	d := NewEventDetector()
	if _, ok := d.Observe(metricsAt(0, DefaultTriggerHeight)); !ok {
		t.Error("height exactly at trigger should fire")
	}
}

func TestSequentialNumbering(t *testing.T) {
	d := NewEventDetector()

	var numbers []int
	for i := 0; i < 40; i++ {
		// Alternate hot and cold stretches so multiple events fire.
		height := 0.0
		if (i/12)%2 == 0 {
			height = 60
		}
		if ev, ok := d.Observe(metricsAt(i, height)); ok {
			numbers = append(numbers, ev.KickNumber)
		}
	}
	for i, n := range numbers {
		if n != i+1 {
			t.Errorf("kick numbers = %v, want sequential from 1", numbers)
			break
		}
	}
	if d.Count() != len(numbers) {
		t.Errorf("Count() = %d, want %d", d.Count(), len(numbers))
	}
}

func TestEventSnapshotsMetrics(t *testing.T) {
	d := NewEventDetector()
	m := metricsAt(7, 66)
	m.KneeAngle = 165
	ev, ok := d.Observe(m)
	if !ok {
		t.Fatal("expected event")
	}
	if ev.FrameIndex != 7 || ev.KickHeight != 66 || ev.KneeAngle != 165 {
		t.Errorf("event snapshot = %+v, want copy of triggering metrics", ev.FrameMetrics)
	}
}

func TestReset(t *testing.T) {
	d := NewEventDetector()
	d.Observe(metricsAt(0, 50))
	d.Reset()
	if d.Count() != 0 {
		t.Errorf("Count after Reset = %d, want 0", d.Count())
	}
	if _, ok := d.Observe(metricsAt(1, 50)); !ok {
		t.Error("detector should be re-armed immediately after Reset")
	}
}

func TestCustomTuning(t *testing.T) {
	d := NewEventDetectorWith(40, 3)
	if _, ok := d.Observe(metricsAt(0, 30)); ok {
		t.Error("fired below custom trigger height")
	}
	if _, ok := d.Observe(metricsAt(1, 45)); !ok {
		t.Fatal("did not fire above custom trigger height")
	}
	// Staying hot refreshes the cooldown instead of firing again.
	if _, ok := d.Observe(metricsAt(2, 45)); ok {
		t.Error("fired during custom cooldown")
	}
	// Three cold frames run the custom cooldown out.
	for i := 3; i <= 5; i++ {
		if _, ok := d.Observe(metricsAt(i, 0)); ok {
			t.Errorf("fired on cold frame %d", i)
		}
	}
	if _, ok := d.Observe(metricsAt(6, 45)); !ok {
		t.Error("should re-arm after custom cooldown elapsed")
	}
}
