// Package testutil provides shared test helpers and keypoint fixtures.
//
// The frame builders construct geometrically plausible athletes so tests can
// assert on derived metrics without hand-placing fifteen landmarks each time.
package testutil

import (
	"math"
	"testing"

	"github.com/dojometrics/strikeform/internal/pose"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertInDelta fails the test when got is not within delta of want.
func AssertInDelta(t *testing.T, got, want, delta float64) {
	t.Helper()
	if math.Abs(got-want) > delta {
		t.Errorf("got %v, want %v (±%v)", got, want, delta)
	}
}

// Reference geometry for fixture athletes, in normalized image coordinates
// with Y increasing downward.
const (
	NoseY    = 0.20
	AnkleY   = 0.90
	FootY    = 0.93
	HipY     = 0.55
	KneeY    = 0.72
	BodySpan = AnkleY - NoseY // 0.70 normalized units nose-to-ankle
)

func kp(x, y, z float64) pose.Keypoint {
	return pose.Keypoint{Point: pose.Point{X: x, Y: y, Z: z}, Visibility: 0.95}
}

// StandingFrame returns a fully visible frame of an athlete standing square
// to the camera, both feet down.
func StandingFrame() pose.Frame {
	return pose.Frame{
		pose.Nose:          kp(0.50, NoseY, 0),
		pose.LeftShoulder:  kp(0.42, 0.30, 0),
		pose.RightShoulder: kp(0.58, 0.30, 0),
		pose.LeftElbow:     kp(0.38, 0.42, 0),
		pose.RightElbow:    kp(0.62, 0.42, 0),
		pose.LeftWrist:     kp(0.36, 0.52, 0),
		pose.RightWrist:    kp(0.64, 0.52, 0),
		pose.LeftHip:       kp(0.45, HipY, 0),
		pose.RightHip:      kp(0.55, HipY, 0),
		pose.LeftKnee:      kp(0.45, KneeY, 0),
		pose.RightKnee:     kp(0.55, KneeY, 0),
		pose.LeftAnkle:     kp(0.45, AnkleY, 0),
		pose.RightAnkle:    kp(0.55, AnkleY, 0),
		pose.LeftFoot:      kp(0.45, FootY, 0),
		pose.RightFoot:     kp(0.55, FootY, 0),
	}
}

// LeftKickFrame returns a frame with the left foot raised so the kick height
// computes to approximately heightPct percent of body height. The left leg
// is extended roughly straight from the hip; the right leg stays planted.
func LeftKickFrame(heightPct float64) pose.Frame {
	f := StandingFrame()

	footY := AnkleY - heightPct/100*BodySpan
	hip := f[pose.LeftHip].Point

	// Extend the kicking leg in a straight line from the hip toward the
	// raised foot so the knee angle reads near 180.
	dirX := 0.30
	dirY := footY - hip.Y

	knee := pose.Point{X: hip.X + dirX*0.5, Y: hip.Y + dirY*0.5}
	ankle := pose.Point{X: hip.X + dirX*0.95, Y: hip.Y + dirY*0.95}
	foot := pose.Point{X: hip.X + dirX, Y: footY}

	f[pose.LeftKnee] = kp(knee.X, knee.Y, 0)
	f[pose.LeftAnkle] = kp(ankle.X, ankle.Y, 0)
	f[pose.LeftFoot] = kp(foot.X, foot.Y, 0)
	return f
}

// RotatedFrame returns a standing frame with the shoulders separated on the
// depth axis by dz, driving the hip-rotation proxy.
func RotatedFrame(dz float64) pose.Frame {
	f := StandingFrame()
	ls := f[pose.LeftShoulder]
	ls.Z = -dz / 2
	f[pose.LeftShoulder] = ls
	rs := f[pose.RightShoulder]
	rs.Z = dz / 2
	f[pose.RightShoulder] = rs
	return f
}

// WithoutLandmarks returns a copy of f with the named landmarks removed.
func WithoutLandmarks(f pose.Frame, names ...pose.Landmark) pose.Frame {
	out := make(pose.Frame, len(f))
	for k, v := range f {
		out[k] = v
	}
	for _, name := range names {
		delete(out, name)
	}
	return out
}
