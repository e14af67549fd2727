package kick

import (
	"math"
	"testing"

	"github.com/dojometrics/strikeform/internal/pose"
	"github.com/dojometrics/strikeform/internal/testutil"
)

// stanceFrame builds a fighting stance: feet at 1.5x shoulder width, hands
// at chin level, knees slightly bent, hips centered over the feet.
func stanceFrame() pose.Frame {
	f := testutil.StandingFrame()

	// Widen the feet. Shoulder width in the fixture is 0.16.
	f[pose.LeftAnkle] = pose.Keypoint{Point: pose.Point{X: 0.38, Y: testutil.AnkleY}, Visibility: 0.95}
	f[pose.RightAnkle] = pose.Keypoint{Point: pose.Point{X: 0.62, Y: testutil.AnkleY}, Visibility: 0.95}
	f[pose.LeftFoot] = pose.Keypoint{Point: pose.Point{X: 0.38, Y: testutil.FootY}, Visibility: 0.95}
	f[pose.RightFoot] = pose.Keypoint{Point: pose.Point{X: 0.62, Y: testutil.FootY}, Visibility: 0.95}

	// Guard up: wrists at chin height.
	f[pose.LeftWrist] = pose.Keypoint{Point: pose.Point{X: 0.44, Y: 0.27}, Visibility: 0.95}
	f[pose.RightWrist] = pose.Keypoint{Point: pose.Point{X: 0.56, Y: 0.27}, Visibility: 0.95}

	// Bend the knees ~20 degrees: push each knee outward off the hip-ankle
	// line.
	f[pose.LeftKnee] = pose.Keypoint{Point: pose.Point{X: 0.405, Y: testutil.KneeY}, Visibility: 0.95}
	f[pose.RightKnee] = pose.Keypoint{Point: pose.Point{X: 0.625, Y: testutil.KneeY}, Visibility: 0.95}

	// Keep the hips centered between the widened feet.
	f[pose.LeftHip] = pose.Keypoint{Point: pose.Point{X: 0.45, Y: testutil.HipY}, Visibility: 0.95}
	f[pose.RightHip] = pose.Keypoint{Point: pose.Point{X: 0.55, Y: testutil.HipY}, Visibility: 0.95}

	return f
}

func TestStanceGoodForm(t *testing.T) {
	sa := NewStanceAnalyzer()
	res := sa.Analyze(stanceFrame(), 0)

	if res.Score != 100 {
		t.Errorf("good stance score = %d, want 100; metrics %+v feedback %v",
			res.Score, res.Metrics, res.Feedback)
	}
	if res.Metrics.FeetWidthRatio < stanceWidthMin || res.Metrics.FeetWidthRatio > stanceWidthMax {
		t.Errorf("FeetWidthRatio = %v, want within [%v,%v]",
			res.Metrics.FeetWidthRatio, stanceWidthMin, stanceWidthMax)
	}
	if !res.Metrics.GuardRaised {
		t.Error("guard should read as raised")
	}
}

func TestStanceNarrowFeetAndDroppedGuard(t *testing.T) {
	sa := NewStanceAnalyzer()
	res := sa.Analyze(testutil.StandingFrame(), 0)

	// Standing square: feet under shoulders (ratio ~1.0 < 1.2), wrists at
	// hip height, knees locked. Only weight distribution passes.
	if res.Score != 25 {
		t.Errorf("square stance score = %d, want 25; metrics %+v", res.Score, res.Metrics)
	}
	if res.Metrics.GuardRaised {
		t.Error("dropped hands should not read as a raised guard")
	}
}

func TestStanceMissingLandmarksSkipChecks(t *testing.T) {
	sa := NewStanceAnalyzer()
	f := testutil.WithoutLandmarks(stanceFrame(), pose.LeftWrist, pose.RightWrist)
	res := sa.Analyze(f, 0)
	if res.Score != 75 {
		t.Errorf("stance without wrists = %d, want 75 (guard check skipped)", res.Score)
	}
}

func TestStanceAverageScore(t *testing.T) {
	sa := NewStanceAnalyzer()
	if got := sa.AverageScore(); got != 0 {
		t.Errorf("AverageScore with no history = %v, want 0", got)
	}
	sa.Analyze(stanceFrame(), 0)
	sa.Analyze(testutil.StandingFrame(), 1)
	want := (100.0 + 25.0) / 2
	if got := sa.AverageScore(); math.Abs(got-want) > 1e-9 {
		t.Errorf("AverageScore = %v, want %v", got, want)
	}
}
