package kick

import (
	"math"
	"testing"

	"github.com/dojometrics/strikeform/internal/kinematics"
	"github.com/dojometrics/strikeform/internal/pose"
	"github.com/dojometrics/strikeform/internal/testutil"
)

func TestRangeContainsAndNear(t *testing.T) {
	r := Range{45, 90}
	if !r.Contains(45) || !r.Contains(90) || !r.Contains(60) {
		t.Error("Contains should include bounds and interior")
	}
	if r.Contains(44.9) || r.Contains(90.1) {
		t.Error("Contains should exclude outside values")
	}
	if !r.Near(30, 20) {
		t.Error("30 is within 20 of min bound 45")
	}
	if r.Near(10, 20) {
		t.Error("10 is not within 20 of either bound")
	}
}

func TestMatchScoreFullMatch(t *testing.T) {
	sig := Signature{TypeRoundhouse, Range{45, 90}, Range{90, 140}, PathCircular}
	if got := matchScore(sig, 60, 120, PathCircular); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("full match score = %v, want 1.0", got)
	}
}

func TestMatchScorePartials(t *testing.T) {
	sig := Signature{TypeRoundhouse, Range{45, 90}, Range{90, 140}, PathCircular}

	// Hip near-range (0.5), chamber in-range (1.0), path mismatch (0).
	got := matchScore(sig, 30, 120, PathLinear)
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("partial score = %v, want 0.5", got)
	}

	// Compatible path family: circular observed vs hook signature.
	hook := Signature{TypeHook, Range{60, 120}, Range{100, 160}, PathHook}
	got = matchScore(hook, 90, 130, PathCircular)
	if math.Abs(got-(2.5/3)) > 1e-9 {
		t.Errorf("hook-family score = %v, want %v", got, 2.5/3)
	}
}

func TestMatchScoreNoMatch(t *testing.T) {
	sig := Signature{TypeBack, Range{150, 180}, Range{60, 100}, PathLinear}
	if got := matchScore(sig, 10, 170, PathVertical); got != 0 {
		t.Errorf("no-match score = %v, want 0", got)
	}
}

// feedPath drives the classifier's foot-path history with a left-foot kick
// frame n times.
func feedPath(c *Classifier, f pose.Frame, n int) {
	for i := 0; i < n; i++ {
		c.Observe(f)
	}
}

func TestObserveRequiresRaisedLeg(t *testing.T) {
	c := NewClassifier()
	if _, ok := c.Observe(testutil.StandingFrame()); ok {
		t.Error("square stance should not classify")
	}
}

func TestObserveIdentifiesKickingLeg(t *testing.T) {
	c := NewClassifier()
	res, ok := c.Observe(testutil.LeftKickFrame(60))
	if !ok {
		t.Fatal("raised left foot should classify")
	}
	if res.KickingLeg != kinematics.LegLeft {
		t.Errorf("KickingLeg = %q, want left", res.KickingLeg)
	}
}

func TestFootPathInsufficientHistory(t *testing.T) {
	c := NewClassifier()
	res, ok := c.Observe(testutil.LeftKickFrame(60))
	if !ok {
		t.Fatal("expected classification")
	}
	if res.FootPath != PathAnalyzing {
		t.Errorf("FootPath after 1 sample = %q, want %q", res.FootPath, PathAnalyzing)
	}
}

func TestFootPathVertical(t *testing.T) {
	c := NewClassifier()
	// Sweep the left foot straight up across frames: x fixed, y falling.
	var last Classification
	for i := 0; i < 12; i++ {
		f := testutil.LeftKickFrame(10 + float64(i)*7)
		f[pose.LeftFoot] = pose.Keypoint{
			Point:      pose.Point{X: 0.45, Y: f[pose.LeftFoot].Y},
			Visibility: 0.95,
		}
		if res, ok := c.Observe(f); ok {
			last = res
		}
	}
	if last.FootPath != PathVertical {
		t.Errorf("FootPath = %q, want %q", last.FootPath, PathVertical)
	}
}

func TestFootPathLinear(t *testing.T) {
	c := NewClassifier()
	var last Classification
	for i := 0; i < 12; i++ {
		f := testutil.LeftKickFrame(50)
		fp := f[pose.LeftFoot]
		fp.X = 0.2 + float64(i)*0.05
		f[pose.LeftFoot] = fp
		if res, ok := c.Observe(f); ok {
			last = res
		}
	}
	if last.FootPath != PathLinear {
		t.Errorf("FootPath = %q, want %q", last.FootPath, PathLinear)
	}
}

func TestFootPathCircular(t *testing.T) {
	c := NewClassifier()
	var last Classification
	for i := 0; i < 16; i++ {
		f := testutil.LeftKickFrame(50)
		fp := f[pose.LeftFoot]
		theta := float64(i) * math.Pi / 8
		fp.X = 0.45 + 0.15*math.Cos(theta)
		fp.Y = 0.5 + 0.15*math.Sin(theta)
		f[pose.LeftFoot] = fp
		if res, ok := c.Observe(f); ok {
			last = res
		}
	}
	if last.FootPath != PathCircular {
		t.Errorf("FootPath = %q, want %q", last.FootPath, PathCircular)
	}
}

func TestBelowThresholdReportsUnknownWithBestGuess(t *testing.T) {
	// A threshold of 1.0 forces every non-perfect match to unknown.
	c := NewClassifierWith(1.0)
	res, ok := c.Observe(testutil.LeftKickFrame(60))
	if !ok {
		t.Fatal("expected classification")
	}
	if res.Type != TypeUnknown {
		t.Errorf("Type = %q, want unknown under a perfect-match threshold", res.Type)
	}
	if res.BestGuess == "" || res.BestGuess == TypeUnknown {
		t.Errorf("BestGuess = %q, want a concrete type", res.BestGuess)
	}
	if len(res.Scores) != len(Signatures) {
		t.Errorf("Scores has %d entries, want %d", len(res.Scores), len(Signatures))
	}
}

func TestConfidenceIsBestScore(t *testing.T) {
	c := NewClassifier()
	res, ok := c.Observe(testutil.LeftKickFrame(60))
	if !ok {
		t.Fatal("expected classification")
	}
	best := -1.0
	for _, s := range res.Scores {
		best = math.Max(best, s)
	}
	if math.Abs(res.Confidence-best) > 1e-9 {
		t.Errorf("Confidence = %v, want max score %v", res.Confidence, best)
	}
}

func TestKneeChamberAngleMissingLandmark(t *testing.T) {
	f := testutil.WithoutLandmarks(testutil.StandingFrame(), pose.LeftKnee)
	if got := KneeChamberAngle(f, kinematics.LegLeft); got != 0 {
		t.Errorf("KneeChamberAngle without knee = %v, want 0", got)
	}
}

func TestHipRotationAngleSquareStance(t *testing.T) {
	// Hips and shoulders parallel: rotation reads zero.
	if got := HipRotationAngle(testutil.StandingFrame()); math.Abs(got) > 1e-9 {
		t.Errorf("HipRotationAngle = %v, want 0 for square stance", got)
	}
}
