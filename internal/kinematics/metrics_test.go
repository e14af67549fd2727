package kinematics

import (
	"math"
	"testing"

	"github.com/dojometrics/strikeform/internal/pose"
	"github.com/dojometrics/strikeform/internal/testutil"
)

func TestAnalyzeRejectsMissingHips(t *testing.T) {
	calc := NewCalculator()

	f := testutil.WithoutLandmarks(testutil.StandingFrame(), pose.LeftHip)
	if _, ok := calc.Analyze(f, 0, 0); ok {
		t.Error("frame without left hip should be rejected")
	}

	f = testutil.WithoutLandmarks(testutil.StandingFrame(), pose.RightHip)
	if _, ok := calc.Analyze(f, 0, 0); ok {
		t.Error("frame without right hip should be rejected")
	}
}

func TestAnalyzeRejectsBothAnklesMissing(t *testing.T) {
	calc := NewCalculator()
	f := testutil.WithoutLandmarks(testutil.StandingFrame(), pose.LeftAnkle, pose.RightAnkle)
	if _, ok := calc.Analyze(f, 0, 0); ok {
		t.Error("frame without either ankle should be rejected")
	}
}

func TestAnalyzeOneAnkleSufficient(t *testing.T) {
	calc := NewCalculator()
	f := testutil.WithoutLandmarks(testutil.StandingFrame(), pose.LeftAnkle)
	if _, ok := calc.Analyze(f, 0, 0); !ok {
		t.Error("one visible ankle should be enough for analysis")
	}
}

func TestKickingLegSelection(t *testing.T) {
	calc := NewCalculator()

	m, ok := calc.Analyze(testutil.LeftKickFrame(60), 0, 0)
	if !ok {
		t.Fatal("kick frame rejected")
	}
	if m.KickingLeg != LegLeft {
		t.Errorf("KickingLeg = %q, want left", m.KickingLeg)
	}

	// Standing square: both feet level, the tie keeps right as support.
	m, ok = calc.Analyze(testutil.StandingFrame(), 0, 0)
	if !ok {
		t.Fatal("standing frame rejected")
	}
	if m.KickingLeg != LegLeft {
		t.Errorf("tied feet: KickingLeg = %q, want left (right stays support)", m.KickingLeg)
	}
}

func TestKickHeightNormalization(t *testing.T) {
	calc := NewCalculator()
	for _, want := range []float64{20, 50, 80} {
		m, ok := calc.Analyze(testutil.LeftKickFrame(want), 0, 0)
		if !ok {
			t.Fatalf("kick frame at %v%% rejected", want)
		}
		if math.Abs(m.KickHeight-want) > 2 {
			t.Errorf("KickHeight = %v, want ~%v", m.KickHeight, want)
		}
	}
}

func TestKickHeightClamped(t *testing.T) {
	// Foot above the nose: raw ratio exceeds 100 and must clamp.
	calc := NewCalculator()
	m, ok := calc.Analyze(testutil.LeftKickFrame(120), 0, 0)
	if !ok {
		t.Fatal("frame rejected")
	}
	if m.KickHeight > 100 {
		t.Errorf("KickHeight = %v, want clamped to 100", m.KickHeight)
	}
}

func TestClassifyLevel(t *testing.T) {
	tests := []struct {
		height float64
		want   Level
	}{
		{85, LevelHead},
		{70, LevelHead},
		{69.9, LevelChest},
		{50, LevelChest},
		{49.9, LevelBody},
		{30, LevelBody},
		{29.9, LevelLow},
		{0, LevelLow},
	}
	for _, tt := range tests {
		if got := ClassifyLevel(tt.height); got != tt.want {
			t.Errorf("ClassifyLevel(%v) = %q, want %q", tt.height, got, tt.want)
		}
	}
}

func TestHipRotationProxy(t *testing.T) {
	calc := NewCalculator()

	m, _ := calc.Analyze(testutil.RotatedFrame(0.1), 0, 0)
	if math.Abs(m.HipRotation-20) > 1e-6 {
		t.Errorf("HipRotation = %v, want 20 (0.1 * 200)", m.HipRotation)
	}

	// Large separation saturates at the cap.
	m, _ = calc.Analyze(testutil.RotatedFrame(0.5), 0, 0)
	if m.HipRotation != HipRotationMaxDeg {
		t.Errorf("HipRotation = %v, want capped at %v", m.HipRotation, HipRotationMaxDeg)
	}
}

func TestSupportKneeStraight(t *testing.T) {
	calc := NewCalculator()
	m, _ := calc.Analyze(testutil.LeftKickFrame(60), 0, 0)
	// The support leg in the fixture is vertical: hip, knee, ankle collinear.
	if m.SupportKnee < 175 {
		t.Errorf("SupportKnee = %v, want near 180 for a straight leg", m.SupportKnee)
	}
}

func TestVisibilityPercent(t *testing.T) {
	calc := NewCalculator()
	m, _ := calc.Analyze(testutil.StandingFrame(), 0, 0)
	// All six lower-body landmarks carry 0.95 confidence in the fixture.
	if math.Abs(m.Visibility-95) > 1e-6 {
		t.Errorf("Visibility = %v, want 95", m.Visibility)
	}
}

func TestMetadataCarried(t *testing.T) {
	calc := NewCalculator()
	m, _ := calc.Analyze(testutil.StandingFrame(), 42, 1.4)
	if m.FrameIndex != 42 || m.FrameTime != 1.4 {
		t.Errorf("metadata = (%d, %v), want (42, 1.4)", m.FrameIndex, m.FrameTime)
	}
}
