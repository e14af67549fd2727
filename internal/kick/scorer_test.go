package kick

import (
	"testing"

	"github.com/dojometrics/strikeform/internal/kinematics"
)

func scoreFor(knee, height, hip, support, vis float64) int {
	s, _ := Score(kinematics.FrameMetrics{
		KneeAngle:   knee,
		KickHeight:  height,
		HipFlexion:  hip,
		SupportKnee: support,
		Visibility:  vis,
	})
	return s
}

func TestPerfectTechniqueScores100(t *testing.T) {
	score, feedback := Score(kinematics.FrameMetrics{
		KneeAngle:   170,
		KickHeight:  80,
		HipFlexion:  115,
		SupportKnee: 170,
		Visibility:  90,
	})
	if score != 100 {
		t.Errorf("score = %d, want 100 (25+30+20+15+10)", score)
	}
	grade, label := Grade(score)
	if grade != "A+" || label != "Elite" {
		t.Errorf("Grade(100) = %q/%q, want A+/Elite", grade, label)
	}
	if len(feedback) != 4 {
		t.Errorf("feedback lines = %d, want 4 scored bands", len(feedback))
	}
}

func TestKneeExtensionTiers(t *testing.T) {
	// Only the knee band varies; the rest pin to their lowest tier.
	base := func(knee float64) int {
		return scoreFor(knee, 0, 0, 0, 0) - (8 + 10 + 5 + 4)
	}
	tests := []struct {
		knee float64
		want int
	}{
		{180, 25}, {160, 25},
		{159.9, 20}, {140, 20},
		{139.9, 15}, {120, 15},
		{119.9, 10}, {0, 10},
	}
	for _, tt := range tests {
		if got := base(tt.knee); got != tt.want {
			t.Errorf("knee %v awards %d points, want %d", tt.knee, got, tt.want)
		}
	}
}

func TestKneeExtensionMonotonic(t *testing.T) {
	prev := 1 << 30
	for knee := 180.0; knee >= 0; knee -= 5 {
		got := scoreFor(knee, 0, 0, 0, 0)
		if got > prev {
			t.Fatalf("extension award increased as knee angle fell to %v", knee)
		}
		prev = got
	}
}

func TestHeightTiers(t *testing.T) {
	base := func(h float64) int {
		return scoreFor(0, h, 0, 0, 0) - (10 + 10 + 5 + 4)
	}
	tests := []struct {
		height float64
		want   int
	}{
		{85, 30}, {70, 30},
		{69.9, 22}, {50, 22},
		{49.9, 15}, {30, 15},
		{29.9, 8}, {0, 8},
	}
	for _, tt := range tests {
		if got := base(tt.height); got != tt.want {
			t.Errorf("height %v awards %d points, want %d", tt.height, got, tt.want)
		}
	}
}

func TestSupportLegTiers(t *testing.T) {
	base := func(s float64) int {
		return scoreFor(0, 0, 0, s, 0) - (10 + 8 + 10 + 4)
	}
	if got := base(170); got != 15 {
		t.Errorf("support 170 awards %d, want 15", got)
	}
	if got := base(150); got != 10 {
		t.Errorf("support 150 awards %d, want 10", got)
	}
	if got := base(100); got != 5 {
		t.Errorf("support 100 awards %d, want 5", got)
	}
}

func TestVisibilityTiers(t *testing.T) {
	base := func(v float64) int {
		return scoreFor(0, 0, 0, 0, v) - (10 + 8 + 10 + 5)
	}
	if got := base(85); got != 10 {
		t.Errorf("visibility 85 awards %d, want 10", got)
	}
	if got := base(70); got != 7 {
		t.Errorf("visibility 70 awards %d, want 7", got)
	}
	if got := base(10); got != 4 {
		t.Errorf("visibility 10 awards %d, want 4", got)
	}
}

func TestGradeTable(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "A+"}, {90, "A+"},
		{89, "A"}, {85, "A"},
		{84, "A-"}, {80, "A-"},
		{79, "B+"}, {75, "B+"},
		{74, "B"}, {70, "B"},
		{69, "B-"}, {65, "B-"},
		{64, "C+"}, {60, "C+"},
		{59, "C"}, {55, "C"},
		{54, "D"}, {0, "D"},
	}
	for _, tt := range tests {
		if grade, _ := Grade(tt.score); grade != tt.want {
			t.Errorf("Grade(%d) = %q, want %q", tt.score, grade, tt.want)
		}
	}
}

func TestFeedbackStatusTags(t *testing.T) {
	_, feedback := Score(kinematics.FrameMetrics{
		KneeAngle:   170,
		KickHeight:  10,
		HipFlexion:  95,
		SupportKnee: 150,
		Visibility:  90,
	})
	wantStatuses := []FeedbackStatus{FeedbackSuccess, FeedbackWarning, FeedbackInfo, FeedbackInfo}
	if len(feedback) != len(wantStatuses) {
		t.Fatalf("feedback lines = %d, want %d", len(feedback), len(wantStatuses))
	}
	for i, want := range wantStatuses {
		if feedback[i].Status != want {
			t.Errorf("feedback[%d].Status = %q, want %q (%s)", i, feedback[i].Status, want, feedback[i].Message)
		}
	}
}
