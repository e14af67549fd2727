package kick

import (
	"testing"

	"github.com/dojometrics/strikeform/internal/kinematics"
)

func kickEvent(height, rotation, knee float64) Event {
	return Event{FrameMetrics: kinematics.FrameMetrics{
		KickHeight:  height,
		HipRotation: rotation,
		KneeAngle:   knee,
	}}
}

func TestEvaluateKickHeadLevel(t *testing.T) {
	ks := EvaluateKick(kickEvent(80, 10, 120))
	if !ks.Scored || ks.Zone != ZoneHead || ks.Points != 3 {
		t.Errorf("head kick = %+v, want 3 points in head zone", ks)
	}
}

func TestEvaluateKickTrunkLevel(t *testing.T) {
	ks := EvaluateKick(kickEvent(50, 10, 120))
	if ks.Zone != ZoneTrunk || ks.Points != 2 {
		t.Errorf("trunk kick = %+v, want 2 points in trunk zone", ks)
	}
}

func TestEvaluateKickBelowZone(t *testing.T) {
	ks := EvaluateKick(kickEvent(20, 10, 120))
	if ks.Scored || ks.Points != 0 || ks.Zone != ZoneLow {
		t.Errorf("low kick = %+v, want unscored", ks)
	}
}

func TestEvaluateKickSpinningBonus(t *testing.T) {
	ks := EvaluateKick(kickEvent(80, 90, 120))
	if ks.Points != 4 || ks.TechniqueBonus != 1 {
		t.Errorf("spinning head kick = %+v, want 4 points", ks)
	}
}

func TestEvaluateKickWeakChamberPenalty(t *testing.T) {
	ks := EvaluateKick(kickEvent(50, 10, 170))
	if ks.Points != 1 {
		t.Errorf("weak-chamber trunk kick = %d points, want 1", ks.Points)
	}
}

func TestSimulateMatch(t *testing.T) {
	kicks := []Event{
		kickEvent(80, 10, 120), // head, 3
		kickEvent(50, 10, 120), // trunk, 2
		kickEvent(20, 10, 120), // no score
		kickEvent(80, 90, 120), // spinning head, 4
	}
	res := SimulateMatch(kicks)
	if res.TotalPoints != 9 {
		t.Errorf("TotalPoints = %d, want 9", res.TotalPoints)
	}
	if res.HeadKicks != 2 || res.TrunkKicks != 1 {
		t.Errorf("zone counts = %d head / %d trunk, want 2/1", res.HeadKicks, res.TrunkKicks)
	}
	if res.ScoringRate != 75 {
		t.Errorf("ScoringRate = %v, want 75", res.ScoringRate)
	}
	if res.PointsPerKick != 2.25 {
		t.Errorf("PointsPerKick = %v, want 2.25", res.PointsPerKick)
	}
}

func TestSimulateMatchEmpty(t *testing.T) {
	res := SimulateMatch(nil)
	if res.TotalPoints != 0 || res.ScoringRate != 0 {
		t.Errorf("empty match = %+v, want zero result", res)
	}
}
