// Package injury detects dangerous biomechanics in pose frames and tracks
// fatigue across a session. Risk scoring is additive per frame; fatigue is
// judged against a baseline over a bounded rolling window.
package injury

import (
	"fmt"
	"math"

	"github.com/dojometrics/strikeform/internal/kinematics"
	"github.com/dojometrics/strikeform/internal/pose"
)

// Severity grades an alert.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// AlertType names a danger pattern.
type AlertType string

const (
	AlertKneeValgus     AlertType = "KNEE_VALGUS"
	AlertHipDrop        AlertType = "HIP_DROP"
	AlertTrunkLean      AlertType = "TRUNK_LEAN"
	AlertHyperextension AlertType = "HYPEREXTENSION"
)

// RiskLevel is the per-frame overall risk classification.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Safe-range thresholds, from sports-medicine reference values.
const (
	valgusWarnDeg   = 10.0 // knee tracking inward
	valgusDangerDeg = 15.0 // ACL injury risk

	hipDropWarnPct   = 10.0
	hipDropDangerPct = 15.0

	trunkLeanDangerDeg = 30.0

	hyperextensionDeg = 175.0
)

// Risk score contributions per finding, summed and capped at 100.
const (
	valgusHighScore   = 40
	valgusMediumScore = 20
	hipDropHighScore  = 25
	hipDropMedScore   = 10
	trunkLeanScore    = 20
	hyperextScore     = 30

	riskHighMin   = 50
	riskMediumMin = 25
)

// Alert is one advisory finding. Alerts are records, not errors.
type Alert struct {
	Type           AlertType      `json:"type"`
	Severity       Severity       `json:"severity"`
	Message        string         `json:"message"`
	Leg            kinematics.Leg `json:"leg,omitempty"`
	Recommendation string         `json:"recommendation,omitempty"`
}

// Assessment is the per-frame injury risk result. Optional measurements are
// nil when their landmarks were not visible.
type Assessment struct {
	Frame int     `json:"frame"`
	Time  float64 `json:"time"`

	LeftKneeValgus  *float64 `json:"left_knee_valgus,omitempty"`
	RightKneeValgus *float64 `json:"right_knee_valgus,omitempty"`
	HipDrop         *float64 `json:"hip_drop,omitempty"`
	TrunkLean       *float64 `json:"trunk_lean,omitempty"`

	Alerts    []Alert   `json:"alerts"`
	RiskScore int       `json:"overall_risk_score"` // 0-100
	RiskLevel RiskLevel `json:"risk_level"`
}

// RiskAnalyzer scores frames for injury risk and accumulates a session-long
// alert history for end-of-session summarization. One analyzer serves one
// session; it holds no locks and must see frames in order.
type RiskAnalyzer struct {
	assessments  []Assessment // frames that produced alerts
	alertHistory []Alert
}

// NewRiskAnalyzer returns an empty analyzer.
func NewRiskAnalyzer() *RiskAnalyzer {
	return &RiskAnalyzer{}
}

// Analyze scores one frame. Checks whose landmarks are absent are skipped;
// a frame with no visible lower body simply reports low risk.
func (ra *RiskAnalyzer) Analyze(f pose.Frame, frameIndex int, frameTime float64) Assessment {
	out := Assessment{Frame: frameIndex, Time: frameTime}
	score := 0

	lHip, lHipOK := f.Get(pose.LeftHip)
	rHip, rHipOK := f.Get(pose.RightHip)

	score += ra.checkValgus(f, &out, kinematics.LegLeft, pose.LeftHip, pose.LeftKnee, pose.LeftAnkle)
	score += ra.checkValgus(f, &out, kinematics.LegRight, pose.RightHip, pose.RightKnee, pose.RightAnkle)

	// Hip drop: vertical separation of the hips as percent of body scale.
	if lHipOK && rHipOK {
		drop := math.Abs(lHip.Y-rHip.Y) * 100
		out.HipDrop = &drop
		switch {
		case drop > hipDropDangerPct:
			out.Alerts = append(out.Alerts, Alert{
				Type:           AlertHipDrop,
				Severity:       SeverityHigh,
				Message:        fmt.Sprintf("Excessive hip drop %.1f%% - weak gluteus medius", drop),
				Recommendation: "Strengthen hip abductors",
			})
			score += hipDropHighScore
		case drop > hipDropWarnPct:
			out.Alerts = append(out.Alerts, Alert{
				Type:           AlertHipDrop,
				Severity:       SeverityMedium,
				Message:        fmt.Sprintf("Hip drop detected %.1f%%", drop),
				Recommendation: "Focus on hip stability",
			})
			score += hipDropMedScore
		}
	}

	// Trunk lean: shoulder-midpoint to hip-midpoint against vertical.
	if lSh, ok := f.Get(pose.LeftShoulder); ok {
		if rSh, ok := f.Get(pose.RightShoulder); ok && lHipOK && rHipOK {
			shoulderMid := pose.Midpoint(lSh, rSh)
			hipMid := pose.Midpoint(lHip, rHip)
			lean := math.Atan2(shoulderMid.X-hipMid.X, hipMid.Y-shoulderMid.Y) * 180 / math.Pi
			out.TrunkLean = &lean

			if math.Abs(lean) > trunkLeanDangerDeg {
				out.Alerts = append(out.Alerts, Alert{
					Type:           AlertTrunkLean,
					Severity:       SeverityHigh,
					Message:        fmt.Sprintf("Excessive trunk lean %.1f° - balance risk", lean),
					Recommendation: "Core strengthening needed",
				})
				score += trunkLeanScore
			}
		}
	}

	score += ra.checkHyperextension(f, &out, kinematics.LegLeft, pose.LeftHip, pose.LeftKnee, pose.LeftAnkle)
	score += ra.checkHyperextension(f, &out, kinematics.LegRight, pose.RightHip, pose.RightKnee, pose.RightAnkle)

	if score > 100 {
		score = 100
	}
	out.RiskScore = score
	switch {
	case score >= riskHighMin:
		out.RiskLevel = RiskHigh
	case score >= riskMediumMin:
		out.RiskLevel = RiskMedium
	default:
		out.RiskLevel = RiskLow
	}

	if len(out.Alerts) > 0 {
		ra.assessments = append(ra.assessments, out)
		ra.alertHistory = append(ra.alertHistory, out.Alerts...)
	}
	return out
}

// checkValgus measures inward knee collapse for one leg and appends any
// alert, returning the score contribution.
func (ra *RiskAnalyzer) checkValgus(f pose.Frame, out *Assessment, leg kinematics.Leg, hipL, kneeL, ankleL pose.Landmark) int {
	hip, ok1 := f.Get(hipL)
	knee, ok2 := f.Get(kneeL)
	ankle, ok3 := f.Get(ankleL)
	if !ok1 || !ok2 || !ok3 {
		return 0
	}

	valgus := ValgusAngle(hip, knee, ankle)
	if leg == kinematics.LegLeft {
		out.LeftKneeValgus = &valgus
	} else {
		out.RightKneeValgus = &valgus
	}

	switch {
	case math.Abs(valgus) > valgusDangerDeg:
		out.Alerts = append(out.Alerts, Alert{
			Type:     AlertKneeValgus,
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("%s knee valgus %.1f° - ACL injury risk", legLabel(leg), valgus),
			Leg:      leg,
		})
		return valgusHighScore
	case math.Abs(valgus) > valgusWarnDeg:
		out.Alerts = append(out.Alerts, Alert{
			Type:     AlertKneeValgus,
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("%s knee tracking inward %.1f°", legLabel(leg), valgus),
			Leg:      leg,
		})
		return valgusMediumScore
	default:
		return 0
	}
}

// checkHyperextension flags a support knee locked past straight.
func (ra *RiskAnalyzer) checkHyperextension(f pose.Frame, out *Assessment, leg kinematics.Leg, hipL, kneeL, ankleL pose.Landmark) int {
	hip, ok1 := f.Get(hipL)
	knee, ok2 := f.Get(kneeL)
	ankle, ok3 := f.Get(ankleL)
	if !ok1 || !ok2 || !ok3 {
		return 0
	}

	angle := pose.Angle2D(hip, knee, ankle)
	if angle <= hyperextensionDeg {
		return 0
	}
	out.Alerts = append(out.Alerts, Alert{
		Type:           AlertHyperextension,
		Severity:       SeverityHigh,
		Message:        fmt.Sprintf("%s knee hyperextension %.0f°", legLabel(leg), angle),
		Leg:            leg,
		Recommendation: "Avoid locking knee joint",
	})
	return hyperextScore
}

// ValgusAngle returns the frontal-plane deviation of the knee from the
// hip-ankle midline, in degrees. Positive values mean the knee sits toward
// larger X than the midline.
func ValgusAngle(hip, knee, ankle pose.Point) float64 {
	offset := knee.X - (hip.X+ankle.X)/2
	legLength := math.Abs(hip.Y - ankle.Y)
	if legLength <= 0 {
		return 0
	}
	return math.Atan(offset/legLength) * 180 / math.Pi
}

func legLabel(leg kinematics.Leg) string {
	if leg == kinematics.LegLeft {
		return "Left"
	}
	return "Right"
}
