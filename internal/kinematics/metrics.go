// Package kinematics derives per-frame biomechanical metrics from labeled
// keypoint frames: joint angles, kick height, hip rotation, and leg-role
// assignment.
package kinematics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/dojometrics/strikeform/internal/pose"
)

// Leg identifies which leg fills a role in the current frame.
type Leg string

const (
	LegLeft  Leg = "left"
	LegRight Leg = "right"
)

// Level classifies kick height against competition target zones.
type Level string

const (
	LevelLow   Level = "LOW"
	LevelBody  Level = "BODY"
	LevelChest Level = "CHEST"
	LevelHead  Level = "HEAD"
)

// Kick height thresholds, as percent of body height.
const (
	HeadLevelMin  = 70.0
	ChestLevelMin = 50.0
	BodyLevelMin  = 30.0
)

// Hip rotation proxy tuning. The proxy scales the depth-axis separation of
// the shoulders; these are calibrated defaults for a roughly frontal camera,
// not physical constants.
const (
	HipRotationScale  = 200.0
	HipRotationMaxDeg = 45.0
)

// minBodyHeight is the smallest nose-to-ankle extent (normalized units)
// accepted for kick height normalization.
const minBodyHeight = 0.01

// FrameMetrics is the per-frame metrics record. Records are immutable once
// created and are appended to an ordered session history by the caller.
type FrameMetrics struct {
	FrameIndex int     `json:"frame_index"`
	FrameTime  float64 `json:"frame_time"` // seconds from video start

	KickHeight  float64 `json:"kick_height"` // 0-100, percent of body height
	KneeAngle   float64 `json:"knee_angle"`  // kicking-leg knee extension, degrees
	HipFlexion  float64 `json:"hip_flexion"` // shoulder-hip-knee angle, degrees
	SupportKnee float64 `json:"support_knee"`
	HipRotation float64 `json:"hip_rotation"` // proxy, degrees, capped

	KickingLeg Leg     `json:"kicking_leg"`
	Level      Level   `json:"level"`
	Visibility float64 `json:"visibility"` // lower-body confidence, percent
}

// Calculator computes FrameMetrics from keypoint frames. It is stateless;
// one instance may serve many frames, or many goroutines, concurrently.
type Calculator struct{}

// NewCalculator returns a metric calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// lowerBody lists the landmarks whose confidence feeds the visibility score.
var lowerBody = []pose.Landmark{
	pose.LeftHip, pose.RightHip,
	pose.LeftKnee, pose.RightKnee,
	pose.LeftAnkle, pose.RightAnkle,
}

// Analyze derives metrics for one frame. It reports ok=false when the frame
// cannot support analysis: either hip is absent, or both ankles are absent.
// A false return means skip this frame, not abort the stream.
func (c *Calculator) Analyze(f pose.Frame, frameIndex int, frameTime float64) (FrameMetrics, bool) {
	lHip, lHipOK := f.Get(pose.LeftHip)
	rHip, rHipOK := f.Get(pose.RightHip)
	if !lHipOK || !rHipOK {
		return FrameMetrics{}, false
	}

	lAnkle, lAnkleOK := f.Get(pose.LeftAnkle)
	rAnkle, rAnkleOK := f.Get(pose.RightAnkle)
	if !lAnkleOK && !rAnkleOK {
		return FrameMetrics{}, false
	}

	// The leg whose foot (or ankle) sits higher in the image is kicking.
	// Y increases downward, so smaller is higher. A tie keeps the right
	// leg as support.
	lY := footY(f, pose.LeftFoot, lAnkle, lAnkleOK)
	rY := footY(f, pose.RightFoot, rAnkle, rAnkleOK)

	m := FrameMetrics{FrameIndex: frameIndex, FrameTime: frameTime}

	var kickFoot pose.Point
	var kickFootOK bool
	var kickHip, supportHip pose.Point
	var kickKnee, supportKnee pose.Point
	var kickAnkle, supportAnkle pose.Point
	var kickKneeOK, supportKneeOK, kickAnkleOK, supportAnkleOK bool
	var kickShoulder pose.Point
	var kickShoulderOK bool

	if lY <= rY {
		m.KickingLeg = LegLeft
		kickFoot, kickFootOK = f.First(pose.LeftFoot, pose.LeftAnkle)
		kickHip, supportHip = lHip, rHip
		kickKnee, kickKneeOK = f.Get(pose.LeftKnee)
		supportKnee, supportKneeOK = f.Get(pose.RightKnee)
		kickAnkle, kickAnkleOK = lAnkle, lAnkleOK
		supportAnkle, supportAnkleOK = rAnkle, rAnkleOK
		kickShoulder, kickShoulderOK = f.Get(pose.LeftShoulder)
	} else {
		m.KickingLeg = LegRight
		kickFoot, kickFootOK = f.First(pose.RightFoot, pose.RightAnkle)
		kickHip, supportHip = rHip, lHip
		kickKnee, kickKneeOK = f.Get(pose.RightKnee)
		supportKnee, supportKneeOK = f.Get(pose.LeftKnee)
		kickAnkle, kickAnkleOK = rAnkle, rAnkleOK
		supportAnkle, supportAnkleOK = lAnkle, lAnkleOK
		kickShoulder, kickShoulderOK = f.Get(pose.RightShoulder)
	}

	if nose, ok := f.Get(pose.Nose); ok && supportAnkleOK && kickFootOK {
		m.KickHeight = kickHeight(supportAnkle, nose, kickFoot)
	}
	m.Level = ClassifyLevel(m.KickHeight)

	if kickKneeOK && kickAnkleOK {
		m.KneeAngle = pose.Angle(kickHip, kickKnee, kickAnkle)
	}
	if kickShoulderOK && kickKneeOK {
		m.HipFlexion = pose.Angle(kickShoulder, kickHip, kickKnee)
	}
	if supportKneeOK && supportAnkleOK {
		m.SupportKnee = pose.Angle(supportHip, supportKnee, supportAnkle)
	}

	if lSh, ok := f.Get(pose.LeftShoulder); ok {
		if rSh, ok := f.Get(pose.RightShoulder); ok {
			m.HipRotation = math.Min(HipRotationMaxDeg, math.Abs(lSh.Z-rSh.Z)*HipRotationScale)
		}
	}

	m.Visibility = lowerBodyVisibility(f)

	return m, true
}

// footY returns the vertical coordinate of the foot, falling back to the
// ankle, then to the bottom of the frame so an invisible leg never wins the
// kicking role.
func footY(f pose.Frame, foot pose.Landmark, ankle pose.Point, ankleOK bool) float64 {
	if p, ok := f.Get(foot); ok {
		return p.Y
	}
	if ankleOK {
		return ankle.Y
	}
	return 1.0
}

// kickHeight normalizes the foot's elevation above the support ankle to body
// height (support ankle to nose), as a 0-100 percentage.
func kickHeight(supportAnkle, nose, kickFoot pose.Point) float64 {
	bodyH := math.Abs(supportAnkle.Y - nose.Y)
	if bodyH < minBodyHeight {
		return 0
	}
	h := (supportAnkle.Y - kickFoot.Y) / bodyH * 100
	return math.Max(0, math.Min(100, h))
}

// ClassifyLevel maps a kick height percentage to its target zone.
func ClassifyLevel(height float64) Level {
	switch {
	case height >= HeadLevelMin:
		return LevelHead
	case height >= ChestLevelMin:
		return LevelChest
	case height >= BodyLevelMin:
		return LevelBody
	default:
		return LevelLow
	}
}

// lowerBodyVisibility averages the confidence of the lower-body landmarks
// that are present at all, scaled to percent.
func lowerBodyVisibility(f pose.Frame) float64 {
	var present []float64
	for _, name := range lowerBody {
		if v := f.Visibility(name); v > 0 {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return 0
	}
	return stat.Mean(present, nil) * 100
}
