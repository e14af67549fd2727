package kick

import (
	"math"

	"github.com/dojometrics/strikeform/internal/kinematics"
	"github.com/dojometrics/strikeform/internal/pose"
)

// Type names a taekwondo kick style.
type Type string

// The eight kick styles the classifier can identify.
const (
	TypeRoundhouse Type = "dollyo_chagi"     // roundhouse
	TypeFront      Type = "ap_chagi"         // front kick
	TypeSide       Type = "yeop_chagi"       // side kick
	TypeBack       Type = "dwi_chagi"        // back kick
	TypeAxe        Type = "naeryeo_chagi"    // axe kick
	TypeHook       Type = "huryo_chagi"      // hook kick
	TypeCrescent   Type = "bandal_chagi"     // crescent kick
	TypeSpinning   Type = "mom_dollyo_chagi" // spinning kick
	TypeUnknown    Type = "unknown"
)

// DisplayNames maps kick types to their English/Korean display names.
var DisplayNames = map[Type]string{
	TypeRoundhouse: "Roundhouse Kick (Dollyo Chagi)",
	TypeFront:      "Front Kick (Ap Chagi)",
	TypeSide:       "Side Kick (Yeop Chagi)",
	TypeBack:       "Back Kick (Dwi Chagi)",
	TypeAxe:        "Axe Kick (Naeryeo Chagi)",
	TypeHook:       "Hook Kick (Huryo Chagi)",
	TypeCrescent:   "Crescent Kick (Bandal Chagi)",
	TypeSpinning:   "Spinning Kick (Mom Dollyo Chagi)",
	TypeUnknown:    "Unknown Technique",
}

// FootPath describes the shape the kicking foot traces.
type FootPath string

const (
	PathLinear     FootPath = "linear"
	PathCircular   FootPath = "circular"
	PathVertical   FootPath = "vertical"
	PathHook       FootPath = "hook"
	PathArc        FootPath = "arc"
	PathAnalyzing  FootPath = "analyzing"  // not enough samples yet
	PathStationary FootPath = "stationary" // no kicking leg identified
)

// Range is a closed interval of degrees.
type Range struct {
	Min, Max float64
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Near reports whether v lies within tol degrees of either bound.
func (r Range) Near(v, tol float64) bool {
	return math.Abs(v-r.Min) < tol || math.Abs(v-r.Max) < tol
}

// Signature is the template a kick type is matched against.
type Signature struct {
	Type        Type
	HipRotation Range
	KneeChamber Range
	FootPath    FootPath
}

// Signatures holds the eight type templates, calibrated from reference
// footage of each technique.
var Signatures = []Signature{
	{TypeRoundhouse, Range{45, 90}, Range{90, 140}, PathCircular},
	{TypeFront, Range{0, 30}, Range{90, 130}, PathLinear},
	{TypeSide, Range{80, 100}, Range{70, 120}, PathLinear},
	{TypeBack, Range{150, 180}, Range{60, 100}, PathLinear},
	{TypeAxe, Range{0, 45}, Range{150, 180}, PathVertical},
	{TypeHook, Range{60, 120}, Range{100, 160}, PathHook},
	{TypeCrescent, Range{30, 60}, Range{140, 180}, PathArc},
	{TypeSpinning, Range{180, 360}, Range{90, 150}, PathCircular},
}

// Matching tuning.
const (
	// DefaultAcceptThreshold is the minimum match score for a definitive
	// classification. Below it the top signature is still reported as a
	// best guess, a deliberate diagnostic policy.
	DefaultAcceptThreshold = 0.65

	hipRotationTolerance = 20.0 // near-range half-credit band, degrees
	kneeChamberTolerance = 15.0

	// minPathSamples is the trajectory length required before the foot
	// path shape is considered known.
	minPathSamples = 10

	// legHeightMargin is the normalized foot-height difference required to
	// call one leg the kicking leg during classification.
	legHeightMargin = 0.05
)

// Classification is the result of matching one frame against the signature
// table. It is derived data, not persisted.
type Classification struct {
	Type       Type    `json:"kick_type"`
	Name       string  `json:"kick_name"`
	Confidence float64 `json:"confidence"`

	// BestGuess carries the top-scoring type when confidence fell below
	// the acceptance threshold and Type is TypeUnknown.
	BestGuess Type `json:"best_guess,omitempty"`

	HipRotation float64          `json:"hip_rotation"`
	KneeChamber float64          `json:"knee_chamber"`
	FootPath    FootPath         `json:"foot_path"`
	KickingLeg  kinematics.Leg   `json:"kicking_leg"`
	Scores      map[Type]float64 `json:"all_scores,omitempty"`
}

// Classifier identifies kick styles from pose frames. It owns a bounded
// foot-path history, so one classifier serves exactly one frame stream.
type Classifier struct {
	accept float64
	path   *TrajectoryTracker
}

// NewClassifier returns a classifier with the default acceptance threshold.
func NewClassifier() *Classifier {
	return NewClassifierWith(DefaultAcceptThreshold)
}

// NewClassifierWith returns a classifier with an explicit acceptance
// threshold; out-of-range values fall back to the default.
func NewClassifierWith(accept float64) *Classifier {
	if accept <= 0 || accept > 1 {
		accept = DefaultAcceptThreshold
	}
	return &Classifier{
		accept: accept,
		path:   NewTrajectoryTracker(DefaultTrajectoryCapacity),
	}
}

// Observe classifies the current frame. It reports ok=false when no kicking
// leg can be identified (feet level or legs not visible); the frame still
// advances the foot-path history when possible.
func (c *Classifier) Observe(f pose.Frame) (Classification, bool) {
	leg, ok := c.kickingLeg(f)
	if !ok {
		return Classification{}, false
	}

	hipRotation := HipRotationAngle(f)
	chamber := KneeChamberAngle(f, leg)
	path := c.observeFootPath(f, leg)

	result := Classification{
		HipRotation: hipRotation,
		KneeChamber: chamber,
		FootPath:    path,
		KickingLeg:  leg,
		Scores:      make(map[Type]float64, len(Signatures)),
	}

	var best Type
	bestScore := -1.0
	for _, sig := range Signatures {
		score := matchScore(sig, hipRotation, chamber, path)
		result.Scores[sig.Type] = score
		if score > bestScore {
			bestScore = score
			best = sig.Type
		}
	}

	result.Confidence = bestScore
	if bestScore >= c.accept {
		result.Type = best
		result.Name = DisplayNames[best]
	} else {
		result.Type = TypeUnknown
		result.Name = DisplayNames[TypeUnknown]
		result.BestGuess = best
	}
	return result, true
}

// matchScore sums three unit sub-scores (hip rotation, knee chamber, foot
// path) and normalizes by the maximum of 3.
func matchScore(sig Signature, hipRotation, chamber float64, path FootPath) float64 {
	score := 0.0

	switch {
	case sig.HipRotation.Contains(hipRotation):
		score += 1.0
	case sig.HipRotation.Near(hipRotation, hipRotationTolerance):
		score += 0.5
	}

	switch {
	case sig.KneeChamber.Contains(chamber):
		score += 1.0
	case sig.KneeChamber.Near(chamber, kneeChamberTolerance):
		score += 0.5
	}

	switch {
	case path == sig.FootPath:
		score += 1.0
	case path == PathCircular && (sig.FootPath == PathHook || sig.FootPath == PathArc):
		// Hooks and arcs read as circular at this sampling rate.
		score += 0.5
	}

	return score / 3.0
}

// kickingLeg identifies the raised leg from foot height, requiring a clear
// margin so a square stance does not classify.
func (c *Classifier) kickingLeg(f pose.Frame) (kinematics.Leg, bool) {
	lFoot, lOK := f.Get(pose.LeftFoot)
	rFoot, rOK := f.Get(pose.RightFoot)
	if !lOK || !rOK {
		return "", false
	}
	switch {
	case lFoot.Y < rFoot.Y-legHeightMargin:
		return kinematics.LegLeft, true
	case rFoot.Y < lFoot.Y-legHeightMargin:
		return kinematics.LegRight, true
	default:
		return "", false
	}
}

// observeFootPath appends the kicking foot to the path history and infers
// the traced shape by comparing horizontal and vertical coordinate ranges.
func (c *Classifier) observeFootPath(f pose.Frame, leg kinematics.Leg) FootPath {
	foot := pose.LeftFoot
	if leg == kinematics.LegRight {
		foot = pose.RightFoot
	}
	p, ok := f.Get(foot)
	if !ok {
		return PathStationary
	}
	c.path.Add(p.X, p.Y, 0)

	if c.path.Size() < minPathSamples {
		return PathAnalyzing
	}

	points := c.path.Points()
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, pt := range points[1:] {
		minX = math.Min(minX, pt.X)
		maxX = math.Max(maxX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxY = math.Max(maxY, pt.Y)
	}

	xRange := maxX - minX
	yRange := maxY - minY
	switch {
	case yRange > xRange*2:
		return PathVertical
	case xRange > yRange*2:
		return PathLinear
	default:
		return PathCircular
	}
}

// ResetPath clears the foot-path history, e.g. between detected kicks.
func (c *Classifier) ResetPath() {
	c.path.Clear()
}

// HipRotationAngle estimates body rotation as the angular difference between
// the hip line and the shoulder line in the image plane. Unlike the capped
// per-frame metrics proxy, this spans the full 0-360 range the spinning
// signatures need.
func HipRotationAngle(f pose.Frame) float64 {
	lHip, ok1 := f.Get(pose.LeftHip)
	rHip, ok2 := f.Get(pose.RightHip)
	lSh, ok3 := f.Get(pose.LeftShoulder)
	rSh, ok4 := f.Get(pose.RightShoulder)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return 0
	}

	hipAngle := math.Atan2(rHip.Y-lHip.Y, rHip.X-lHip.X)
	shoulderAngle := math.Atan2(rSh.Y-lSh.Y, rSh.X-lSh.X)
	return math.Abs((hipAngle - shoulderAngle) * 180 / math.Pi)
}

// KneeChamberAngle returns the kicking-leg hip-knee-ankle angle in degrees,
// or 0 when any of the three points is absent.
func KneeChamberAngle(f pose.Frame, leg kinematics.Leg) float64 {
	hip, knee, ankle := pose.LeftHip, pose.LeftKnee, pose.LeftAnkle
	if leg == kinematics.LegRight {
		hip, knee, ankle = pose.RightHip, pose.RightKnee, pose.RightAnkle
	}

	h, ok1 := f.Get(hip)
	k, ok2 := f.Get(knee)
	a, ok3 := f.Get(ankle)
	if !ok1 || !ok2 || !ok3 {
		return 0
	}
	return pose.Angle(h, k, a)
}
