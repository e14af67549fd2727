package kick

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/dojometrics/strikeform/internal/pose"
)

// Stance tuning. Each of the four checks is worth 25 points.
const (
	stanceWidthMin = 1.2 // feet width as multiple of shoulder width
	stanceWidthMax = 1.8

	// guardMargin is how far below the chin (normalized units) the hands
	// may sit and still count as a raised guard.
	guardMargin = 0.06
	// chinOffset approximates the chin position below the nose.
	chinOffset = 0.08

	kneeBendMin = 10.0 // degrees of flex off a locked knee
	kneeBendMax = 30.0

	weightFrontMin = 40.0
	weightFrontMax = 60.0
)

// StanceMetrics are the measured properties of one fighting-stance frame.
type StanceMetrics struct {
	FeetWidthRatio float64 `json:"feet_width_ratio"`
	GuardRaised    bool    `json:"guard_raised"`
	KneeBend       float64 `json:"knee_bend"`
	WeightFront    float64 `json:"weight_front"` // percent on the lead leg
}

// StanceAssessment is the scored result for one frame.
type StanceAssessment struct {
	Frame    int           `json:"frame"`
	Score    int           `json:"score"` // 0-100, 25 per check
	Metrics  StanceMetrics `json:"metrics"`
	Feedback []Feedback    `json:"feedback"`
}

// StanceAnalyzer scores fighting-stance quality per frame and keeps a
// session history for averaging.
type StanceAnalyzer struct {
	history []StanceAssessment
}

// NewStanceAnalyzer returns an empty stance analyzer.
func NewStanceAnalyzer() *StanceAnalyzer {
	return &StanceAnalyzer{}
}

// Analyze scores the stance in one frame. Checks whose landmarks are absent
// award no points and produce no feedback.
func (sa *StanceAnalyzer) Analyze(f pose.Frame, frameIndex int) StanceAssessment {
	out := StanceAssessment{Frame: frameIndex}

	lAnkle, lAnkleOK := f.Get(pose.LeftAnkle)
	rAnkle, rAnkleOK := f.Get(pose.RightAnkle)
	lSh, lShOK := f.Get(pose.LeftShoulder)
	rSh, rShOK := f.Get(pose.RightShoulder)
	lHip, lHipOK := f.Get(pose.LeftHip)
	rHip, rHipOK := f.Get(pose.RightHip)

	// Feet width relative to shoulder width.
	if lAnkleOK && rAnkleOK && lShOK && rShOK {
		feet := math.Abs(lAnkle.X - rAnkle.X)
		shoulders := math.Abs(lSh.X - rSh.X)
		ratio := feet / (shoulders + 0.01)
		out.Metrics.FeetWidthRatio = ratio

		if ratio >= stanceWidthMin && ratio <= stanceWidthMax {
			out.Score += 25
			out.Feedback = append(out.Feedback, Feedback{"Good stance width", FeedbackSuccess})
		} else {
			out.Feedback = append(out.Feedback, Feedback{
				fmt.Sprintf("Adjust stance width (current: %.1fx shoulders)", ratio), FeedbackWarning})
		}
	}

	// Guard height: hands near chin level.
	if lWrist, ok := f.Get(pose.LeftWrist); ok {
		if rWrist, ok := f.Get(pose.RightWrist); ok {
			if nose, ok := f.Get(pose.Nose); ok {
				handY := (lWrist.Y + rWrist.Y) / 2
				chinY := nose.Y + chinOffset
				out.Metrics.GuardRaised = handY <= chinY+guardMargin
				if out.Metrics.GuardRaised {
					out.Score += 25
					out.Feedback = append(out.Feedback, Feedback{"Good guard position", FeedbackSuccess})
				} else {
					out.Feedback = append(out.Feedback, Feedback{"Raise hands to chin level", FeedbackWarning})
				}
			}
		}
	}

	// Knee bend: average flex off the locked position for both legs.
	if lHipOK && rHipOK && lAnkleOK && rAnkleOK {
		lKnee, lKneeOK := f.Get(pose.LeftKnee)
		rKnee, rKneeOK := f.Get(pose.RightKnee)
		if lKneeOK && rKneeOK {
			lAngle := pose.Angle2D(lHip, lKnee, lAnkle)
			rAngle := pose.Angle2D(rHip, rKnee, rAnkle)
			bend := 180 - (lAngle+rAngle)/2
			out.Metrics.KneeBend = bend

			switch {
			case bend >= kneeBendMin && bend <= kneeBendMax:
				out.Score += 25
				out.Feedback = append(out.Feedback, Feedback{"Good knee bend", FeedbackSuccess})
			case bend < kneeBendMin:
				out.Feedback = append(out.Feedback, Feedback{"Bend knees more - legs too straight", FeedbackWarning})
			default:
				out.Feedback = append(out.Feedback, Feedback{"Standing too low - straighten slightly", FeedbackWarning})
			}
		}
	}

	// Weight distribution, estimated from hip center versus feet center.
	if lAnkleOK && rAnkleOK && lHipOK && rHipOK {
		hipCenter := (lHip.X + rHip.X) / 2
		feetCenter := (lAnkle.X + rAnkle.X) / 2
		offset := hipCenter - feetCenter

		weightFront := 50.0
		if math.Abs(offset) >= 0.03 {
			weightFront = 50 + offset*330
		}
		weightFront = math.Max(30, math.Min(70, weightFront))
		out.Metrics.WeightFront = weightFront

		if weightFront >= weightFrontMin && weightFront <= weightFrontMax {
			out.Score += 25
			out.Feedback = append(out.Feedback, Feedback{"Balanced weight distribution", FeedbackSuccess})
		} else {
			out.Feedback = append(out.Feedback, Feedback{
				fmt.Sprintf("Weight distribution: %.0f%% front", weightFront), FeedbackWarning})
		}
	}

	sa.history = append(sa.history, out)
	return out
}

// AverageScore returns the mean stance score across the session, or 0 with
// no history.
func (sa *StanceAnalyzer) AverageScore() float64 {
	if len(sa.history) == 0 {
		return 0
	}
	scores := make([]float64, len(sa.history))
	for i, s := range sa.history {
		scores[i] = float64(s.Score)
	}
	return stat.Mean(scores, nil)
}
