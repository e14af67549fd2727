package kick

import "github.com/dojometrics/strikeform/internal/kinematics"

// FeedbackStatus tags a qualitative feedback line.
type FeedbackStatus string

const (
	FeedbackSuccess FeedbackStatus = "success"
	FeedbackInfo    FeedbackStatus = "info"
	FeedbackWarning FeedbackStatus = "warning"
)

// Feedback is one qualitative coaching line produced alongside the score.
type Feedback struct {
	Message string         `json:"message"`
	Status  FeedbackStatus `json:"status"`
}

// Score applies the technique rubric to one metrics record and returns a
// 0-100 score with one feedback line per band.
//
// Bands: knee extension 25, kick height 30, hip flexion 20, support-leg
// stability 15, visibility bonus 10.
func Score(m kinematics.FrameMetrics) (int, []Feedback) {
	score := 0
	feedback := make([]Feedback, 0, 5)

	switch {
	case m.KneeAngle >= 160:
		score += 25
		feedback = append(feedback, Feedback{"Full leg extension - maximum power", FeedbackSuccess})
	case m.KneeAngle >= 140:
		score += 20
		feedback = append(feedback, Feedback{"Good extension - aim for full lock", FeedbackInfo})
	case m.KneeAngle >= 120:
		score += 15
		feedback = append(feedback, Feedback{"Moderate extension - extend further", FeedbackWarning})
	default:
		score += 10
		feedback = append(feedback, Feedback{"Bent knee - focus on extension", FeedbackWarning})
	}

	switch {
	case m.KickHeight >= kinematics.HeadLevelMin:
		score += 30
		feedback = append(feedback, Feedback{"Head level - competition standard", FeedbackSuccess})
	case m.KickHeight >= kinematics.ChestLevelMin:
		score += 22
		feedback = append(feedback, Feedback{"Chest level - good target area", FeedbackInfo})
	case m.KickHeight >= kinematics.BodyLevelMin:
		score += 15
		feedback = append(feedback, Feedback{"Body level - increase flexibility", FeedbackWarning})
	default:
		score += 8
		feedback = append(feedback, Feedback{"Low kick - work on hip mobility", FeedbackWarning})
	}

	switch {
	case m.HipFlexion >= 110:
		score += 20
		feedback = append(feedback, Feedback{"Excellent hip chamber", FeedbackSuccess})
	case m.HipFlexion >= 90:
		score += 15
		feedback = append(feedback, Feedback{"Good chamber position", FeedbackInfo})
	default:
		score += 10
		feedback = append(feedback, Feedback{"Improve knee chamber", FeedbackWarning})
	}

	switch {
	case m.SupportKnee >= 160 && m.SupportKnee <= 180:
		score += 15
		feedback = append(feedback, Feedback{"Stable base - excellent balance", FeedbackSuccess})
	case m.SupportKnee >= 140:
		score += 10
		feedback = append(feedback, Feedback{"Good stability", FeedbackInfo})
	default:
		score += 5
		feedback = append(feedback, Feedback{"Straighten support leg", FeedbackWarning})
	}

	switch {
	case m.Visibility >= 80:
		score += 10
	case m.Visibility >= 60:
		score += 7
	default:
		score += 4
	}

	if score > 100 {
		score = 100
	}
	return score, feedback
}

// gradeBand is one row of the descending grade table.
type gradeBand struct {
	threshold int
	grade     string
	label     string
}

var gradeBands = []gradeBand{
	{90, "A+", "Elite"},
	{85, "A", "Excellent"},
	{80, "A-", "Very Good"},
	{75, "B+", "Good"},
	{70, "B", "Above Average"},
	{65, "B-", "Fair"},
	{60, "C+", "Average"},
	{55, "C", "Below Average"},
	{0, "D", "Needs Work"},
}

// Grade maps a technique score to its letter grade and label.
func Grade(score int) (grade, label string) {
	for _, b := range gradeBands {
		if score >= b.threshold {
			return b.grade, b.label
		}
	}
	return "D", "Needs Work"
}
