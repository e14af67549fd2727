package injury

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Fatigue detection tuning.
const (
	// FatigueWindowSize bounds the rolling window of recent samples.
	FatigueWindowSize = 30
	// fatigueMinSamples is the window fill required before fatigue can be
	// assessed at all.
	fatigueMinSamples = 10
	// fatigueRecentSamples is how many trailing samples the rolling
	// averages read.
	fatigueRecentSamples = 10

	scoreDropPct    = 15.0 // technique score decline vs baseline
	heightDropPct   = 20.0 // kick height decline vs baseline
	supportTrendDeg = 10.0 // support knee decline across the window

	scoreDropWeight   = 30
	heightDropWeight  = 35
	formDegradeWeight = 25

	// FatigueThreshold is the cumulative level at which the fatigue flag
	// fires.
	FatigueThreshold = 50
)

// IndicatorType names a fatigue signal.
type IndicatorType string

const (
	IndicatorScoreDrop   IndicatorType = "SCORE_DROP"
	IndicatorHeightDrop  IndicatorType = "HEIGHT_DROP"
	IndicatorFormDegrade IndicatorType = "FORM_DEGRADATION"
)

// Indicator is one triggered fatigue signal.
type Indicator struct {
	Type    IndicatorType `json:"type"`
	Value   string        `json:"value"`
	Message string        `json:"message"`
}

// FatigueSample is one frame's contribution to the fatigue window.
type FatigueSample struct {
	Score       float64
	KickHeight  float64
	SupportKnee float64
}

// FatigueAssessment reports the fatigue state at one frame.
type FatigueAssessment struct {
	Frame          int         `json:"frame"`
	Level          int         `json:"fatigue_level"` // 0-100
	IsFatigued     bool        `json:"is_fatigued"`
	Indicators     []Indicator `json:"indicators"`
	Recommendation string      `json:"recommendation,omitempty"`
}

// FatigueMonitor compares recent performance against a session baseline over
// a bounded rolling window. One monitor serves one session stream.
type FatigueMonitor struct {
	baseline    FatigueSample
	baselineSet bool

	window []FatigueSample // bounded at FatigueWindowSize, oldest first
	events int             // fatigued assessments this session
}

// NewFatigueMonitor returns a monitor with no baseline.
func NewFatigueMonitor() *FatigueMonitor {
	return &FatigueMonitor{}
}

// SetBaseline records the reference sample fatigue is measured against.
// Only the first call takes effect; the session opener owns the baseline.
func (fm *FatigueMonitor) SetBaseline(s FatigueSample) {
	if fm.baselineSet {
		return
	}
	fm.baseline = s
	fm.baselineSet = true
}

// BaselineSet reports whether a baseline has been recorded.
func (fm *FatigueMonitor) BaselineSet() bool {
	return fm.baselineSet
}

// Observe appends one sample, evicting the oldest past the window bound.
func (fm *FatigueMonitor) Observe(s FatigueSample) {
	fm.window = append(fm.window, s)
	if len(fm.window) > FatigueWindowSize {
		fm.window = fm.window[1:]
	}
}

// Assess evaluates fatigue at the given frame. It reports ok=false until a
// baseline is set and the window holds at least fatigueMinSamples samples;
// that is an explicit not-yet-available, not a zero assessment.
func (fm *FatigueMonitor) Assess(frameIndex int) (FatigueAssessment, bool) {
	if !fm.baselineSet || len(fm.window) < fatigueMinSamples {
		return FatigueAssessment{}, false
	}

	out := FatigueAssessment{Frame: frameIndex}
	recent := fm.window[len(fm.window)-fatigueRecentSamples:]

	scores := make([]float64, len(recent))
	heights := make([]float64, len(recent))
	for i, s := range recent {
		scores[i] = s.Score
		heights[i] = s.KickHeight
	}

	level := 0

	if fm.baseline.Score > 0 {
		drop := (fm.baseline.Score - stat.Mean(scores, nil)) / fm.baseline.Score * 100
		if drop > scoreDropPct {
			out.Indicators = append(out.Indicators, Indicator{
				Type:    IndicatorScoreDrop,
				Value:   fmt.Sprintf("-%.1f%%", drop),
				Message: "Performance score declining",
			})
			level += scoreDropWeight
		}
	}

	if fm.baseline.KickHeight > 0 {
		drop := (fm.baseline.KickHeight - stat.Mean(heights, nil)) / fm.baseline.KickHeight * 100
		if drop > heightDropPct {
			out.Indicators = append(out.Indicators, Indicator{
				Type:    IndicatorHeightDrop,
				Value:   fmt.Sprintf("-%.1f%%", drop),
				Message: "Kick height declining - leg fatigue",
			})
			level += heightDropWeight
		}
	}

	if trend := fm.supportTrend(); trend < -supportTrendDeg {
		out.Indicators = append(out.Indicators, Indicator{
			Type:    IndicatorFormDegrade,
			Value:   fmt.Sprintf("%.1f°", trend),
			Message: "Support leg stability declining",
		})
		level += formDegradeWeight
	}

	if level > 100 {
		level = 100
	}
	out.Level = level
	out.IsFatigued = level >= FatigueThreshold
	if out.IsFatigued {
		out.Recommendation = "Consider rest period - fatigue detected. Risk of injury increases with fatigue."
		fm.events++
	}
	return out, true
}

// supportTrend fits a least-squares line to the support-knee angle over the
// whole window and returns the fitted change across it, in degrees. The
// regression smooths out single-frame noise that an endpoint delta would
// amplify.
func (fm *FatigueMonitor) supportTrend() float64 {
	n := len(fm.window)
	if n < 2 {
		return 0
	}
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, s := range fm.window {
		xs[i] = float64(i)
		ys[i] = s.SupportKnee
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope * float64(n-1)
}

// Events returns how many fatigued assessments the session has produced.
func (fm *FatigueMonitor) Events() int {
	return fm.events
}
