// Package session orchestrates the per-frame analysis pipeline for one
// training session: kinematic metrics, kick detection and classification,
// technique scoring, speed estimation, stance checks, and injury risk.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/dojometrics/strikeform/internal/config"
	"github.com/dojometrics/strikeform/internal/injury"
	"github.com/dojometrics/strikeform/internal/kick"
	"github.com/dojometrics/strikeform/internal/kinematics"
	"github.com/dojometrics/strikeform/internal/monitoring"
	"github.com/dojometrics/strikeform/internal/pose"
)

// Assumed capture geometry for converting normalized landmark coordinates
// into pixel space for trajectory speed estimates.
const (
	DefaultFrameWidth  = 1280.0
	DefaultFrameHeight = 720.0
)

// standingHeightMax is the kick height below which a frame counts as a
// stance frame rather than part of a kick.
const standingHeightMax = 10.0

// ScoredKick is one detected kick with its technique evaluation attached.
type ScoredKick struct {
	kick.Event
	Score          int                 `json:"score"`
	Grade          string              `json:"grade"`
	GradeLabel     string              `json:"grade_label"`
	Feedback       []kick.Feedback     `json:"feedback"`
	Classification kick.Classification `json:"classification"`
	Speed          *kick.SpeedResult   `json:"speed,omitempty"`
}

// FrameResult is everything the pipeline derived from one frame. Metrics is
// nil when required landmarks were missing and the frame was skipped; Kick
// is non-nil only on the frame a kick event fired.
type FrameResult struct {
	Metrics *kinematics.FrameMetrics  `json:"metrics,omitempty"`
	Kick    *ScoredKick               `json:"kick,omitempty"`
	Risk    injury.Assessment         `json:"risk"`
	Fatigue *injury.FatigueAssessment `json:"fatigue,omitempty"`
	Stance  *kick.StanceAssessment    `json:"stance,omitempty"`
}

// Analyzer runs the full analysis pipeline over one session's frame stream.
// Frames must arrive in order; the metrics and kick histories are
// append-only. Not safe for concurrent use.
type Analyzer struct {
	ID        string
	AthleteID string
	StartedAt time.Time

	calc       kinematics.Calculator
	detector   *kick.EventDetector
	classifier *kick.Classifier
	tracker    *kick.TrajectoryTracker
	speed      *kick.SpeedCalculator
	stance     *kick.StanceAnalyzer
	risk       *injury.RiskAnalyzer
	fatigue    *injury.FatigueMonitor

	frameCount    int
	skippedFrames int
	metrics       []kinematics.FrameMetrics
	kicks         []ScoredKick
}

// NewAnalyzer builds a session analyzer for one athlete. A nil cfg uses
// pipeline defaults throughout.
func NewAnalyzer(athleteID string, cfg *config.TuningConfig) *Analyzer {
	if cfg == nil {
		cfg = config.EmptyTuningConfig()
	}
	return &Analyzer{
		ID:         uuid.NewString(),
		AthleteID:  athleteID,
		StartedAt:  time.Now().UTC(),
		detector:   kick.NewEventDetectorWith(cfg.GetTriggerHeight(), cfg.GetCooldownFrames()),
		classifier: kick.NewClassifierWith(cfg.GetAcceptThreshold()),
		tracker:    kick.NewTrajectoryTracker(cfg.GetTrajectoryCapacity()),
		speed:      kick.NewSpeedCalculator(int(cfg.GetFPS()), cfg.GetPixelsPerMeter()),
		stance:     kick.NewStanceAnalyzer(),
		risk:       injury.NewRiskAnalyzer(),
		fatigue:    injury.NewFatigueMonitor(),
	}
}

// ProcessFrame runs one frame through the pipeline. Injury risk is checked
// on every frame; metric-dependent stages run only when the required
// landmarks are visible. Missing landmarks skip the frame, never abort the
// stream.
func (a *Analyzer) ProcessFrame(f pose.Frame, frameTime float64) FrameResult {
	idx := a.frameCount
	a.frameCount++

	res := FrameResult{Risk: a.risk.Analyze(f, idx, frameTime)}

	m, ok := a.calc.Analyze(f, idx, frameTime)
	if !ok {
		a.skippedFrames++
		return res
	}
	a.metrics = append(a.metrics, m)
	res.Metrics = &a.metrics[len(a.metrics)-1]

	a.trackKickingFoot(f, m, idx)

	score, feedback := kick.Score(m)
	if !a.fatigue.BaselineSet() {
		a.fatigue.SetBaseline(fatigueSample(m, score))
	}
	a.fatigue.Observe(fatigueSample(m, score))
	if fa, ready := a.fatigue.Assess(idx); ready {
		res.Fatigue = &fa
	}

	if m.KickHeight < standingHeightMax {
		sa := a.stance.Analyze(f, idx)
		res.Stance = &sa
	}

	cls, classified := a.classifier.Observe(f)

	if ev, fired := a.detector.Observe(m); fired {
		grade, label := kick.Grade(score)
		sk := ScoredKick{
			Event:      ev,
			Score:      score,
			Grade:      grade,
			GradeLabel: label,
			Feedback:   feedback,
		}
		if classified {
			sk.Classification = cls
		}
		if sr, ready := a.speed.Calculate(a.tracker.Points(), speedFamily(cls.Type)); ready {
			sk.Speed = &sr
		}
		a.kicks = append(a.kicks, sk)
		res.Kick = &a.kicks[len(a.kicks)-1]
		monitoring.Logf("session %s: kick %d detected at frame %d (score %d)",
			a.ID, ev.KickNumber, idx, score)
	}

	return res
}

// trackKickingFoot feeds the kicking foot's pixel position to the
// trajectory buffer.
func (a *Analyzer) trackKickingFoot(f pose.Frame, m kinematics.FrameMetrics, idx int) {
	foot := pose.LeftFoot
	if m.KickingLeg == kinematics.LegRight {
		foot = pose.RightFoot
	}
	if p, ok := f.First(foot, ankleFor(m.KickingLeg)); ok {
		a.tracker.Add(p.X*DefaultFrameWidth, p.Y*DefaultFrameHeight, idx)
	}
}

func ankleFor(leg kinematics.Leg) pose.Landmark {
	if leg == kinematics.LegRight {
		return pose.RightAnkle
	}
	return pose.LeftAnkle
}

func fatigueSample(m kinematics.FrameMetrics, score int) injury.FatigueSample {
	return injury.FatigueSample{
		Score:       float64(score),
		KickHeight:  m.KickHeight,
		SupportKnee: m.SupportKnee,
	}
}

// speedFamily maps a classified kick type onto its speed benchmark family.
func speedFamily(t kick.Type) kick.Family {
	switch t {
	case kick.TypeSide, kick.TypeHook:
		return kick.FamilySide
	case kick.TypeBack, kick.TypeSpinning:
		return kick.FamilyBack
	case kick.TypeAxe, kick.TypeCrescent:
		return kick.FamilyAxe
	default:
		return kick.FamilyRoundhouse
	}
}

// Metrics returns the append-only per-frame metric history.
func (a *Analyzer) Metrics() []kinematics.FrameMetrics {
	return a.metrics
}

// Kicks returns the detected kicks in order.
func (a *Analyzer) Kicks() []ScoredKick {
	return a.kicks
}

// InjurySummary builds the end-of-session injury report.
func (a *Analyzer) InjurySummary() injury.SessionSummary {
	return a.risk.Summarize(a.fatigue)
}
