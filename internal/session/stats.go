package session

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/dojometrics/strikeform/internal/kick"
)

// Stats summarizes one analyzed session.
type Stats struct {
	SessionID     string    `json:"session_id"`
	AthleteID     string    `json:"athlete_id"`
	StartedAt     time.Time `json:"started_at"`
	Frames        int       `json:"frames"`
	SkippedFrames int       `json:"skipped_frames"`

	TotalKicks int     `json:"total_kicks"`
	AvgHeight  float64 `json:"avg_height"`
	MaxHeight  float64 `json:"max_height"`
	AvgKnee    float64 `json:"avg_knee"`
	AvgScore   float64 `json:"avg_score"`
	BestScore  int     `json:"best_score"`

	TypeBreakdown map[kick.Type]int `json:"type_breakdown"`
	StanceScore   float64           `json:"stance_score"`
}

// Stats summarizes the session so far. Height and knee averages only count
// frames where the measurement registered, so idle standing frames do not
// drag them down.
func (a *Analyzer) Stats() Stats {
	s := Stats{
		SessionID:     a.ID,
		AthleteID:     a.AthleteID,
		StartedAt:     a.StartedAt,
		Frames:        len(a.metrics),
		SkippedFrames: a.skippedFrames,
		TotalKicks:    len(a.kicks),
		TypeBreakdown: make(map[kick.Type]int),
		StanceScore:   round1(a.stance.AverageScore()),
	}

	var heights, knees []float64
	for _, m := range a.metrics {
		if m.KickHeight > 0 {
			heights = append(heights, m.KickHeight)
		}
		if m.KneeAngle > 0 {
			knees = append(knees, m.KneeAngle)
		}
	}
	if len(heights) > 0 {
		s.AvgHeight = round1(stat.Mean(heights, nil))
		s.MaxHeight = round1(maxOf(heights))
	}
	if len(knees) > 0 {
		s.AvgKnee = round1(stat.Mean(knees, nil))
	}

	var scoreSum int
	for _, k := range a.kicks {
		scoreSum += k.Score
		if k.Score > s.BestScore {
			s.BestScore = k.Score
		}
		s.TypeBreakdown[k.Classification.Type]++
	}
	if len(a.kicks) > 0 {
		s.AvgScore = round1(float64(scoreSum) / float64(len(a.kicks)))
	}
	return s
}

// Match scores the session's detected kicks under competition rules.
func (a *Analyzer) Match() kick.MatchResult {
	events := make([]kick.Event, len(a.kicks))
	for i, k := range a.kicks {
		events[i] = k.Event
	}
	return kick.SimulateMatch(events)
}

// ProgressStats compares an athlete's sessions over time.
type ProgressStats struct {
	Sessions          int     `json:"sessions"`
	ScoreImprovement  int     `json:"score_improvement"`
	HeightImprovement float64 `json:"height_improvement"`
	CurrentScore      int     `json:"current_score"`
	Trend             string  `json:"trend"`
}

// Progress derives improvement statistics from a date-ordered session
// history. Fewer than two sessions reports no trend.
func Progress(history []Stats) ProgressStats {
	p := ProgressStats{Sessions: len(history)}
	if len(history) < 2 {
		if len(history) == 1 {
			p.CurrentScore = history[0].BestScore
		}
		p.Trend = "insufficient history"
		return p
	}

	first, last := history[0], history[len(history)-1]
	p.ScoreImprovement = last.BestScore - first.BestScore
	p.HeightImprovement = round1(last.MaxHeight - first.MaxHeight)
	p.CurrentScore = last.BestScore

	switch {
	case p.ScoreImprovement > 0:
		p.Trend = "improving"
	case p.ScoreImprovement == 0:
		p.Trend = "stable"
	default:
		p.Trend = "declining"
	}
	return p
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
