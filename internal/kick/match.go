package kick

// World Taekwondo competition scoring, 2024 rules.
const (
	headPoints  = 3
	trunkPoints = 2
	spinBonus   = 1

	// Height thresholds for scoring zones, percent of body height.
	headZoneMin  = 75.0
	trunkZoneMin = 40.0

	// spinningRotationMin is the hip rotation above which a kick counts as
	// a spinning technique.
	spinningRotationMin = 45.0

	// weakChamberAngle is the knee angle above which the chamber is too
	// open for a valid technique, costing one point.
	weakChamberAngle = 150.0
)

// ScoringZone names the competition target zone a kick landed in.
type ScoringZone string

const (
	ZoneHead  ScoringZone = "head"
	ZoneTrunk ScoringZone = "trunk"
	ZoneLow   ScoringZone = "low"
)

// KickScore is the competition evaluation of one detected kick.
type KickScore struct {
	Scored         bool        `json:"scored"`
	Points         int         `json:"points"`
	Zone           ScoringZone `json:"zone"`
	TechniqueBonus int         `json:"technique_bonus"`
	Reason         string      `json:"reason"`
}

// MatchResult summarizes the simulated competition value of a session.
type MatchResult struct {
	TotalPoints   int     `json:"total_points"`
	HeadKicks     int     `json:"head_kicks"`
	TrunkKicks    int     `json:"trunk_kicks"`
	ScoringRate   float64 `json:"scoring_rate"` // percent of kicks that scored
	PointsPerKick float64 `json:"average_points_per_kick"`
}

// EvaluateKick scores one kick under competition rules. A spinning technique
// earns a bonus point; a weak chamber loses one.
func EvaluateKick(ev Event) KickScore {
	out := KickScore{Zone: ZoneLow}

	switch {
	case ev.KickHeight >= headZoneMin:
		out.Zone = ZoneHead
		out.Points = headPoints
		out.Reason = "Head-level kick"
	case ev.KickHeight >= trunkZoneMin:
		out.Zone = ZoneTrunk
		out.Points = trunkPoints
		out.Reason = "Trunk-level kick"
	default:
		out.Reason = "Below scoring zone"
		return out
	}

	if ev.HipRotation > spinningRotationMin {
		out.TechniqueBonus = spinBonus
		out.Points += spinBonus
		out.Reason += " + Spinning technique"
	}

	if ev.KneeAngle > weakChamberAngle {
		if out.Points > 0 {
			out.Points--
		}
		out.Reason += " (weak technique: -1)"
	}

	out.Scored = out.Points > 0
	return out
}

// SimulateMatch evaluates every detected kick and totals the competition
// points the session would have earned.
func SimulateMatch(kicks []Event) MatchResult {
	var result MatchResult
	if len(kicks) == 0 {
		return result
	}

	scored := 0
	for _, ev := range kicks {
		ks := EvaluateKick(ev)
		if !ks.Scored {
			continue
		}
		scored++
		result.TotalPoints += ks.Points
		switch ks.Zone {
		case ZoneHead:
			result.HeadKicks++
		case ZoneTrunk:
			result.TrunkKicks++
		}
	}

	result.ScoringRate = float64(scored) / float64(len(kicks)) * 100
	result.PointsPerKick = float64(result.TotalPoints) / float64(len(kicks))
	return result
}
