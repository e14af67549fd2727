package workload

import "gonum.org/v1/gonum/stat"

// Recent-pattern thresholds for the recommendations engine, on the 1-10
// wellness input scales.
const (
	recentPatternDays = 3
	highFatigueMin    = 7.0
	highSorenessMin   = 7.0
	poorSleepBelow    = 5.0
)

// Recommend produces coaching advice from the athlete's current ACWR,
// wellness score, and recent date-ordered records. It always returns at
// least one line.
func Recommend(acwr, wellnessScore float64, recent []TrainingRecord) []string {
	var recs []string

	switch {
	case acwr > acwrWarningMin:
		recs = append(recs,
			"REDUCE training load by 30-40% this week",
			"Avoid high-intensity sessions for 3-5 days")
	case acwr > acwrCautionMin:
		recs = append(recs,
			"Consider reducing training intensity by 15-20%",
			"Monitor closely for signs of fatigue")
	case acwr < 0.8:
		recs = append(recs,
			"Training load is below optimal - gradual increase recommended",
			"Avoid sudden load spikes when returning to full training")
	}

	if wellnessScore < wellnessWarnBelow {
		recs = append(recs,
			"Prioritize sleep (aim for 8+ hours)",
			"Include active recovery sessions")
	}

	if tail := lastN(recent, recentPatternDays); len(tail) > 0 {
		fatigue := make([]float64, len(tail))
		soreness := make([]float64, len(tail))
		sleep := make([]float64, len(tail))
		for i, r := range tail {
			fatigue[i] = float64(r.Wellness.Fatigue)
			soreness[i] = float64(r.Wellness.MuscleSoreness)
			sleep[i] = float64(r.Wellness.SleepQuality)
		}
		if stat.Mean(fatigue, nil) > highFatigueMin {
			recs = append(recs, "High fatigue detected - schedule a rest day")
		}
		if stat.Mean(soreness, nil) > highSorenessMin {
			recs = append(recs, "Elevated soreness - include foam rolling or massage")
		}
		if stat.Mean(sleep, nil) < poorSleepBelow {
			recs = append(recs, "Sleep quality declining - review sleep hygiene")
		}
	}

	if len(recs) == 0 {
		recs = append(recs,
			"Current training load is appropriate",
			"Continue monitoring daily wellness")
	}
	return recs
}

func lastN(records []TrainingRecord, n int) []TrainingRecord {
	if len(records) <= n {
		return records
	}
	return records[len(records)-n:]
}
