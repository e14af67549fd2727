package workload

// Wellness score weights, summing to 1.0.
const (
	sleepWeight      = 0.25
	fatigueWeight    = 0.20
	sorenessWeight   = 0.20
	stressWeight     = 0.15
	moodWeight       = 0.10
	motivationWeight = 0.10
)

// Wellness status bands.
const (
	wellnessExcellentMin = 75.0
	wellnessGoodMin      = 60.0
	wellnessFairMin      = 45.0
	wellnessPoorMin      = 30.0
)

// invert flips a lower-is-better 1-10 input so higher always means better.
func invert(x int) float64 {
	return float64(11 - x)
}

// WellnessScore folds the six subjective inputs into one 0-100 score.
// Fatigue, soreness and stress are inverted first so every term rewards
// the good direction, then the weighted sum is scaled from the 1-10 range.
func WellnessScore(w Wellness) float64 {
	score := float64(w.SleepQuality)*sleepWeight +
		invert(w.Fatigue)*fatigueWeight +
		invert(w.MuscleSoreness)*sorenessWeight +
		invert(w.Stress)*stressWeight +
		float64(w.Mood)*moodWeight +
		float64(w.Motivation)*motivationWeight
	return round1(score * 10)
}

// WellnessStatus labels a wellness score.
func WellnessStatus(score float64) string {
	switch {
	case score >= wellnessExcellentMin:
		return "Excellent"
	case score >= wellnessGoodMin:
		return "Good"
	case score >= wellnessFairMin:
		return "Fair"
	case score >= wellnessPoorMin:
		return "Poor"
	default:
		return "Critical"
	}
}
