package workload

import "testing"

func TestWellnessScoreRange(t *testing.T) {
	best := Wellness{SleepQuality: 10, Fatigue: 1, MuscleSoreness: 1, Stress: 1, Mood: 10, Motivation: 10}
	if got := WellnessScore(best); got != 100 {
		t.Errorf("best inputs scored %v, want 100", got)
	}

	worst := Wellness{SleepQuality: 1, Fatigue: 10, MuscleSoreness: 10, Stress: 10, Mood: 1, Motivation: 1}
	if got := WellnessScore(worst); got != 10 {
		t.Errorf("worst inputs scored %v, want 10", got)
	}

	mid := Wellness{SleepQuality: 5, Fatigue: 5, MuscleSoreness: 5, Stress: 5, Mood: 5, Motivation: 5}
	if got := WellnessScore(mid); got != 55.5 {
		t.Errorf("mid inputs scored %v, want 55.5", got)
	}
}

func TestWellnessScoreMonotonic(t *testing.T) {
	base := Wellness{SleepQuality: 5, Fatigue: 5, MuscleSoreness: 5, Stress: 5, Mood: 5, Motivation: 5}

	prev := -1.0
	for sleep := 1; sleep <= 10; sleep++ {
		w := base
		w.SleepQuality = sleep
		got := WellnessScore(w)
		if got < prev {
			t.Fatalf("score dropped to %v when sleep quality rose to %d", got, sleep)
		}
		prev = got
	}

	prev = 101.0
	for fatigue := 1; fatigue <= 10; fatigue++ {
		w := base
		w.Fatigue = fatigue
		got := WellnessScore(w)
		if got > prev {
			t.Fatalf("score rose to %v when fatigue rose to %d", got, fatigue)
		}
		prev = got
	}
}

func TestWellnessStatus(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{90, "Excellent"},
		{75, "Excellent"},
		{74.9, "Good"},
		{60, "Good"},
		{59, "Fair"},
		{45, "Fair"},
		{44, "Poor"},
		{30, "Poor"},
		{29, "Critical"},
	}
	for _, tc := range cases {
		if got := WellnessStatus(tc.score); got != tc.want {
			t.Errorf("WellnessStatus(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
