// Package workload computes training-load injury risk for one athlete from
// daily training and wellness logs. The core metric is the acute:chronic
// workload ratio (ACWR), the 7-day load average over the 28-day load
// average, per Gabbett's training-injury prevention work.
package workload

import "time"

// Wellness holds one day's subjective wellness inputs, each on a 1-10
// scale. Sleep, mood and motivation read higher-is-better; fatigue,
// soreness and stress read lower-is-better.
type Wellness struct {
	SleepQuality   int `json:"sleep_quality"`
	Fatigue        int `json:"fatigue"`
	MuscleSoreness int `json:"muscle_soreness"`
	Stress         int `json:"stress"`
	Mood           int `json:"mood"`
	Motivation     int `json:"motivation"`
}

// TrainingRecord is one athlete's log entry for one date. Records are
// immutable once logged and held in date order per athlete.
type TrainingRecord struct {
	AthleteID   string    `json:"athlete_id"`
	Date        time.Time `json:"date"`
	DurationMin float64   `json:"training_duration"`
	RPE         int       `json:"rpe"` // rate of perceived exertion, 1-10
	Load        float64   `json:"training_load"`
	Wellness    Wellness  `json:"wellness"`
}

// SessionLoad is the session-RPE training load: duration in minutes times
// perceived exertion, in arbitrary units.
func SessionLoad(durationMin float64, rpe int) float64 {
	return durationMin * float64(rpe)
}

// WeekLoad is one ISO week's load totals.
type WeekLoad struct {
	Year        int     `json:"year"`
	Week        int     `json:"week"`
	TotalLoad   float64 `json:"total_load"`
	TotalMin    float64 `json:"total_duration"`
	AvgRPE      float64 `json:"avg_rpe"`
	SessionDays int     `json:"session_days"`
}

// WeeklyLoads aggregates date-ordered records into per-ISO-week totals,
// oldest week first.
func WeeklyLoads(records []TrainingRecord) []WeekLoad {
	var out []WeekLoad
	for _, r := range records {
		year, week := r.Date.ISOWeek()
		if n := len(out); n > 0 && out[n-1].Year == year && out[n-1].Week == week {
			w := &out[n-1]
			w.TotalLoad += r.Load
			w.TotalMin += r.DurationMin
			w.AvgRPE += float64(r.RPE)
			w.SessionDays++
			continue
		}
		out = append(out, WeekLoad{
			Year:        year,
			Week:        week,
			TotalLoad:   r.Load,
			TotalMin:    r.DurationMin,
			AvgRPE:      float64(r.RPE),
			SessionDays: 1,
		})
	}
	for i := range out {
		out[i].AvgRPE /= float64(out[i].SessionDays)
	}
	return out
}
