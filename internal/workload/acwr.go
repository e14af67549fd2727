package workload

import (
	"math"
	"time"
)

// Rolling window lengths, in days.
const (
	AcutePeriodDays   = 7
	ChronicPeriodDays = 28
)

// ACWR fallbacks for an undefined ratio. Zero chronic load with zero acute
// load is a resting athlete; zero chronic load with positive acute load is a
// cold-start training spike and defaults conservatively high.
const (
	acwrNeutral           = 1.0
	acwrColdStartHighRisk = 2.0
)

// Zone is an ACWR risk zone. The zones partition [0, inf) with closed-open
// boundaries; every ratio maps to exactly one zone.
type Zone string

const (
	ZoneUndertrained Zone = "undertrained" // [0, 0.8)
	ZoneOptimal      Zone = "optimal"      // [0.8, 1.3)
	ZoneElevated     Zone = "elevated"     // [1.3, 1.5)
	ZoneHigh         Zone = "high"         // [1.5, 2.0)
	ZoneCritical     Zone = "critical"     // [2.0, inf)
)

// ZoneLabels maps zones to display names.
var ZoneLabels = map[Zone]string{
	ZoneUndertrained: "Undertrained",
	ZoneOptimal:      "Optimal Zone",
	ZoneElevated:     "Elevated Risk",
	ZoneHigh:         "High Risk",
	ZoneCritical:     "Critical Risk",
}

// Snapshot is the ACWR state for one athlete at one evaluation date.
// Snapshots are derived on demand, never stored.
type Snapshot struct {
	Date       time.Time `json:"date"`
	AcuteAvg   float64   `json:"acute_load_avg"`
	ChronicAvg float64   `json:"chronic_load_avg"`
	ACWR       float64   `json:"acwr"`
	Zone       Zone      `json:"zone"`
}

// CalcACWR evaluates the acute:chronic workload ratio at the given date.
// Records dated in (at-7d, at] count toward acute load and (at-28d, at]
// toward chronic load; the averages divide by the full window length, not
// the number of sessions, so rest days dilute the load.
func CalcACWR(records []TrainingRecord, at time.Time) Snapshot {
	acuteStart := at.AddDate(0, 0, -AcutePeriodDays)
	chronicStart := at.AddDate(0, 0, -ChronicPeriodDays)

	var acuteSum, chronicSum float64
	for _, r := range records {
		if r.Date.After(at) || !r.Date.After(chronicStart) {
			continue
		}
		chronicSum += r.Load
		if r.Date.After(acuteStart) {
			acuteSum += r.Load
		}
	}

	s := Snapshot{
		Date:       at,
		AcuteAvg:   acuteSum / AcutePeriodDays,
		ChronicAvg: chronicSum / ChronicPeriodDays,
	}
	switch {
	case s.ChronicAvg == 0 && s.AcuteAvg == 0:
		s.ACWR = acwrNeutral
	case s.ChronicAvg == 0:
		s.ACWR = acwrColdStartHighRisk
	default:
		s.ACWR = round2(s.AcuteAvg / s.ChronicAvg)
	}
	s.Zone = ZoneFor(s.ACWR)
	return s
}

// RollingACWR evaluates the ratio daily over the trailing days up to and
// including end, for charting.
func RollingACWR(records []TrainingRecord, end time.Time, days int) []Snapshot {
	out := make([]Snapshot, 0, days+1)
	for d := days; d >= 0; d-- {
		out = append(out, CalcACWR(records, end.AddDate(0, 0, -d)))
	}
	return out
}

// ZoneFor classifies a ratio into its risk zone.
func ZoneFor(acwr float64) Zone {
	switch {
	case acwr < 0.8:
		return ZoneUndertrained
	case acwr < 1.3:
		return ZoneOptimal
	case acwr < 1.5:
		return ZoneElevated
	case acwr < 2.0:
		return ZoneHigh
	default:
		return ZoneCritical
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
