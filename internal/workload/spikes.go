package workload

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// DefaultSpikeRatio is the rolling-load ratio above which a week-on-week
// load jump counts as a spike.
const DefaultSpikeRatio = 1.3

// spikeWindow is the rolling window length, in sessions.
const spikeWindow = 7

// LoadSpike marks a session where the trailing rolling load jumped past
// the spike threshold relative to the window one period earlier.
type LoadSpike struct {
	Date  time.Time `json:"date"`
	Ratio float64   `json:"ratio"`
	Load  float64   `json:"load"`
}

// DetectLoadSpikes scans date-ordered records for sudden load increases.
// For each session past the first window it compares the trailing 7-session
// rolling average against the rolling average 7 sessions earlier; a ratio
// above threshold flags a spike. Pass 0 for the default threshold.
func DetectLoadSpikes(records []TrainingRecord, threshold float64) []LoadSpike {
	if threshold <= 0 {
		threshold = DefaultSpikeRatio
	}

	loads := make([]float64, len(records))
	for i, r := range records {
		loads[i] = r.Load
	}

	rolling := make([]float64, len(loads))
	for i := range loads {
		start := i - spikeWindow + 1
		if start < 0 {
			start = 0
		}
		rolling[i] = stat.Mean(loads[start:i+1], nil)
	}

	var spikes []LoadSpike
	for i := spikeWindow; i < len(rolling); i++ {
		prev := rolling[i-spikeWindow]
		if prev == 0 {
			continue
		}
		ratio := rolling[i] / prev
		if ratio > threshold {
			spikes = append(spikes, LoadSpike{
				Date:  records[i].Date,
				Ratio: round2(ratio),
				Load:  records[i].Load,
			})
		}
	}
	return spikes
}
