package kick

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/dojometrics/strikeform/internal/units"
)

// Family groups kick types for speed benchmarking.
type Family string

const (
	FamilyRoundhouse Family = "roundhouse"
	FamilySide       Family = "side_kick"
	FamilyBack       Family = "back_kick"
	FamilyAxe        Family = "axe_kick"
)

// Benchmark holds reference speeds for a kick family, in m/s.
type Benchmark struct {
	Avg   float64
	Elite float64
}

// Benchmarks are elite-competition reference speeds per kick family.
var Benchmarks = map[Family]Benchmark{
	FamilyRoundhouse: {Avg: 15.0, Elite: 20.0},
	FamilySide:       {Avg: 12.0, Elite: 17.0},
	FamilyBack:       {Avg: 13.0, Elite: 18.0},
	FamilyAxe:        {Avg: 10.0, Elite: 14.0},
}

// Speed calculator defaults.
const (
	DefaultFPS            = 30
	DefaultPixelsPerMeter = 300.0
)

// SpeedResult reports speed estimates for one kick trajectory.
type SpeedResult struct {
	MaxSpeedMPS float64 `json:"speed_mps"`
	MaxSpeedKMH float64 `json:"speed_kmh"`
	AvgSpeedMPS float64 `json:"avg_speed_mps"`
	Rating      string  `json:"rating"`
	Percentile  int     `json:"percentile"`
}

// SpeedCalculator converts foot-trajectory pixel displacement into velocity
// estimates. One calculator accumulates the speed history for one session.
type SpeedCalculator struct {
	fps            int
	pixelsPerMeter float64
	history        []SpeedResult
}

// NewSpeedCalculator returns a calculator for the given capture rate and
// pixel scale; non-positive values use the defaults.
func NewSpeedCalculator(fps int, pixelsPerMeter float64) *SpeedCalculator {
	if fps <= 0 {
		fps = DefaultFPS
	}
	if pixelsPerMeter <= 0 {
		pixelsPerMeter = DefaultPixelsPerMeter
	}
	return &SpeedCalculator{fps: fps, pixelsPerMeter: pixelsPerMeter}
}

// Calculate estimates speeds over a trajectory, benchmarked against the
// given family. It reports ok=false with fewer than two samples.
func (sc *SpeedCalculator) Calculate(points []TrajectoryPoint, family Family) (SpeedResult, bool) {
	if len(points) < 2 {
		return SpeedResult{}, false
	}

	speeds := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		dx := points[i].X - points[i-1].X
		dy := points[i].Y - points[i-1].Y
		meters := math.Sqrt(dx*dx+dy*dy) / sc.pixelsPerMeter

		frames := points[i].Frame - points[i-1].Frame
		if frames < 1 {
			// Duplicate or out-of-order frame tags: assume one frame-time
			// rather than dividing by zero.
			frames = 1
		}
		seconds := float64(frames) / float64(sc.fps)
		speeds = append(speeds, meters/seconds)
	}

	maxSpeed := speeds[0]
	for _, s := range speeds[1:] {
		maxSpeed = math.Max(maxSpeed, s)
	}

	bench, ok := Benchmarks[family]
	if !ok {
		bench = Benchmarks[FamilyRoundhouse]
	}

	result := SpeedResult{
		MaxSpeedMPS: maxSpeed,
		MaxSpeedKMH: units.ConvertSpeed(maxSpeed, units.KMPH),
		AvgSpeedMPS: stat.Mean(speeds, nil),
		Rating:      rating(maxSpeed, bench),
		Percentile:  int(math.Min(100, maxSpeed/bench.Elite*100)),
	}
	sc.history = append(sc.history, result)
	return result, true
}

func rating(maxSpeed float64, bench Benchmark) string {
	switch {
	case maxSpeed >= bench.Elite:
		return "Elite"
	case maxSpeed >= bench.Avg:
		return "Advanced"
	case maxSpeed >= bench.Avg*0.7:
		return "Intermediate"
	default:
		return "Developing"
	}
}

// SpeedAnalytics summarizes a session's measured kicks.
type SpeedAnalytics struct {
	MaxSpeed    float64 `json:"max_speed"`
	AvgSpeed    float64 `json:"avg_speed"`
	Consistency float64 `json:"speed_consistency"` // 100 - CV percent
	KickCount   int     `json:"total_kicks_measured"`
	EliteKicks  int     `json:"elite_kicks"`
	Trend       string  `json:"speed_trend"`
}

// Analytics aggregates the session speed history. It reports ok=false when
// no kicks have been measured yet.
func (sc *SpeedCalculator) Analytics() (SpeedAnalytics, bool) {
	if len(sc.history) == 0 {
		return SpeedAnalytics{}, false
	}

	speeds := make([]float64, len(sc.history))
	elite := 0
	for i, r := range sc.history {
		speeds[i] = r.MaxSpeedMPS
		if r.MaxSpeedMPS >= Benchmarks[FamilyRoundhouse].Elite {
			elite++
		}
	}

	mean := stat.Mean(speeds, nil)
	a := SpeedAnalytics{
		AvgSpeed:   mean,
		KickCount:  len(speeds),
		EliteKicks: elite,
		Trend:      "stable",
	}
	for _, s := range speeds {
		a.MaxSpeed = math.Max(a.MaxSpeed, s)
	}
	if mean > 0 {
		if len(speeds) > 1 {
			a.Consistency = 100 - stat.StdDev(speeds, nil)/mean*100
		} else {
			a.Consistency = 100
		}
	}
	if len(speeds) > 3 && speeds[len(speeds)-1] > speeds[0] {
		a.Trend = "improving"
	}
	return a, true
}
