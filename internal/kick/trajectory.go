package kick

// TrajectoryPoint is one tracked position of the kicking foot, in pixel
// coordinates, tagged with its frame index.
type TrajectoryPoint struct {
	X, Y  float64
	Frame int
}

// DefaultTrajectoryCapacity bounds the foot-path history. Thirty samples is
// one second of video at 30 fps, enough to cover a full kick.
const DefaultTrajectoryCapacity = 30

// TrajectoryTracker maintains a bounded, ordered history of foot positions,
// overwriting the oldest sample at capacity so memory stays O(1) for
// arbitrarily long streams.
type TrajectoryTracker struct {
	points   []TrajectoryPoint
	capacity int
	head     int // next write position
	size     int
}

// NewTrajectoryTracker creates a tracker with the given capacity; values
// below 1 use the default.
func NewTrajectoryTracker(capacity int) *TrajectoryTracker {
	if capacity < 1 {
		capacity = DefaultTrajectoryCapacity
	}
	return &TrajectoryTracker{
		points:   make([]TrajectoryPoint, capacity),
		capacity: capacity,
	}
}

// Add appends a position, evicting the oldest sample when full.
func (tr *TrajectoryTracker) Add(x, y float64, frame int) {
	tr.points[tr.head] = TrajectoryPoint{X: x, Y: y, Frame: frame}
	tr.head = (tr.head + 1) % tr.capacity
	if tr.size < tr.capacity {
		tr.size++
	}
}

// Size returns the number of stored samples.
func (tr *TrajectoryTracker) Size() int {
	return tr.size
}

// Points returns the stored samples from oldest to newest.
func (tr *TrajectoryTracker) Points() []TrajectoryPoint {
	if tr.size == 0 {
		return nil
	}
	out := make([]TrajectoryPoint, tr.size)
	for i := 0; i < tr.size; i++ {
		idx := (tr.head - tr.size + i + tr.capacity) % tr.capacity
		out[i] = tr.points[idx]
	}
	return out
}

// Clear drops all samples.
func (tr *TrajectoryTracker) Clear() {
	tr.head = 0
	tr.size = 0
}
