// Package pose defines the keypoint frame contract supplied by an external
// pose-estimation model and safe accessors over it. Low-confidence keypoints
// are treated as absent rather than zero, so downstream geometry never
// operates on junk coordinates.
package pose

// Landmark is the name of one anatomical keypoint.
type Landmark string

// Landmarks required by the analysis pipeline. The external pose model
// labels 33 points; these 15 are the ones the kick analysis consumes.
const (
	Nose          Landmark = "nose"
	LeftShoulder  Landmark = "left_shoulder"
	RightShoulder Landmark = "right_shoulder"
	LeftElbow     Landmark = "left_elbow"
	RightElbow    Landmark = "right_elbow"
	LeftWrist     Landmark = "left_wrist"
	RightWrist    Landmark = "right_wrist"
	LeftHip       Landmark = "left_hip"
	RightHip      Landmark = "right_hip"
	LeftKnee      Landmark = "left_knee"
	RightKnee     Landmark = "right_knee"
	LeftAnkle     Landmark = "left_ankle"
	RightAnkle    Landmark = "right_ankle"
	LeftFoot      Landmark = "left_foot"
	RightFoot     Landmark = "right_foot"
)

// RequiredLandmarks lists every landmark the ingest contract must supply.
var RequiredLandmarks = []Landmark{
	Nose,
	LeftShoulder, RightShoulder,
	LeftElbow, RightElbow,
	LeftWrist, RightWrist,
	LeftHip, RightHip,
	LeftKnee, RightKnee,
	LeftAnkle, RightAnkle,
	LeftFoot, RightFoot,
}

// MinVisibility is the confidence below which a keypoint is treated as absent.
const MinVisibility = 0.5

// Point is a keypoint position. X and Y are normalized image coordinates in
// [0,1] with Y increasing downward; Z is relative depth from the pose model.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Keypoint is a labeled position with per-point visibility confidence in [0,1].
type Keypoint struct {
	Point
	Visibility float64 `json:"visibility"`
}

// Frame maps landmark names to keypoints for one video frame. A Frame is
// immutable once created; accessors never mutate it.
type Frame map[Landmark]Keypoint

// Get returns the position of the named landmark and whether it is usable.
// A missing entry or one below MinVisibility reports ok=false.
func (f Frame) Get(name Landmark) (Point, bool) {
	kp, found := f[name]
	if !found || kp.Visibility < MinVisibility {
		return Point{}, false
	}
	return kp.Point, true
}

// Visibility returns the raw confidence for the named landmark, or 0 when
// the landmark is not present in the frame at all.
func (f Frame) Visibility(name Landmark) float64 {
	kp, found := f[name]
	if !found {
		return 0
	}
	return kp.Visibility
}

// First returns the position of the first usable landmark from the given
// candidates. Used for fallbacks such as foot-then-ankle.
func (f Frame) First(names ...Landmark) (Point, bool) {
	for _, name := range names {
		if p, ok := f.Get(name); ok {
			return p, true
		}
	}
	return Point{}, false
}
