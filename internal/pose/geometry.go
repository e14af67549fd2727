package pose

import "math"

// degenerateNorm is the vector length below which an angle computation is
// considered degenerate and yields 0 rather than a NaN.
const degenerateNorm = 1e-6

// Angle returns the angle in degrees at vertex v between points a and b,
// using all three coordinate axes. The normalized dot product is clamped to
// [-1,1] before the inverse cosine so floating-point drift cannot push it
// out of the arccos domain. Degenerate (near-zero-length) vectors yield 0.
func Angle(a, v, b Point) float64 {
	v1 := Point{X: a.X - v.X, Y: a.Y - v.Y, Z: a.Z - v.Z}
	v2 := Point{X: b.X - v.X, Y: b.Y - v.Y, Z: b.Z - v.Z}

	n1 := math.Sqrt(v1.X*v1.X + v1.Y*v1.Y + v1.Z*v1.Z)
	n2 := math.Sqrt(v2.X*v2.X + v2.Y*v2.Y + v2.Z*v2.Z)
	if n1 < degenerateNorm || n2 < degenerateNorm {
		return 0
	}

	dot := (v1.X*v2.X + v1.Y*v2.Y + v1.Z*v2.Z) / (n1 * n2)
	dot = math.Max(-1, math.Min(1, dot))
	return math.Acos(dot) * 180 / math.Pi
}

// Angle2D is Angle restricted to the image plane, for frontal-plane checks
// such as knee valgus and stance analysis where depth is noise.
func Angle2D(a, v, b Point) float64 {
	return Angle(
		Point{X: a.X, Y: a.Y},
		Point{X: v.X, Y: v.Y},
		Point{X: b.X, Y: b.Y},
	)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{
		X: (a.X + b.X) / 2,
		Y: (a.Y + b.Y) / 2,
		Z: (a.Z + b.Z) / 2,
	}
}

// Dist2D returns the planar distance between a and b in normalized image
// coordinates.
func Dist2D(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
