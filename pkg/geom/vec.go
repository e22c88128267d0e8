package geom

import "math"

// Vec is a position or direction in drawing units.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Common port directions.
var (
	Up    = Vec{0, -1}
	Down  = Vec{0, 1}
	Left  = Vec{-1, 0}
	Right = Vec{1, 0}
)

// Add returns v+o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Dot returns the dot product of v and o.
func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y }

// Rotate turns v by deg degrees around center.
func (v Vec) Rotate(deg float64, center Vec) Vec {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	t := v.Sub(center)
	return Vec{t.X*cos - t.Y*sin + center.X, t.X*sin + t.Y*cos + center.Y}
}

// Near reports whether v and o are within eps on both axes.
func (v Vec) Near(o Vec, eps float64) bool {
	return math.Abs(v.X-o.X) < eps && math.Abs(v.Y-o.Y) < eps
}
