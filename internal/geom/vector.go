package geom

import "math"

// Vector is a 2D point or displacement in world units.
type Vector struct {
	X float64
	Y float64
}

func Vec(x, y float64) Vector { return Vector{X: x, Y: y} }

func (v Vector) Add(o Vector) Vector       { return Vector{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vector) Sub(o Vector) Vector       { return Vector{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vector) Scale(f float64) Vector    { return Vector{X: v.X * f, Y: v.Y * f} }
func (v Vector) Length() float64           { return math.Hypot(v.X, v.Y) }
func (v Vector) Distance(o Vector) float64 { return math.Hypot(o.X-v.X, o.Y-v.Y) }
func (v Vector) IsZero() bool              { return v.X == 0 && v.Y == 0 }

// Normalized returns the unit vector in v's direction, or the zero vector
// when v has no length.
func (v Vector) Normalized() Vector {
	l := v.Length()
	if l == 0 {
		return Vector{}
	}
	return Vector{X: v.X / l, Y: v.Y / l}
}

// ApproxEqual compares component-wise within eps.
func (v Vector) ApproxEqual(o Vector, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}
