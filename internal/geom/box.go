package geom

import "math"

// Box is an axis-aligned rectangle: Position is the top-left corner, Y grows
// downwards like screen space.
type Box struct {
	Position Vector
	Size     Vector
}

func NewBox(x, y, w, h float64) Box {
	return Box{Position: Vector{X: x, Y: y}, Size: Vector{X: w, Y: h}}
}

func (b Box) Left() float64   { return b.Position.X }
func (b Box) Top() float64    { return b.Position.Y }
func (b Box) Right() float64  { return b.Position.X + b.Size.X }
func (b Box) Bottom() float64 { return b.Position.Y + b.Size.Y }

func (b Box) Center() Vector {
	return Vector{X: b.Position.X + b.Size.X/2, Y: b.Position.Y + b.Size.Y/2}
}

// Translate returns b moved by d.
func (b Box) Translate(d Vector) Box {
	return Box{Position: b.Position.Add(d), Size: b.Size}
}

// Intersects reports strict overlap. Boxes sharing only an edge do not
// intersect, so a body resting on the ground is not "inside" it.
func (b Box) Intersects(o Box) bool {
	return b.Left() < o.Right() && o.Left() < b.Right() &&
		b.Top() < o.Bottom() && o.Top() < b.Bottom()
}

// Contains reports whether o lies entirely inside b (edges inclusive).
func (b Box) Contains(o Box) bool {
	return o.Left() >= b.Left() && o.Right() <= b.Right() &&
		o.Top() >= b.Top() && o.Bottom() <= b.Bottom()
}

func (b Box) ContainsPoint(p Vector) bool {
	return p.X >= b.Left() && p.X <= b.Right() && p.Y >= b.Top() && p.Y <= b.Bottom()
}

// Union returns the smallest box covering both b and o.
func (b Box) Union(o Box) Box {
	minX := math.Min(b.Left(), o.Left())
	minY := math.Min(b.Top(), o.Top())
	maxX := math.Max(b.Right(), o.Right())
	maxY := math.Max(b.Bottom(), o.Bottom())
	return NewBox(minX, minY, maxX-minX, maxY-minY)
}

// SegmentIntersection clips the segment origin + t*dir, t in [0, maxT], against
// b using the slab method. It returns the entry parameter of the first hit.
// A segment starting inside the box hits at t = 0.
func (b Box) SegmentIntersection(origin, dir Vector, maxT float64) (float64, bool) {
	tMin := 0.0
	tMax := maxT

	if !slab(origin.X, dir.X, b.Left(), b.Right(), &tMin, &tMax) {
		return 0, false
	}
	if !slab(origin.Y, dir.Y, b.Top(), b.Bottom(), &tMin, &tMax) {
		return 0, false
	}
	return tMin, true
}

func slab(o, d, lo, hi float64, tMin, tMax *float64) bool {
	if d == 0 {
		return o >= lo && o <= hi
	}
	t1 := (lo - o) / d
	t2 := (hi - o) / d
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	if t1 > *tMin {
		*tMin = t1
	}
	if t2 < *tMax {
		*tMax = t2
	}
	return *tMin <= *tMax
}
