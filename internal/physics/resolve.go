package physics

import "github.com/chimarrao/platformer/internal/geom"

// contactEpsilon absorbs float drift after clamping a box flush against
// another, so resting contact is not mistaken for overlap next frame.
const contactEpsilon = 1e-6

func overlaps(aMin, aMax, bMin, bMax float64) bool {
	return aMin < bMax-contactEpsilon && aMax > bMin+contactEpsilon
}

func solid(self Collider, c Collider) bool {
	return c != self && c.Owner() != self.Owner() && c.IsEnabled() && !c.IsTrigger()
}

// resolve clamps the displacement of box against the indexed boxes in tree.
// The box is first pushed out of anything it already overlaps, then moved
// horizontally, then vertically from the horizontally moved box.
func resolve(tree *Quadtree, self Collider, box geom.Box, d geom.Vector) Resolution {
	var res Resolution
	start := box
	box = separate(tree, self, box, &res)

	dx := d.X
	if d.X != 0 {
		sweep := box
		if d.X > 0 {
			sweep.Size.X += d.X
		} else {
			sweep.Position.X += d.X
			sweep.Size.X -= d.X
		}
		for _, e := range tree.candidates(sweep) {
			if !solid(self, e.collider) {
				continue
			}
			o := e.box
			// still overlapping after separation: leave it, the next frame
			// separates again
			if !overlaps(box.Top(), box.Bottom(), o.Top(), o.Bottom()) || overlaps(box.Left(), box.Right(), o.Left(), o.Right()) {
				continue
			}
			if d.X > 0 {
				gap := max(0, o.Left()-box.Right())
				if gap <= dx {
					dx = gap
					res.BlockedRight = true
				}
			} else {
				gap := max(0, box.Left()-o.Right())
				if -gap >= dx {
					dx = -gap
					res.BlockedLeft = true
				}
			}
		}
	}

	moved := box.Translate(geom.Vec(dx, 0))
	dy := d.Y
	if d.Y != 0 {
		sweep := moved
		if d.Y > 0 {
			sweep.Size.Y += d.Y
		} else {
			sweep.Position.Y += d.Y
			sweep.Size.Y -= d.Y
		}
		for _, e := range tree.candidates(sweep) {
			if !solid(self, e.collider) {
				continue
			}
			o := e.box
			if !overlaps(moved.Left(), moved.Right(), o.Left(), o.Right()) || overlaps(moved.Top(), moved.Bottom(), o.Top(), o.Bottom()) {
				continue
			}
			if d.Y > 0 {
				gap := max(0, o.Top()-moved.Bottom())
				if gap <= dy {
					dy = gap
					res.BlockedDown = true
				}
			} else {
				gap := max(0, moved.Top()-o.Bottom())
				if -gap >= dy {
					dy = -gap
					res.BlockedUp = true
				}
			}
		}
	}

	res.DX = box.Left() - start.Left() + dx
	res.DY = box.Top() - start.Top() + dy
	return res
}

// separate pushes box out of every solid box it overlaps, along the axis
// of least penetration, and flags the side the obstacle was on.
func separate(tree *Quadtree, self Collider, box geom.Box, res *Resolution) geom.Box {
	for _, e := range tree.candidates(box) {
		if !solid(self, e.collider) {
			continue
		}
		o := e.box
		if !overlaps(box.Left(), box.Right(), o.Left(), o.Right()) || !overlaps(box.Top(), box.Bottom(), o.Top(), o.Bottom()) {
			continue
		}
		toLeft, toRight := box.Right()-o.Left(), o.Right()-box.Left()
		toUp, toDown := box.Bottom()-o.Top(), o.Bottom()-box.Top()
		if min(toLeft, toRight) <= min(toUp, toDown) {
			if toRight < toLeft {
				box = box.Translate(geom.Vec(toRight, 0))
				res.BlockedLeft = true
			} else {
				box = box.Translate(geom.Vec(-toLeft, 0))
				res.BlockedRight = true
			}
		} else {
			if toDown < toUp {
				box = box.Translate(geom.Vec(0, toDown))
				res.BlockedUp = true
			} else {
				box = box.Translate(geom.Vec(0, -toUp))
				res.BlockedDown = true
			}
		}
	}
	return box
}
