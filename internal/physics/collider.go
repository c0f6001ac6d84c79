// Package physics is the spatial collision subsystem: a quadtree broad
// phase, ray casts over it, and per-axis resolution of proposed movement.
package physics

import (
	"time"

	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/geom"
)

// Tag classifies a collider for gameplay queries.
type Tag string

const (
	TagNone     Tag = ""
	TagObstacle Tag = "obstacle"
	TagPlayer   Tag = "player"
	TagNpc      Tag = "npc"
	TagEnemy    Tag = "enemy"
	TagItem     Tag = "item"
	TagUI       Tag = "ui"
)

// Collider is a spatial index entry. Bounds is derived from the owner's
// current transform; the tree snapshots it on insertion.
type Collider interface {
	Owner() *ecs.ComponentOwner
	Bounds() geom.Box
	Tag() Tag
	// IsTrigger colliders are returned by queries but never block movement.
	IsTrigger() bool
	IsEnabled() bool
}

// Mover is a collider whose owner moves under collision resolution.
type Mover interface {
	Collider
	ProposedDisplacement(dt time.Duration) geom.Vector
	SetResolution(r Resolution)
}

// Resolution is the outcome of resolving one frame of movement.
// DX and DY are the displacements after clamping to contact.
type Resolution struct {
	DX, DY       float64
	BlockedLeft  bool
	BlockedRight bool
	BlockedUp    bool
	BlockedDown  bool
}

// Blocked reports whether any axis hit something.
func (r Resolution) Blocked() bool {
	return r.BlockedLeft || r.BlockedRight || r.BlockedUp || r.BlockedDown
}
