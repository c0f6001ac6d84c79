package event

import "github.com/chimarrao/platformer/internal/core/ecs"

// Gameplay events. Owners are carried as pointers: by the time a handler runs
// (next frame) the owner may already be flagged for removal, so handlers check
// ShouldBeRemoved before acting on it.

// OwnerDied is emitted once when a health component reaches zero.
type OwnerDied struct {
	Owner *ecs.ComponentOwner
}

// ItemCollected is emitted when a collector picks an item up.
type ItemCollected struct {
	Item      *ecs.ComponentOwner
	Collector *ecs.ComponentOwner
	Name      string
}

// ItemUsed is emitted when a held item applies its effect.
type ItemUsed struct {
	Item      *ecs.ComponentOwner
	Collector *ecs.ComponentOwner
	Name      string
}

// AttackHit is emitted for every target damaged by an attack.
type AttackHit struct {
	Attacker *ecs.ComponentOwner
	Target   *ecs.ComponentOwner
	Damage   int
	Critical bool
}
