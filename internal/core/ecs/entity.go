package ecs

import "sync/atomic"

// EntityID identifies a component owner for the life of the process. The
// low 32 bits are a slot index, the high 32 bits count how often the slot
// was recycled. Zero is never handed out.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// slots hands out fresh slot indices to every pool, so owners of two game
// states never share an ID.
var slots atomic.Uint32

// EntityPool tracks the slots one game state owns. A destroyed owner's
// slot returns to this pool only, with its generation bumped.
// Not safe for concurrent use; slot allocation itself is.
type EntityPool struct {
	generations map[uint32]uint32
	freeList    []uint32
	live        int
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		generations: make(map[uint32]uint32, 256),
		freeList:    make([]uint32, 0, 64),
	}
}

func (p *EntityPool) Create() EntityID {
	p.live++
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		return NewEntityID(idx, p.generations[idx])
	}
	idx := slots.Add(1)
	p.generations[idx] = 0
	return NewEntityID(idx, 0)
}

// Alive reports whether id was created by this pool and not destroyed.
func (p *EntityPool) Alive(id EntityID) bool {
	gen, ok := p.generations[id.Index()]
	return ok && gen == id.Generation()
}

// Destroy recycles the slot of id. Stale or foreign IDs are ignored.
func (p *EntityPool) Destroy(id EntityID) {
	if !p.Alive(id) {
		return
	}
	idx := id.Index()
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
	p.live--
}

// Live returns the number of identities currently handed out.
func (p *EntityPool) Live() int { return p.live }
