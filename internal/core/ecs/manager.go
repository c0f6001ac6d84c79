package ecs

import (
	"time"

	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/input"
)

// Manager is the ComponentOwnersManager: it owns the live owner collection
// and only mutates it at frame boundaries. Add stages into a pending buffer
// that ProcessNewObjects flushes; Remove only flags, ProcessRemovals sweeps.
// A pass over the live slice therefore never sees it change underneath.
type Manager struct {
	pool    *EntityPool
	owners  []*ComponentOwner
	pending []*ComponentOwner
	active  bool
}

func NewManager(pool *EntityPool) *Manager {
	return &Manager{
		pool:    pool,
		owners:  make([]*ComponentOwner, 0, 64),
		pending: make([]*ComponentOwner, 0, 16),
		active:  true,
	}
}

func (m *Manager) Pool() *EntityPool { return m.pool }

// NewOwner creates an owner whose identity comes from the manager's pool.
// The owner is not staged; callers wire it and then Add it.
func (m *Manager) NewOwner(position geom.Vector, name string) *ComponentOwner {
	return NewComponentOwner(m.pool, position, name)
}

// Add stages owner for the next ProcessNewObjects.
func (m *Manager) Add(owner *ComponentOwner) {
	if !m.active {
		owner.Disable()
	}
	m.pending = append(m.pending, owner)
}

// ProcessNewObjects moves staged owners into the live set and returns them.
func (m *Manager) ProcessNewObjects() []*ComponentOwner {
	if len(m.pending) == 0 {
		return nil
	}
	added := make([]*ComponentOwner, len(m.pending))
	copy(added, m.pending)
	m.owners = append(m.owners, m.pending...)
	m.pending = m.pending[:0]
	return added
}

// Update runs the decision pass and then the effect pass over the live set.
func (m *Manager) Update(dt time.Duration, in input.Input) {
	m.UpdatePass(dt, in)
	m.LateUpdatePass(dt, in)
}

// UpdatePass runs only the decision pass. Frame drivers that resolve
// collisions between the passes call UpdatePass and LateUpdatePass directly.
func (m *Manager) UpdatePass(dt time.Duration, in input.Input) {
	for _, o := range m.owners {
		o.Update(dt, in)
	}
}

// LateUpdatePass runs only the effect pass.
func (m *Manager) LateUpdatePass(dt time.Duration, in input.Input) {
	for _, o := range m.owners {
		o.LateUpdate(dt, in)
	}
}

// ProcessRemovals erases and destroys every owner flagged for removal.
// The removed owners are returned so sibling indexes can drop them too.
func (m *Manager) ProcessRemovals() []*ComponentOwner {
	var removed []*ComponentOwner
	kept := m.owners[:0]
	for _, o := range m.owners {
		if o.ShouldBeRemoved() {
			removed = append(removed, o)
			continue
		}
		kept = append(kept, o)
	}
	for i := len(kept); i < len(m.owners); i++ {
		m.owners[i] = nil
	}
	m.owners = kept
	for _, o := range removed {
		o.Destroy()
	}
	return removed
}

// Activate enables every live and staged owner.
func (m *Manager) Activate() {
	m.active = true
	m.each(func(o *ComponentOwner) { o.Enable() })
}

// Deactivate disables every live and staged owner without destroying them.
func (m *Manager) Deactivate() {
	m.active = false
	m.each(func(o *ComponentOwner) { o.Disable() })
}

func (m *Manager) IsActive() bool { return m.active }

// Owners returns the live set. Callers must not modify the slice.
func (m *Manager) Owners() []*ComponentOwner { return m.owners }
func (m *Manager) Len() int                  { return len(m.owners) }
func (m *Manager) PendingLen() int           { return len(m.pending) }

// FindByName returns the first live owner with the given name.
func (m *Manager) FindByName(name string) (*ComponentOwner, bool) {
	for _, o := range m.owners {
		if o.Name() == name {
			return o, true
		}
	}
	return nil, false
}

func (m *Manager) each(fn func(*ComponentOwner)) {
	for _, o := range m.owners {
		fn(o)
	}
	for _, o := range m.pending {
		fn(o)
	}
}
