// Package game wires components into characters and runs the frame.
package game

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chimarrao/platformer/internal/animations"
	"github.com/chimarrao/platformer/internal/components"
	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/core/event"
	"github.com/chimarrao/platformer/internal/data"
	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/graphics"
	"github.com/chimarrao/platformer/internal/input"
	"github.com/chimarrao/platformer/internal/physics"
	"github.com/chimarrao/platformer/internal/scripting"
	"github.com/chimarrao/platformer/internal/tilemap"
	"github.com/chimarrao/platformer/internal/timer"
)

// Template kinds.
const (
	KindPlayer   = "player"
	KindFollower = "follower"
	KindNpc      = "npc"
	KindEnemy    = "enemy"
	KindItem     = "item"
)

// Template names used by the dedicated constructors.
const (
	templatePlayer = "player"
	templateRabbit = "rabbit"
	templateDruid  = "druid"
	templateBandit = "bandit"
)

const (
	defaultCapacity = 3
	collectReach    = 10.0
	labelFontSize   = 10
)

var ErrUnknownKind = errors.New("unknown template kind")

// TemplateRepository looks character templates up by name.
type TemplateRepository interface {
	Template(name string) (*data.CharacterTemplate, error)
}

var _ TemplateRepository = (*data.TemplateTable)(nil)

// CharacterFactory builds fully wired owners from templates. An owner it
// returns has passed LoadDependentComponents; on any failure the partial
// owner is destroyed and nothing is returned.
type CharacterFactory struct {
	ids       *ecs.EntityPool
	pool      graphics.RendererPool
	animators animations.SettingsRepository
	templates TemplateRepository
	tree      *physics.Quadtree
	rays      *physics.RayCast
	events    *event.Bus
	scripts   *scripting.Engine
	clock     timer.Clock
	movement  components.MovementConfig
	log       *zap.Logger
}

// FactoryDeps lists what a CharacterFactory draws on. Scripts, Clock and
// Log may be nil.
type FactoryDeps struct {
	IDs       *ecs.EntityPool
	Pool      graphics.RendererPool
	Animators animations.SettingsRepository
	Templates TemplateRepository
	Physics   *physics.Factory
	Events    *event.Bus
	Scripts   *scripting.Engine
	Clock     timer.Clock
	Movement  components.MovementConfig
	Log       *zap.Logger
}

func NewCharacterFactory(deps FactoryDeps) *CharacterFactory {
	return &CharacterFactory{
		ids:       deps.IDs,
		pool:      deps.Pool,
		animators: deps.Animators,
		templates: deps.Templates,
		tree:      deps.Physics.QuadTree(),
		rays:      deps.Physics.CreateRayCast(),
		events:    deps.Events,
		scripts:   deps.Scripts,
		clock:     deps.Clock,
		movement:  deps.Movement,
		log:       deps.Log,
	}
}

func (f *CharacterFactory) CreatePlayer(position geom.Vector) (*ecs.ComponentOwner, error) {
	tpl, err := f.templates.Template(templatePlayer)
	if err != nil {
		return nil, err
	}
	return f.createPlayer(tpl, position)
}

func (f *CharacterFactory) CreateRabbitFollower(position geom.Vector, target *ecs.ComponentOwner) (*ecs.ComponentOwner, error) {
	tpl, err := f.templates.Template(templateRabbit)
	if err != nil {
		return nil, err
	}
	return f.createFollower(tpl, position, target)
}

func (f *CharacterFactory) CreateDruidNpc(position geom.Vector) (*ecs.ComponentOwner, error) {
	tpl, err := f.templates.Template(templateDruid)
	if err != nil {
		return nil, err
	}
	return f.createNpc(tpl, position)
}

func (f *CharacterFactory) CreateBanditEnemy(position geom.Vector, target *ecs.ComponentOwner) (*ecs.ComponentOwner, error) {
	tpl, err := f.templates.Template(templateBandit)
	if err != nil {
		return nil, err
	}
	return f.createEnemy(tpl, position, target)
}

// CreateItem builds the collectable described by the template called name.
func (f *CharacterFactory) CreateItem(name string, position geom.Vector) (*ecs.ComponentOwner, error) {
	tpl, err := f.templates.Template(name)
	if err != nil {
		return nil, err
	}
	return f.createItem(tpl, position)
}

// CreateObstacle builds a static, textured, blocking tile.
func (f *CharacterFactory) CreateObstacle(position, size geom.Vector, tile tilemap.TileType) (*ecs.ComponentOwner, error) {
	o := ecs.NewComponentOwner(f.ids, position, "obstacle")
	gfx, err := components.NewTexturedGraphicsComponent(o, f.pool, size, tile.Texture(), graphics.LayerThird)
	if err != nil {
		o.Destroy()
		return nil, err
	}
	ecs.Add(o, gfx)
	ecs.Add(o, components.NewBoxColliderComponent(o, size, geom.Vector{}, physics.TagObstacle, false))
	return f.finish(o)
}

// Create dispatches on the template's kind. Followers and enemies are
// pointed at target.
func (f *CharacterFactory) Create(spawn data.Spawn, target *ecs.ComponentOwner) (*ecs.ComponentOwner, error) {
	tpl, err := f.templates.Template(spawn.Template)
	if err != nil {
		return nil, err
	}
	pos := geom.Vec(spawn.X, spawn.Y)
	switch tpl.Kind {
	case KindPlayer:
		return f.createPlayer(tpl, pos)
	case KindFollower:
		return f.createFollower(tpl, pos, target)
	case KindNpc:
		return f.createNpc(tpl, pos)
	case KindEnemy:
		return f.createEnemy(tpl, pos, target)
	case KindItem:
		return f.createItem(tpl, pos)
	default:
		return nil, fmt.Errorf("%s: %q: %w", tpl.Name, tpl.Kind, ErrUnknownKind)
	}
}

// Kind returns the kind of the template called name.
func (f *CharacterFactory) Kind(name string) (string, error) {
	tpl, err := f.templates.Template(name)
	if err != nil {
		return "", err
	}
	return tpl.Kind, nil
}

func (f *CharacterFactory) createPlayer(tpl *data.CharacterTemplate, position geom.Vector) (*ecs.ComponentOwner, error) {
	o, err := f.character(tpl, position, physics.TagPlayer, graphics.Blue)
	if err != nil {
		return nil, err
	}
	ecs.Add(o, components.NewHealthComponent(o, tpl.Health, f.events))
	ecs.Add(o, components.NewKeyboardMovementComponent(o, f.movementFor(tpl)))
	capacity := tpl.Capacity
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	ecs.Add(o, components.NewItemCollectorComponent(o, f.tree, capacity, collectReach))
	attack := ecs.Add(o, components.NewAttackComponent(o, f.melee(tpl, physics.TagEnemy), cooldown(tpl), f.clock))
	attack.BindKey(input.KeyF)
	return f.finish(o)
}

func (f *CharacterFactory) createFollower(tpl *data.CharacterTemplate, position geom.Vector, target *ecs.ComponentOwner) (*ecs.ComponentOwner, error) {
	o, err := f.character(tpl, position, physics.TagNpc, graphics.White)
	if err != nil {
		return nil, err
	}
	ecs.Add(o, components.NewFollowerComponent(o, target, tpl.FollowDistance, f.movementFor(tpl)))
	return f.finish(o)
}

func (f *CharacterFactory) createNpc(tpl *data.CharacterTemplate, position geom.Vector) (*ecs.ComponentOwner, error) {
	o, err := f.character(tpl, position, physics.TagNpc, graphics.Green)
	if err != nil {
		return nil, err
	}
	if tpl.Health > 0 {
		ecs.Add(o, components.NewHealthComponent(o, tpl.Health, f.events))
	}
	ecs.Add(o, components.NewTextComponent(o, f.pool, tpl.Name, geom.Vec(0, -labelFontSize-2), labelFontSize, graphics.White))
	return f.finish(o)
}

func (f *CharacterFactory) createEnemy(tpl *data.CharacterTemplate, position geom.Vector, target *ecs.ComponentOwner) (*ecs.ComponentOwner, error) {
	o, err := f.character(tpl, position, physics.TagEnemy, graphics.Red)
	if err != nil {
		return nil, err
	}
	ecs.Add(o, components.NewHealthComponent(o, tpl.Health, f.events))
	ecs.Add(o, components.NewFollowerComponent(o, target, tpl.FollowDistance, f.movementFor(tpl)))
	ecs.Add(o, components.NewAttackComponent(o, f.melee(tpl, physics.TagPlayer), cooldown(tpl), f.clock))
	ecs.Add(o, components.NewArtificialIntelligenceAttackComponent(o, target, f.rays, tpl.SightRange))
	return f.finish(o)
}

func (f *CharacterFactory) createItem(tpl *data.CharacterTemplate, position geom.Vector) (*ecs.ComponentOwner, error) {
	o := ecs.NewComponentOwner(f.ids, position, tpl.Name)
	size := geom.Vec(tpl.Width, tpl.Height)
	if tpl.Texture != "" {
		gfx, err := components.NewTexturedGraphicsComponent(o, f.pool, size, graphics.TexturePath(tpl.Texture), graphics.LayerSecond)
		if err != nil {
			o.Destroy()
			return nil, fmt.Errorf("%s: %w", tpl.Name, err)
		}
		ecs.Add(o, gfx)
	} else {
		ecs.Add(o, components.NewGraphicsComponent(o, f.pool, size, graphics.Green, graphics.LayerSecond))
	}
	ecs.Add(o, components.NewBoxColliderComponent(o, size, geom.Vector{}, physics.TagItem, true))

	points := tpl.HealPoints
	if f.scripts != nil {
		points = f.scripts.ItemHealPoints(tpl.Name, points)
	}
	ecs.Add(o, components.NewCollectableItemComponent(o, tpl.Name, components.HealEffect{Points: points}, f.events))
	return f.finish(o)
}

// character attaches what every animated character has: drawable,
// velocity, animation and collider, in that order.
func (f *CharacterFactory) character(tpl *data.CharacterTemplate, position geom.Vector, tag physics.Tag, c graphics.Color) (*ecs.ComponentOwner, error) {
	o := ecs.NewComponentOwner(f.ids, position, tpl.Name)
	size := geom.Vec(tpl.Width, tpl.Height)
	gfx := ecs.Add(o, components.NewGraphicsComponent(o, f.pool, size, c, graphics.LayerSecond))
	ecs.Add(o, components.NewVelocityComponent(o, geom.Vector{}))

	animator, err := animations.NewAnimator(tpl.Animator, gfx.ID(), f.pool, f.animators, animations.Idle, animations.Right)
	if err != nil {
		o.Destroy()
		return nil, fmt.Errorf("%s: %w", tpl.Name, err)
	}
	ecs.Add(o, components.NewAnimationComponent(o, animator, f.log))
	ecs.Add(o, components.NewBoxColliderComponent(o, size, geom.Vector{}, tag, false))
	return o, nil
}

func (f *CharacterFactory) finish(o *ecs.ComponentOwner) (*ecs.ComponentOwner, error) {
	if err := o.LoadDependentComponents(); err != nil {
		o.Destroy()
		return nil, fmt.Errorf("%s: %w", o.Name(), err)
	}
	return o, nil
}

func (f *CharacterFactory) melee(tpl *data.CharacterTemplate, targets ...physics.Tag) *components.MeleeAttack {
	return components.NewMeleeAttack(f.tree, damageFor(f.scripts, tpl.Damage), tpl.AttackReach, f.events, targets...)
}

func (f *CharacterFactory) movementFor(tpl *data.CharacterTemplate) components.MovementConfig {
	cfg := f.movement
	if tpl.Speed > 0 {
		cfg.Speed = tpl.Speed
	}
	return cfg
}

func cooldown(tpl *data.CharacterTemplate) time.Duration {
	return time.Duration(tpl.AttackCooldown * float64(time.Second))
}
