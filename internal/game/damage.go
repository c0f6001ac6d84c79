package game

import (
	"github.com/chimarrao/platformer/internal/components"
	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/physics"
	"github.com/chimarrao/platformer/internal/scripting"
)

// scriptedDamage asks the Lua calc_attack formula for every hit.
type scriptedDamage struct {
	scripts *scripting.Engine
	base    int
}

func (d scriptedDamage) Damage(attacker, target *ecs.ComponentOwner) components.Hit {
	ctx := scripting.AttackContext{
		AttackerName: attacker.Name(),
		AttackerTag:  string(tagOf(attacker)),
		BaseDamage:   d.base,
		TargetName:   target.Name(),
		TargetTag:    string(tagOf(target)),
	}
	if h, ok := ecs.GetComponent[*components.HealthComponent](target); ok {
		ctx.TargetHealth = h.CurrentHealth()
		ctx.TargetMax = h.MaximumHealth()
	}
	r := d.scripts.CalcAttack(ctx)
	return components.Hit{Damage: r.Damage, Critical: r.Critical}
}

// damageFor falls back to the template damage when no scripts are loaded.
func damageFor(scripts *scripting.Engine, base int) components.DamageCalculator {
	if scripts == nil {
		return components.FixedDamage(base)
	}
	return scriptedDamage{scripts: scripts, base: base}
}

func tagOf(o *ecs.ComponentOwner) physics.Tag {
	if col, ok := ecs.GetComponent[*components.BoxColliderComponent](o); ok {
		return col.Tag()
	}
	return physics.TagNone
}
