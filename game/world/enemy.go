package world

import (
	"fmt"
	"math/rand"

	"github.com/kasuganosora/topdownrpg/sim/game/ai"
	"github.com/kasuganosora/topdownrpg/sim/game/clock"
	"github.com/kasuganosora/topdownrpg/sim/game/entity"
	"github.com/kasuganosora/topdownrpg/sim/game/geom"
	"github.com/kasuganosora/topdownrpg/sim/game/grid"
	"github.com/kasuganosora/topdownrpg/sim/game/player"
)

// Variant is an enemy species.
type Variant string

const (
	Goblin Variant = "goblin"
	Wolf   Variant = "wolf"
)

// VariantSpec is the per-species tuning layered over ai.DefaultProfile.
type VariantSpec struct {
	MaxHealth int
	Speed     float64
	Nocturnal bool
}

var variants = map[Variant]VariantSpec{
	Goblin: {MaxHealth: 50, Speed: 150},
	Wolf:   {MaxHealth: 30, Speed: 200, Nocturnal: true},
}

// LookupVariant returns the tuning for v.
func LookupVariant(v Variant) (VariantSpec, bool) {
	spec, ok := variants[v]
	return spec, ok
}

// Contact attack of every enemy.
const (
	ContactDamage   = 5
	ContactCooldown = 1.0 // seconds
)

// Enemy is the runtime state of one hostile actor.
type Enemy struct {
	ID             entity.ID
	Name           string
	Variant        Variant
	Pos            geom.Vec2 // center
	Health         int
	MaxHealth      int
	Visible        bool
	AttackCooldown float64

	Profile ai.Profile
	Brain   *ai.Brain
}

// NewEnemy spawns an enemy of variant at pos whose nocturnal raids target
// village. Nocturnal enemies start hidden until the first night hour.
func NewEnemy(id entity.ID, name string, variant Variant, pos, village geom.Vec2, rerollOrbit bool, rng *rand.Rand) (*Enemy, error) {
	spec, ok := variants[variant]
	if !ok {
		return nil, fmt.Errorf("world: unknown enemy variant %q", variant)
	}
	profile := ai.DefaultProfile()
	profile.Speed = spec.Speed
	profile.Nocturnal = spec.Nocturnal
	profile.RerollOrbit = rerollOrbit
	return &Enemy{
		ID:        id,
		Name:      name,
		Variant:   variant,
		Pos:       pos,
		Health:    spec.MaxHealth,
		MaxHealth: spec.MaxHealth,
		Visible:   !spec.Nocturnal,
		Profile:   profile,
		Brain:     ai.NewBrain(pos, village, rng),
	}, nil
}

// Alive reports whether the enemy has health left.
func (e *Enemy) Alive() bool { return e.Health > 0 }

// Active reports whether the enemy takes part in the world this tick.
func (e *Enemy) Active() bool { return e.Alive() && e.Visible }

// Box returns the enemy's bounding box.
func (e *Enemy) Box() geom.Rect { return geom.CenteredAt(e.Pos, grid.ActorSize, grid.ActorSize) }

// TakeDamage lowers health, never below zero. It reports whether this hit
// killed the enemy.
func (e *Enemy) TakeDamage(dmg int) bool {
	if !e.Alive() || dmg <= 0 {
		return false
	}
	e.Health -= dmg
	if e.Health < 0 {
		e.Health = 0
	}
	return e.Health == 0
}

// UpdateVisibility applies the night-hour gate of nocturnal enemies. At the
// wake hour a visible enemy vanishes and its brain is reset; it reports
// true in that case.
func (e *Enemy) UpdateVisibility(hour int, rng *rand.Rand) bool {
	if !e.Profile.Nocturnal {
		return false
	}
	if hour == clock.WakeHour && e.Visible {
		e.Visible = false
		e.Brain.Reset(rng)
		return true
	}
	e.Visible = clock.IsNightHour(hour)
	return false
}

// Update runs the behavior state machine, moves the enemy and resolves its
// contact attack on p. ctx.Self and ctx.Player are filled in here. It
// reports whether the player was hit.
func (e *Enemy) Update(ctx *ai.Context, p *player.Player) bool {
	if !e.Active() {
		return false
	}
	e.AttackCooldown -= ctx.DT

	ctx.Self, ctx.Player = e.Pos, p.Pos
	_, intent := e.Brain.Decide(&e.Profile, ctx)
	delta := intent.Dir.Scale(e.Profile.Speed * intent.SpeedFactor * ctx.DT)
	e.Pos = ctx.Grid.Step(e.Pos, delta, grid.ActorSize, ctx.Blocked)

	if e.AttackCooldown <= 0 && p.Alive() && e.Box().Overlaps(p.Box()) {
		p.TakeDamage(ContactDamage)
		e.AttackCooldown = ContactCooldown
		return true
	}
	return false
}
