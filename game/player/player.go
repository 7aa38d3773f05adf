// Package player is the player character: movement with sprint and stamina,
// combat and interaction cooldowns, the bag and the dialogue/overlay modes.
package player

import (
	"github.com/kasuganosora/topdownrpg/sim/game/entity"
	"github.com/kasuganosora/topdownrpg/sim/game/geom"
	"github.com/kasuganosora/topdownrpg/sim/game/grid"
	"github.com/kasuganosora/topdownrpg/sim/game/item"
	"github.com/kasuganosora/topdownrpg/sim/game/npc"
)

const (
	MaxHealth        = 100
	BaseSpeed        = 200.0
	SprintMultiplier = 2.0
	MaxStamina       = 100.0
	StaminaDrain     = 10.0 // per second while sprinting
	StaminaRecovery  = 1.11 // per second otherwise

	AttackDamage   = 10
	AttackCooldown = 0.5 // seconds
	// InteractionRange bounds both talking and attacking, center to center.
	InteractionRange = 50.0
	// InteractCooldown debounces interact and dialogue keys.
	InteractCooldown = 0.2
)

// Player is the player character.
type Player struct {
	ID        entity.ID
	Pos       geom.Vec2 // center
	Health    int
	MaxHealth int
	Stamina   float64
	Inventory item.Inventory

	AttackCooldown   float64
	InteractCooldown float64

	InDialogue bool
	Partner    entity.ID // NPC being talked to
	Prompt     npc.Prompt

	ShowInventory bool
	ShowQuestLog  bool
}

// New returns a player at full health and stamina.
func New(id entity.ID, pos geom.Vec2) *Player {
	return &Player{
		ID:        id,
		Pos:       pos,
		Health:    MaxHealth,
		MaxHealth: MaxHealth,
		Stamina:   MaxStamina,
	}
}

// Alive reports whether the player has health left.
func (p *Player) Alive() bool { return p.Health > 0 }

// Box returns the player's bounding box.
func (p *Player) Box() geom.Rect { return geom.CenteredAt(p.Pos, grid.ActorSize, grid.ActorSize) }

// Overlay reports whether a full-screen overlay is open. The world does not
// advance while one is.
func (p *Player) Overlay() bool { return p.ShowInventory || p.ShowQuestLog }

// TakeDamage lowers health, never below zero, and reports whether the hit
// was fatal.
func (p *Player) TakeDamage(dmg int) bool {
	if !p.Alive() || dmg <= 0 {
		return false
	}
	p.Health -= dmg
	if p.Health < 0 {
		p.Health = 0
	}
	return p.Health == 0
}

// TickCooldowns counts every cooldown down by dt seconds.
func (p *Player) TickCooldowns(dt float64) {
	p.AttackCooldown = countdown(p.AttackCooldown, dt)
	p.InteractCooldown = countdown(p.InteractCooldown, dt)
}

func countdown(v, dt float64) float64 {
	if v <= 0 {
		return v
	}
	return v - dt
}

// Move walks the player along in.Move for dt seconds, sprinting while
// stamina lasts, and updates stamina.
func (p *Player) Move(g *grid.Grid, in Intent, dt float64) {
	dir := in.Move.Normalize()
	moving := !dir.IsZero()
	sprinting := in.Sprint && p.Stamina > 0

	speed := BaseSpeed
	if sprinting {
		speed *= SprintMultiplier
	}
	p.Pos = g.Step(p.Pos, dir.Scale(speed*dt), grid.ActorSize, grid.Collidable)

	if sprinting && moving {
		p.Stamina -= StaminaDrain * dt
		if p.Stamina < 0 {
			p.Stamina = 0
		}
	} else if p.Stamina < MaxStamina {
		p.Stamina += StaminaRecovery * dt
		if p.Stamina > MaxStamina {
			p.Stamina = MaxStamina
		}
	}
}

// ConsumePotion drinks a potion to refill stamina. It reports false when
// the bag holds none.
func (p *Player) ConsumePotion() bool {
	if p.Inventory.Remove(item.Potion, 1) != nil {
		return false
	}
	p.Stamina = MaxStamina
	return true
}

// EnterDialogue starts talking to partner.
func (p *Player) EnterDialogue(partner entity.ID, prompt npc.Prompt) {
	p.InDialogue = true
	p.Partner = partner
	p.Prompt = prompt
}

// ExitDialogue leaves dialogue mode and clears the prompt.
func (p *Player) ExitDialogue() {
	p.InDialogue = false
	p.Partner = entity.None
	p.Prompt = npc.Prompt{}
}

// InRange reports whether other is within interaction range.
func (p *Player) InRange(other geom.Vec2) bool {
	return p.Pos.Dist(other) < InteractionRange
}
