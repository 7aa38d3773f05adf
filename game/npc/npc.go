// Package npc implements villagers: schedule-driven movement and the
// dialogue state machine through which they offer quests.
package npc

import (
	"github.com/kasuganosora/topdownrpg/sim/game/clock"
	"github.com/kasuganosora/topdownrpg/sim/game/entity"
	"github.com/kasuganosora/topdownrpg/sim/game/geom"
	"github.com/kasuganosora/topdownrpg/sim/game/grid"
)

// Defaults for a villager.
const (
	DefaultHealth = 100
	DefaultSpeed  = 100.0
	// ArriveRadius is how close an NPC gets to its schedule target before it
	// stops walking.
	ArriveRadius = 5.0
	// BoxSize is the side of an NPC's bounding box.
	BoxSize = grid.TileSize - 4
)

// Window sends the NPC to Target while StartHour <= hour < EndHour. A window
// with EndHour < StartHour wraps past midnight.
type Window struct {
	StartHour int       `json:"start_hour" yaml:"start_hour"`
	EndHour   int       `json:"end_hour" yaml:"end_hour"`
	Target    geom.Vec2 `json:"target" yaml:"target"`
}

// Contains reports whether hour falls in the window.
func (w Window) Contains(hour int) bool {
	if w.StartHour <= w.EndHour {
		return w.StartHour <= hour && hour < w.EndHour
	}
	return hour >= w.StartHour || hour < w.EndHour
}

// Schedule is an ordered list of windows; the first match wins.
type Schedule []Window

// Target returns the destination for hour.
func (s Schedule) Target(hour int) (geom.Vec2, bool) {
	for _, w := range s {
		if w.Contains(hour) {
			return w.Target, true
		}
	}
	return geom.Vec2{}, false
}

// DefaultSchedule keeps the NPC home in the morning and at night and sends
// it down to the river bank in the afternoon.
func DefaultSchedule(home geom.Vec2) Schedule {
	bank := geom.V(float64(grid.RiverBank.X*grid.TileSize), float64(grid.RiverBank.Y*grid.TileSize))
	return Schedule{
		{StartHour: 6, EndHour: 12, Target: home},
		{StartHour: 12, EndHour: 18, Target: bank},
		{StartHour: 18, EndHour: 6, Target: home},
	}
}

// Greeting returns the small-talk line for the hour of day.
func Greeting(name string, hour int) string {
	switch {
	case 6 <= hour && hour < 12:
		return name + ": Good morning!"
	case 12 <= hour && hour < 18:
		return name + ": Good afternoon!"
	}
	return name + ": Good night!"
}

// NPC is one villager.
type NPC struct {
	ID        entity.ID
	Name      string
	Pos       geom.Vec2 // center
	Home      geom.Vec2
	Health    int
	MaxHealth int
	Speed     float64
	Schedule  Schedule
	Dialogue  *Dialogue

	greeting string
}

// New creates a villager at pos (its home) whose opening line is line.
func New(id entity.ID, name string, pos geom.Vec2, line string, offer *Offer) *NPC {
	return &NPC{
		ID:        id,
		Name:      name,
		Pos:       pos,
		Home:      pos,
		Health:    DefaultHealth,
		MaxHealth: DefaultHealth,
		Speed:     DefaultSpeed,
		Schedule:  DefaultSchedule(pos),
		Dialogue:  NewDialogue(name, line, offer),
		greeting:  line,
	}
}

// Alive reports whether the NPC has health left.
func (n *NPC) Alive() bool { return n.Health > 0 }

// Box returns the NPC's bounding box.
func (n *NPC) Box() geom.Rect { return geom.CenteredAt(n.Pos, BoxSize, BoxSize) }

// GreetingLine returns the NPC's current small-talk line.
func (n *NPC) GreetingLine() string { return n.greeting }

// TakeDamage lowers health, never below zero. It reports whether this hit
// killed the NPC.
func (n *NPC) TakeDamage(dmg int) bool {
	if !n.Alive() || dmg <= 0 {
		return false
	}
	n.Health -= dmg
	if n.Health < 0 {
		n.Health = 0
	}
	return n.Health == 0
}

// Update refreshes the greeting and the dialogue day, then walks straight
// toward the schedule target for the current hour. NPCs ignore terrain.
func (n *NPC) Update(c *clock.Clock, dt float64, bounds geom.Rect) {
	if !n.Alive() {
		return
	}
	hour := c.Hour()
	n.greeting = Greeting(n.Name, hour)
	n.Dialogue.Refresh(c.Ordinal())

	target, ok := n.Schedule.Target(hour)
	if !ok {
		return
	}
	if n.Pos.Dist(target) > ArriveRadius {
		n.Pos = n.Pos.Add(n.Pos.Toward(target).Scale(n.Speed * dt))
	}
	n.Pos = n.Box().ClampInto(bounds).Center()
}

// Interact runs one line of conversation. Dead NPCs only report that.
func (n *NPC) Interact(day int) Prompt {
	if !n.Alive() {
		return Prompt{Text: n.Name + " is dead."}
	}
	return n.Dialogue.Interact(n.greeting, day)
}
