package world

import (
	"github.com/kasuganosora/topdownrpg/sim/game/clock"
	"github.com/kasuganosora/topdownrpg/sim/game/entity"
	"github.com/kasuganosora/topdownrpg/sim/game/quest"
)

// EventKind classifies what happened during a step.
type EventKind string

const (
	EventQuest         EventKind = "quest"
	EventKill          EventKind = "kill"
	EventPlayerHit     EventKind = "player_hit"
	EventPlayerDied    EventKind = "player_died"
	EventDespawn       EventKind = "despawn"
	EventDialogueFault EventKind = "dialogue_fault"
	EventWeather       EventKind = "weather"
)

// Event is one notable outcome of a step, in the order it happened.
type Event struct {
	Kind   EventKind           `json:"kind"`
	Actor  entity.ID           `json:"actor,omitempty"`
	Name   string              `json:"name,omitempty"`
	Detail string              `json:"detail,omitempty"`
	Quest  *quest.Notification `json:"quest,omitempty"`
	Tick   uint64              `json:"tick"`
	At     clock.Time          `json:"at"`
}
