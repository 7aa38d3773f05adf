// Package quest runs the quest lifecycle: a quest is started once, checked
// only when the player does something that could finish it, and leaves the
// Active state exactly once.
package quest

import (
	"errors"
	"fmt"

	"github.com/kasuganosora/topdownrpg/sim/game/entity"
)

// Status is the lifecycle state of a quest.
type Status uint8

const (
	Inactive Status = iota
	Active
	Completed
	Failed
)

var statusNames = [...]string{"inactive", "active", "completed", "failed"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Terminal reports whether s can no longer change.
func (s Status) Terminal() bool { return s == Completed || s == Failed }

// Event is the headline of a notification.
type Event string

const (
	EventStarted   Event = "Quest Started!"
	EventCompleted Event = "Quest Completed!"
	EventFailed    Event = "Quest Failed!"
)

// Notification reports a quest transition to the HUD.
type Notification struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      Event     `json:"status"`
	Reward      string    `json:"reward,omitempty"`
	Giver       entity.ID `json:"giver"`
}

// Kind names a quest type in content definitions.
type Kind string

const (
	KindDelivery    Kind = "delivery"
	KindElimination Kind = "elimination"
)

// Def is the static definition of a quest. Target and Giver are resolved
// entity handles; TargetName is kept for progress text.
type Def struct {
	Kind        Kind
	Name        string
	Description string
	Reward      string
	Giver       entity.ID
	Target      entity.ID
	TargetName  string

	// Delivery: the quest fails once the hour reaches DeadlineHour.
	DeadlineHour int
	// Elimination: the quest is only live while StartHour <= hour < EndHour,
	// wrapping past midnight when EndHour < StartHour.
	StartHour int
	EndHour   int
}

// ObservationKind is the player action that triggered a check.
type ObservationKind uint8

const (
	ObservedInteraction ObservationKind = iota
	ObservedAttack
)

// Observation is what the world saw when the player acted.
type Observation struct {
	Kind        ObservationKind
	Target      entity.ID // actor the action was aimed at
	TargetAlive bool
	Hour        int
}

// Quest is the lifecycle contract shared by every quest kind.
type Quest interface {
	Def() Def
	Status() Status
	// Start moves an Inactive quest to Active.
	Start() Notification
	// CheckCompletion evaluates obs against an Active quest. ok is true when
	// the quest transitioned, in which case n describes the transition.
	CheckCompletion(obs Observation) (n Notification, ok bool)
	Progress() string
	TimeInfo() string
}

var (
	ErrUnknownKind     = errors.New("quest: unknown kind")
	ErrAlreadyAccepted = errors.New("quest: already accepted")
	ErrInvalidHour     = errors.New("quest: hour out of range")
)

// New builds the quest described by def.
func New(def Def) (Quest, error) {
	switch def.Kind {
	case KindDelivery:
		if !validHour(def.DeadlineHour) {
			return nil, fmt.Errorf("%w: deadline %d", ErrInvalidHour, def.DeadlineHour)
		}
		return NewDelivery(def), nil
	case KindElimination:
		if !validHour(def.StartHour) || !validHour(def.EndHour) {
			return nil, fmt.Errorf("%w: window %d-%d", ErrInvalidHour, def.StartHour, def.EndHour)
		}
		return NewElimination(def), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, def.Kind)
}

func validHour(h int) bool { return h >= 0 && h < 24 }

// base carries the state shared by all quest kinds.
type base struct {
	def    Def
	status Status
}

func (b *base) Def() Def { return b.def }
func (b *base) Status() Status { return b.status }

func (b *base) Start() Notification {
	if b.status == Inactive {
		b.status = Active
	}
	return b.notify(EventStarted)
}

// finish moves an Active quest to a terminal status.
func (b *base) finish(s Status) Notification {
	b.status = s
	if s == Completed {
		return b.notify(EventCompleted)
	}
	return b.notify(EventFailed)
}

func (b *base) notify(e Event) Notification {
	n := Notification{
		Name:        b.def.Name,
		Description: b.def.Description,
		Status:      e,
		Giver:       b.def.Giver,
	}
	if e == EventCompleted {
		n.Reward = b.def.Reward
	}
	return n
}

// live reports whether obs should be evaluated at all. Checks aimed at no
// actor are no-ops.
func (b *base) live(obs Observation) bool {
	return b.status == Active && obs.Target.Valid()
}

// settled returns the progress text for a quest that left Active.
func (b *base) settled() (string, bool) {
	switch b.status {
	case Completed:
		return "Completed", true
	case Failed:
		return "Failed", true
	}
	return "", false
}
