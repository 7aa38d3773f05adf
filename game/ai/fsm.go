package ai

import "github.com/kasuganosora/topdownrpg/sim/game/clock"

// handler is one row of the state dispatch table. next evaluates the
// state-local transition rule; steer produces the movement for a brain that
// is (still) in the state after transitions have been applied.
type handler struct {
	next  func(b *Brain, p *Profile, ctx *Context) State
	steer func(b *Brain, p *Profile, ctx *Context) Intent
}

var handlers = [...]handler{
	StatePatrol:        {next: nextPatrol, steer: steerPatrol},
	StateChase:         {next: nextChase, steer: steerChase},
	StateReturn:        {next: nextReturn, steer: steerReturn},
	StateToVillage:     {next: nextToVillage, steer: steerToVillage},
	StateVillagePatrol: {next: nextVillagePatrol, steer: steerVillagePatrol},
}

// Decide runs one tick of the state machine: it ticks the state timer,
// applies at most one transition and returns the resulting state together
// with the movement it asks for.
func (b *Brain) Decide(p *Profile, ctx *Context) (State, Intent) {
	b.StateTimer -= ctx.DT
	if next := b.Transition(p, ctx); next != b.State {
		b.enter(next, p, ctx)
	}
	return b.State, handlers[b.State].steer(b, p, ctx)
}

// Transition evaluates the transition rules in priority order without
// mutating the brain. Detection of the player preempts every state.
func (b *Brain) Transition(p *Profile, ctx *Context) State {
	if b.State != StateChase && ctx.Self.Dist(ctx.Player) < p.DetectionRange {
		return StateChase
	}
	if int(b.State) >= len(handlers) {
		return StatePatrol
	}
	return handlers[b.State].next(b, p, ctx)
}

func (b *Brain) enter(s State, p *Profile, ctx *Context) {
	b.State = s
	b.ClearPath()
	switch s {
	case StateChase:
		b.StateTimer = p.ChaseDuration
	case StatePatrol, StateVillagePatrol:
		b.rollPatrol(ctx.Rand)
	}
}

func nextPatrol(_ *Brain, p *Profile, ctx *Context) State {
	if p.Nocturnal && clock.IsNightHour(ctx.Hour) {
		return StateToVillage
	}
	return StatePatrol
}

func nextChase(b *Brain, p *Profile, ctx *Context) State {
	if ctx.Self.Dist(ctx.Player) >= p.DetectionRange && b.StateTimer <= 0 {
		return StateReturn
	}
	return StateChase
}

func nextToVillage(b *Brain, p *Profile, ctx *Context) State {
	if ctx.Self.Dist(b.Village) < p.ArriveRadius {
		return StateVillagePatrol
	}
	return StateToVillage
}

func nextVillagePatrol(_ *Brain, _ *Profile, ctx *Context) State {
	if !clock.IsNightHour(ctx.Hour) {
		return StateReturn
	}
	return StateVillagePatrol
}

func nextReturn(b *Brain, p *Profile, ctx *Context) State {
	if ctx.Self.Dist(b.Home) < p.ArriveRadius {
		return StatePatrol
	}
	return StateReturn
}
