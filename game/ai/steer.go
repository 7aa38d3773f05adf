package ai

import (
	"math"

	"github.com/kasuganosora/topdownrpg/sim/game/geom"
	"github.com/kasuganosora/topdownrpg/sim/game/grid"
)

// Speed factors applied on top of Profile.Speed.
const (
	PatrolSpeedFactor = 0.5
	ReturnSpeedFactor = 1.5
)

func steerPatrol(b *Brain, p *Profile, ctx *Context) Intent {
	return b.orbit(b.Home, p, ctx)
}

func steerVillagePatrol(b *Brain, p *Profile, ctx *Context) Intent {
	return b.orbit(b.Village, p, ctx)
}

// orbit advances the patrol phase and heads for the point on the circle of
// radius PatrolRadius around anchor at that phase.
func (b *Brain) orbit(anchor geom.Vec2, p *Profile, ctx *Context) Intent {
	dir := b.OrbitDir
	if p.RerollOrbit {
		dir = orbitSign(ctx.Rand)
	}
	b.PatrolAngle += p.PatrolSpeed * ctx.DT * dir
	target := anchor.Add(geom.V(math.Cos(b.PatrolAngle), math.Sin(b.PatrolAngle)).Scale(p.PatrolRadius))
	return Intent{Dir: ctx.Self.Toward(target), SpeedFactor: PatrolSpeedFactor}
}

func steerChase(b *Brain, p *Profile, ctx *Context) Intent {
	if dir, ok := b.crossRiver(grid.CoordAt(ctx.Player), p, ctx); ok {
		return Intent{Dir: dir, SpeedFactor: 1}
	}
	// Direct pursuit: any bridge route is no longer the navigation goal.
	b.ClearPath()
	return Intent{Dir: ctx.Self.Toward(ctx.Player), SpeedFactor: 1}
}

func steerToVillage(b *Brain, p *Profile, ctx *Context) Intent {
	villageTile := grid.CoordAt(b.Village)
	if dir, ok := b.crossRiver(villageTile, p, ctx); ok {
		return Intent{Dir: dir, SpeedFactor: 1}
	}
	if dir, ok := b.navigate(villageTile, p, ctx); ok {
		return Intent{Dir: dir, SpeedFactor: 1}
	}
	return Intent{Dir: ctx.Self.Toward(b.Village), SpeedFactor: 1}
}

func steerReturn(b *Brain, p *Profile, ctx *Context) Intent {
	if dir, ok := b.navigate(grid.CoordAt(b.Home), p, ctx); ok {
		return Intent{Dir: dir, SpeedFactor: ReturnSpeedFactor}
	}
	return Intent{Dir: ctx.Self.Toward(b.Home), SpeedFactor: ReturnSpeedFactor}
}

// crossRiver routes toward the nearest bridge when the river lies between
// the actor and target. ok is false when no detour applies or none can be
// walked, and the caller moves on without it.
func (b *Brain) crossRiver(target grid.Coord, p *Profile, ctx *Context) (geom.Vec2, bool) {
	from := grid.CoordAt(ctx.Self)
	if !ctx.Grid.RiverSeparates(from, target) {
		return geom.Vec2{}, false
	}
	// A bridge path stays cached until exhausted even though the nearest
	// bridge shifts as the actor walks.
	if b.bridging {
		if dir, ok := b.follow(p, ctx); ok {
			return dir, true
		}
	}
	bridge, ok := ctx.Grid.NearestBridge(from)
	if !ok {
		return geom.Vec2{}, false
	}
	dir, ok := b.navigate(bridge, p, ctx)
	b.bridging = ok
	return dir, ok
}

// navigate follows the cached path to goal, computing it first when the
// cache is empty or ends somewhere else.
func (b *Brain) navigate(goal grid.Coord, p *Profile, ctx *Context) (geom.Vec2, bool) {
	if !b.Path.Empty() && b.goal != goal {
		b.ClearPath()
	}
	if b.Path.Empty() {
		b.Path = FindPath(ctx.Grid, grid.CoordAt(ctx.Self), goal, ctx.Blocked)
		b.goal = goal
	}
	return b.follow(p, ctx)
}

// follow pops the head waypoint once the actor is within WaypointRadius of
// its center and returns the direction to the new head.
func (b *Brain) follow(p *Profile, ctx *Context) (geom.Vec2, bool) {
	head, ok := b.Path.Head()
	if ok && ctx.Self.Dist(head.Center()) < p.WaypointRadius {
		b.Path = b.Path.Pop()
		head, ok = b.Path.Head()
	}
	if !ok {
		b.ClearPath()
		return geom.Vec2{}, false
	}
	return ctx.Self.Toward(head.Center()), true
}
