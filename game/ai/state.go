// Package ai drives enemy behavior: grid pathfinding and the per-actor
// finite-state machine that turns world observations into movement intent.
package ai

import (
	"math"
	"math/rand"

	"github.com/kasuganosora/topdownrpg/sim/game/geom"
	"github.com/kasuganosora/topdownrpg/sim/game/grid"
)

// State enumerates the high-level behavior states of an enemy.
type State uint8

const (
	StatePatrol        State = iota // orbit the home anchor
	StateChase                      // pursue the player
	StateReturn                     // walk back to the home anchor
	StateToVillage                  // nocturnal: travel to the village anchor
	StateVillagePatrol              // nocturnal: orbit the village anchor
)

var stateNames = [...]string{"patrol", "chase", "return", "to_village", "village_patrol"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Profile is the static tuning of one enemy variant.
type Profile struct {
	Speed          float64 // world units per second at full speed
	DetectionRange float64
	PatrolRadius   float64
	PatrolSpeed    float64 // radians per second
	ChaseDuration  float64 // seconds a chase persists after losing the player
	ArriveRadius   float64 // distance at which an anchor counts as reached
	WaypointRadius float64 // distance at which a waypoint is consumed
	Nocturnal      bool

	// RerollOrbit flips a coin for the orbit direction on every tick, so a
	// patrolling actor jitters around its phase instead of circling. When
	// false the direction picked on entering a patrol state is held.
	RerollOrbit bool
}

// DefaultProfile returns the tuning shared by every enemy variant; callers
// override Speed and Nocturnal.
func DefaultProfile() Profile {
	return Profile{
		Speed:          150,
		DetectionRange: 200,
		PatrolRadius:   96,
		PatrolSpeed:    0.5,
		ChaseDuration:  3.0,
		ArriveRadius:   10,
		WaypointRadius: 5,
		RerollOrbit:    true,
	}
}

// Brain is the mutable behavior memory of one enemy.
type Brain struct {
	State       State
	StateTimer  float64
	Path        Path
	PatrolAngle float64
	OrbitDir    float64 // +1 or -1, used when the profile holds the orbit direction

	Home    geom.Vec2
	Village geom.Vec2

	goal     grid.Coord // tile the cached Path ends at
	bridging bool       // Path leads to a river crossing
}

// NewBrain returns a brain in Patrol around home with a random phase.
func NewBrain(home, village geom.Vec2, rng *rand.Rand) *Brain {
	b := &Brain{State: StatePatrol, Home: home, Village: village}
	b.rollPatrol(rng)
	return b
}

// Reset forces the brain back to Patrol with no path.
func (b *Brain) Reset(rng *rand.Rand) {
	b.State = StatePatrol
	b.ClearPath()
	b.rollPatrol(rng)
}

// ClearPath drops the cached path.
func (b *Brain) ClearPath() {
	b.Path = nil
	b.goal = grid.Coord{}
	b.bridging = false
}

func (b *Brain) rollPatrol(rng *rand.Rand) {
	b.PatrolAngle = rng.Float64() * 2 * math.Pi
	b.OrbitDir = orbitSign(rng)
}

func orbitSign(rng *rand.Rand) float64 {
	if rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

// Context carries the per-tick observations a brain decides on.
type Context struct {
	Grid    *grid.Grid
	Blocked grid.KindSet
	Self    geom.Vec2 // actor center
	Player  geom.Vec2 // player center
	Hour    int
	DT      float64 // seconds
	Rand    *rand.Rand
}

// Intent is the movement a state asks for this tick.
type Intent struct {
	Dir         geom.Vec2 // unit vector or zero
	SpeedFactor float64   // multiplier on Profile.Speed
}
