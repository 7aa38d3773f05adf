package world

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kasuganosora/topdownrpg/sim/game/grid"
	"github.com/kasuganosora/topdownrpg/sim/game/player"
)

// InputQueue collects intents from any goroutine until the next tick
// drains them.
type InputQueue struct {
	mu      sync.Mutex
	pending player.Intent
	count   int
}

// Push folds in into the pending intent.
func (q *InputQueue) Push(in player.Intent) {
	q.mu.Lock()
	q.pending = q.pending.Merge(in)
	q.count++
	q.mu.Unlock()
}

// Drain returns the merged intent and resets the queue. Movement does not
// carry over to the next tick.
func (q *InputQueue) Drain() (player.Intent, int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	in, n := q.pending, q.count
	q.pending, q.count = player.Intent{}, 0
	return in, n
}

// Room owns a Simulation and is the only thing that steps it. Input may be
// pushed and snapshots read from any goroutine.
type Room struct {
	sim           *Simulation
	input         InputQueue
	snapshotEvery uint64
	steps         uint64 // Tick calls, paused or not

	mu         sync.RWMutex
	latest     *Snapshot
	onSnapshot []func(*Snapshot)
	onEvents   []func([]Event)

	stepMu sync.Mutex
	logger *zap.Logger
}

// NewRoom wraps sim. A snapshot is published every snapshotEvery calls to
// Tick (every call when it is below 1), after any step with events, and
// whenever the pause or overlay state changes.
func NewRoom(sim *Simulation, snapshotEvery int, logger *zap.Logger) *Room {
	if snapshotEvery < 1 {
		snapshotEvery = 1
	}
	return &Room{
		sim:           sim,
		snapshotEvery: uint64(snapshotEvery),
		latest:        sim.Snapshot(),
		logger:        logger,
	}
}

// OnSnapshot registers fn to receive published snapshots. Register before
// the first Tick.
func (r *Room) OnSnapshot(fn func(*Snapshot)) {
	r.mu.Lock()
	r.onSnapshot = append(r.onSnapshot, fn)
	r.mu.Unlock()
}

// OnEvents registers fn to receive the events of every step that had any.
func (r *Room) OnEvents(fn func([]Event)) {
	r.mu.Lock()
	r.onEvents = append(r.onEvents, fn)
	r.mu.Unlock()
}

// PushInput queues player input for the next tick.
func (r *Room) PushInput(in player.Intent) { r.input.Push(in) }

// Latest returns the most recent snapshot.
func (r *Room) Latest() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latest
}

// Grid returns the immutable world grid.
func (r *Room) Grid() *grid.Grid { return r.sim.Grid() }

// Tick drains queued input and advances the simulation by dt.
func (r *Room) Tick(dt time.Duration) []Event {
	r.stepMu.Lock()
	prev := r.Latest()
	in, _ := r.input.Drain()
	events := r.sim.Step(dt, in)
	snap := r.sim.Snapshot()
	r.steps++
	publish := r.steps%r.snapshotEvery == 0 || len(events) > 0 || modeChanged(prev, snap)
	r.stepMu.Unlock()

	r.mu.Lock()
	r.latest = snap
	onSnapshot := r.onSnapshot
	onEvents := r.onEvents
	r.mu.Unlock()

	if len(events) > 0 {
		for _, fn := range onEvents {
			fn(events)
		}
	}
	if publish {
		for _, fn := range onSnapshot {
			fn(snap)
		}
	}
	return events
}

// modeChanged reports whether the pause, overlay or dialogue flags differ.
// Steps frozen by a pause or an overlay still change these.
func modeChanged(prev, next *Snapshot) bool {
	return prev.Paused != next.Paused ||
		prev.Player.ShowInventory != next.Player.ShowInventory ||
		prev.Player.ShowQuestLog != next.Player.ShowQuestLog ||
		prev.Player.InDialogue != next.Player.InDialogue
}
