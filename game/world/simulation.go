// Package world ties the grid, the clock and every actor together and
// advances them one fixed-order step at a time.
package world

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/kasuganosora/topdownrpg/sim/game/ai"
	"github.com/kasuganosora/topdownrpg/sim/game/clock"
	"github.com/kasuganosora/topdownrpg/sim/game/entity"
	"github.com/kasuganosora/topdownrpg/sim/game/grid"
	"github.com/kasuganosora/topdownrpg/sim/game/npc"
	"github.com/kasuganosora/topdownrpg/sim/game/player"
	"github.com/kasuganosora/topdownrpg/sim/game/quest"
	"github.com/kasuganosora/topdownrpg/sim/game/weather"
)

var errNoPartner = errors.New("world: dialogue partner is gone")

// Simulation is the whole game world. It is not safe for concurrent use;
// Room serializes access to it.
type Simulation struct {
	grid    *grid.Grid
	clock   *clock.Clock
	weather *weather.System
	ledger  *quest.Ledger

	player  *player.Player
	npcs    []*npc.NPC
	enemies []*Enemy
	names   map[entity.ID]string

	rng    *rand.Rand
	ctx    ai.Context
	tick   uint64
	paused bool
	events []Event
	logger *zap.Logger
}

func (s *Simulation) Grid() *grid.Grid { return s.grid }
func (s *Simulation) Clock() *clock.Clock { return s.clock }
func (s *Simulation) Weather() *weather.System { return s.weather }
func (s *Simulation) Ledger() *quest.Ledger { return s.ledger }
func (s *Simulation) Player() *player.Player { return s.player }
func (s *Simulation) NPCs() []*npc.NPC { return s.npcs }
func (s *Simulation) Enemies() []*Enemy { return s.enemies }
func (s *Simulation) Paused() bool { return s.paused }
func (s *Simulation) Tick() uint64 { return s.tick }
func (s *Simulation) Name(id entity.ID) string { return s.names[id] }

// Step advances the world by dt and applies one tick of player input.
//
// Order: pause and overlay toggles, clock, weather, enemies, NPCs, then the
// player's cooldowns and input. Quest checks run right after the
// interaction or attack that triggers them. While paused or while an
// overlay is open nothing advances.
func (s *Simulation) Step(dt time.Duration, in player.Intent) []Event {
	s.events = nil
	p := s.player

	if in.TogglePause {
		s.paused = !s.paused
		s.logger.Debug("pause toggled", zap.Bool("paused", s.paused))
	}
	if s.paused {
		return nil
	}
	if !p.InDialogue {
		if in.ToggleInventory {
			p.ShowInventory = !p.ShowInventory
		}
		if in.ToggleQuestLog {
			p.ShowQuestLog = !p.ShowQuestLog
		}
	}
	if p.Overlay() {
		return nil
	}

	secs := dt.Seconds()
	s.tick++
	s.clock.Advance(dt)
	hour := s.clock.Hour()

	if s.weather.Update(hour, secs) {
		s.emit(Event{Kind: EventWeather, Detail: s.weather.Kind().String()})
	}
	s.updateEnemies(hour, secs)

	bounds := s.grid.Bounds()
	for _, n := range s.npcs {
		n.Update(s.clock, secs, bounds)
	}

	p.TickCooldowns(secs)
	s.handleInput(in, secs)
	return s.events
}

func (s *Simulation) emit(ev Event) {
	ev.Tick = s.tick
	ev.At = s.clock.Now()
	s.events = append(s.events, ev)
}

func (s *Simulation) updateEnemies(hour int, dt float64) {
	p := s.player
	s.ctx.Hour, s.ctx.DT = hour, dt
	for _, e := range s.enemies {
		if e.UpdateVisibility(hour, s.rng) {
			s.logger.Debug("enemy despawned", zap.String("enemy", e.Name), zap.Int("hour", hour))
			s.emit(Event{Kind: EventDespawn, Actor: e.ID, Name: e.Name})
		}
		before := e.Brain.State
		wasAlive := p.Alive()
		hit := e.Update(&s.ctx, p)
		if after := e.Brain.State; after != before {
			s.logger.Debug("enemy state",
				zap.String("enemy", e.Name),
				zap.Stringer("from", before),
				zap.Stringer("to", after))
		}
		if !hit {
			continue
		}
		s.emit(Event{
			Kind:   EventPlayerHit,
			Actor:  e.ID,
			Name:   e.Name,
			Detail: fmt.Sprintf("health %d/%d", p.Health, p.MaxHealth),
		})
		if wasAlive && !p.Alive() {
			s.logger.Info("player died", zap.String("killer", e.Name))
			s.emit(Event{Kind: EventPlayerDied, Actor: p.ID, Name: s.names[p.ID]})
		}
	}
}

func (s *Simulation) handleInput(in player.Intent, dt float64) {
	p := s.player
	if !p.Alive() {
		return
	}
	if p.InDialogue {
		s.converse(in)
		return
	}

	p.Move(s.grid, in, dt)

	if in.Interact && p.InteractCooldown <= 0 {
		p.InteractCooldown = player.InteractCooldown
		s.interact()
	}
	if in.Attack && p.AttackCooldown <= 0 {
		s.attack()
	}
	if in.UsePotion && p.InteractCooldown <= 0 && p.ConsumePotion() {
		p.InteractCooldown = player.InteractCooldown
	}
}

// interact opens a conversation with the first NPC in range and lets the
// quest ledger see it.
func (s *Simulation) interact() {
	p := s.player
	for _, n := range s.npcs {
		if !p.InRange(n.Pos) {
			continue
		}
		p.EnterDialogue(n.ID, n.Interact(s.clock.Ordinal()))
		s.observe(quest.Observation{
			Kind:        quest.ObservedInteraction,
			Target:      n.ID,
			TargetAlive: n.Alive(),
			Hour:        s.clock.Hour(),
		})
		return
	}
}

// attack hits the first visible enemy in range, then the first NPC in
// range. Only the enemy hit is shown to the quest ledger.
func (s *Simulation) attack() {
	p := s.player
	for _, e := range s.enemies {
		if !e.Active() || !p.InRange(e.Pos) {
			continue
		}
		p.AttackCooldown = player.AttackCooldown
		if e.TakeDamage(player.AttackDamage) {
			s.logger.Info("enemy killed", zap.String("enemy", e.Name))
			s.emit(Event{Kind: EventKill, Actor: e.ID, Name: e.Name})
		}
		s.observe(quest.Observation{
			Kind:        quest.ObservedAttack,
			Target:      e.ID,
			TargetAlive: e.Alive(),
			Hour:        s.clock.Hour(),
		})
		break
	}
	for _, n := range s.npcs {
		if !n.Alive() || !p.InRange(n.Pos) {
			continue
		}
		p.AttackCooldown = player.AttackCooldown
		if n.TakeDamage(player.AttackDamage) {
			s.logger.Info("npc killed", zap.String("npc", n.Name))
			s.emit(Event{Kind: EventKill, Actor: n.ID, Name: n.Name})
		}
		break
	}
}

// converse advances the open conversation. A failing dialogue never takes
// the step down: the player is dropped out of dialogue and play goes on.
func (s *Simulation) converse(in player.Intent) {
	partner := s.player.Partner
	defer func() {
		if r := recover(); r != nil {
			s.dialogueFault(partner, fmt.Errorf("world: dialogue panic: %v", r))
		}
	}()
	if err := s.advanceDialogue(in); err != nil {
		s.dialogueFault(partner, err)
	}
}

func (s *Simulation) advanceDialogue(in player.Intent) error {
	p := s.player
	n := s.npc(p.Partner)
	if n == nil {
		return errNoPartner
	}
	day := s.clock.Ordinal()
	switch {
	case in.Interact && p.InteractCooldown <= 0:
		p.InteractCooldown = player.InteractCooldown
		p.Prompt = n.Interact(day)
		if len(p.Prompt.Options) == 0 {
			p.ExitDialogue()
		}
	case in.Choice > 0 && len(p.Prompt.Options) > 0:
		def, err := n.Dialogue.Choose(in.Choice-1, day)
		p.ExitDialogue()
		if err != nil {
			return err
		}
		if def != nil {
			return s.accept(*def)
		}
	}
	return nil
}

func (s *Simulation) dialogueFault(partner entity.ID, err error) {
	s.logger.Warn("dialogue aborted",
		zap.String("partner", s.names[partner]),
		zap.Error(err))
	s.emit(Event{Kind: EventDialogueFault, Actor: partner, Name: s.names[partner], Detail: err.Error()})
	s.player.ExitDialogue()
}

func (s *Simulation) accept(def quest.Def) error {
	q, err := quest.New(def)
	if err != nil {
		return err
	}
	n, err := s.ledger.Accept(q)
	if err != nil {
		return err
	}
	s.emitQuest(n)
	return nil
}

// observe feeds obs to the ledger and tells each giver how its quest ended.
func (s *Simulation) observe(obs quest.Observation) {
	for _, n := range s.ledger.Observe(obs) {
		s.emitQuest(n)
		if giver := s.npc(n.Giver); giver != nil {
			giver.Dialogue.Conclude(n.Status == quest.EventCompleted, s.clock.Ordinal())
		}
	}
}

func (s *Simulation) emitQuest(n quest.Notification) {
	s.emit(Event{Kind: EventQuest, Actor: n.Giver, Name: n.Name, Detail: string(n.Status), Quest: &n})
}

func (s *Simulation) npc(id entity.ID) *npc.NPC {
	for _, n := range s.npcs {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Enemy returns the enemy with id, or nil.
func (s *Simulation) Enemy(id entity.ID) *Enemy {
	for _, e := range s.enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// NPC returns the villager with id, or nil.
func (s *Simulation) NPC(id entity.ID) *npc.NPC { return s.npc(id) }
