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
	"github.com/kasuganosora/topdownrpg/sim/resource"
)

// ErrNoTarget is returned when a quest names an actor that does not exist.
var ErrNoTarget = errors.New("world: quest target not found")

// Options tunes a new simulation.
type Options struct {
	DayLength   time.Duration // real time per game day; zero means clock.DefaultDayLength
	RerollOrbit bool
	Seed        int64
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{DayLength: clock.DefaultDayLength, RerollOrbit: true, Seed: 1}
}

// New generates the world and populates it from content. Ids are handed out
// to NPCs first, then enemies, then the player.
func New(content *resource.Content, opts Options, logger *zap.Logger) (*Simulation, error) {
	if err := content.Validate(); err != nil {
		return nil, err
	}
	if opts.DayLength == 0 {
		opts.DayLength = clock.DefaultDayLength
	}
	clk, err := clock.New(opts.DayLength)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		grid:    grid.Generate(),
		clock:   clk,
		weather: weather.New(),
		rng:     rand.New(rand.NewSource(opts.Seed)),
		names:   make(map[entity.ID]string),
		logger:  logger,
	}

	var seq entity.Sequence
	byName := make(map[string]entity.ID)
	for _, d := range content.NPCs {
		id := seq.Next()
		n := npc.New(id, d.Name, d.Tile.Coord().Center(), d.Line, nil)
		s.npcs = append(s.npcs, n)
		s.names[id] = d.Name
		byName[d.Name] = id
	}
	for _, d := range content.Enemies {
		id := seq.Next()
		e, err := NewEnemy(id, d.Name, Variant(d.Variant), d.Tile.Coord().Center(), d.Village.Coord().Center(), opts.RerollOrbit, s.rng)
		if err != nil {
			return nil, err
		}
		s.enemies = append(s.enemies, e)
		s.names[id] = d.Name
		byName[d.Name] = id
	}

	// Offers are attached once every actor has an id to point at.
	for i, d := range content.NPCs {
		if d.Offer == nil {
			continue
		}
		n := s.npcs[i]
		def, err := resolveQuest(d.Offer.Quest, n.ID, byName)
		if err != nil {
			return nil, fmt.Errorf("world: npc %s: %w", d.Name, err)
		}
		n.Dialogue = npc.NewDialogue(d.Name, d.Line, &npc.Offer{
			Prologue: d.Offer.Prologue,
			Pitch:    d.Offer.Pitch,
			Quest:    def,
		})
	}

	s.player = player.New(seq.Next(), content.PlayerSpawn.Coord().Center())
	s.names[s.player.ID] = "Player"
	s.ledger = quest.NewLedger(&s.player.Inventory, logger)
	s.ctx = ai.Context{Grid: s.grid, Blocked: grid.Collidable, Rand: s.rng}

	logger.Info("simulation built",
		zap.Int("npcs", len(s.npcs)),
		zap.Int("enemies", len(s.enemies)),
		zap.Duration("day_length", opts.DayLength),
		zap.Int64("seed", opts.Seed))
	return s, nil
}

func resolveQuest(d resource.QuestDef, giver entity.ID, byName map[string]entity.ID) (quest.Def, error) {
	target, ok := byName[d.Target]
	if !ok {
		return quest.Def{}, fmt.Errorf("%w: %q", ErrNoTarget, d.Target)
	}
	def := quest.Def{
		Kind:         d.Kind,
		Name:         d.Name,
		Description:  d.Description,
		Reward:       d.Reward,
		Giver:        giver,
		Target:       target,
		TargetName:   d.Target,
		DeadlineHour: d.DeadlineHour,
		StartHour:    d.StartHour,
		EndHour:      d.EndHour,
	}
	// Surface bad hours and kinds at build time rather than on accept.
	if _, err := quest.New(def); err != nil {
		return quest.Def{}, err
	}
	return def, nil
}
