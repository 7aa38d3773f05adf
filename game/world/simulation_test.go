package world

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kasuganosora/topdownrpg/sim/game/ai"
	"github.com/kasuganosora/topdownrpg/sim/game/clock"
	"github.com/kasuganosora/topdownrpg/sim/game/entity"
	"github.com/kasuganosora/topdownrpg/sim/game/geom"
	"github.com/kasuganosora/topdownrpg/sim/game/item"
	"github.com/kasuganosora/topdownrpg/sim/game/npc"
	"github.com/kasuganosora/topdownrpg/sim/game/player"
	"github.com/kasuganosora/topdownrpg/sim/game/quest"
	"github.com/kasuganosora/topdownrpg/sim/resource"
)

const (
	frame        = 20 * time.Millisecond
	gameMinute   = 125 * time.Millisecond // one game minute at the default scale
	dialogueTick = 250 * time.Millisecond // longer than the interaction cooldown
)

var quietSpot = geom.V(1310, 1456) // grass, away from every actor

func newSim(t *testing.T) *Simulation {
	t.Helper()
	s, err := New(resource.Default(), DefaultOptions(), zap.NewNop())
	require.NoError(t, err)
	return s
}

func setClock(t *testing.T, s *Simulation, hour, minute int) {
	t.Helper()
	c, err := clock.NewAt(clock.Time{Year: 1, Month: 1, Day: 1, Hour: hour, Minute: minute}, clock.DefaultDayLength)
	require.NoError(t, err)
	s.clock = c
}

func findEvent(events []Event, kind EventKind) (int, bool) {
	for i, ev := range events {
		if ev.Kind == kind {
			return i, true
		}
	}
	return -1, false
}

// acceptOffer walks the player through n's offer and accepts it.
func acceptOffer(t *testing.T, s *Simulation, n *npc.NPC) []Event {
	t.Helper()
	p := s.Player()
	p.Pos = n.Pos.Add(geom.V(10, 0))

	s.Step(dialogueTick, player.Intent{Interact: true})
	require.True(t, p.InDialogue)
	s.Step(dialogueTick, player.Intent{Interact: true})
	require.Len(t, p.Prompt.Options, 2)
	require.Equal(t, npc.QuestOffered, n.Dialogue.State())

	events := s.Step(dialogueTick, player.Intent{Choice: 1})
	require.False(t, p.InDialogue)
	return events
}

func TestNew_AssignsIDs(t *testing.T) {
	s := newSim(t)

	require.Len(t, s.NPCs(), 2)
	require.Len(t, s.Enemies(), 3)
	assert.Equal(t, entity.ID(1), s.NPCs()[0].ID)
	assert.Equal(t, entity.ID(2), s.NPCs()[1].ID)
	assert.Equal(t, entity.ID(3), s.Enemies()[0].ID)
	assert.Equal(t, entity.ID(5), s.Enemies()[2].ID)
	assert.Equal(t, entity.ID(6), s.Player().ID)
	assert.Equal(t, "Wolf1", s.Name(5))

	wolf := s.Enemies()[2]
	assert.True(t, wolf.Profile.Nocturnal)
	assert.False(t, wolf.Visible, "wolves sleep through the day")
	assert.True(t, s.Enemies()[0].Visible)
	assert.Equal(t, geom.V(1616, 1616), s.Player().Pos)
}

func TestNew_UnresolvedTarget(t *testing.T) {
	c := resource.Default()
	c.NPCs[0].Offer.Quest.Target = "Nobody"
	_, err := New(c, DefaultOptions(), zap.NewNop())
	assert.ErrorIs(t, err, ErrNoTarget)
}

func TestNew_BadContent(t *testing.T) {
	c := resource.Default()
	c.Enemies[0].Variant = "dragon"
	_, err := New(c, DefaultOptions(), zap.NewNop())
	assert.Error(t, err)

	c = resource.Default()
	c.NPCs[1].Offer.Quest.DeadlineHour = 24
	_, err = New(c, DefaultOptions(), zap.NewNop())
	assert.ErrorIs(t, err, quest.ErrInvalidHour)
}

func TestStep_HalfDayMovesClockAndVillagers(t *testing.T) {
	s := newSim(t)
	for i := 0; i < 4500; i++ {
		s.Step(frame, player.Intent{})
	}
	assert.Equal(t, 18, s.Clock().Hour())
	assert.Equal(t, 0, s.Clock().Minute())
	assert.Equal(t, uint64(4500), s.Tick())

	// Afternoons are spent by the river; at 18:00 they have just set off home.
	bank := geom.V(960, 1600)
	assert.Less(t, s.NPCs()[0].Pos.Dist(bank), 10.0)
	assert.False(t, s.Enemies()[2].Visible)
}

func TestStep_NocturnalVisibility(t *testing.T) {
	s := newSim(t)
	wolf := s.Enemies()[2]

	setClock(t, s, 20, 59)
	s.Step(gameMinute, player.Intent{})
	assert.Equal(t, 21, s.Clock().Hour())
	assert.True(t, wolf.Visible)

	setClock(t, s, 5, 58)
	s.Step(gameMinute, player.Intent{})
	require.True(t, wolf.Visible)

	events := s.Step(gameMinute, player.Intent{})
	assert.Equal(t, 6, s.Clock().Hour())
	assert.False(t, wolf.Visible)
	assert.Equal(t, ai.StatePatrol, wolf.Brain.State)
	assert.True(t, wolf.Brain.Path.Empty())

	wi, ok := findEvent(events, EventWeather)
	require.True(t, ok)
	di, ok := findEvent(events, EventDespawn)
	require.True(t, ok)
	assert.Less(t, wi, di, "weather updates before enemies")
	assert.Equal(t, wolf.ID, events[di].Actor)
	assert.Equal(t, 6, events[di].At.Hour)
}

func TestStep_ContactDamage(t *testing.T) {
	s := newSim(t)
	p := s.Player()
	goblin := s.Enemies()[0]
	goblin.Pos = p.Pos

	events := s.Step(frame, player.Intent{})
	assert.Equal(t, 95, p.Health)
	i, ok := findEvent(events, EventPlayerHit)
	require.True(t, ok)
	assert.Equal(t, goblin.ID, events[i].Actor)
	assert.Equal(t, ai.StateChase, goblin.Brain.State)

	for i := 0; i < 10; i++ {
		s.Step(frame, player.Intent{})
	}
	assert.Equal(t, 95, p.Health, "contact attacks wait out their cooldown")

	for i := 0; i < 60; i++ {
		s.Step(frame, player.Intent{})
	}
	assert.Equal(t, 90, p.Health)
}

func TestStep_PlayerDeath(t *testing.T) {
	s := newSim(t)
	p := s.Player()
	p.Health = 5
	s.Enemies()[0].Pos = p.Pos

	events := s.Step(frame, player.Intent{})
	assert.False(t, p.Alive())
	_, ok := findEvent(events, EventPlayerDied)
	assert.True(t, ok)

	pos := p.Pos
	s.Step(frame, player.Intent{Move: geom.V(1, 0)})
	assert.Equal(t, pos, p.Pos, "the dead do not walk")
	assert.Equal(t, 0, p.Health)
}

func TestStep_DeliveryQuest(t *testing.T) {
	s := newSim(t)
	p := s.Player()
	v1, v2 := s.NPCs()[0], s.NPCs()[1]

	events := acceptOffer(t, s, v2)
	i, ok := findEvent(events, EventQuest)
	require.True(t, ok)
	assert.Equal(t, quest.EventStarted, events[i].Quest.Status)
	assert.Equal(t, v2.ID, events[i].Actor)
	assert.Equal(t, npc.QuestAccepted, v2.Dialogue.State())
	require.Len(t, s.Ledger().Active(), 1)

	p.Pos = v1.Pos.Add(geom.V(10, 0))
	events = s.Step(dialogueTick, player.Intent{Interact: true})
	i, ok = findEvent(events, EventQuest)
	require.True(t, ok)
	assert.Equal(t, quest.EventCompleted, events[i].Quest.Status)
	assert.Equal(t, "Potion", events[i].Quest.Reward)

	assert.Equal(t, 1, p.Inventory.Count(item.Potion))
	assert.Equal(t, npc.QuestCompleted, v2.Dialogue.State())
	assert.Empty(t, s.Ledger().Active())

	// Talking to the target again changes nothing.
	p.ExitDialogue()
	events = s.Step(dialogueTick, player.Intent{Interact: true})
	_, ok = findEvent(events, EventQuest)
	assert.False(t, ok)
	assert.Equal(t, 1, p.Inventory.Count(item.Potion))
}

func TestStep_DeliveryQuestMissesDeadline(t *testing.T) {
	s := newSim(t)
	p := s.Player()
	v1, v2 := s.NPCs()[0], s.NPCs()[1]

	acceptOffer(t, s, v2)
	setClock(t, s, 21, 0)
	p.Pos = v1.Pos.Add(geom.V(10, 0))
	events := s.Step(dialogueTick, player.Intent{Interact: true})

	i, ok := findEvent(events, EventQuest)
	require.True(t, ok)
	assert.Equal(t, quest.EventFailed, events[i].Quest.Status)
	assert.Empty(t, events[i].Quest.Reward)
	assert.False(t, p.Inventory.Has(item.Potion))
	assert.Equal(t, npc.QuestFailed, v2.Dialogue.State())
}

func TestStep_EliminationQuest(t *testing.T) {
	s := newSim(t)
	p := s.Player()
	v1, wolf := s.NPCs()[0], s.Enemies()[2]

	acceptOffer(t, s, v1)

	setClock(t, s, 22, 0)
	s.Step(frame, player.Intent{})
	require.True(t, wolf.Visible)

	p.Pos = quietSpot
	wolf.Pos = quietSpot.Add(geom.V(10, 0))
	var events []Event
	for i := 0; i < 3; i++ {
		p.AttackCooldown = 0
		events = s.Step(frame, player.Intent{Attack: true})
	}
	assert.False(t, wolf.Alive())

	ki, ok := findEvent(events, EventKill)
	require.True(t, ok)
	assert.Equal(t, wolf.ID, events[ki].Actor)
	qi, ok := findEvent(events, EventQuest)
	require.True(t, ok)
	assert.Less(t, ki, qi)
	assert.Equal(t, quest.EventCompleted, events[qi].Quest.Status)
	assert.True(t, p.Inventory.Has(item.Sword))
	assert.Equal(t, npc.QuestCompleted, v1.Dialogue.State())
}

func TestStep_EliminationQuestFailsOutsideWindow(t *testing.T) {
	s := newSim(t)
	p := s.Player()
	v1, goblin := s.NPCs()[0], s.Enemies()[0]

	acceptOffer(t, s, v1)
	setClock(t, s, 7, 0)
	p.Pos = quietSpot
	goblin.Pos = quietSpot.Add(geom.V(10, 0))

	events := s.Step(frame, player.Intent{Attack: true})
	assert.Equal(t, goblin.MaxHealth-player.AttackDamage, goblin.Health)
	i, ok := findEvent(events, EventQuest)
	require.True(t, ok)
	assert.Equal(t, quest.EventFailed, events[i].Quest.Status)
	assert.Equal(t, npc.QuestFailed, v1.Dialogue.State())
	assert.False(t, p.Inventory.Has(item.Sword))
}

func TestStep_AttackSkipsHiddenEnemies(t *testing.T) {
	s := newSim(t)
	p := s.Player()
	wolf := s.Enemies()[2]
	p.Pos = quietSpot
	wolf.Pos = quietSpot.Add(geom.V(10, 0))

	s.Step(frame, player.Intent{Attack: true})
	assert.Equal(t, wolf.MaxHealth, wolf.Health)
	assert.Zero(t, p.AttackCooldown, "nothing was hit")
}

func TestStep_AttackHitsNPC(t *testing.T) {
	s := newSim(t)
	p := s.Player()
	v1 := s.NPCs()[0]
	p.Pos = v1.Pos.Add(geom.V(10, 0))

	s.Step(frame, player.Intent{Attack: true})
	assert.Equal(t, npc.DefaultHealth-player.AttackDamage, v1.Health)
	assert.Equal(t, player.AttackCooldown, p.AttackCooldown)

	s.Step(frame, player.Intent{Attack: true})
	assert.Equal(t, npc.DefaultHealth-player.AttackDamage, v1.Health, "attack is on cooldown")
}

func TestStep_OverlayPausesWorld(t *testing.T) {
	s := newSim(t)
	p := s.Player()
	before := s.Clock().Now()

	assert.Nil(t, s.Step(time.Second, player.Intent{ToggleInventory: true}))
	assert.True(t, p.ShowInventory)
	assert.Equal(t, before, s.Clock().Now())
	assert.Zero(t, s.Tick())

	s.Step(time.Second, player.Intent{ToggleInventory: true})
	assert.False(t, p.ShowInventory)
	assert.Equal(t, uint64(1), s.Tick())

	s.Step(time.Second, player.Intent{ToggleQuestLog: true})
	assert.True(t, p.ShowQuestLog)
	assert.Equal(t, uint64(1), s.Tick())
}

func TestStep_OverlayIgnoredInDialogue(t *testing.T) {
	s := newSim(t)
	p := s.Player()
	p.Pos = s.NPCs()[0].Pos.Add(geom.V(10, 0))
	s.Step(dialogueTick, player.Intent{Interact: true})
	require.True(t, p.InDialogue)

	s.Step(dialogueTick, player.Intent{ToggleInventory: true})
	assert.False(t, p.ShowInventory)
}

func TestStep_Pause(t *testing.T) {
	s := newSim(t)
	before := s.Clock().Now()

	s.Step(time.Second, player.Intent{TogglePause: true})
	assert.True(t, s.Paused())
	s.Step(time.Second, player.Intent{Move: geom.V(1, 0)})
	assert.Equal(t, before, s.Clock().Now())
	assert.Equal(t, geom.V(1616, 1616), s.Player().Pos)

	s.Step(time.Second, player.Intent{TogglePause: true})
	assert.False(t, s.Paused())
	assert.NotEqual(t, before, s.Clock().Now())
}

func TestStep_DialogueWithoutOfferEnds(t *testing.T) {
	c := resource.Default()
	c.NPCs[0].Offer = nil
	s, err := New(c, DefaultOptions(), zap.NewNop())
	require.NoError(t, err)
	p := s.Player()
	p.Pos = s.NPCs()[0].Pos.Add(geom.V(10, 0))

	s.Step(dialogueTick, player.Intent{Interact: true})
	require.True(t, p.InDialogue)
	assert.Equal(t, "Villager1: Welcome to our village!", p.Prompt.Text)

	pos := p.Pos
	s.Step(dialogueTick, player.Intent{Interact: true, Move: geom.V(1, 0)})
	assert.False(t, p.InDialogue)
	assert.Equal(t, pos, p.Pos, "no walking while talking")
}

func TestStep_DialogueFaultRecovers(t *testing.T) {
	s := newSim(t)
	p := s.Player()
	v1 := s.NPCs()[0]
	p.Pos = v1.Pos.Add(geom.V(10, 0))
	s.Step(dialogueTick, player.Intent{Interact: true})
	s.Step(dialogueTick, player.Intent{Interact: true})
	require.Len(t, p.Prompt.Options, 2)

	events := s.Step(dialogueTick, player.Intent{Choice: 3})
	i, ok := findEvent(events, EventDialogueFault)
	require.True(t, ok)
	assert.Equal(t, v1.ID, events[i].Actor)
	assert.False(t, p.InDialogue)
	assert.True(t, p.Prompt.Empty())
	assert.Empty(t, s.Ledger().Quests())

	// A partner that vanished is handled the same way.
	p.EnterDialogue(99, npc.Prompt{Text: "..."})
	events = s.Step(dialogueTick, player.Intent{Interact: true})
	_, ok = findEvent(events, EventDialogueFault)
	assert.True(t, ok)
	assert.False(t, p.InDialogue)
}

func TestStep_PotionRestoresStamina(t *testing.T) {
	s := newSim(t)
	p := s.Player()
	p.Stamina = 10
	require.NoError(t, p.Inventory.Grant(item.Potion))

	s.Step(frame, player.Intent{UsePotion: true})
	assert.Equal(t, player.MaxStamina, p.Stamina)
	assert.False(t, p.Inventory.Has(item.Potion))
}

func TestSimulation_Deterministic(t *testing.T) {
	run := func() *Snapshot {
		s := newSim(t)
		setClock(t, s, 20, 0)
		for i := 0; i < 2000; i++ {
			s.Step(frame, player.Intent{Move: geom.V(-1, 0)})
		}
		return s.Snapshot()
	}
	assert.Equal(t, run(), run())
}
