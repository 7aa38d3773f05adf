package world

import (
	"github.com/kasuganosora/topdownrpg/sim/game/clock"
	"github.com/kasuganosora/topdownrpg/sim/game/entity"
	"github.com/kasuganosora/topdownrpg/sim/game/item"
	"github.com/kasuganosora/topdownrpg/sim/game/npc"
)

// ActorView is the observable state of one NPC or enemy.
type ActorView struct {
	ID        entity.ID `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Health    int       `json:"health"`
	MaxHealth int       `json:"max_health"`
	Visible   bool      `json:"visible"`
	// State is the behavior state of an enemy or the quest-offer state of
	// an NPC.
	State string `json:"state"`
}

// PlayerView is the observable state of the player.
type PlayerView struct {
	ID            entity.ID   `json:"id"`
	X             float64     `json:"x"`
	Y             float64     `json:"y"`
	Health        int         `json:"health"`
	MaxHealth     int         `json:"max_health"`
	Stamina       float64     `json:"stamina"`
	InDialogue    bool        `json:"in_dialogue"`
	Prompt        npc.Prompt  `json:"prompt"`
	Inventory     []item.Slot `json:"inventory"`
	ShowInventory bool        `json:"show_inventory"`
	ShowQuestLog  bool        `json:"show_quest_log"`
}

// QuestView is one row of the quest log.
type QuestView struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Progress    string    `json:"progress"`
	TimeInfo    string    `json:"time_info"`
	Giver       entity.ID `json:"giver"`
}

// Snapshot is a read-only copy of the world taken after a step.
type Snapshot struct {
	Tick             uint64      `json:"tick"`
	Time             clock.Time  `json:"time"`
	Clock            string      `json:"clock"`
	Phase            float64     `json:"phase"`
	Night            bool        `json:"night"`
	Lighting         float64     `json:"lighting"`
	Weather          string      `json:"weather"`
	WeatherIntensity float64     `json:"weather_intensity"`
	Paused           bool        `json:"paused"`
	Player           PlayerView  `json:"player"`
	NPCs             []ActorView `json:"npcs"`
	Enemies          []ActorView `json:"enemies"`
	Quests           []QuestView `json:"quests"`
}

// Snapshot copies the current world state.
func (s *Simulation) Snapshot() *Snapshot {
	p := s.player
	snap := &Snapshot{
		Tick:             s.tick,
		Time:             s.clock.Now(),
		Clock:            s.clock.String(),
		Phase:            s.clock.Phase(),
		Night:            s.clock.IsNight(),
		Lighting:         s.clock.Lighting(),
		Weather:          s.weather.Kind().String(),
		WeatherIntensity: s.weather.Intensity(),
		Paused:           s.paused,
		Player: PlayerView{
			ID:            p.ID,
			X:             p.Pos.X,
			Y:             p.Pos.Y,
			Health:        p.Health,
			MaxHealth:     p.MaxHealth,
			Stamina:       p.Stamina,
			InDialogue:    p.InDialogue,
			Prompt:        p.Prompt,
			Inventory:     p.Inventory.List(),
			ShowInventory: p.ShowInventory,
			ShowQuestLog:  p.ShowQuestLog,
		},
		NPCs:    make([]ActorView, 0, len(s.npcs)),
		Enemies: make([]ActorView, 0, len(s.enemies)),
	}
	for _, n := range s.npcs {
		snap.NPCs = append(snap.NPCs, ActorView{
			ID:        n.ID,
			Kind:      entity.KindNPC.String(),
			Name:      n.Name,
			X:         n.Pos.X,
			Y:         n.Pos.Y,
			Health:    n.Health,
			MaxHealth: n.MaxHealth,
			Visible:   true,
			State:     n.Dialogue.State().String(),
		})
	}
	for _, e := range s.enemies {
		snap.Enemies = append(snap.Enemies, ActorView{
			ID:        e.ID,
			Kind:      string(e.Variant),
			Name:      e.Name,
			X:         e.Pos.X,
			Y:         e.Pos.Y,
			Health:    e.Health,
			MaxHealth: e.MaxHealth,
			Visible:   e.Visible,
			State:     e.Brain.State.String(),
		})
	}
	for _, q := range s.ledger.Quests() {
		def := q.Def()
		snap.Quests = append(snap.Quests, QuestView{
			Name:        def.Name,
			Description: def.Description,
			Status:      q.Status().String(),
			Progress:    q.Progress(),
			TimeInfo:    q.TimeInfo(),
			Giver:       def.Giver,
		})
	}
	return snap
}
