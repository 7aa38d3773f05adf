// Package resource loads the world content: the player spawn, the
// villagers with their quest offers, and the enemy spawns.
package resource

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kasuganosora/topdownrpg/sim/game/grid"
	"github.com/kasuganosora/topdownrpg/sim/game/quest"
)

// Tile is a tile coordinate as written in content files: [x, y].
type Tile [2]int

// Coord converts t to a grid coordinate.
func (t Tile) Coord() grid.Coord { return grid.Coord{X: t[0], Y: t[1]} }

// QuestDef is a quest as written in content. Target names an NPC or an
// enemy and is resolved when the world is built.
type QuestDef struct {
	Kind         quest.Kind `yaml:"kind" json:"kind"`
	Name         string     `yaml:"name" json:"name"`
	Description  string     `yaml:"description" json:"description"`
	Reward       string     `yaml:"reward" json:"reward"`
	Target       string     `yaml:"target" json:"target"`
	DeadlineHour int        `yaml:"deadline_hour,omitempty" json:"deadline_hour,omitempty"`
	StartHour    int        `yaml:"start_hour,omitempty" json:"start_hour,omitempty"`
	EndHour      int        `yaml:"end_hour,omitempty" json:"end_hour,omitempty"`
}

// OfferDef is the conversation leading up to a quest.
type OfferDef struct {
	Prologue string   `yaml:"prologue" json:"prologue"`
	Pitch    string   `yaml:"pitch" json:"pitch"`
	Quest    QuestDef `yaml:"quest" json:"quest"`
}

// NPCDef places one villager.
type NPCDef struct {
	Name  string    `yaml:"name" json:"name"`
	Tile  Tile      `yaml:"tile" json:"tile"`
	Line  string    `yaml:"line" json:"line"`
	Offer *OfferDef `yaml:"offer,omitempty" json:"offer,omitempty"`
}

// EnemyDef places one enemy. Village is the tile its nocturnal raids head
// for.
type EnemyDef struct {
	Name    string `yaml:"name" json:"name"`
	Variant string `yaml:"variant" json:"variant"`
	Tile    Tile   `yaml:"tile" json:"tile"`
	Village Tile   `yaml:"village" json:"village"`
}

// Content is everything placed into a freshly generated world.
type Content struct {
	PlayerSpawn Tile       `yaml:"player_spawn" json:"player_spawn"`
	NPCs        []NPCDef   `yaml:"npcs" json:"npcs"`
	Enemies     []EnemyDef `yaml:"enemies" json:"enemies"`
}

var (
	ErrDuplicateName = errors.New("resource: duplicate actor name")
	ErrOutOfBounds   = errors.New("resource: tile outside the world")
	ErrMissingName   = errors.New("resource: actor without a name")
)

// Load reads content from a YAML file and validates it.
func Load(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("resource: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML content and validates it.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("resource: parse content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks names and tiles. Quest targets are resolved later, when
// actors get their ids.
func (c *Content) Validate() error {
	inWorld := func(t Tile) bool {
		return t[0] >= 0 && t[0] < grid.Width && t[1] >= 0 && t[1] < grid.Height
	}
	if !inWorld(c.PlayerSpawn) {
		return fmt.Errorf("%w: player spawn %v", ErrOutOfBounds, c.PlayerSpawn)
	}
	seen := make(map[string]bool)
	claim := func(name string) error {
		if name == "" {
			return ErrMissingName
		}
		if seen[name] {
			return fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
		seen[name] = true
		return nil
	}
	for _, n := range c.NPCs {
		if err := claim(n.Name); err != nil {
			return err
		}
		if !inWorld(n.Tile) {
			return fmt.Errorf("%w: npc %s at %v", ErrOutOfBounds, n.Name, n.Tile)
		}
	}
	for _, e := range c.Enemies {
		if err := claim(e.Name); err != nil {
			return err
		}
		if !inWorld(e.Tile) || !inWorld(e.Village) {
			return fmt.Errorf("%w: enemy %s", ErrOutOfBounds, e.Name)
		}
	}
	return nil
}

// Default returns the built-in content: two villagers with a quest each,
// two goblins near the caves and a wolf on the western village.
func Default() *Content {
	west := Tile{grid.WestVillage.X, grid.WestVillage.Y}
	east := Tile{grid.EastVillage.X, grid.EastVillage.Y}
	return &Content{
		PlayerSpawn: Tile{grid.Width / 2, grid.Height / 2},
		NPCs: []NPCDef{
			{
				Name: "Villager1",
				Tile: west,
				Line: "Villager1: Welcome to our village!",
				Offer: &OfferDef{
					Prologue: "Villager1: A wolf has been raiding us at night.",
					Pitch:    "Villager1: Will you hunt it down before dawn?",
					Quest: QuestDef{
						Kind:        quest.KindElimination,
						Name:        "Kill Wolf",
						Description: "Kill the wolf that raids the village at night.",
						Reward:      "Sword",
						Target:      "Wolf1",
						StartHour:   21,
						EndHour:     6,
					},
				},
			},
			{
				Name: "Villager2",
				Tile: east,
				Line: "Villager2: The river is beautiful today.",
				Offer: &OfferDef{
					Prologue: "Villager2: I have news for my friend across the river.",
					Pitch:    "Villager2: Could you carry a message to Villager1?",
					Quest: QuestDef{
						Kind:         quest.KindDelivery,
						Name:         "Deliver Message",
						Description:  "Deliver a message to Villager1 before 21:00.",
						Reward:       "Potion",
						Target:       "Villager1",
						DeadlineHour: 21,
					},
				},
			},
		},
		Enemies: []EnemyDef{
			{Name: "Goblin1", Variant: "goblin", Tile: Tile{25, 75}, Village: west},
			{Name: "Goblin2", Variant: "goblin", Tile: Tile{75, 25}, Village: east},
			{Name: "Wolf1", Variant: "wolf", Tile: Tile{30, 45}, Village: west},
		},
	}
}
