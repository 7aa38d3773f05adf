package resource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasuganosora/topdownrpg/sim/game/quest"
)

const sampleContent = `
player_spawn: [50, 50]
npcs:
  - name: Elder
    tile: [25, 45]
    line: "Elder: Hello."
    offer:
      prologue: "Elder: Trouble."
      pitch: "Elder: Help?"
      quest:
        kind: elimination
        name: Kill Goblin
        reward: Sword
        target: Gob
        start_hour: 8
        end_hour: 20
  - name: Smith
    tile: [65, 55]
    line: "Smith: Busy."
enemies:
  - name: Gob
    variant: goblin
    tile: [25, 75]
    village: [25, 45]
`

func TestParse_Sample(t *testing.T) {
	c, err := Parse([]byte(sampleContent))
	require.NoError(t, err)

	assert.Equal(t, Tile{50, 50}, c.PlayerSpawn)
	require.Len(t, c.NPCs, 2)
	require.NotNil(t, c.NPCs[0].Offer)
	q := c.NPCs[0].Offer.Quest
	assert.Equal(t, quest.KindElimination, q.Kind)
	assert.Equal(t, "Gob", q.Target)
	assert.Equal(t, 8, q.StartHour)
	assert.Equal(t, 20, q.EndHour)
	assert.Nil(t, c.NPCs[1].Offer)

	require.Len(t, c.Enemies, 1)
	assert.Equal(t, 25, c.Enemies[0].Village.Coord().X)
	assert.Equal(t, 75, c.Enemies[0].Tile.Coord().Y)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleContent), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, c.NPCs, 2)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("npcs: [this is: not valid"))
	assert.Error(t, err)
}

func TestValidate_DuplicateName(t *testing.T) {
	c := Default()
	c.Enemies[1].Name = c.Enemies[0].Name
	assert.ErrorIs(t, c.Validate(), ErrDuplicateName)

	c = Default()
	c.Enemies[0].Name = c.NPCs[0].Name
	assert.ErrorIs(t, c.Validate(), ErrDuplicateName)
}

func TestValidate_OutOfBounds(t *testing.T) {
	c := Default()
	c.PlayerSpawn = Tile{100, 0}
	assert.ErrorIs(t, c.Validate(), ErrOutOfBounds)

	c = Default()
	c.NPCs[0].Tile = Tile{-1, 5}
	assert.ErrorIs(t, c.Validate(), ErrOutOfBounds)

	c = Default()
	c.Enemies[0].Village = Tile{3, 100}
	assert.ErrorIs(t, c.Validate(), ErrOutOfBounds)
}

func TestValidate_MissingName(t *testing.T) {
	c := Default()
	c.NPCs[0].Name = ""
	assert.ErrorIs(t, c.Validate(), ErrMissingName)
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, Tile{50, 50}, c.PlayerSpawn)
	require.Len(t, c.NPCs, 2)
	assert.Equal(t, "Wolf1", c.NPCs[0].Offer.Quest.Target)
	assert.Equal(t, "Villager1", c.NPCs[1].Offer.Quest.Target)
	assert.Equal(t, 21, c.NPCs[1].Offer.Quest.DeadlineHour)

	names := make([]string, 0, len(c.Enemies))
	for _, e := range c.Enemies {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Goblin1", "Goblin2", "Wolf1"}, names)
}
