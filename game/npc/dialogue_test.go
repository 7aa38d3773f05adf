package npc

import (
	"testing"

	"github.com/kasuganosora/topdownrpg/sim/game/entity"
	"github.com/kasuganosora/topdownrpg/sim/game/quest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wolfOffer() *Offer {
	return &Offer{
		Prologue: "Villager1: A wolf has been attacking our livestock at night!",
		Pitch:    "Can you kill the wolf that appears at night (21:00-5:59)?",
		Quest: quest.Def{
			Kind:      quest.KindElimination,
			Name:      "Kill Wolf",
			Reward:    "Sword",
			Giver:     entity.ID(1),
			Target:    entity.ID(5),
			StartHour: 21,
			EndHour:   6,
		},
	}
}

const morning = "Villager1: Good morning!"

func TestDialogue_WalksToOffer(t *testing.T) {
	d := NewDialogue("Villager1", "Welcome to our village!", wolfOffer())

	p := d.Interact(morning, 0)
	assert.Equal(t, "Villager1: A wolf has been attacking our livestock at night!", p.Text)
	assert.Empty(t, p.Options)
	assert.Equal(t, QuestNone, d.State())

	p = d.Interact(morning, 0)
	assert.Equal(t, "Can you kill the wolf that appears at night (21:00-5:59)?", p.Text)
	require.Len(t, p.Options, 2)
	assert.Equal(t, ActionAccept, p.Options[0].Action)
	assert.Equal(t, ActionDecline, p.Options[1].Action)
	assert.Equal(t, QuestOffered, d.State())

	// Talking again repeats the offer.
	p = d.Interact(morning, 0)
	assert.Len(t, p.Options, 2)
	assert.Equal(t, nodeQuestOffer, d.Node())
}

func TestDialogue_Accept(t *testing.T) {
	d := NewDialogue("Villager1", "Welcome to our village!", wolfOffer())
	d.Interact(morning, 0)
	d.Interact(morning, 0)

	def, err := d.Choose(0, 0)
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, "Kill Wolf", def.Name)
	assert.Equal(t, QuestAccepted, d.State())

	// While the quest runs the NPC only makes small talk, whatever the day.
	p := d.Interact(morning, 9)
	assert.Equal(t, Prompt{Text: morning}, p)
	assert.Equal(t, QuestAccepted, d.State())

	_, err = d.Choose(0, 0)
	assert.ErrorIs(t, err, ErrNoOptions)
}

func TestDialogue_DeclineResetsNextDay(t *testing.T) {
	d := NewDialogue("Villager1", "Welcome to our village!", wolfOffer())
	d.Interact(morning, 3)
	d.Interact(morning, 3)

	def, err := d.Choose(1, 3)
	require.NoError(t, err)
	assert.Nil(t, def)
	assert.Equal(t, QuestDeclined, d.State())

	assert.Equal(t, "Villager1: Maybe another time.", d.Interact(morning, 3).Text)
	assert.Equal(t, QuestDeclined, d.State())

	p := d.Interact(morning, 4)
	assert.Equal(t, QuestNone, d.State())
	assert.Equal(t, "Villager1: A wolf has been attacking our livestock at night!", p.Text)
}

func TestDialogue_ConcludeShowsOutcomeUntilNextDay(t *testing.T) {
	d := NewDialogue("Villager1", "Welcome to our village!", wolfOffer())
	d.Interact(morning, 0)
	d.Interact(morning, 0)
	_, err := d.Choose(0, 0)
	require.NoError(t, err)

	d.Conclude(true, 1)
	assert.Equal(t, QuestCompleted, d.State())
	assert.Equal(t, "Villager1: You did it! Thank you!", d.Interact(morning, 1).Text)

	d.Refresh(2)
	assert.Equal(t, QuestNone, d.State())
	assert.Equal(t, nodeGreeting, d.Node())

	d.Interact(morning, 2)
	d.Interact(morning, 2)
	_, err = d.Choose(0, 2)
	require.NoError(t, err)
	d.Conclude(false, 2)
	assert.Equal(t, "Villager1: Oh no, we missed our chance!", d.Interact(morning, 2).Text)
}

func TestDialogue_InvalidChoices(t *testing.T) {
	d := NewDialogue("Villager1", "Welcome to our village!", wolfOffer())
	_, err := d.Choose(0, 0)
	assert.ErrorIs(t, err, ErrNoOptions)

	d.Interact(morning, 0)
	d.Interact(morning, 0)
	_, err = d.Choose(2, 0)
	assert.ErrorIs(t, err, ErrInvalidOption)
	_, err = d.Choose(-1, 0)
	assert.ErrorIs(t, err, ErrInvalidOption)
	assert.Equal(t, QuestOffered, d.State())
}

func TestDialogue_WithoutOffer(t *testing.T) {
	d := NewDialogue("Hermit", "Leave me be.", nil)
	assert.False(t, d.HasOffer())
	for i := 0; i < 3; i++ {
		assert.Equal(t, Prompt{Text: "Leave me be."}, d.Interact("Hermit: Good night!", 0))
	}
	assert.Equal(t, QuestNone, d.State())
}
