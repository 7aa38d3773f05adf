package player

import "github.com/kasuganosora/topdownrpg/sim/game/geom"

// Intent is one tick of player input, already decoded from devices.
type Intent struct {
	Move     geom.Vec2 `json:"move"`
	Sprint   bool      `json:"sprint,omitempty"`
	Interact bool      `json:"interact,omitempty"`
	Attack   bool      `json:"attack,omitempty"`
	// Choice picks a dialogue option, 1-based; 0 means no choice.
	Choice          int  `json:"choice,omitempty"`
	UsePotion       bool `json:"use_potion,omitempty"`
	ToggleInventory bool `json:"toggle_inventory,omitempty"`
	ToggleQuestLog  bool `json:"toggle_quest_log,omitempty"`
	TogglePause     bool `json:"toggle_pause,omitempty"`
}

// Merge folds a later intent into i. Movement follows the latest intent;
// one-shot actions are kept if any intent asked for them.
func (i Intent) Merge(later Intent) Intent {
	out := later
	out.Interact = i.Interact || later.Interact
	out.Attack = i.Attack || later.Attack
	out.UsePotion = i.UsePotion || later.UsePotion
	out.ToggleInventory = i.ToggleInventory != later.ToggleInventory
	out.ToggleQuestLog = i.ToggleQuestLog != later.ToggleQuestLog
	out.TogglePause = i.TogglePause != later.TogglePause
	if later.Choice == 0 {
		out.Choice = i.Choice
	}
	return out
}
