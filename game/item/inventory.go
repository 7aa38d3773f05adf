// Package item holds the player's bag of reward and consumable tokens.
package item

import "errors"

const maxInventorySlots = 99

// Well-known tokens.
const (
	Potion = "Potion"
	Sword  = "Sword"
)

var (
	ErrInventoryFull   = errors.New("inventory full")
	ErrNotEnoughItems  = errors.New("not enough items")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Slot is one stack of identical tokens.
type Slot struct {
	Token string `json:"token"`
	Qty   int    `json:"qty"`
}

// Inventory is an ordered list of token stacks. Tokens stack per name up to
// maxInventorySlots distinct stacks. The zero value is an empty bag.
type Inventory struct {
	slots []Slot
}

// Add puts qty of token into the bag, stacking onto an existing slot.
func (inv *Inventory) Add(token string, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if i := inv.find(token); i >= 0 {
		inv.slots[i].Qty += qty
		return nil
	}
	if len(inv.slots) >= maxInventorySlots {
		return ErrInventoryFull
	}
	inv.slots = append(inv.slots, Slot{Token: token, Qty: qty})
	return nil
}

// Grant adds a single token, dropping it when the bag is full.
func (inv *Inventory) Grant(token string) error { return inv.Add(token, 1) }

// Remove takes qty of token out of the bag. The slot disappears when it
// reaches zero.
func (inv *Inventory) Remove(token string, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	i := inv.find(token)
	if i < 0 || inv.slots[i].Qty < qty {
		return ErrNotEnoughItems
	}
	if inv.slots[i].Qty == qty {
		inv.slots = append(inv.slots[:i], inv.slots[i+1:]...)
		return nil
	}
	inv.slots[i].Qty -= qty
	return nil
}

// Count returns how many of token the bag holds.
func (inv *Inventory) Count(token string) int {
	if i := inv.find(token); i >= 0 {
		return inv.slots[i].Qty
	}
	return 0
}

// Has reports whether at least one token is held.
func (inv *Inventory) Has(token string) bool { return inv.Count(token) > 0 }

// List returns a copy of the stacks in insertion order.
func (inv *Inventory) List() []Slot {
	out := make([]Slot, len(inv.slots))
	copy(out, inv.slots)
	return out
}

func (inv *Inventory) find(token string) int {
	for i, s := range inv.slots {
		if s.Token == token {
			return i
		}
	}
	return -1
}
