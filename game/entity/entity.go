// Package entity defines the stable handles that refer to actors across
// packages, so quests and dialogue never hold actor pointers.
package entity

import "strconv"

// ID identifies one actor for the lifetime of a simulation. IDs are handed
// out sequentially from 1 when the world is built.
type ID int

// None is the zero ID; it never names an actor.
const None ID = 0

// Valid reports whether id can name an actor.
func (id ID) Valid() bool { return id > None }

func (id ID) String() string { return "#" + strconv.Itoa(int(id)) }

// Kind distinguishes the actor families.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindNPC
	KindEnemy
)

var kindNames = [...]string{"player", "npc", "enemy"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Sequence hands out IDs in creation order.
type Sequence struct {
	last ID
}

// Next returns the next unused ID.
func (s *Sequence) Next() ID {
	s.last++
	return s.last
}
