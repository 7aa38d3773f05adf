package ws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kasuganosora/topdownrpg/sim/game/player"
	"github.com/kasuganosora/topdownrpg/sim/game/world"
)

// Packet types.
const (
	TypeInput    = "input"
	TypePing     = "ping"
	TypePong     = "pong"
	TypeSnapshot = "snapshot"
	TypeQuest    = "quest"
)

// RegisterHandlers wires the simulation's message types into r.
func RegisterHandlers(r *Router, room *world.Room) {
	r.On(TypeInput, func(_ context.Context, _ *Session, payload json.RawMessage) error {
		var in player.Intent
		if err := json.Unmarshal(payload, &in); err != nil {
			return fmt.Errorf("ws: decode input: %w", err)
		}
		room.PushInput(in)
		return nil
	})
	r.On(TypePing, func(_ context.Context, s *Session, _ json.RawMessage) error {
		s.Send(&Packet{Type: TypePong})
		return nil
	})
	// An explicit request returns the latest snapshot straight away instead
	// of waiting for the next broadcast.
	r.On(TypeSnapshot, func(_ context.Context, s *Session, _ json.RawMessage) error {
		data, err := json.Marshal(room.Latest())
		if err != nil {
			return err
		}
		s.Send(&Packet{Type: TypeSnapshot, Payload: data})
		return nil
	})
}
