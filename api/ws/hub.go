package ws

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/kasuganosora/topdownrpg/sim/cache"
)

// Hub is the registry of connected sessions.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   *zap.Logger
}

// NewHub creates an empty Hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// Register adds a session.
func (h *Hub) Register(s *Session) {
	h.mu.Lock()
	h.sessions[s.ID] = s
	n := len(h.sessions)
	h.mu.Unlock()
	h.logger.Info("ws session registered",
		zap.String("session", s.ID),
		zap.Int("sessions", n))
}

// Unregister removes a session.
func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	delete(h.sessions, s.ID)
	h.mu.Unlock()
	h.logger.Info("ws session unregistered", zap.String("session", s.ID))
}

// Count returns the number of connected sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// BroadcastAll sends a pre-encoded packet to every session. Slow sessions
// drop the packet rather than block the others.
func (h *Hub) BroadcastAll(data []byte) {
	h.mu.RLock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.RUnlock()

	for _, s := range sessions {
		select {
		case s.SendChan <- data:
		default:
			h.logger.Warn("broadcast dropped packet for slow client",
				zap.String("session", s.ID))
		}
	}
}

// Relay forwards pub/sub messages to every session until ctx ends. Each
// channel name maps to the packet type the message is sent as.
func (h *Hub) Relay(ctx context.Context, ps cache.PubSub, types map[string]string) error {
	channels := make([]string, 0, len(types))
	for ch := range types {
		channels = append(channels, ch)
	}
	msgs, cancel, err := ps.Subscribe(ctx, channels...)
	if err != nil {
		return err
	}
	go func() {
		defer cancel()
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				data, err := json.Marshal(&Packet{
					Type:    types[msg.Channel],
					Payload: json.RawMessage(msg.Payload),
				})
				if err != nil {
					h.logger.Warn("relay encode failed",
						zap.String("channel", msg.Channel),
						zap.Error(err))
					continue
				}
				h.BroadcastAll(data)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}
