// Package broadcast copies simulation output into the cache and onto
// pub/sub channels, off the simulation goroutine.
package broadcast

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kasuganosora/topdownrpg/sim/cache"
	"github.com/kasuganosora/topdownrpg/sim/game/world"
)

// Cache keys and channels.
const (
	SnapshotKey     = "sim:snapshot"
	SnapshotChannel = "sim.snapshot"
	QuestLogKey     = "sim:quest_log"
	QuestChannel    = "sim.quest"
)

const writeTimeout = 2 * time.Second

// Publisher stores the latest snapshot and the recent quest log. Only the
// newest snapshot is kept when the writer falls behind; quest events queue
// up to a fixed depth.
type Publisher struct {
	cache       cache.Cache
	pubsub      cache.PubSub
	questLogMax int
	snapCh      chan []byte
	questCh     chan []byte
	stopCh      chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
	logger      *zap.Logger
}

// New creates a Publisher and starts its writer goroutine. questLogMax
// caps the quest log list.
func New(c cache.Cache, ps cache.PubSub, questLogMax int, logger *zap.Logger) *Publisher {
	if questLogMax <= 0 {
		questLogMax = 100
	}
	p := &Publisher{
		cache:       c,
		pubsub:      ps,
		questLogMax: questLogMax,
		snapCh:      make(chan []byte, 1),
		questCh:     make(chan []byte, 256),
		stopCh:      make(chan struct{}),
		logger:      logger,
	}
	p.wg.Add(1)
	go p.run()
	return p
}

// Snapshot queues s for publishing, replacing any snapshot still waiting.
func (p *Publisher) Snapshot(s *world.Snapshot) {
	data, err := json.Marshal(s)
	if err != nil {
		p.logger.Error("snapshot encode failed", zap.Error(err))
		return
	}
	for {
		select {
		case p.snapCh <- data:
			return
		default:
		}
		// Discard the stale one and retry.
		select {
		case <-p.snapCh:
		default:
		}
	}
}

// Events queues the quest notifications among events.
func (p *Publisher) Events(events []world.Event) {
	for i := range events {
		if events[i].Kind != world.EventQuest {
			continue
		}
		data, err := json.Marshal(events[i])
		if err != nil {
			p.logger.Error("quest event encode failed", zap.Error(err))
			continue
		}
		select {
		case p.questCh <- data:
		default:
			p.logger.Warn("quest queue full, dropping notification",
				zap.String("quest", events[i].Name))
		}
	}
}

// QuestLog returns up to limit recent quest events, newest first.
func (p *Publisher) QuestLog(ctx context.Context, limit int) ([]json.RawMessage, error) {
	if limit <= 0 || limit > p.questLogMax {
		limit = p.questLogMax
	}
	items, err := p.cache.LRange(ctx, QuestLogKey, 0, int64(limit-1))
	if err != nil {
		return nil, err
	}
	out := make([]json.RawMessage, len(items))
	for i, it := range items {
		out[i] = json.RawMessage(it)
	}
	return out, nil
}

// Stop writes whatever is queued and stops the writer.
func (p *Publisher) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
	p.wg.Wait()
}

func (p *Publisher) run() {
	defer p.wg.Done()
	for {
		select {
		case data := <-p.snapCh:
			p.writeSnapshot(data)
		case data := <-p.questCh:
			p.writeQuest(data)
		case <-p.stopCh:
			for {
				select {
				case data := <-p.questCh:
					p.writeQuest(data)
				case data := <-p.snapCh:
					p.writeSnapshot(data)
				default:
					return
				}
			}
		}
	}
}

func (p *Publisher) writeSnapshot(data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := p.cache.Set(ctx, SnapshotKey, string(data), 0); err != nil {
		p.logger.Warn("snapshot store failed", zap.Error(err))
	}
	if err := p.pubsub.Publish(ctx, SnapshotChannel, string(data)); err != nil {
		p.logger.Warn("snapshot publish failed", zap.Error(err))
	}
}

func (p *Publisher) writeQuest(data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := p.cache.LPush(ctx, QuestLogKey, string(data)); err != nil {
		p.logger.Warn("quest log push failed", zap.Error(err))
	} else if err := p.cache.LTrim(ctx, QuestLogKey, 0, int64(p.questLogMax-1)); err != nil {
		p.logger.Warn("quest log trim failed", zap.Error(err))
	}
	if err := p.pubsub.Publish(ctx, QuestChannel, string(data)); err != nil {
		p.logger.Warn("quest publish failed", zap.Error(err))
	}
}
