// Package journal writes simulation events to the database in batches. It
// is write-only: nothing is read back into the simulation.
package journal

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/kasuganosora/topdownrpg/sim/config"
	"github.com/kasuganosora/topdownrpg/sim/game/world"
	"github.com/kasuganosora/topdownrpg/sim/model"
)

// journaled lists the event kinds worth keeping. Weather changes and
// despawns repeat every day and are left to the live streams.
var journaled = map[world.EventKind]bool{
	world.EventQuest:         true,
	world.EventKill:          true,
	world.EventPlayerHit:     true,
	world.EventPlayerDied:    true,
	world.EventDialogueFault: true,
}

// Service logs journal entries asynchronously in batches.
type Service struct {
	db        *gorm.DB
	sessionID string
	batchSize int
	flushTick time.Duration
	ch        chan *model.JournalEntry
	stopCh    chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	logger    *zap.Logger
}

// New creates a journal Service and starts its background worker. Every
// entry it writes is stamped with a fresh session id.
func New(db *gorm.DB, cfg config.JournalConfig, logger *zap.Logger) *Service {
	bufSize := cfg.BufferSize
	if bufSize <= 0 {
		bufSize = 1024
	}
	svc := &Service{
		db:        db,
		sessionID: uuid.NewString(),
		batchSize: cfg.BatchSize,
		flushTick: cfg.FlushEvery,
		ch:        make(chan *model.JournalEntry, bufSize),
		stopCh:    make(chan struct{}),
		logger:    logger,
	}
	if svc.batchSize <= 0 {
		svc.batchSize = 100
	}
	if svc.flushTick <= 0 {
		svc.flushTick = time.Second
	}
	svc.wg.Add(1)
	go svc.worker()
	logger.Info("journal started", zap.String("session", svc.sessionID))
	return svc
}

// SessionID identifies the rows written by this process.
func (svc *Service) SessionID() string { return svc.sessionID }

// Record enqueues the journaled events of one step. It never blocks the
// simulation: when the buffer is full the entry is dropped and logged.
func (svc *Service) Record(events []world.Event) {
	for i := range events {
		ev := &events[i]
		if !journaled[ev.Kind] {
			continue
		}
		entry := &model.JournalEntry{
			SessionID: svc.sessionID,
			Tick:      ev.Tick,
			Kind:      string(ev.Kind),
			ActorID:   int(ev.Actor),
			Name:      ev.Name,
			Detail:    ev.Detail,
			GameTime:  ev.At.String(),
		}
		if ev.Quest != nil {
			payload, _ := json.Marshal(ev.Quest)
			entry.Payload = datatypes.JSON(payload)
		}
		select {
		case svc.ch <- entry:
		default:
			svc.logger.Warn("journal channel full, dropping entry",
				zap.String("kind", entry.Kind),
				zap.Uint64("tick", entry.Tick))
		}
	}
}

// Recent returns up to limit entries of this session, newest first. An
// empty kind matches every kind.
func (svc *Service) Recent(ctx context.Context, kind string, limit int) ([]model.JournalEntry, error) {
	q := svc.db.WithContext(ctx).Where("session_id = ?", svc.sessionID)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	var out []model.JournalEntry
	err := q.Order("id DESC").Limit(limit).Find(&out).Error
	return out, err
}

// Stop flushes remaining entries and shuts down the worker.
// It blocks until the worker goroutine has finished.
func (svc *Service) Stop(_ context.Context) {
	svc.stopOnce.Do(func() { close(svc.stopCh) })
	svc.wg.Wait()
}

func (svc *Service) worker() {
	defer svc.wg.Done()
	ticker := time.NewTicker(svc.flushTick)
	defer ticker.Stop()

	batch := make([]*model.JournalEntry, 0, svc.batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := svc.db.Create(&batch).Error; err != nil {
			svc.logger.Error("journal batch write failed",
				zap.Int("entries", len(batch)),
				zap.Error(err))
		}
		batch = batch[:0]
	}

	for {
		select {
		case entry := <-svc.ch:
			batch = append(batch, entry)
			if len(batch) >= svc.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-svc.stopCh:
			// Drain remaining entries.
			for {
				select {
				case entry := <-svc.ch:
					batch = append(batch, entry)
				default:
					flush()
					return
				}
			}
		}
	}
}
