package model

import (
	"time"

	"gorm.io/datatypes"
)

// JournalEntry records one simulation event. Quest transitions carry the
// quest's notification in Payload.
type JournalEntry struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID string         `gorm:"index:idx_journal_session;size:36;not null" json:"session_id"`
	Tick      uint64         `gorm:"index:idx_journal_session" json:"tick"`
	Kind      string         `gorm:"index:idx_journal_kind;size:32;not null" json:"kind"`
	ActorID   int            `json:"actor_id"`
	Name      string         `gorm:"size:64" json:"name"`
	Detail    string         `gorm:"type:text" json:"detail"`
	GameTime  string         `gorm:"size:32" json:"game_time"`
	Payload   datatypes.JSON `json:"payload"`
	CreatedAt time.Time      `gorm:"autoCreateTime:milli" json:"created_at"`
}
