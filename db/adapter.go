// Package db opens the gorm connection the quest journal writes to.
package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kasuganosora/topdownrpg/sim/config"
	dbmysql "github.com/kasuganosora/topdownrpg/sim/db/mysql"
	dbsqlite "github.com/kasuganosora/topdownrpg/sim/db/sqlite"
)

const (
	ModeMemory = "memory"
	ModeSQLite = "sqlite"
	ModeMySQL  = "mysql"
	ModeOff    = "off"
)

// ErrDisabled is returned by Open when the journal is switched off.
var ErrDisabled = errors.New("db: journal disabled")

// Open returns a *gorm.DB for the configured journal mode.
func Open(cfg config.JournalConfig) (*gorm.DB, error) {
	switch cfg.Mode {
	case ModeMemory:
		return dbsqlite.OpenMemory()
	case ModeSQLite:
		return dbsqlite.Open(cfg.SQLitePath)
	case ModeMySQL:
		return dbmysql.Open(cfg)
	case ModeOff, "":
		return nil, ErrDisabled
	default:
		return nil, fmt.Errorf("db: unknown mode %q", cfg.Mode)
	}
}
