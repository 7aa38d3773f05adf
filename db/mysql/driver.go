package mysql

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kasuganosora/topdownrpg/sim/config"
)

// Open connects the journal to MySQL and sizes the pool from cfg.
// A malformed DSN fails here, before any connection is attempted.
func Open(cfg config.JournalConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("mysql: open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("mysql: pool: %w", err)
	}
	if cfg.MySQLMaxOpen > 0 {
		sqlDB.SetMaxOpenConns(cfg.MySQLMaxOpen)
	}
	if cfg.MySQLMaxIdle > 0 {
		sqlDB.SetMaxIdleConns(cfg.MySQLMaxIdle)
	}
	sqlDB.SetConnMaxLifetime(cfg.MySQLMaxLife)
	return db, nil
}
