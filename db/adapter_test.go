package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasuganosora/topdownrpg/sim/config"
)

type row struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

func TestOpen_Memory(t *testing.T) {
	db, err := Open(config.JournalConfig{Mode: ModeMemory})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&row{}))
	require.NoError(t, db.Create(&row{Name: "a"}).Error)

	var n int64
	require.NoError(t, db.Model(&row{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	// A second memory database does not see the first one's rows.
	other, err := Open(config.JournalConfig{Mode: ModeMemory})
	require.NoError(t, err)
	require.NoError(t, other.AutoMigrate(&row{}))
	require.NoError(t, other.Model(&row{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestOpen_SQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")
	db, err := Open(config.JournalConfig{Mode: ModeSQLite, SQLitePath: path})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&row{}))
	assert.FileExists(t, path)
}

func TestOpen_Off(t *testing.T) {
	_, err := Open(config.JournalConfig{Mode: ModeOff})
	assert.ErrorIs(t, err, ErrDisabled)
	_, err = Open(config.JournalConfig{})
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestOpen_UnknownMode(t *testing.T) {
	_, err := Open(config.JournalConfig{Mode: "oracle"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrDisabled)
}

func TestOpen_MySQLBadDSN(t *testing.T) {
	_, err := Open(config.JournalConfig{Mode: ModeMySQL, MySQLDSN: "not a dsn"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "mysql: open:")
}
