package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/kasuganosora/topdownrpg/sim/model"
	"github.com/kasuganosora/topdownrpg/sim/testutil"
)

func TestAutoMigrate_InsertAndQuery(t *testing.T) {
	db := testutil.SetupTestDB(t)

	e := &model.JournalEntry{
		SessionID: "session-1",
		Tick:      42,
		Kind:      "quest",
		ActorID:   2,
		Name:      "Deliver Message",
		Detail:    "accepted",
		GameTime:  "1/1/1 - 06:05",
		Payload:   datatypes.JSON(`{"name":"Deliver Message"}`),
	}
	require.NoError(t, db.Create(e).Error)
	assert.Greater(t, e.ID, int64(0))

	var found model.JournalEntry
	require.NoError(t, db.First(&found, e.ID).Error)
	assert.Equal(t, "Deliver Message", found.Name)
	assert.Equal(t, uint64(42), found.Tick)
	assert.False(t, found.CreatedAt.IsZero())
	assert.JSONEq(t, `{"name":"Deliver Message"}`, string(found.Payload))
}
