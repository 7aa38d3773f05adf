package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kasuganosora/topdownrpg/sim/broadcast"
	"github.com/kasuganosora/topdownrpg/sim/journal"
)

const journalMax = 200

// QuestHandler serves the recent quest log and the event journal.
type QuestHandler struct {
	pub     *broadcast.Publisher
	journal *journal.Service // nil when the journal is off
	logger  *zap.Logger
}

// NewQuestHandler creates a QuestHandler. j may be nil.
func NewQuestHandler(pub *broadcast.Publisher, j *journal.Service, logger *zap.Logger) *QuestHandler {
	return &QuestHandler{pub: pub, journal: j, logger: logger}
}

// Log returns recent quest notifications, newest first.
// GET /api/quests/log?limit=20
func (h *QuestHandler) Log(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := h.pub.QuestLog(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("quest log read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "quest log unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// Journal returns this session's journal rows, newest first.
// GET /api/journal?kind=quest&limit=50
func (h *QuestHandler) Journal(c *gin.Context) {
	if h.journal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "journal disabled"})
		return
	}
	limit := 50
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= journalMax {
		limit = l
	}
	rows, err := h.journal.Recent(c.Request.Context(), c.Query("kind"), limit)
	if err != nil {
		h.logger.Error("journal read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "journal unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": h.journal.SessionID(),
		"entries":    rows,
	})
}
