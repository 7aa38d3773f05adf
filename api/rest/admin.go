package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kasuganosora/topdownrpg/sim/game/world"
	"github.com/kasuganosora/topdownrpg/sim/scheduler"
)

// SessionCounter reports how many live connections are open.
type SessionCounter interface {
	Count() int
}

// AdminHandler handles process-level REST endpoints.
type AdminHandler struct {
	room     *world.Room
	sched    *scheduler.Scheduler
	sessions SessionCounter
	logger   *zap.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(room *world.Room, sched *scheduler.Scheduler, sessions SessionCounter, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{room: room, sched: sched, sessions: sessions, logger: logger}
}

// Health reports liveness and how far the simulation has run.
// GET /api/health
func (h *AdminHandler) Health(c *gin.Context) {
	snap := h.room.Latest()
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"tick":   snap.Tick,
		"clock":  snap.Clock,
		"paused": snap.Paused,
	})
}

// Metrics returns server health metrics.
// GET /api/admin/metrics
func (h *AdminHandler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sessions":        h.sessions.Count(),
		"tick":            h.room.Latest().Tick,
		"scheduler_tasks": h.sched.Tasks(),
	})
}

// Tasks lists the scheduler's tasks.
// GET /api/admin/tasks
func (h *AdminHandler) Tasks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tasks": h.sched.Tasks()})
}
