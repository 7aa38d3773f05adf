// Package rest serves the read-only observer API.
package rest

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kasuganosora/topdownrpg/sim/broadcast"
	"github.com/kasuganosora/topdownrpg/sim/cache"
	"github.com/kasuganosora/topdownrpg/sim/game/ai"
	"github.com/kasuganosora/topdownrpg/sim/game/grid"
	"github.com/kasuganosora/topdownrpg/sim/game/world"
)

// WorldHandler exposes the map and the latest world state.
type WorldHandler struct {
	room   *world.Room
	cache  cache.Cache
	logger *zap.Logger
}

// NewWorldHandler creates a WorldHandler.
func NewWorldHandler(room *world.Room, c cache.Cache, logger *zap.Logger) *WorldHandler {
	return &WorldHandler{room: room, cache: c, logger: logger}
}

// Snapshot returns the last published snapshot, or the room's latest one
// before anything has been published.
// GET /api/snapshot
func (h *WorldHandler) Snapshot(c *gin.Context) {
	raw, err := h.cache.Get(c.Request.Context(), broadcast.SnapshotKey)
	if err == nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(raw))
		return
	}
	if !cache.IsNotFound(err) {
		h.logger.Warn("snapshot cache read failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, h.room.Latest())
}

// GridResponse describes the tile map. Each row is a string of kind
// indexes into Kinds, one digit per tile.
type GridResponse struct {
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	TileSize  int      `json:"tile_size"`
	Kinds     []string `json:"kinds"`
	Rows      []string `json:"rows"`
	Crossings [][2]int `json:"crossings"`
}

// Grid returns the whole tile map.
// GET /api/grid
func (h *WorldHandler) Grid(c *gin.Context) {
	g := h.room.Grid()
	resp := GridResponse{
		Width:    g.Width(),
		Height:   g.Height(),
		TileSize: grid.TileSize,
		Rows:     make([]string, g.Height()),
	}
	for k := grid.Grass; k <= grid.Cave; k++ {
		resp.Kinds = append(resp.Kinds, k.String())
	}
	var row strings.Builder
	for y := 0; y < g.Height(); y++ {
		row.Reset()
		for x := 0; x < g.Width(); x++ {
			kind, _ := g.Classify(grid.Coord{X: x, Y: y})
			row.WriteByte('0' + byte(kind))
		}
		resp.Rows[y] = row.String()
	}
	for _, cr := range g.Crossings() {
		resp.Crossings = append(resp.Crossings, [2]int{cr.X, cr.Y})
	}
	c.JSON(http.StatusOK, resp)
}

// PathResponse is the result of a path query.
type PathResponse struct {
	From          [2]int   `json:"from"`
	To            [2]int   `json:"to"`
	Path          [][2]int `json:"path"`
	Found         bool     `json:"found"`
	RiverBetween  bool     `json:"river_between"`
	NearestBridge *[2]int  `json:"nearest_bridge,omitempty"`
}

// Path runs the pathfinder between two tiles, avoiding mountains. An
// unreachable goal yields an empty path, not an error.
// GET /api/path?from=x,y&to=x,y
func (h *WorldHandler) Path(c *gin.Context) {
	from, err := parseCoord(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from: " + err.Error()})
		return
	}
	to, err := parseCoord(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to: " + err.Error()})
		return
	}
	g := h.room.Grid()
	path := ai.FindPath(g, from, to, grid.Collidable)

	resp := PathResponse{
		From:         [2]int{from.X, from.Y},
		To:           [2]int{to.X, to.Y},
		Path:         make([][2]int, 0, len(path)),
		Found:        !path.Empty() || from == to,
		RiverBetween: g.RiverSeparates(from, to),
	}
	for _, p := range path {
		resp.Path = append(resp.Path, [2]int{p.X, p.Y})
	}
	if b, ok := g.NearestBridge(from); ok {
		resp.NearestBridge = &[2]int{b.X, b.Y}
	}
	c.JSON(http.StatusOK, resp)
}

func parseCoord(s string) (grid.Coord, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return grid.Coord{}, fmt.Errorf("want x,y, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return grid.Coord{}, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return grid.Coord{}, err
	}
	return grid.Coord{X: x, Y: y}, nil
}
