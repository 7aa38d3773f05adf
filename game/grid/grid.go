// Package grid is the static tile model of the world: terrain kinds,
// collidability, the river geometry and the registered bridge crossings.
//
// A Grid is immutable once built. Every query is a pure read, so a single
// Grid can be shared by any number of actors without locking.
package grid

import (
	"math"

	"github.com/kasuganosora/topdownrpg/sim/game/geom"
)

// World dimensions.
const (
	TileSize = 32
	Width    = 100
	Height   = 100
)

// Kind is the terrain classification of a single tile.
type Kind uint8

const (
	Grass Kind = iota
	Mountain
	River
	VillageGround
	Road
	Cave
)

var kindNames = [...]string{"grass", "mountain", "river", "village", "road", "cave"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// KindSet is a small bitset of tile kinds.
type KindSet uint8

// NewKindSet returns a set containing kinds.
func NewKindSet(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

// Has reports whether k is in the set.
func (s KindSet) Has(k Kind) bool { return s&(1<<k) != 0 }

// Collidable is the set of tiles that block movement.
var Collidable = NewKindSet(Mountain)

// IsCollidable reports whether kind blocks movement.
func IsCollidable(kind Kind) bool { return Collidable.Has(kind) }

// Coord is an integer tile index.
type Coord struct {
	X, Y int
}

// Center returns the world-space center of the tile.
func (c Coord) Center() geom.Vec2 {
	return geom.Vec2{
		X: float64(c.X*TileSize + TileSize/2),
		Y: float64(c.Y*TileSize + TileSize/2),
	}
}

// CoordAt returns the tile containing the world position p.
func CoordAt(p geom.Vec2) Coord {
	return Coord{
		X: int(math.Floor(p.X / TileSize)),
		Y: int(math.Floor(p.Y / TileSize)),
	}
}

// RiverSpec describes a diagonal river running along x == y.
// Tiles with |x-y| < HalfWidth are river; the separation test only applies
// while both tile columns lie strictly inside (WindowMin, WindowMax).
type RiverSpec struct {
	HalfWidth int
	WindowMin int
	WindowMax int
}

// Grid is an immutable width×height array of tile kinds.
type Grid struct {
	width, height int
	tiles         []Kind
	crossings     []Coord
	river         *RiverSpec
}

// Width returns the number of tile columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of tile rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether c addresses a tile of the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Classify returns the kind of the tile at c. ok is false outside the grid.
func (g *Grid) Classify(c Coord) (kind Kind, ok bool) {
	if !g.InBounds(c) {
		return 0, false
	}
	return g.tiles[c.Y*g.width+c.X], true
}

// TileAt returns the kind of the tile under the world position p.
func (g *Grid) TileAt(p geom.Vec2) (Kind, bool) {
	return g.Classify(CoordAt(p))
}

// Blocked reports whether the tile at c is in blocked. Tiles outside the
// grid are never blocked; movement is bounded by clamping instead.
func (g *Grid) Blocked(c Coord, blocked KindSet) bool {
	k, ok := g.Classify(c)
	return ok && blocked.Has(k)
}

// Bounds returns the world-space rectangle covered by the grid.
func (g *Grid) Bounds() geom.Rect {
	return geom.Rect{W: float64(g.width * TileSize), H: float64(g.height * TileSize)}
}

// Crossings returns a copy of the registered bridge tiles.
func (g *Grid) Crossings() []Coord {
	out := make([]Coord, len(g.crossings))
	copy(out, g.crossings)
	return out
}

// NearestBridge returns the registered crossing closest to from by squared
// Euclidean distance. Ties go to the crossing registered first.
func (g *Grid) NearestBridge(from Coord) (Coord, bool) {
	if len(g.crossings) == 0 {
		return Coord{}, false
	}
	best := g.crossings[0]
	bestD := sqDist(best, from)
	for _, c := range g.crossings[1:] {
		if d := sqDist(c, from); d < bestD {
			best, bestD = c, d
		}
	}
	return best, true
}

// RiverSeparates reports whether the river lies between a and b: both
// columns are inside the river window and the tiles sit on opposite banks.
// A tile on the river itself is on neither bank.
func (g *Grid) RiverSeparates(a, b Coord) bool {
	r := g.river
	if r == nil {
		return false
	}
	inWindow := func(x int) bool { return x > r.WindowMin && x < r.WindowMax }
	if !inWindow(a.X) || !inWindow(b.X) {
		return false
	}
	return g.bank(a)*g.bank(b) < 0
}

// bank returns -1 or +1 for the side of the river c lies on, 0 on the river.
func (g *Grid) bank(c Coord) int {
	d := c.X - c.Y
	if abs(d) < g.river.HalfWidth {
		return 0
	}
	if d > 0 {
		return 1
	}
	return -1
}

func sqDist(a, b Coord) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Builder assembles a Grid. It is the only way to mutate tiles; Build
// hands out an immutable copy.
type Builder struct {
	g Grid
}

// NewBuilder returns a builder for a width×height grid of grass.
func NewBuilder(width, height int) *Builder {
	return &Builder{g: Grid{
		width:  width,
		height: height,
		tiles:  make([]Kind, width*height),
	}}
}

// Set assigns kind to the tile at c. Out-of-range coordinates are ignored.
func (b *Builder) Set(c Coord, kind Kind) *Builder {
	if b.g.InBounds(c) {
		b.g.tiles[c.Y*b.g.width+c.X] = kind
	}
	return b
}

// Fill assigns kind to every tile in the inclusive rectangle [from, to].
func (b *Builder) Fill(from, to Coord, kind Kind) *Builder {
	for y := from.Y; y <= to.Y; y++ {
		for x := from.X; x <= to.X; x++ {
			b.Set(Coord{x, y}, kind)
		}
	}
	return b
}

// Kind returns the kind currently assigned at c.
func (b *Builder) Kind(c Coord) Kind {
	k, _ := b.g.Classify(c)
	return k
}

// AddCrossing registers c as a bridge tile. Duplicates are ignored.
func (b *Builder) AddCrossing(c Coord) *Builder {
	for _, existing := range b.g.crossings {
		if existing == c {
			return b
		}
	}
	b.g.crossings = append(b.g.crossings, c)
	return b
}

// SetRiver records the river geometry used by RiverSeparates.
func (b *Builder) SetRiver(spec RiverSpec) *Builder {
	b.g.river = &spec
	return b
}

// Build returns the finished grid.
func (b *Builder) Build() *Grid {
	g := b.g
	g.tiles = append([]Kind(nil), b.g.tiles...)
	g.crossings = append([]Coord(nil), b.g.crossings...)
	if b.g.river != nil {
		r := *b.g.river
		g.river = &r
	}
	return &g
}

// Actor collision geometry: actors are a little smaller than a tile and
// test their box corners pulled in by CornerInset.
const (
	ActorSize   = TileSize - 4
	CornerInset = 2
)

// BoxClear reports whether every inset corner of box lies on a tile that
// is not in blocked.
func (g *Grid) BoxClear(box geom.Rect, blocked KindSet) bool {
	for _, c := range box.InsetCorners(CornerInset) {
		if g.Blocked(CoordAt(c), blocked) {
			return false
		}
	}
	return true
}

// Step moves an actor of the given size centered at pos by delta. The move
// is all or nothing: if any inset corner of the moved box would land on a
// blocked tile the actor stays put. The result is clamped to the grid.
func (g *Grid) Step(pos, delta geom.Vec2, size float64, blocked KindSet) geom.Vec2 {
	if !delta.IsZero() {
		if next := pos.Add(delta); g.BoxClear(geom.CenteredAt(next, size, size), blocked) {
			pos = next
		}
	}
	return geom.CenteredAt(pos, size, size).ClampInto(g.Bounds()).Center()
}
