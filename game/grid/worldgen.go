package grid

// Road corridors joining the two villages.
const (
	MainRoadRow  = 50
	SouthRoadCol = 45
)

// Landmarks of the generated world, in tile coordinates.
var (
	WestVillage = Coord{25, 45}
	EastVillage = Coord{65, 55}
	RiverBank   = Coord{30, 50}
)

// Generate builds the fixed 100×100 world: grass base, a diagonal river,
// mountain ridges in the north-east and south-west with a cave pocket in
// each, two villages with internal roads and the road network joining them.
// The result depends on nothing but these rules.
func Generate() *Grid {
	b := NewBuilder(Width, Height)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			b.Set(Coord{x, y}, generatedKind(x, y))
		}
	}

	// Every road tile on the two inter-village corridors is a crossing.
	for x := 30; x <= 60; x++ {
		if c := (Coord{x, MainRoadRow}); b.Kind(c) == Road {
			b.AddCrossing(c)
		}
	}
	for y := 50; y <= 60; y++ {
		if c := (Coord{SouthRoadCol, y}); b.Kind(c) == Road {
			b.AddCrossing(c)
		}
	}
	b.SetRiver(RiverSpec{HalfWidth: 3, WindowMin: 20, WindowMax: 80})
	return b.Build()
}

// generatedKind applies the generation rules in order; later rules win.
func generatedKind(x, y int) Kind {
	kind := Grass
	if abs(x-y) < 3 {
		kind = River
	}
	if (x > 70 && y < 30) || (x < 30 && y > 70) {
		if (x+y)%7 < 4 {
			kind = Mountain
		}
	}
	if 23 <= x && x <= 27 && 73 <= y && y <= 77 {
		kind = Cave
	}
	if 73 <= x && x <= 77 && 23 <= y && y <= 27 {
		kind = Cave
	}
	if 20 < x && x < 30 && 45 < y && y < 55 {
		kind = VillageGround
		if x == 25 || y == 50 {
			kind = Road
		}
	}
	if 60 < x && x < 70 && 45 < y && y < 55 {
		kind = VillageGround
		if x == 65 || y == 50 {
			kind = Road
		}
	}
	if (y == MainRoadRow && 30 <= x && x <= 60) || (x == SouthRoadCol && 50 <= y && y <= 60) {
		kind = Road
	}
	return kind
}
