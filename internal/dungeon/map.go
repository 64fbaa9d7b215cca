package dungeon

// Map is the fixed-size tile grid for one dungeon level. It is
// regenerated wholesale on descent; only Explored flags mutate during
// normal play.
type Map struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Tiles  [][]Tile `json:"tiles"` // indexed [y][x]
}

// NewMap returns a fully walled grid.
func NewMap(width, height int) *Map {
	tiles := make([][]Tile, height)
	for y := range tiles {
		row := make([]Tile, width)
		for x := range row {
			row[x] = WallTile()
		}
		tiles[y] = row
	}
	return &Map{Width: width, Height: height, Tiles: tiles}
}

// InBounds reports whether (x, y) lies on the grid.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns the tile at (x, y). Out-of-bounds coordinates read as
// solid wall so callers can probe neighbours without guarding.
func (m *Map) At(x, y int) Tile {
	if !m.InBounds(x, y) {
		return WallTile()
	}
	return m.Tiles[y][x]
}

// Blocked reports whether terrain blocks movement at (x, y).
func (m *Map) Blocked(x, y int) bool {
	return m.At(x, y).Blocked
}

// BlocksSight reports whether terrain blocks line of sight at (x, y).
func (m *Map) BlocksSight(x, y int) bool {
	return m.At(x, y).BlocksSight
}

// MarkExplored flags a tile as having been seen.
func (m *Map) MarkExplored(x, y int) {
	if m.InBounds(x, y) {
		m.Tiles[y][x].Explored = true
	}
}

// carveRoom clears the interior of a room, leaving its border wall.
func (m *Map) carveRoom(r Rect) {
	for y := r.Y1 + 1; y < r.Y2; y++ {
		for x := r.X1 + 1; x < r.X2; x++ {
			if m.InBounds(x, y) {
				m.Tiles[y][x] = FloorTile()
			}
		}
	}
}

// carveHTunnel clears a horizontal corridor between x1 and x2 at row y.
func (m *Map) carveHTunnel(x1, x2, y int) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if m.InBounds(x, y) {
			m.Tiles[y][x] = FloorTile()
		}
	}
}

// carveVTunnel clears a vertical corridor between y1 and y2 at column x.
func (m *Map) carveVTunnel(y1, y2, x int) {
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if m.InBounds(x, y) {
			m.Tiles[y][x] = FloorTile()
		}
	}
}
