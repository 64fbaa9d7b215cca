package dungeon

// Tile is one cell of the dungeon grid.
type Tile struct {
	Blocked     bool `json:"blocked"`
	BlocksSight bool `json:"blocks_sight"`
	Explored    bool `json:"explored"`
}

// WallTile returns a solid wall cell.
func WallTile() Tile {
	return Tile{Blocked: true, BlocksSight: true}
}

// FloorTile returns a walkable, transparent cell.
func FloorTile() Tile {
	return Tile{}
}
