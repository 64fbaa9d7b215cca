package entity

import "math"

// StairsName is the name carried by the descent marker entity.
const StairsName = "stairs"

// Entity is one simulated thing: the player, a monster, an item on the
// ground, or the stairs marker. Components are nil when absent.
type Entity struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Glyph  rune   `json:"glyph"`
	Color  string `json:"color"`
	Name   string `json:"name"`
	Blocks bool   `json:"blocks"`
	Alive  bool   `json:"alive"`
	Level  int    `json:"level"`
	Player bool   `json:"player,omitempty"`

	Fighter   *Fighter   `json:"fighter,omitempty"`
	AI        *AI        `json:"ai,omitempty"`
	Item      *Item      `json:"item,omitempty"`
	Equipment *Equipment `json:"equipment,omitempty"`
}

// New creates a bare entity with no components.
func New(x, y int, glyph rune, name, color string, blocks bool) *Entity {
	return &Entity{
		X:      x,
		Y:      y,
		Glyph:  glyph,
		Name:   name,
		Color:  color,
		Blocks: blocks,
		Level:  1,
	}
}

// NewPlayer creates the player entity with its starting fighter stats.
func NewPlayer(name string, maxHP, defense, power int) *Entity {
	e := New(0, 0, '@', name, "white", true)
	e.Player = true
	e.Alive = true
	e.Fighter = &Fighter{
		BaseMaxHP:   maxHP,
		HP:          maxHP,
		BaseDefense: defense,
		BasePower:   power,
		Death:       DeathPlayer,
	}
	return e
}

// NewStairs creates the stairs-down marker for a level.
func NewStairs(x, y int) *Entity {
	return New(x, y, '<', StairsName, "white", false)
}

// Pos returns the entity's coordinates.
func (e *Entity) Pos() (int, int) {
	return e.X, e.Y
}

// SetPos moves the entity to (x, y) without any collision checks.
func (e *Entity) SetPos(x, y int) {
	e.X = x
	e.Y = y
}

// Distance returns the Euclidean distance to (x, y).
func (e *Entity) Distance(x, y int) float64 {
	dx := float64(x - e.X)
	dy := float64(y - e.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceTo returns the Euclidean distance to another entity.
func (e *Entity) DistanceTo(other *Entity) float64 {
	return e.Distance(other.X, other.Y)
}
