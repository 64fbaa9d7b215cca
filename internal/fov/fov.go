package fov

import (
	"github.com/cavernkeep/undercroft/internal/dungeon"
	"github.com/zyedidia/generic/mapset"
)

type point struct {
	x, y int
}

// Field holds the set of tiles visible from the most recent origin.
// One player-centered field serves both rendering and monster
// perception checks.
type Field struct {
	visible mapset.Set[point]
}

// New returns a field with nothing visible yet.
func New() *Field {
	return &Field{visible: mapset.New[point]()}
}

// Visible reports whether (x, y) was inside the field at the last
// Recompute.
func (f *Field) Visible(x, y int) bool {
	return f.visible.Has(point{x, y})
}

// Recompute rebuilds the visible set centered on (ox, oy) by casting
// rays to the rim of the radius square, clamped to a circular torch.
// Every tile that becomes visible is also marked explored on the map.
func (f *Field) Recompute(m *dungeon.Map, ox, oy, radius int) {
	f.visible = mapset.New[point]()
	if radius < 0 {
		return
	}

	f.reveal(m, ox, oy)
	for x := ox - radius; x <= ox+radius; x++ {
		f.ray(m, ox, oy, x, oy-radius, radius)
		f.ray(m, ox, oy, x, oy+radius, radius)
	}
	for y := oy - radius; y <= oy+radius; y++ {
		f.ray(m, ox, oy, ox-radius, y, radius)
		f.ray(m, ox, oy, ox+radius, y, radius)
	}
}

func (f *Field) reveal(m *dungeon.Map, x, y int) {
	if !m.InBounds(x, y) {
		return
	}
	f.visible.Put(point{x, y})
	m.MarkExplored(x, y)
}

// ray walks the Bresenham line from (ox, oy) toward (tx, ty). Tiles
// become visible until the first sight blocker, which is itself
// revealed so walls show up lit.
func (f *Field) ray(m *dungeon.Map, ox, oy, tx, ty, radius int) {
	dx := tx - ox
	if dx < 0 {
		dx = -dx
	}
	dy := ty - oy
	if dy < 0 {
		dy = -dy
	}
	sx, sy := 1, 1
	if tx < ox {
		sx = -1
	}
	if ty < oy {
		sy = -1
	}

	err := dx - dy
	x, y := ox, oy
	for {
		if (x-ox)*(x-ox)+(y-oy)*(y-oy) > radius*radius {
			return
		}
		f.reveal(m, x, y)
		if m.BlocksSight(x, y) {
			return
		}
		if x == tx && y == ty {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}
