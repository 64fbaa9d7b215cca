package dungeon

import (
	"errors"
	"math/rand"

	"github.com/cavernkeep/undercroft/internal/entity"
)

// ErrNoRooms is returned when not a single room placement succeeds.
// Callers must treat the level as unusable rather than spawn into a
// solid wall grid.
var ErrNoRooms = errors.New("dungeon generation produced no rooms")

// Populator seeds monsters and items into an accepted room. The spawn
// tables live outside this package so generation stays pure geometry.
type Populator interface {
	Populate(room Rect, depth int, m *Map, store *entity.Store, rng *rand.Rand)
}

// Generator carves one dungeon level: up to MaxRooms non-overlapping
// rectangular rooms joined by L-shaped corridors.
type Generator struct {
	Width       int
	Height      int
	MaxRooms    int
	RoomMinSize int
	RoomMaxSize int
}

// Generate builds the level for the given depth. The store is reduced
// to the player before carving, and every accepted room is populated
// via pop. The player starts at the center of the first room; a stairs
// marker lands at the center of the last.
func (g *Generator) Generate(depth int, store *entity.Store, pop Populator, rng *rand.Rand) (*Map, error) {
	store.TruncateToPlayer()

	m := NewMap(g.Width, g.Height)
	var rooms []Rect

	for i := 0; i < g.MaxRooms; i++ {
		w := g.RoomMinSize + rng.Intn(g.RoomMaxSize-g.RoomMinSize+1)
		h := g.RoomMinSize + rng.Intn(g.RoomMaxSize-g.RoomMinSize+1)
		if w >= g.Width || h >= g.Height {
			continue
		}
		x := rng.Intn(g.Width - w)
		y := rng.Intn(g.Height - h)

		room := NewRect(x, y, w, h)

		overlaps := false
		for _, other := range rooms {
			if room.Intersects(other) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}

		m.carveRoom(room)

		cx, cy := room.Center()
		if len(rooms) == 0 {
			store.Player().SetPos(cx, cy)
		} else {
			px, py := rooms[len(rooms)-1].Center()
			if rng.Intn(2) == 0 {
				m.carveHTunnel(px, cx, py)
				m.carveVTunnel(py, cy, cx)
			} else {
				m.carveVTunnel(py, cy, px)
				m.carveHTunnel(px, cx, cy)
			}
		}

		if pop != nil {
			pop.Populate(room, depth, m, store, rng)
		}

		rooms = append(rooms, room)
	}

	if len(rooms) == 0 {
		return nil, ErrNoRooms
	}

	lx, ly := rooms[len(rooms)-1].Center()
	store.Append(entity.NewStairs(lx, ly))

	return m, nil
}
