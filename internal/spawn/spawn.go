package spawn

import (
	"math/rand"

	"github.com/cavernkeep/undercroft/internal/dungeon"
	"github.com/cavernkeep/undercroft/internal/entity"
)

// Transition is one step of a depth-indexed table: from Depth onward
// the table yields Value, until a deeper step takes over.
type Transition struct {
	Depth int `yaml:"depth"`
	Value int `yaml:"value"`
}

// FromDepth returns the value of the deepest step at or above the
// given depth, or zero when no step qualifies. Entries do not have to
// be sorted.
func FromDepth(table []Transition, depth int) int {
	best := -1
	value := 0
	for _, t := range table {
		if t.Depth <= depth && t.Depth > best {
			best = t.Depth
			value = t.Value
		}
	}
	return value
}

// Source mints a fresh entity for the given depth and position, or nil
// when nothing in its tables is eligible at that depth.
type Source interface {
	SpawnAt(depth, x, y int, rng *rand.Rand) *entity.Entity
}

// Populator seeds monsters and items into freshly carved rooms. Counts
// come from depth-stepped tables, the pick within a roll is delegated
// to the sources.
type Populator struct {
	Monsters    Source
	Items       Source
	MaxMonsters []Transition
	MaxItems    []Transition
}

// NewPopulator wires the two sources to the default count tables:
// up to 3 monsters and 2 items per room on the first level, rising
// slowly with depth.
func NewPopulator(monsters, items Source) *Populator {
	return &Populator{
		Monsters: monsters,
		Items:    items,
		MaxMonsters: []Transition{
			{Depth: 1, Value: 3},
			{Depth: 5, Value: 4},
			{Depth: 8, Value: 5},
		},
		MaxItems: []Transition{
			{Depth: 1, Value: 2},
			{Depth: 6, Value: 3},
		},
	}
}

// Populate rolls a monster count and an item count for the room and
// scatters the spawns across its interior. A roll that lands on a
// blocked tile is skipped outright, not retried.
func (p *Populator) Populate(room dungeon.Rect, depth int, m *dungeon.Map, store *entity.Store, rng *rand.Rand) {
	monsters := rng.Intn(FromDepth(p.MaxMonsters, depth) + 1)
	for i := 0; i < monsters; i++ {
		x := room.X1 + 1 + rng.Intn(room.X2-room.X1-1)
		y := room.Y1 + 1 + rng.Intn(room.Y2-room.Y1-1)
		if m.Blocked(x, y) || store.BlockingAt(x, y) {
			continue
		}
		if mon := p.Monsters.SpawnAt(depth, x, y, rng); mon != nil {
			store.Append(mon)
		}
	}

	items := rng.Intn(FromDepth(p.MaxItems, depth) + 1)
	for i := 0; i < items; i++ {
		x := room.X1 + 1 + rng.Intn(room.X2-room.X1-1)
		y := room.Y1 + 1 + rng.Intn(room.Y2-room.Y1-1)
		if m.Blocked(x, y) || store.BlockingAt(x, y) {
			continue
		}
		if item := p.Items.SpawnAt(depth, x, y, rng); item != nil {
			store.Append(item)
		}
	}
}
