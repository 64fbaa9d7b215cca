package spawn

import (
	"math/rand"
	"testing"

	"github.com/cavernkeep/undercroft/internal/dungeon"
	"github.com/cavernkeep/undercroft/internal/entity"
)

func TestFromDepth(t *testing.T) {
	table := []Transition{
		{Depth: 1, Value: 2},
		{Depth: 5, Value: 4},
		{Depth: 8, Value: 5},
	}

	tests := []struct {
		name  string
		table []Transition
		depth int
		want  int
	}{
		{"empty table", nil, 3, 0},
		{"below first step", table, 0, 0},
		{"first step exact", table, 1, 2},
		{"between steps", table, 4, 2},
		{"second step exact", table, 5, 4},
		{"beyond last step", table, 20, 5},
		{"unsorted entries", []Transition{{Depth: 8, Value: 5}, {Depth: 1, Value: 2}}, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromDepth(tt.table, tt.depth); got != tt.want {
				t.Errorf("FromDepth(depth=%d) = %d, want %d", tt.depth, got, tt.want)
			}
		})
	}
}

// stubSource mints bare entities and records every request.
type stubSource struct {
	glyph  rune
	blocks bool
	made   int
}

func (s *stubSource) SpawnAt(depth, x, y int, rng *rand.Rand) *entity.Entity {
	s.made++
	return entity.New(x, y, s.glyph, "stub", "white", s.blocks)
}

func carvedRoom(t *testing.T) (*dungeon.Map, dungeon.Rect) {
	t.Helper()
	m := dungeon.NewMap(20, 20)
	room := dungeon.NewRect(2, 2, 10, 10)
	for y := room.Y1 + 1; y < room.Y2; y++ {
		for x := room.X1 + 1; x < room.X2; x++ {
			m.Tiles[y][x] = dungeon.FloorTile()
		}
	}
	return m, room
}

func TestPopulate_SpawnsInsideRoomInterior(t *testing.T) {
	m, room := carvedRoom(t)
	store := entity.NewStore(entity.NewPlayer("player", 30, 2, 5))
	monsters := &stubSource{glyph: 'M', blocks: true}
	items := &stubSource{glyph: 'i'}
	pop := NewPopulator(monsters, items)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 50; i++ {
		pop.Populate(room, 1, m, store, rng)
	}

	for i := 1; i < store.Len(); i++ {
		e := store.At(i)
		if e.X <= room.X1 || e.X >= room.X2 || e.Y <= room.Y1 || e.Y >= room.Y2 {
			t.Errorf("spawn at (%d,%d) outside room interior %+v", e.X, e.Y, room)
		}
	}
	if monsters.made == 0 || items.made == 0 {
		t.Error("expected both sources to be exercised over 50 rooms")
	}
}

func TestPopulate_SkipsBlockedTiles(t *testing.T) {
	// room never carved, every tile stays wall
	m := dungeon.NewMap(20, 20)
	room := dungeon.NewRect(2, 2, 10, 10)
	store := entity.NewStore(entity.NewPlayer("player", 30, 2, 5))
	monsters := &stubSource{glyph: 'M', blocks: true}
	pop := NewPopulator(monsters, &stubSource{glyph: 'i'})
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 20; i++ {
		pop.Populate(room, 1, m, store, rng)
	}

	if store.Len() != 1 {
		t.Errorf("spawned %d entities onto solid wall", store.Len()-1)
	}
	if monsters.made != 0 {
		t.Error("source consulted for a blocked tile")
	}
}

func TestPopulate_ZeroCountTables(t *testing.T) {
	m, room := carvedRoom(t)
	store := entity.NewStore(entity.NewPlayer("player", 30, 2, 5))
	monsters := &stubSource{glyph: 'M', blocks: true}
	items := &stubSource{glyph: 'i'}
	pop := &Populator{
		Monsters:    monsters,
		Items:       items,
		MaxMonsters: []Transition{{Depth: 5, Value: 3}},
		MaxItems:    []Transition{{Depth: 5, Value: 2}},
	}
	rng := rand.New(rand.NewSource(42))

	// depth 1 is below both tables' first step
	for i := 0; i < 20; i++ {
		pop.Populate(room, 1, m, store, rng)
	}

	if store.Len() != 1 || monsters.made != 0 || items.made != 0 {
		t.Error("populated a depth with zero-valued count tables")
	}
}

func TestPopulate_NilSourceSpawnsNothing(t *testing.T) {
	m, room := carvedRoom(t)
	store := entity.NewStore(entity.NewPlayer("player", 30, 2, 5))
	pop := NewPopulator(emptySource{}, emptySource{})
	rng := rand.New(rand.NewSource(42))

	pop.Populate(room, 1, m, store, rng)

	if store.Len() != 1 {
		t.Error("appended entities from a source that returned nil")
	}
}

type emptySource struct{}

func (emptySource) SpawnAt(depth, x, y int, rng *rand.Rand) *entity.Entity { return nil }
