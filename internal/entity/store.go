package entity

import "encoding/json"

// PlayerIndex is the store slot the player occupies for the whole run.
const PlayerIndex = 0

// Store is the ordered entity collection for the current level. The
// player sits at PlayerIndex permanently; every other index is
// unstable across SwapRemove, so indices must never be cached across
// mutations.
type Store struct {
	entities []*Entity
}

// NewStore creates a store seeded with the player entity.
func NewStore(player *Entity) *Store {
	return &Store{entities: []*Entity{player}}
}

// Player returns the player entity.
func (s *Store) Player() *Entity {
	return s.entities[PlayerIndex]
}

// Len returns the number of entities.
func (s *Store) Len() int {
	return len(s.entities)
}

// At returns the entity at index i.
func (s *Store) At(i int) *Entity {
	return s.entities[i]
}

// Entities returns the backing slice as a read view for rendering and
// serialization. Callers must not reorder it.
func (s *Store) Entities() []*Entity {
	return s.entities
}

// Append adds an entity at the end of the store.
func (s *Store) Append(e *Entity) {
	s.entities = append(s.entities, e)
}

// TruncateToPlayer discards everything but the player. Run before
// regenerating a level.
func (s *Store) TruncateToPlayer() {
	s.entities = s.entities[:PlayerIndex+1]
}

// SwapRemove removes and returns the entity at index i by moving the
// last entity into its place. Refuses to remove the player.
func (s *Store) SwapRemove(i int) *Entity {
	if i <= PlayerIndex || i >= len(s.entities) {
		return nil
	}
	e := s.entities[i]
	last := len(s.entities) - 1
	s.entities[i] = s.entities[last]
	s.entities[last] = nil
	s.entities = s.entities[:last]
	return e
}

// Pair returns two distinct entities for an attacker/defender exchange.
// Panics when i == j: overlapping access to one entity is a bug, not a
// recoverable condition.
func (s *Store) Pair(i, j int) (*Entity, *Entity) {
	if i == j {
		panic("entity: Pair called with identical indices")
	}
	return s.entities[i], s.entities[j]
}

// BlockingAt reports whether any blocking entity occupies (x, y).
func (s *Store) BlockingAt(x, y int) bool {
	for _, e := range s.entities {
		if e.Blocks && e.X == x && e.Y == y {
			return true
		}
	}
	return false
}

// FighterIndexAt returns the index of a fighter-bearing entity at
// (x, y), or -1 when the tile holds none.
func (s *Store) FighterIndexAt(x, y int) int {
	for i, e := range s.entities {
		if e.Fighter != nil && e.X == x && e.Y == y {
			return i
		}
	}
	return -1
}

// ItemIndexAt returns the index of an item entity at (x, y), or -1.
func (s *Store) ItemIndexAt(x, y int) int {
	for i, e := range s.entities {
		if e.Item != nil && e.X == x && e.Y == y {
			return i
		}
	}
	return -1
}

// StairsAt reports whether the stairs marker occupies (x, y).
func (s *Store) StairsAt(x, y int) bool {
	for _, e := range s.entities {
		if e.Name == StairsName && e.X == x && e.Y == y {
			return true
		}
	}
	return false
}

// MarshalJSON serializes the store as its entity list.
func (s *Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.entities)
}

// UnmarshalJSON restores the store from an entity list.
func (s *Store) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &s.entities)
}
