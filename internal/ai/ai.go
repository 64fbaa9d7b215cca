package ai

import (
	"math"
	"math/rand"

	"github.com/cavernkeep/undercroft/internal/combat"
	"github.com/cavernkeep/undercroft/internal/dungeon"
	"github.com/cavernkeep/undercroft/internal/entity"
	"github.com/cavernkeep/undercroft/internal/message"
)

// Oracle answers whether a tile fell inside the last computed field of
// view. The player-centered field doubles as monster perception: a
// monster the player can see is a monster that has noticed the player.
type Oracle interface {
	Visible(x, y int) bool
}

// TakeTurns runs one decision pass over every AI-bearing entity, in
// store order, each resolved fully before the next. Returns the name
// of the monster that landed a killing blow on the player, or "".
func TakeTurns(store *entity.Store, m *dungeon.Map, inventory []*entity.Entity, oracle Oracle, missChance float64, rng *rand.Rand, log *message.Log) string {
	killer := ""
	for i := entity.PlayerIndex + 1; i < store.Len(); i++ {
		mon := store.At(i)
		if mon.AI == nil {
			continue
		}
		wasAlive := store.Player().Alive
		switch mon.AI.Kind {
		case entity.AIBasic:
			basic(i, store, m, inventory, oracle, missChance, rng, log)
		}
		if wasAlive && !store.Player().Alive {
			killer = mon.Name
		}
	}
	return killer
}

// basic chases the player while at range and swings when adjacent,
// including diagonally. Out of sight, the monster idles.
func basic(i int, store *entity.Store, m *dungeon.Map, inventory []*entity.Entity, oracle Oracle, missChance float64, rng *rand.Rand, log *message.Log) {
	mon := store.At(i)
	if !oracle.Visible(mon.X, mon.Y) {
		return
	}

	player := store.Player()
	if mon.DistanceTo(player) >= 2.0 {
		moveTowards(mon, player.X, player.Y, m, store)
	} else if player.Fighter != nil && player.Fighter.HP > 0 {
		attacker, defender := store.Pair(i, entity.PlayerIndex)
		combat.Attack(attacker, defender, inventory, missChance, rng, log)
	}
}

// moveTowards takes one step along the direction vector, normalized
// and rounded to the nearest of the 8 compass steps.
func moveTowards(mon *entity.Entity, tx, ty int, m *dungeon.Map, store *entity.Store) {
	dx := float64(tx - mon.X)
	dy := float64(ty - mon.Y)
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist == 0 {
		return
	}

	stepX := int(math.Round(dx / dist))
	stepY := int(math.Round(dy / dist))
	moveBy(mon, stepX, stepY, m, store)
}

// moveBy commits the step only when neither terrain nor a blocking
// entity holds the destination tile.
func moveBy(mon *entity.Entity, dx, dy int, m *dungeon.Map, store *entity.Store) {
	nx, ny := mon.X+dx, mon.Y+dy
	if !m.Blocked(nx, ny) && !store.BlockingAt(nx, ny) {
		mon.SetPos(nx, ny)
	}
}
