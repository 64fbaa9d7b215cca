package game

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/cavernkeep/undercroft/internal/config"
	"github.com/cavernkeep/undercroft/internal/dungeon"
	"github.com/cavernkeep/undercroft/internal/entity"
	"github.com/cavernkeep/undercroft/internal/leveling"
	"github.com/cavernkeep/undercroft/internal/message"
)

// stubOracle satisfies Oracle with a fixed answer and no real field.
type stubOracle struct {
	all bool
}

func (o stubOracle) Visible(x, y int) bool                        { return o.all }
func (o stubOracle) Recompute(m *dungeon.Map, ox, oy, radius int) {}

// testGame builds a game over a hand-carved open arena so tests
// control every entity position. Miss chance is zeroed for
// deterministic combat arithmetic.
func testGame(t *testing.T, mutate func(*config.Config)) *Game {
	t.Helper()
	return arenaGame(t, mutate, stubOracle{all: true})
}

func arenaGame(t *testing.T, mutate func(*config.Config), oracle Oracle) *Game {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Combat.MissChance = 0
	if mutate != nil {
		mutate(cfg)
	}

	m := dungeon.NewMap(20, 20)
	for y := 1; y < 19; y++ {
		for x := 1; x < 19; x++ {
			m.Tiles[y][x] = dungeon.FloorTile()
		}
	}

	store := entity.NewStore(entity.NewPlayer("player", cfg.Player.MaxHP, cfg.Player.Defense, cfg.Player.Power))
	store.Player().SetPos(5, 5)
	state := &State{Map: m, Log: &message.Log{}, Depth: 1}

	return Restore(cfg, store, state, nil, oracle, rand.New(rand.NewSource(42)))
}

func addOrc(g *Game, x, y int) *entity.Entity {
	orc := entity.New(x, y, 'p', "orc", "light_green", true)
	orc.Alive = true
	orc.Fighter = &entity.Fighter{BaseMaxHP: 9, HP: 9, BaseDefense: 0, BasePower: 3, XP: 35, Death: entity.DeathMonster}
	orc.AI = &entity.AI{Kind: entity.AIBasic}
	g.Store.Append(orc)
	return orc
}

func addPotion(g *Game, x, y int) *entity.Entity {
	potion := entity.New(x, y, '!', "healing potion", "violet", false)
	potion.Item = &entity.Item{Kind: entity.ItemHeal}
	g.Store.Append(potion)
	return potion
}

func carrySword(g *Game) *entity.Entity {
	sword := entity.New(0, 0, '/', "sword", "sky", false)
	sword.Item = &entity.Item{Kind: entity.ItemWeapon}
	sword.Equipment = &entity.Equipment{Slot: entity.SlotRightHand, PowerBonus: 3}
	g.State.Inventory = append(g.State.Inventory, sword)
	return sword
}

func logContains(g *Game, substr string) bool {
	for _, e := range g.State.Log.Entries {
		if strings.Contains(e.Text, substr) {
			return true
		}
	}
	return false
}

func TestNew_StartsOnDepthOne(t *testing.T) {
	cfg := config.DefaultConfig()
	g, err := New(cfg, nil, stubOracle{}, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if g.State.Depth != 1 {
		t.Errorf("depth = %d, want 1", g.State.Depth)
	}
	if g.State.Map == nil {
		t.Fatal("no map generated")
	}
	player := g.Store.Player()
	if g.State.Map.Blocked(player.X, player.Y) {
		t.Error("player starts inside a wall")
	}
	if !logContains(g, "Welcome stranger") {
		t.Error("no welcome message")
	}
}

func TestMovePlayer_Walks(t *testing.T) {
	g := testGame(t, nil)

	action := g.MovePlayer(1, 0)

	if action != TookTurn {
		t.Error("walking did not take a turn")
	}
	if x, y := g.Store.Player().Pos(); x != 6 || y != 5 {
		t.Errorf("player at (%d,%d), want (6,5)", x, y)
	}
}

func TestMovePlayer_BumpingWallStillSpendsTurn(t *testing.T) {
	g := testGame(t, nil)
	g.Store.Player().SetPos(1, 1)

	action := g.MovePlayer(-1, 0)

	if action != TookTurn {
		t.Error("bumping a wall must still spend the turn")
	}
	if x, y := g.Store.Player().Pos(); x != 1 || y != 1 {
		t.Errorf("player moved into a wall to (%d,%d)", x, y)
	}
}

func TestMovePlayer_RejectsNonCardinalSteps(t *testing.T) {
	g := testGame(t, nil)

	for _, step := range [][2]int{{1, 1}, {0, 0}, {2, 0}, {-1, 1}} {
		if action := g.MovePlayer(step[0], step[1]); action != DidntTakeTurn {
			t.Errorf("step (%d,%d) accepted", step[0], step[1])
		}
	}
	if x, y := g.Store.Player().Pos(); x != 5 || y != 5 {
		t.Error("player moved on a rejected step")
	}
}

func TestMovePlayer_AttacksAdjacentMonster(t *testing.T) {
	g := testGame(t, nil)
	orc := addOrc(g, 6, 5)

	action := g.MovePlayer(1, 0)

	if action != TookTurn {
		t.Error("attacking did not take a turn")
	}
	// player power 5 - orc defense 0
	if orc.Fighter.HP != 4 {
		t.Errorf("orc hp = %d, want 4", orc.Fighter.HP)
	}
	// the orc answers during the sweep: power 3 - defense 2
	if got := g.Store.Player().Fighter.HP; got != 29 {
		t.Errorf("player hp = %d, want 29 after the counterattack", got)
	}
	if x, y := g.Store.Player().Pos(); x != 5 || y != 5 {
		t.Error("player moved onto the monster's tile")
	}
}

func TestMovePlayer_DeadPlayerIgnored(t *testing.T) {
	g := testGame(t, nil)
	g.Store.Player().Alive = false

	if action := g.MovePlayer(1, 0); action != DidntTakeTurn {
		t.Error("dead player took a turn")
	}
	if x, _ := g.Store.Player().Pos(); x != 5 {
		t.Error("dead player moved")
	}
}

func TestPickUp_MovesItemToInventory(t *testing.T) {
	g := testGame(t, nil)
	addPotion(g, 5, 5)

	action := g.PickUp()

	if action != DidntTakeTurn {
		t.Error("pickup consumed a turn")
	}
	if len(g.State.Inventory) != 1 || g.State.Inventory[0].Name != "healing potion" {
		t.Fatal("potion not in inventory")
	}
	if g.Store.ItemIndexAt(5, 5) != -1 {
		t.Error("potion still on the floor")
	}
	if !logContains(g, "You pick up a healing potion") {
		t.Error("no pickup message")
	}
}

func TestPickUp_NothingUnderfoot(t *testing.T) {
	g := testGame(t, nil)

	if action := g.PickUp(); action != DidntTakeTurn {
		t.Error("empty pickup consumed a turn")
	}
	if len(g.State.Log.Entries) != 0 {
		t.Error("empty pickup logged a message")
	}
}

func TestPickUp_FullInventoryRefused(t *testing.T) {
	g := testGame(t, func(cfg *config.Config) { cfg.Inventory.Capacity = 1 })
	carrySword(g)
	potion := addPotion(g, 5, 5)

	g.PickUp()

	if len(g.State.Inventory) != 1 {
		t.Error("inventory grew past capacity")
	}
	if g.Store.ItemIndexAt(5, 5) == -1 {
		t.Error("refused item vanished from the floor")
	}
	if !logContains(g, "inventory is full") {
		t.Error("no full-inventory message")
	}
	_ = potion
}

func TestDescend_OnStairs(t *testing.T) {
	g := testGame(t, nil)
	g.Store.Append(entity.NewStairs(5, 5))
	g.Store.Player().Fighter.HP = 10

	action, err := g.Descend()
	if err != nil {
		t.Fatalf("Descend failed: %v", err)
	}

	if action != DidntTakeTurn {
		t.Error("descending consumed a turn")
	}
	if g.State.Depth != 2 {
		t.Errorf("depth = %d, want 2", g.State.Depth)
	}
	// rest heals half of effective max hp: 10 + 15
	if got := g.Store.Player().Fighter.HP; got != 25 {
		t.Errorf("player hp = %d, want 25 after resting", got)
	}
	// the new level replaces the hand-carved arena
	if g.State.Map.Width == 20 && g.State.Map.Height == 20 {
		t.Error("map not regenerated")
	}
	if !logContains(g, "descend deeper") {
		t.Error("no descent message")
	}
}

func TestDescend_NotOnStairsIsNoOp(t *testing.T) {
	g := testGame(t, nil)

	action, err := g.Descend()
	if err != nil {
		t.Fatalf("Descend failed: %v", err)
	}

	if action != DidntTakeTurn || g.State.Depth != 1 {
		t.Error("descended without stairs")
	}
}

func TestDescend_ClearsOldMonsters(t *testing.T) {
	g := testGame(t, nil)
	g.Store.Append(entity.NewStairs(5, 5))
	leftover := addOrc(g, 9, 9)

	if _, err := g.Descend(); err != nil {
		t.Fatalf("Descend failed: %v", err)
	}

	for i := 0; i < g.Store.Len(); i++ {
		if g.Store.At(i) == leftover {
			t.Fatal("monster followed the player downstairs")
		}
	}
}

func TestToggleReveal(t *testing.T) {
	g := testGame(t, nil)

	if action := g.ToggleReveal(); action != DidntTakeTurn {
		t.Error("toggle consumed a turn")
	}
	if !g.RevealAll {
		t.Error("reveal not enabled")
	}
	g.ToggleReveal()
	if g.RevealAll {
		t.Error("reveal not disabled")
	}
}

func TestCharacterSheet_UsesEffectiveStats(t *testing.T) {
	g := testGame(t, nil)
	sword := carrySword(g)
	sword.Equipment.Equipped = true

	sheet := g.CharacterSheet()

	if sheet.Power != 8 {
		t.Errorf("sheet power = %d, want 5+3", sheet.Power)
	}
	if sheet.Defense != 2 || sheet.MaxHP != 30 {
		t.Errorf("sheet defense/maxhp = %d/%d", sheet.Defense, sheet.MaxHP)
	}
	if sheet.Level != 1 || sheet.NextLevelXP != 350 {
		t.Errorf("sheet level/next = %d/%d", sheet.Level, sheet.NextLevelXP)
	}
}

func TestLevelUp_BlocksTurnsUntilResolved(t *testing.T) {
	g := testGame(t, nil)
	g.Store.Player().Fighter.XP = 350

	// any resolved intent checks the threshold
	g.MovePlayer(1, 0)

	if !g.PendingLevelUp() {
		t.Fatal("level-up gate not armed")
	}
	if g.Store.Player().Level != 2 {
		t.Errorf("level = %d, want 2", g.Store.Player().Level)
	}

	// turns are refused while the choice is outstanding
	if action := g.MovePlayer(1, 0); action != DidntTakeTurn {
		t.Error("move accepted while level-up pending")
	}
	x0, y0 := g.Store.Player().Pos()

	g.ResolveLevelUp(leveling.RaisePower)

	if g.PendingLevelUp() {
		t.Error("gate still armed after resolution")
	}
	if g.Store.Player().Fighter.BasePower != 6 {
		t.Errorf("power = %d, want 6", g.Store.Player().Fighter.BasePower)
	}
	if g.Store.Player().Fighter.XP != 0 {
		t.Errorf("xp = %d, want 0 after paying the threshold", g.Store.Player().Fighter.XP)
	}

	if action := g.MovePlayer(1, 0); action != TookTurn {
		t.Error("move still refused after resolution")
	}
	if x, y := g.Store.Player().Pos(); x == x0 && y == y0 {
		t.Error("player did not move after the gate cleared")
	}
}
