package game

import (
	"math/rand"

	"github.com/cavernkeep/undercroft/internal/ai"
	"github.com/cavernkeep/undercroft/internal/combat"
	"github.com/cavernkeep/undercroft/internal/config"
	"github.com/cavernkeep/undercroft/internal/dungeon"
	"github.com/cavernkeep/undercroft/internal/entity"
	"github.com/cavernkeep/undercroft/internal/leveling"
	"github.com/cavernkeep/undercroft/internal/logger"
	"github.com/cavernkeep/undercroft/internal/message"
)

// Action classifies a resolved player intent for the turn loop. Only
// TookTurn lets the monsters react.
type Action int

const (
	DidntTakeTurn Action = iota
	TookTurn
)

// Oracle answers tile visibility for the last computed origin and
// rebuilds the field on demand. The game core never computes
// visibility itself.
type Oracle interface {
	Visible(x, y int) bool
	Recompute(m *dungeon.Map, ox, oy, radius int)
}

// State is the serializable world state outside the entity store: the
// grid, the log, the carried inventory and the depth counter.
type State struct {
	Map       *dungeon.Map     `json:"map"`
	Log       *message.Log     `json:"log"`
	Inventory []*entity.Entity `json:"inventory"`
	Depth     int              `json:"depth"`
}

// Game owns one running dungeon crawl: the entity store, the world
// state and the rules wiring. All intent methods resolve synchronously
// and, when a turn was consumed, run the monster sweep before they
// return.
type Game struct {
	Store *entity.Store
	State *State

	// RevealAll switches the renderer from torch vision to the whole
	// grid. Display-only, never persisted.
	RevealAll bool

	cfg    *config.Config
	gen    *dungeon.Generator
	pop    dungeon.Populator
	oracle Oracle
	rng    *rand.Rand
	prog   leveling.Progression

	pending          bool
	pendingThreshold int

	causeOfDeath string
}

// New starts a fresh crawl on depth 1.
func New(cfg *config.Config, pop dungeon.Populator, oracle Oracle, rng *rand.Rand) (*Game, error) {
	player := entity.NewPlayer(cfg.Player.Name, cfg.Player.MaxHP, cfg.Player.Defense, cfg.Player.Power)
	store := entity.NewStore(player)

	g := &Game{
		Store:  store,
		State:  &State{Log: &message.Log{}, Depth: 1},
		cfg:    cfg,
		gen:    generatorFrom(cfg),
		pop:    pop,
		oracle: oracle,
		rng:    rng,
		prog:   progressionFrom(cfg),
	}

	m, err := g.gen.Generate(1, store, pop, rng)
	if err != nil {
		return nil, err
	}
	g.State.Map = m
	g.RefreshVision()

	g.State.Log.Add("Welcome stranger, brace yourself, you're alone now..", message.ColorRed)
	logger.Info("New game started", "player", player.Name, "depth", 1)
	return g, nil
}

// Restore rebuilds a running game around a loaded store and state.
func Restore(cfg *config.Config, store *entity.Store, state *State, pop dungeon.Populator, oracle Oracle, rng *rand.Rand) *Game {
	g := &Game{
		Store:  store,
		State:  state,
		cfg:    cfg,
		gen:    generatorFrom(cfg),
		pop:    pop,
		oracle: oracle,
		rng:    rng,
		prog:   progressionFrom(cfg),
	}
	g.RefreshVision()
	g.checkLevelUp()
	logger.Info("Game restored", "player", store.Player().Name, "depth", state.Depth)
	return g
}

func generatorFrom(cfg *config.Config) *dungeon.Generator {
	return &dungeon.Generator{
		Width:       cfg.Map.Width,
		Height:      cfg.Map.Height,
		MaxRooms:    cfg.Rooms.MaxRooms,
		RoomMinSize: cfg.Rooms.MinSize,
		RoomMaxSize: cfg.Rooms.MaxSize,
	}
}

func progressionFrom(cfg *config.Config) leveling.Progression {
	return leveling.Progression{
		Base:          cfg.Leveling.Base,
		Factor:        cfg.Leveling.Factor,
		HPReward:      cfg.Leveling.HPReward,
		PowerReward:   cfg.Leveling.PowerReward,
		DefenseReward: cfg.Leveling.DefenseReward,
	}
}

// RefreshVision recomputes the field of view from the player's current
// tile. The driver calls this before rendering whenever the player has
// moved; monster perception always reads the field as last computed.
func (g *Game) RefreshVision() {
	player := g.Store.Player()
	g.oracle.Recompute(g.State.Map, player.X, player.Y, g.cfg.Vision.TorchRadius)
}

// Visible reports whether a tile was inside the last computed field.
func (g *Game) Visible(x, y int) bool {
	return g.oracle.Visible(x, y)
}

// MovePlayer resolves one cardinal step: attack whatever fighter holds
// the destination tile, otherwise walk if terrain and entities allow.
// Bumping a wall still spends the turn.
func (g *Game) MovePlayer(dx, dy int) Action {
	if g.pending {
		return DidntTakeTurn
	}
	player := g.Store.Player()
	if !player.Alive {
		return DidntTakeTurn
	}
	if abs(dx)+abs(dy) != 1 {
		return DidntTakeTurn
	}

	x, y := player.X+dx, player.Y+dy
	if idx := g.Store.FighterIndexAt(x, y); idx > entity.PlayerIndex {
		attacker, defender := g.Store.Pair(entity.PlayerIndex, idx)
		combat.Attack(attacker, defender, g.State.Inventory, g.cfg.Combat.MissChance, g.rng, g.State.Log)
	} else if !g.State.Map.Blocked(x, y) && !g.Store.BlockingAt(x, y) {
		player.SetPos(x, y)
	}
	return g.endTurn(TookTurn)
}

// PickUp moves the item on the player's tile into the inventory. With
// nothing underfoot it is a quiet no-op.
func (g *Game) PickUp() Action {
	if g.pending {
		return DidntTakeTurn
	}
	player := g.Store.Player()
	if !player.Alive {
		return DidntTakeTurn
	}

	idx := g.Store.ItemIndexAt(player.X, player.Y)
	if idx < 0 {
		return DidntTakeTurn
	}
	if len(g.State.Inventory) >= g.cfg.Inventory.Capacity {
		g.State.Log.Addf(message.ColorRed, "Your inventory is full, you cannot pick up %s.", g.Store.At(idx).Name)
		return DidntTakeTurn
	}

	item := g.Store.SwapRemove(idx)
	g.State.Inventory = append(g.State.Inventory, item)
	g.State.Log.Addf(message.ColorGreen, "You pick up a %s.", item.Name)
	return g.endTurn(DidntTakeTurn)
}

// Descend takes the stairs under the player: a short rest worth half
// the effective max hp, then a fresh level one depth down. Standing
// anywhere else it is a quiet no-op.
func (g *Game) Descend() (Action, error) {
	if g.pending {
		return DidntTakeTurn, nil
	}
	player := g.Store.Player()
	if !player.Alive {
		return DidntTakeTurn, nil
	}
	if !g.Store.StairsAt(player.X, player.Y) {
		return DidntTakeTurn, nil
	}

	g.State.Log.Add("You take a moment to rest.", message.ColorViolet)
	g.heal(player, entity.EffectiveMaxHP(player, g.State.Inventory)/2)
	g.State.Log.Add("After a rare moment of peace, you descend deeper into the dungeon.", message.ColorRed)

	g.State.Depth++
	m, err := g.gen.Generate(g.State.Depth, g.Store, g.pop, g.rng)
	if err != nil {
		return DidntTakeTurn, err
	}
	g.State.Map = m
	g.RefreshVision()
	logger.Info("Descended", "depth", g.State.Depth)
	return g.endTurn(DidntTakeTurn), nil
}

// ToggleReveal flips the renderer between torch vision and full view.
func (g *Game) ToggleReveal() Action {
	g.RevealAll = !g.RevealAll
	return DidntTakeTurn
}

// Sheet is the character information panel data, using effective
// stats so equipped gear shows up.
type Sheet struct {
	Level       int
	XP          int
	NextLevelXP int
	HP          int
	MaxHP       int
	Power       int
	Defense     int
}

// CharacterSheet reads the player's current numbers. Viewing it never
// consumes a turn.
func (g *Game) CharacterSheet() Sheet {
	player := g.Store.Player()
	sheet := Sheet{
		Level:       player.Level,
		NextLevelXP: g.prog.Threshold(player.Level),
		MaxHP:       entity.EffectiveMaxHP(player, g.State.Inventory),
		Power:       entity.EffectivePower(player, g.State.Inventory),
		Defense:     entity.EffectiveDefense(player, g.State.Inventory),
	}
	if player.Fighter != nil {
		sheet.XP = player.Fighter.XP
		sheet.HP = player.Fighter.HP
	}
	return sheet
}

// PendingLevelUp reports whether a stat choice is outstanding. While
// it is, every turn-consuming intent is refused.
func (g *Game) PendingLevelUp() bool {
	return g.pending
}

// Progression exposes the reward numbers so menus can label choices.
func (g *Game) Progression() leveling.Progression {
	return g.prog
}

// ResolveLevelUp applies the outstanding stat choice and unblocks the
// turn loop.
func (g *Game) ResolveLevelUp(c leveling.Choice) {
	if !g.pending {
		return
	}
	g.prog.Apply(g.Store.Player(), c, g.pendingThreshold)
	g.pending = false
	g.pendingThreshold = 0
	logger.Info("Level up resolved", "choice", c.String(), "level", g.Store.Player().Level)
}

// PlayerDead reports whether the crawl has ended.
func (g *Game) PlayerDead() bool {
	return !g.Store.Player().Alive
}

// CauseOfDeath names the monster that finished the player, or "" while
// the player lives or when the death had no recorded source.
func (g *Game) CauseOfDeath() string {
	return g.causeOfDeath
}

// endTurn runs the monster sweep when the player spent a turn, then
// arms the level-up gate if banked xp cleared the threshold. Checked
// after every intent because xp can also arrive outside a turn.
func (g *Game) endTurn(action Action) Action {
	if action == TookTurn && g.Store.Player().Alive {
		killer := ai.TakeTurns(g.Store, g.State.Map, g.State.Inventory, g.oracle, g.cfg.Combat.MissChance, g.rng, g.State.Log)
		if killer != "" {
			g.causeOfDeath = killer
			logger.Info("Player died", "killer", killer, "depth", g.State.Depth)
		}
	}
	g.checkLevelUp()
	return action
}

func (g *Game) checkLevelUp() {
	player := g.Store.Player()
	if g.pending || !player.Alive || !g.prog.Ready(player) {
		return
	}
	g.pendingThreshold = g.prog.Begin(player, g.State.Log)
	g.pending = true
}

// heal raises hp, clamped to the effective maximum.
func (g *Game) heal(e *entity.Entity, amount int) {
	if e.Fighter == nil {
		return
	}
	e.Fighter.HP += amount
	if limit := entity.EffectiveMaxHP(e, g.State.Inventory); e.Fighter.HP > limit {
		e.Fighter.HP = limit
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
