package ui

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/cavernkeep/undercroft/internal/config"
	"github.com/cavernkeep/undercroft/internal/dungeon"
	"github.com/cavernkeep/undercroft/internal/fov"
	"github.com/cavernkeep/undercroft/internal/game"
	"github.com/cavernkeep/undercroft/internal/leveling"
	"github.com/cavernkeep/undercroft/internal/logger"
	"github.com/cavernkeep/undercroft/internal/message"
	"github.com/cavernkeep/undercroft/internal/savegame"
)

// Options selects what new games are built from.
type Options struct {
	// Populator seeds monsters and items during level generation.
	Populator dungeon.Populator

	// Seed fixes the rng for new games; 0 draws from the clock.
	Seed int64
}

// UI owns the terminal, the screen-mode machine and the running game.
// One instance drives a whole session from title screen to quit.
type UI struct {
	screen tcell.Screen
	modes  *Modes

	cfg  *config.Config
	db   *savegame.Database
	pop  dungeon.Populator
	seed int64

	game *game.Game

	// menu is the overlay owned by the current mode; notice is a
	// transient message box that eats the next key press.
	menu   *Menu
	notice *Menu

	width, height int
}

// New creates the terminal screen and a session around it.
func New(cfg *config.Config, db *savegame.Database, opts Options) (*UI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	return newWith(screen, cfg, db, opts), nil
}

// newWith wires a UI around an already initialized screen. Tests hand
// in a simulation screen here.
func newWith(screen tcell.Screen, cfg *config.Config, db *savegame.Database, opts Options) *UI {
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	w, h := screen.Size()
	return &UI{
		screen: screen,
		modes:  NewModes(),
		cfg:    cfg,
		db:     db,
		pop:    opts.Populator,
		seed:   opts.Seed,
		menu:   titleMenu(),
		width:  w,
		height: h,
	}
}

// Run drives the session until the player quits.
func (u *UI) Run() error {
	defer u.screen.Fini()

	for {
		u.draw()

		ev := u.screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			u.width, u.height = ev.Size()
			u.screen.Sync()
		case *tcell.EventKey:
			if u.handleKey(ev) {
				return nil
			}
		}
	}
}

// handleKey dispatches one key press by mode. The return reports that
// the session should end.
func (u *UI) handleKey(ev *tcell.EventKey) bool {
	if u.notice != nil {
		u.notice = nil
		return false
	}

	switch u.modes.Current() {
	case StateTitle:
		return u.titleKey(ev)
	case StatePlaying:
		return u.playingKey(ev)
	case StateInventory:
		u.menuKey(ev, u.useSlot)
	case StateDrop:
		u.menuKey(ev, u.dropSlot)
	case StateLevelUp:
		u.levelUpKey(ev)
	case StateSheet:
		u.closeMenu()
	case StateDead:
		u.buryKey()
	}
	return false
}

func (u *UI) titleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return true
	}
	if ev.Key() != tcell.KeyRune {
		return false
	}
	switch u.menu.Pick(ev.Rune()) {
	case 0:
		u.startNewGame()
	case 1:
		u.continueGame()
	case 2:
		return true
	}
	return false
}

func (u *UI) startNewGame() {
	g, err := game.New(u.cfg, u.pop, fov.New(), u.rng())
	if err != nil {
		logger.Error("New game failed", "error", err)
		u.notice = msgBox(fmt.Sprintf("\nThe dungeon would not form: %v\n", err), levelScreenWidth)
		return
	}
	u.game = g
	u.menu = nil
	u.fire(EventStart)
	u.afterIntent()
}

func (u *UI) continueGame() {
	snap, err := u.db.Load(u.cfg.Storage.Slot)
	if errors.Is(err, savegame.ErrNoSave) {
		u.notice = msgBox("\nNo saved game.\n", titleWidth)
		return
	}
	if err != nil {
		logger.Error("Loading save failed", "slot", u.cfg.Storage.Slot, "error", err)
		u.notice = msgBox("\nThe saved game could not be read.\n", deathScreenWidth)
		return
	}
	u.game = game.Restore(u.cfg, snap.Store, snap.State, u.pop, fov.New(), u.rng())
	u.menu = nil
	u.fire(EventStart)
	u.afterIntent()
}

func (u *UI) rng() *rand.Rand {
	seed := u.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Dungeon seed selected", "seed", seed, "random", u.seed == 0)
	return rand.New(rand.NewSource(seed))
}

func (u *UI) playingKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		u.retreat()
	case tcell.KeyCtrlC:
		u.retreat()
		return true
	case tcell.KeyUp:
		u.step(0, -1)
	case tcell.KeyDown:
		u.step(0, 1)
	case tcell.KeyLeft:
		u.step(-1, 0)
	case tcell.KeyRight:
		u.step(1, 0)
	case tcell.KeyTab:
		u.game.ToggleReveal()
	case tcell.KeyRune:
		u.playingRune(ev.Rune())
	}
	return false
}

func (u *UI) playingRune(r rune) {
	switch r {
	case 'k':
		u.step(0, -1)
	case 'j':
		u.step(0, 1)
	case 'h':
		u.step(-1, 0)
	case 'l':
		u.step(1, 0)
	case 'f':
		u.game.PickUp()
		u.afterIntent()
	case 'i':
		u.menu = inventoryMenu(u.game.Inventory(),
			"Press the key next to an item to use it, or any other to cancel.\n")
		u.fire(EventOpenInventory)
	case 'd':
		u.menu = inventoryMenu(u.game.Inventory(),
			"Press the key next to an item to drop it, or any other to cancel.\n")
		u.fire(EventOpenDrop)
	case 'c':
		u.menu = sheetBox(u.game.CharacterSheet())
		u.fire(EventOpenSheet)
	case ' ':
		u.descend()
	}
}

// step resolves one move intent, recomputing vision only when the
// player actually changed tiles. The monster sweep inside the intent
// reads the field as it stood before the step.
func (u *UI) step(dx, dy int) {
	player := u.game.Store.Player()
	x0, y0 := player.Pos()
	u.game.MovePlayer(dx, dy)
	if x, y := player.Pos(); x != x0 || y != y0 {
		u.game.RefreshVision()
	}
	u.afterIntent()
}

func (u *UI) descend() {
	if _, err := u.game.Descend(); err != nil {
		logger.Error("Descent failed", "depth", u.game.State.Depth, "error", err)
		u.game.State.Log.Add("The way down has collapsed.", message.ColorRed)
	}
	u.afterIntent()
}

// retreat saves the run and returns to the title screen.
func (u *UI) retreat() {
	snap := &savegame.Snapshot{Store: u.game.Store, State: u.game.State}
	if err := u.db.Save(u.cfg.Storage.Slot, snap); err != nil {
		logger.Error("Saving game failed", "slot", u.cfg.Storage.Slot, "error", err)
	}
	u.game = nil
	u.menu = titleMenu()
	u.fire(EventRetreat)
}

// menuKey resolves a letter menu: a valid letter acts on that slot,
// anything else cancels.
func (u *UI) menuKey(ev *tcell.EventKey, act func(int)) {
	slot := -1
	if ev.Key() == tcell.KeyRune {
		slot = u.menu.Pick(ev.Rune())
	}
	u.closeMenu()
	if slot >= 0 {
		act(slot)
	}
}

func (u *UI) closeMenu() {
	u.menu = nil
	u.fire(EventCloseMenu)
}

func (u *UI) useSlot(slot int) {
	u.game.UseItem(slot)
	u.afterIntent()
}

func (u *UI) dropSlot(slot int) {
	u.game.DropItem(slot)
	u.afterIntent()
}

// levelUpKey resolves the stat choice. The menu cannot be cancelled;
// the run stays blocked until a stat is picked.
func (u *UI) levelUpKey(ev *tcell.EventKey) {
	if ev.Key() != tcell.KeyRune {
		return
	}
	choice := u.menu.Pick(ev.Rune())
	if choice < 0 {
		return
	}
	// Menu option order matches the Choice values.
	u.game.ResolveLevelUp(leveling.Choice(choice))
	u.menu = nil
	u.fire(EventChooseStat)
}

// afterIntent reacts to state the last intent may have produced: death
// first, then an armed level-up gate.
func (u *UI) afterIntent() {
	if u.game.PlayerDead() {
		u.onDeath()
		return
	}
	if u.game.PendingLevelUp() {
		u.menu = levelUpMenu(u.game.Store.Player().Fighter, u.game.Progression())
		u.fire(EventLevelUp)
	}
}

// onDeath closes out the run: one graveyard row, the save slot
// cleared, the screen handed to the dead mode.
func (u *UI) onDeath() {
	player := u.game.Store.Player()
	if _, err := u.db.RecordDeath(player.Name, u.game.State.Depth, player.Level, u.game.CauseOfDeath()); err != nil {
		logger.Error("Recording death failed", "error", err)
	}
	if err := u.db.Delete(u.cfg.Storage.Slot); err != nil && !errors.Is(err, savegame.ErrNoSave) {
		logger.Error("Clearing save after death failed", "slot", u.cfg.Storage.Slot, "error", err)
	}
	u.menu = deathBox()
	u.fire(EventDie)
}

// buryKey leaves the corpse behind and returns to the title screen.
func (u *UI) buryKey() {
	u.game = nil
	u.menu = titleMenu()
	u.fire(EventBury)
}

// fire drives one mode transition, logging rather than failing when
// the current mode refuses the event.
func (u *UI) fire(event string) {
	if err := u.modes.Event(context.Background(), event); err != nil {
		logger.Warning("Mode transition refused", "event", event, "mode", u.modes.Current(), "error", err)
	}
}
