package ui

import (
	"context"

	"github.com/looplab/fsm"

	"github.com/cavernkeep/undercroft/internal/logger"
)

// Screen modes. Exactly one is active at a time and every key press is
// interpreted against it.
const (
	StateTitle     = "title"
	StatePlaying   = "playing"
	StateInventory = "inventory"
	StateDrop      = "drop"
	StateLevelUp   = "levelup"
	StateSheet     = "sheet"
	StateDead      = "dead"
)

// Mode transition events.
const (
	EventStart         = "start"
	EventOpenInventory = "open_inventory"
	EventOpenDrop      = "open_drop"
	EventOpenSheet     = "open_sheet"
	EventCloseMenu     = "close_menu"
	EventLevelUp       = "level_up"
	EventChooseStat    = "choose_stat"
	EventDie           = "die"
	EventRetreat       = "retreat"
	EventBury          = "bury"
)

// Modes is the screen-mode state machine. It only guards which
// transitions are legal; the UI decides what happens on each.
type Modes struct {
	*fsm.FSM
}

// NewModes builds the machine, starting on the title screen.
func NewModes() *Modes {
	return &Modes{FSM: fsm.NewFSM(
		StateTitle,
		fsm.Events{
			{Name: EventStart, Src: []string{StateTitle}, Dst: StatePlaying},
			{Name: EventOpenInventory, Src: []string{StatePlaying}, Dst: StateInventory},
			{Name: EventOpenDrop, Src: []string{StatePlaying}, Dst: StateDrop},
			{Name: EventOpenSheet, Src: []string{StatePlaying}, Dst: StateSheet},
			{Name: EventCloseMenu, Src: []string{StateInventory, StateDrop, StateSheet}, Dst: StatePlaying},
			{Name: EventLevelUp, Src: []string{StatePlaying}, Dst: StateLevelUp},
			{Name: EventChooseStat, Src: []string{StateLevelUp}, Dst: StatePlaying},
			{Name: EventDie, Src: []string{StatePlaying}, Dst: StateDead},
			{Name: EventRetreat, Src: []string{StatePlaying}, Dst: StateTitle},
			{Name: EventBury, Src: []string{StateDead}, Dst: StateTitle},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.Debug("Screen mode changed", "from", e.Src, "to", e.Dst)
			},
		},
	)}
}
