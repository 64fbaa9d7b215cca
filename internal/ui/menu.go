package ui

import (
	"fmt"

	"github.com/cavernkeep/undercroft/internal/entity"
	"github.com/cavernkeep/undercroft/internal/game"
	"github.com/cavernkeep/undercroft/internal/leveling"
)

// Box widths for the centered overlays.
const (
	inventoryWidth       = 50
	levelScreenWidth     = 40
	characterScreenWidth = 30
	titleWidth           = 24
	deathScreenWidth     = 38
)

// Menu is one centered overlay: a header, letter-keyed options and a
// fixed interior width. With no options it is a plain message box that
// any key dismisses.
type Menu struct {
	Header  string
	Options []string
	Width   int

	// Empty is shown as an unselectable line when Options is empty.
	Empty string
}

// Pick maps a pressed rune onto an option index, or -1 when the key
// selects nothing.
func (m *Menu) Pick(r rune) int {
	if r < 'a' || r > 'z' {
		return -1
	}
	idx := int(r - 'a')
	if idx >= len(m.Options) {
		return -1
	}
	return idx
}

// msgBox wraps plain text in an option-less menu.
func msgBox(text string, width int) *Menu {
	return &Menu{Header: text, Width: width}
}

// titleMenu is the main menu shown over the title screen.
func titleMenu() *Menu {
	return &Menu{
		Options: []string{"Play a new game", "Continue last game", "Quit"},
		Width:   titleWidth,
	}
}

// inventoryMenu lists the carried items a..z, annotating equipped gear
// with its slot.
func inventoryMenu(inv []*entity.Entity, header string) *Menu {
	options := make([]string, 0, len(inv))
	for _, item := range inv {
		name := item.Name
		if item.Equipment != nil && item.Equipment.Equipped {
			name = fmt.Sprintf("%s (on %s)", name, item.Equipment.Slot)
		}
		options = append(options, name)
	}
	return &Menu{
		Header:  header,
		Options: options,
		Width:   inventoryWidth,
		Empty:   "Inventory is empty.",
	}
}

// levelUpMenu offers the three stat raises. The "from" numbers are the
// base stats the raise applies to, not the equipped totals.
func levelUpMenu(fighter *entity.Fighter, prog leveling.Progression) *Menu {
	return &Menu{
		Header: "Level up! Choose a stat to raise:\n",
		Options: []string{
			fmt.Sprintf("Constitution (+%d HP, from %d)", prog.HPReward, fighter.BaseMaxHP),
			fmt.Sprintf("Strength (+%d attack, from %d)", prog.PowerReward, fighter.BasePower),
			fmt.Sprintf("Agility (+%d defense, from %d)", prog.DefenseReward, fighter.BaseDefense),
		},
		Width: levelScreenWidth,
	}
}

// sheetBox renders the character sheet as a message box.
func sheetBox(s game.Sheet) *Menu {
	text := fmt.Sprintf(
		"Character information\n\nLevel: %d\nExperience: %d\nExperience to level up: %d\n\nMaximum HP: %d\nAttack: %d\nDefense: %d",
		s.Level, s.XP, s.NextLevelXP, s.MaxHP, s.Power, s.Defense,
	)
	return msgBox(text, characterScreenWidth)
}

// deathBox is the banner shown over the final board.
func deathBox() *Menu {
	return msgBox("\nYou died, see you another time!\n", deathScreenWidth)
}
