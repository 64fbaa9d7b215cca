package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/cavernkeep/undercroft/internal/entity"
)

// Panel geometry below the map.
const (
	panelHeight = 7
	barWidth    = 20
	msgX        = barWidth + 2
)

// draw renders one full frame for the current mode.
func (u *UI) draw() {
	u.screen.Clear()

	if u.modes.Current() == StateTitle {
		u.drawTitle()
	} else {
		u.drawWorld()
		if u.menu != nil {
			u.drawMenu(u.menu)
		}
	}
	if u.notice != nil {
		u.drawMenu(u.notice)
	}

	u.screen.Show()
}

// drawTitle renders the title screen with the main menu.
func (u *UI) drawTitle() {
	titleStyle := tcell.StyleDefault.Foreground(colorTitleText)
	u.printCentered(u.height/2-6, "T H E   U N D E R C R O F T", titleStyle)
	u.printCentered(u.height-2, "a classic dungeon crawl", tcell.StyleDefault.Foreground(colorPanelText))
	u.drawMenu(u.menu)
}

// drawWorld renders the map, the entities on it and the status panel.
func (u *UI) drawWorld() {
	m := u.game.State.Map

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			tile := m.Tiles[y][x]
			if !tile.Explored && !u.game.RevealAll {
				continue
			}
			lit := u.game.RevealAll || u.game.Visible(x, y)
			u.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(tileColor(tile.BlocksSight, lit)))
		}
	}

	// Non-blocking entities first so corpses and items sit under
	// whatever stands on them.
	for _, e := range u.game.Store.Entities() {
		if !e.Blocks {
			u.drawEntity(e)
		}
	}
	for _, e := range u.game.Store.Entities() {
		if e.Blocks {
			u.drawEntity(e)
		}
	}

	u.drawPanel()
}

func tileColor(wall, lit bool) tcell.Color {
	switch {
	case lit && wall:
		return colorLightWall
	case lit:
		return colorLightGround
	case wall:
		return colorDarkWall
	default:
		return colorDarkGround
	}
}

func (u *UI) drawEntity(e *entity.Entity) {
	if !u.game.RevealAll && !u.game.Visible(e.X, e.Y) {
		return
	}
	wall := u.game.State.Map.BlocksSight(e.X, e.Y)
	style := tcell.StyleDefault.
		Foreground(colorByName(e.Color)).
		Background(tileColor(wall, true))
	u.screen.SetContent(e.X, e.Y, e.Glyph, nil, style)
}

// drawPanel renders the HP bar, the stat lines and the message log in
// the strip below the map.
func (u *UI) drawPanel() {
	m := u.game.State.Map
	panelY := m.Height
	sheet := u.game.CharacterSheet()

	u.drawBar(1, panelY+1, barWidth, "HP", sheet.HP, sheet.MaxHP)

	u.print(1, panelY+2, fmt.Sprintf("Level: %d  XP: %d/%d", sheet.Level, sheet.XP, sheet.NextLevelXP),
		tcell.StyleDefault.Foreground(colorPanelText))
	u.print(1, panelY+3, fmt.Sprintf("attack: %d", sheet.Power),
		tcell.StyleDefault.Foreground(colorStatText))
	u.print(1, panelY+4, fmt.Sprintf("defense: %d", sheet.Defense),
		tcell.StyleDefault.Foreground(colorStatText))
	u.print(1, panelY+5, fmt.Sprintf("Dungeon level: %d", u.game.State.Depth),
		tcell.StyleDefault.Foreground(tcell.ColorWhite))

	// Messages fill upward from the bottom row, newest last; an entry
	// that no longer fits drops out whole.
	msgWidth := m.Width - msgX
	entries := u.game.State.Log.Entries
	y := panelY + panelHeight - 1
	for i := len(entries) - 1; i >= 0; i-- {
		lines := wrapText(entries[i].Text, msgWidth)
		y -= len(lines)
		if y < panelY {
			break
		}
		style := tcell.StyleDefault.Foreground(colorByName(entries[i].Color))
		for j, line := range lines {
			u.print(msgX, y+1+j, line, style)
		}
	}
}

// drawBar renders a labeled value bar, filled proportionally with the
// caption centered over it.
func (u *UI) drawBar(x, y, total int, name string, value, maximum int) {
	filled := 0
	if maximum > 0 {
		filled = value * total / maximum
	}

	caption := fmt.Sprintf("%s: %d/%d", name, value, maximum)
	start := (total - len(caption)) / 2
	if start < 0 {
		start = 0
	}

	for i := 0; i < total; i++ {
		bg := colorBarEmpty
		if i < filled {
			bg = colorBarFill
		}
		ch := ' '
		if i >= start && i-start < len(caption) {
			ch = rune(caption[i-start])
		}
		u.screen.SetContent(x+i, y, ch, nil, tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(bg))
	}
}

// drawMenu renders a centered overlay box.
func (u *UI) drawMenu(m *Menu) {
	var lines []string
	if m.Header != "" {
		lines = wrapText(m.Header, m.Width)
	}
	if len(m.Options) > 0 {
		for i, option := range m.Options {
			lines = append(lines, fmt.Sprintf("[%c] - %s", 'a'+i, option))
		}
	} else if m.Empty != "" {
		lines = append(lines, m.Empty)
	}

	height := len(lines)
	x := (u.width - m.Width) / 2
	y := (u.height - height) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	boxStyle := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	for row := 0; row < height; row++ {
		for col := 0; col < m.Width; col++ {
			u.screen.SetContent(x+col, y+row, ' ', nil, boxStyle)
		}
	}
	for i, line := range lines {
		u.print(x, y+i, line, boxStyle)
	}
}

func (u *UI) print(x, y int, text string, style tcell.Style) {
	for i, r := range text {
		u.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (u *UI) printCentered(y int, text string, style tcell.Style) {
	u.print((u.width-len(text))/2, y, text, style)
}

// wrapText word-wraps text to the given width, honoring embedded
// newlines. Words longer than the width are split hard.
func wrapText(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		if paragraph == "" {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, word := range strings.Fields(paragraph) {
			for len(word) > width {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				lines = append(lines, word[:width])
				word = word[width:]
			}
			switch {
			case line == "":
				line = word
			case len(line)+1+len(word) <= width:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		lines = append(lines, line)
	}
	return lines
}
