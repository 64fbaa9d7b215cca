package ui

import "github.com/gdamore/tcell/v2"

// Tile colors, lit and unlit, from the classic dungeon palette.
var (
	colorDarkWall    = tcell.NewRGBColor(0, 0, 100)
	colorLightWall   = tcell.NewRGBColor(130, 110, 50)
	colorDarkGround  = tcell.NewRGBColor(50, 50, 150)
	colorLightGround = tcell.NewRGBColor(200, 180, 50)
)

// Panel chrome colors.
var (
	colorBarFill   = tcell.NewRGBColor(255, 114, 114)
	colorBarEmpty  = tcell.NewRGBColor(127, 0, 0)
	colorPanelText = tcell.NewRGBColor(159, 159, 159)
	colorStatText  = tcell.NewRGBColor(114, 184, 255)
	colorTitleText = tcell.NewRGBColor(255, 255, 114)
)

// palette maps the color names carried by entities and log entries to
// terminal colors. The simulation layers only ever deal in names; the
// renderer owns what they look like.
var palette = map[string]tcell.Color{
	"white":         tcell.NewRGBColor(255, 255, 255),
	"red":           tcell.NewRGBColor(255, 0, 0),
	"orange":        tcell.NewRGBColor(255, 127, 0),
	"green":         tcell.NewRGBColor(0, 255, 0),
	"light_green":   tcell.NewRGBColor(114, 255, 114),
	"darker_green":  tcell.NewRGBColor(0, 127, 0),
	"yellow":        tcell.NewRGBColor(255, 255, 0),
	"light_yellow":  tcell.NewRGBColor(255, 255, 114),
	"light_blue":    tcell.NewRGBColor(114, 114, 255),
	"sky":           tcell.NewRGBColor(0, 191, 255),
	"violet":        tcell.NewRGBColor(127, 0, 255),
	"light_violet":  tcell.NewRGBColor(184, 114, 255),
	"dark_red":      tcell.NewRGBColor(191, 0, 0),
	"lighter_red":   tcell.NewRGBColor(255, 165, 165),
	"darker_orange": tcell.NewRGBColor(127, 63, 0),
	"dark_grey":     tcell.NewRGBColor(95, 95, 95),
}

// colorByName resolves a display color name, falling back to white for
// anything a definition file made up.
func colorByName(name string) tcell.Color {
	if c, ok := palette[name]; ok {
		return c
	}
	return tcell.ColorWhite
}
