package message

import "fmt"

// Display color names shared by the game systems. The renderer owns
// the mapping to actual terminal colors.
const (
	ColorWhite       = "white"
	ColorRed         = "red"
	ColorOrange      = "orange"
	ColorGreen       = "green"
	ColorLightGreen  = "light_green"
	ColorYellow      = "yellow"
	ColorLightYellow = "light_yellow"
	ColorLightBlue   = "light_blue"
	ColorViolet      = "violet"
	ColorLightViolet = "light_violet"
	ColorDarkRed     = "dark_red"
	ColorLighterRed  = "lighter_red"
)

// Entry is one line of the game log with its display color.
type Entry struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// Log is the append-only message history shown in the side panel. It
// is serialized with the rest of the world state.
type Log struct {
	Entries []Entry `json:"entries"`
}

// Add appends one entry.
func (l *Log) Add(text, color string) {
	l.Entries = append(l.Entries, Entry{Text: text, Color: color})
}

// Addf appends one formatted entry.
func (l *Log) Addf(color, format string, args ...any) {
	l.Add(fmt.Sprintf(format, args...), color)
}

// Recent returns up to n of the newest entries, oldest first.
func (l *Log) Recent(n int) []Entry {
	if n >= len(l.Entries) {
		return l.Entries
	}
	return l.Entries[len(l.Entries)-n:]
}
