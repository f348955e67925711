package tui

import (
	"strings"

	"treeline-cli/internal/keymap"

	tea "github.com/charmbracelet/bubbletea"
)

// translateKey converts a bubbletea key message into a dispatcher event.
// Bubbletea spells chords like "alt+down" and "ctrl+shift+p"; the last
// segment is the key, everything before it a modifier.
func translateKey(msg tea.KeyMsg) (keymap.Event, bool) {
	s := msg.String()
	if s == "" {
		return keymap.Event{}, false
	}

	parts := strings.Split(s, "+")
	ev := keymap.Event{Key: parts[len(parts)-1]}
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "alt":
			ev.Alt = true
		case "ctrl":
			ev.Ctrl = true
		case "shift":
			ev.Shift = true
		case "cmd", "meta", "super":
			ev.Meta = true
		default:
			return keymap.Event{}, false
		}
	}

	// Bubbletea reports shift+tab as a bare "shift+tab" chord already split
	// above; runes arrive as themselves.
	if ev.Key == "" {
		return keymap.Event{}, false
	}
	return ev, true
}
