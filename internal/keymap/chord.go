// Package keymap maps physical key chords to tree actions through a
// data-driven shortcut table.
package keymap

import (
	"errors"
	"fmt"
	"strings"
)

// Event is a normalized physical key event: a base key plus modifier flags.
type Event struct {
	Key   string
	Alt   bool
	Ctrl  bool
	Meta  bool
	Shift bool
}

// Chord is a parsed shortcut specification ("Alt+ArrowDown").
type Chord struct {
	Key   string
	Alt   bool
	Ctrl  bool
	Meta  bool
	Shift bool
}

var errEmptyChord = errors.New("empty chord specification")

// ParseChord parses a "+"-separated chord. All parts but the last are
// modifiers (case-insensitive, with common aliases); the last part is the
// base key, normalized so hosts with different key naming agree.
func ParseChord(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, errEmptyChord
	}
	parts := strings.Split(spec, "+")
	var c Chord
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "alt", "option", "opt":
			c.Alt = true
		case "ctrl", "control":
			c.Ctrl = true
		case "meta", "cmd", "command", "super", "win":
			c.Meta = true
		case "shift":
			c.Shift = true
		default:
			return Chord{}, fmt.Errorf("unknown modifier %q in chord %q", p, spec)
		}
	}
	key := NormalizeKey(parts[len(parts)-1])
	if key == "" {
		return Chord{}, fmt.Errorf("missing base key in chord %q", spec)
	}
	c.Key = key
	return c, nil
}

// Matches reports whether ev is exactly this chord: same base key and the
// same modifier set. An entry without Alt never matches an Alt-ed event.
func (c Chord) Matches(ev Event) bool {
	return c.Key == NormalizeKey(ev.Key) &&
		c.Alt == ev.Alt &&
		c.Ctrl == ev.Ctrl &&
		c.Meta == ev.Meta &&
		c.Shift == ev.Shift
}

// NormalizeKey lowercases a base key name and unifies host aliases
// (space/spacebar, arrow keys, escape, enter, delete).
func NormalizeKey(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	switch k {
	case " ", "space", "spacebar":
		return "space"
	case "arrowup", "up":
		return "up"
	case "arrowdown", "down":
		return "down"
	case "arrowleft", "left":
		return "left"
	case "arrowright", "right":
		return "right"
	case "esc", "escape":
		return "escape"
	case "return", "enter":
		return "enter"
	case "del", "delete":
		return "delete"
	case "bs", "backspace":
		return "backspace"
	}
	return k
}
