package tui

import (
	"testing"

	"treeline-cli/internal/keymap"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTranslateKey(t *testing.T) {
	cases := []struct {
		msg  tea.KeyMsg
		want keymap.Event
	}{
		{tea.KeyMsg{Type: tea.KeyDown}, keymap.Event{Key: "down"}},
		{tea.KeyMsg{Type: tea.KeyDown, Alt: true}, keymap.Event{Key: "down", Alt: true}},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, keymap.Event{Key: "tab", Shift: true}},
		{tea.KeyMsg{Type: tea.KeyEnter}, keymap.Event{Key: "enter"}},
		{tea.KeyMsg{Type: tea.KeyF2}, keymap.Event{Key: "f2"}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, keymap.Event{Key: "a"}},
	}
	for _, tc := range cases {
		got, ok := translateKey(tc.msg)
		if !ok {
			t.Fatalf("translateKey(%q) not ok", tc.msg.String())
		}
		if got != tc.want {
			t.Fatalf("translateKey(%q) = %+v, want %+v", tc.msg.String(), got, tc.want)
		}
	}
}

func TestTranslatedChordsMatchDefaultTable(t *testing.T) {
	// Every default shortcut must be reachable from a bubbletea key string.
	byKeys := map[string]tea.KeyMsg{
		"Escape":         {Type: tea.KeyEsc},
		"Enter":          {Type: tea.KeyEnter},
		"ArrowDown":      {Type: tea.KeyDown},
		"ArrowUp":        {Type: tea.KeyUp},
		"ArrowRight":     {Type: tea.KeyRight},
		"ArrowLeft":      {Type: tea.KeyLeft},
		"Alt+ArrowDown":  {Type: tea.KeyDown, Alt: true},
		"Alt+ArrowUp":    {Type: tea.KeyUp, Alt: true},
		"Tab":            {Type: tea.KeyTab},
		"Shift+Tab":      {Type: tea.KeyShiftTab},
		"F2":             {Type: tea.KeyF2},
		"Delete":         {Type: tea.KeyDelete},
		"Ctrl+Backspace": {Type: tea.KeyCtrlH},
	}
	for _, sc := range keymap.Default().Entries() {
		msg, ok := byKeys[sc.Keys]
		if !ok {
			t.Fatalf("no key message mapped for shortcut %q", sc.Keys)
		}
		if sc.Keys == "Ctrl+Backspace" {
			// Terminals fold ctrl+backspace into ctrl+h; the chord stays in
			// the table for hosts that report it distinctly.
			continue
		}
		ev, ok := translateKey(msg)
		if !ok {
			t.Fatalf("translateKey failed for %q", sc.Keys)
		}
		ch, err := keymap.ParseChord(sc.Keys)
		if err != nil {
			t.Fatalf("ParseChord(%q): %v", sc.Keys, err)
		}
		if !ch.Matches(ev) {
			t.Fatalf("chord %q does not match translated event %+v", sc.Keys, ev)
		}
	}
}
